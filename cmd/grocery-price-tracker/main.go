// Package main is the entry point for grocery-price-tracker.
package main

import (
	"os"

	"github.com/donaldgifford/grocery-price-tracker/cmd/grocery-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
