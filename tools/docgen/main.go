// Package main writes the grocery-price-tracker command reference as
// markdown.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/grocery-price-tracker/cmd/grocery-price-tracker/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "directory for the generated markdown")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, *output); err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("wrote command reference to %s/\n", *output)
}
