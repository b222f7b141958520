package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/grocery-price-tracker/internal/api/client"
	"github.com/donaldgifford/grocery-price-tracker/internal/engine"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func matchCmd() *cobra.Command {
	var (
		quantity int
		fresh    bool
		server   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "match <product description>",
		Short: "Match one product against every retailer",
		Long: "Run the search cascade for a single product description and print the\n" +
			"best listing, its confidence, and the best offer from each retailer.",
		Example: `  # Match locally using config.yaml
  grocery-price-tracker match "Heinz Baked Beans 415g"

  # Treat the description as a 4 pack and ignore cached results
  grocery-price-tracker match "Heinz Baked Beans 415g" --quantity 4 --fresh

  # Ask a running server instead
  grocery-price-tracker match "Semi Skimmed Milk 2 Pints" --server http://localhost:8080`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := domain.Query{Name: strings.Join(args, " "), Quantity: quantity}
			if quantity < 0 {
				return errors.New("--quantity must not be negative")
			}

			var (
				r         *domain.MatchResult
				retailers []string
				err       error
			)
			if server != "" {
				r, retailers, err = matchRemote(cmd.Context(), server, q, fresh)
			} else {
				r, retailers, err = matchLocal(cmd.Context(), q, fresh)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return outputJSON(out, r)
			}
			if err := printResult(out, r); err != nil {
				return err
			}
			return printOffers(out, r, retailers)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "pack quantity hint, overriding the parsed value")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore cached results")
	cmd.Flags().StringVar(&server, "server", "", "match through a running API server at this URL")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	return cmd
}

func matchLocal(ctx context.Context, q domain.Query, fresh bool) (*domain.MatchResult, []string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg)

	db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		defer db.Close()
	}

	rc, err := openCache(cfg, db)
	if err != nil {
		return nil, nil, err
	}

	m, err := buildMatcher(cfg, log, rc)
	if err != nil {
		return nil, nil, err
	}

	if fresh {
		ctx = engine.WithFreshResults(ctx)
	}
	r, err := m.MatchProduct(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("matching %q: %w", q.Name, err)
	}
	return r, m.Sources(), nil
}

func matchRemote(ctx context.Context, server string, q domain.Query, fresh bool) (*domain.MatchResult, []string, error) {
	c := apiclient.New(server)
	r, err := c.Match(ctx, q, fresh)
	if err != nil {
		return nil, nil, err
	}
	retailers, err := c.Retailers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return r, retailers, nil
}
