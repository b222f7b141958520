package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/grocery-price-tracker/internal/api/client"
	"github.com/donaldgifford/grocery-price-tracker/internal/config"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func cacheCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the match cache",
	}
	cmd.PersistentFlags().StringVar(&server, "server", "", "manage the cache of a running API server at this URL")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts and size",
		Example: `  grocery-price-tracker cache stats
  grocery-price-tracker cache stats --server http://localhost:8080 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var st domain.CacheStats
			if server != "" {
				var err error
				if st, err = apiclient.New(server).CacheStats(cmd.Context()); err != nil {
					return err
				}
			} else {
				rc, closeFn, err := localCache(cmd)
				if err != nil {
					return err
				}
				defer closeFn()
				if st, err = rc.Stats(cmd.Context()); err != nil {
					return fmt.Errorf("reading cache stats: %w", err)
				}
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return outputJSON(cmd.OutOrStdout(), st)
			}
			return printStats(cmd.OutOrStdout(), st)
		},
	}
	stats.Flags().Bool("json", false, "print stats as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached match result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				n   int
				err error
			)
			if server != "" {
				n, err = apiclient.New(server).ClearCache(cmd.Context())
			} else {
				rc, closeFn, lerr := localCache(cmd)
				if lerr != nil {
					return lerr
				}
				defer closeFn()
				n, err = rc.Clear(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries\n", n)
			return nil
		},
	}

	cmd.AddCommand(stats, clearCmd)
	return cmd
}

// localCache opens the configured cache backend. The returned func releases
// any database connection.
func localCache(cmd *cobra.Command) (resultCache, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache.Backend == config.CacheNone {
		return nil, nil, fmt.Errorf("cache backend is %q", config.CacheNone)
	}

	db, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if db != nil {
			db.Close()
		}
	}

	rc, err := openCache(cfg, db)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return rc, closeFn, nil
}
