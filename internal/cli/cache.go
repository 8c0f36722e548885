package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"imagewall/loader"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fetched image cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) openCache(cmd *cobra.Command) (*loader.Cache, error) {
	cfg, err := c.settings(cmd)
	if err != nil {
		return nil, err
	}
	cache, err := loader.NewCache(cfg.Loader.CacheDir, cfg.Loader.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return cache, nil
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Cleared image cache")
			printDetail(out, "Directory: %s", cache.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return nil
		},
	}
}
