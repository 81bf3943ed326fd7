package cmd

import (
	"fmt"

	"github.com/penwyp/TubeWrapped/cache"
	"github.com/penwyp/TubeWrapped/config"
	"github.com/penwyp/TubeWrapped/logging"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local video metadata cache",
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evict expired and corrupt cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		metaCache, err := openCache()
		if err != nil {
			return err
		}
		defer metaCache.Close()

		evicted := metaCache.Sweep()
		fmt.Printf("Evicted %d stale cache entries\n", evicted)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached video metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		metaCache, err := openCache()
		if err != nil {
			return err
		}
		defer metaCache.Close()

		if err := metaCache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Metadata cache cleared")
		return nil
	},
}

func openCache() (*cache.MetadataCache, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.InitLogger(cfg.App.LogLevel, cfg.App.LogFile, debug)

	metaCache, err := cache.NewMetadataCache(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata cache: %w", err)
	}
	return metaCache, nil
}

func init() {
	cacheCmd.AddCommand(cacheSweepCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
