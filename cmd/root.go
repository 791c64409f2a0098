package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geoprep",
	Short: "Prepare boundary GeoJSON and estimate tables for mapping",
	Long:  "Cross-checks GEOIDs against district boundaries, normalizes county FIPS codes, joins estimates into features, and converts TIGER/Line shapefiles to GeoJSON.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
