package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/geoprep/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Join table values into GeoJSON feature properties",
	Long: `Matches each feature's join property (GEOID10 by default) against the key
column of a table (geoid by default) and copies the value columns of the first
matching row into the feature's properties. Numeric values are written as JSON
numbers. Features without a match are left unchanged.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := commandLogger("merge")

		cfg.Merge.CollectionPath = stringFlag(cmd, "geojson", cfg.Merge.CollectionPath)
		cfg.Merge.TablePath = stringFlag(cmd, "table", cfg.Merge.TablePath)
		cfg.Merge.OutputPath = stringFlag(cmd, "out", cfg.Merge.OutputPath)
		cfg.Merge.KeyColumn = stringFlag(cmd, "key-column", cfg.Merge.KeyColumn)
		cfg.Merge.JoinProperty = stringFlag(cmd, "join-property", cfg.Merge.JoinProperty)
		if cols, _ := cmd.Flags().GetString("columns"); cols != "" {
			cfg.Merge.ValueColumns = splitAndTrim(cols)
		}

		if err := cfg.Validate("merge"); err != nil {
			return err
		}
		if cfg.Merge.TablePath == "" {
			return fmt.Errorf("merge: --table is required")
		}

		res, err := merge.Run(ctx, merge.Options{
			CollectionPath: cfg.Merge.CollectionPath,
			TablePath:      cfg.Merge.TablePath,
			OutputPath:     cfg.Merge.OutputPath,
			KeyColumn:      cfg.Merge.KeyColumn,
			JoinProperty:   cfg.Merge.JoinProperty,
			ValueColumns:   cfg.Merge.ValueColumns,
		})
		if err != nil {
			return logFailure(log, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d features, %d matched, %d unmatched\n",
			cfg.Merge.OutputPath, res.Features, res.Matched, res.Unmatched)
		return nil
	},
}

func init() {
	mergeCmd.Flags().String("geojson", "", "input GeoJSON file (default: from config)")
	mergeCmd.Flags().String("table", "", "CSV/XLSX file with the values to join")
	mergeCmd.Flags().String("out", "", "output GeoJSON file (default: from config)")
	mergeCmd.Flags().String("key-column", "", "table column holding the join key (default: geoid)")
	mergeCmd.Flags().String("join-property", "", "feature property holding the join key (default: GEOID10)")
	mergeCmd.Flags().String("columns", "", "comma-separated table columns to copy (default: alzheimer_prob)")
	rootCmd.AddCommand(mergeCmd)
}
