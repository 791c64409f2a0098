package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/crosscheck"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare CSV GEOIDs with GeoJSON district values",
	Long: `Loads an estimates table and a district boundary GeoJSON file and prints the
distinct GEOID values of the table next to the District value of every feature,
for side-by-side comparison. Use --diff to also list the values present on only
one side.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := commandLogger("check")

		cfg.Check.TablePath = stringFlag(cmd, "table", cfg.Check.TablePath)
		cfg.Check.CollectionPath = stringFlag(cmd, "geojson", cfg.Check.CollectionPath)
		cfg.Check.IDColumn = stringFlag(cmd, "id-column", cfg.Check.IDColumn)
		cfg.Check.DistrictProperty = stringFlag(cmd, "property", cfg.Check.DistrictProperty)
		cfg.Check.Format = stringFlag(cmd, "format", cfg.Check.Format)
		diff, _ := cmd.Flags().GetBool("diff")

		if err := cfg.Validate("check"); err != nil {
			return err
		}
		format, err := crosscheck.ParseFormat(cfg.Check.Format)
		if err != nil {
			return err
		}

		log.Debug("checking identifiers",
			zap.String("table", cfg.Check.TablePath),
			zap.String("geojson", cfg.Check.CollectionPath),
			zap.String("id_column", cfg.Check.IDColumn),
			zap.String("property", cfg.Check.DistrictProperty),
		)

		report, err := crosscheck.Check(ctx, crosscheck.Options{
			TablePath:        cfg.Check.TablePath,
			CollectionPath:   cfg.Check.CollectionPath,
			IDColumn:         cfg.Check.IDColumn,
			DistrictProperty: cfg.Check.DistrictProperty,
		})
		if err != nil {
			return logFailure(log, err)
		}

		return report.Write(cmd.OutOrStdout(), format, diff)
	},
}

func init() {
	checkCmd.Flags().String("table", "", "CSV/XLSX file holding the identifier column (default: from config)")
	checkCmd.Flags().String("geojson", "", "district GeoJSON file (default: from config)")
	checkCmd.Flags().String("id-column", "", "identifier column in the table (default: GEOID)")
	checkCmd.Flags().String("property", "", "feature property holding the district token (default: District)")
	checkCmd.Flags().String("format", "", "report format: text, json, or yaml (default: text)")
	checkCmd.Flags().Bool("diff", false, "also print values missing from either side (text format)")
	rootCmd.AddCommand(checkCmd)
}
