package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Strip leading zeros from a feature code property",
	Long: `Rewrites the COUNTYFP property (or --property) of every feature in a GeoJSON
file and writes the result, indented with two spaces, to a new file. The input
file is never modified. Codes made only of zeros become empty strings; these
are reported as warnings. Use --mode pad to zero-pad codes instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := commandLogger("normalize")

		cfg.Normalize.InputPath = stringFlag(cmd, "in", cfg.Normalize.InputPath)
		cfg.Normalize.OutputPath = stringFlag(cmd, "out", cfg.Normalize.OutputPath)
		cfg.Normalize.Property = stringFlag(cmd, "property", cfg.Normalize.Property)
		cfg.Normalize.Mode = stringFlag(cmd, "mode", cfg.Normalize.Mode)
		if width, _ := cmd.Flags().GetInt("width"); width != 0 {
			cfg.Normalize.Width = width
		}
		if cmd.Flags().Changed("verify") {
			cfg.Normalize.Verify, _ = cmd.Flags().GetBool("verify")
		}

		if err := cfg.Validate("normalize"); err != nil {
			return err
		}
		mode, err := normalize.ParseMode(cfg.Normalize.Mode)
		if err != nil {
			return err
		}

		res, err := normalize.Run(ctx, normalize.Options{
			InputPath:  cfg.Normalize.InputPath,
			OutputPath: cfg.Normalize.OutputPath,
			Property:   cfg.Normalize.Property,
			Mode:       mode,
			Width:      cfg.Normalize.Width,
			Verify:     cfg.Normalize.Verify,
		})
		if err != nil {
			return logFailure(log, err)
		}

		if res.EmptyAfterStrip > 0 {
			log.Warn("some codes were all zeros and are now empty strings",
				zap.Int("count", res.EmptyAfterStrip),
			)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d features, %d %s values changed\n",
			cfg.Normalize.OutputPath, res.Features, res.Changed, cfg.Normalize.Property)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().String("in", "", "input GeoJSON file (default: from config)")
	normalizeCmd.Flags().String("out", "", "output GeoJSON file (default: from config)")
	normalizeCmd.Flags().String("property", "", "feature property to rewrite (default: COUNTYFP)")
	normalizeCmd.Flags().String("mode", "", "strip or pad (default: strip)")
	normalizeCmd.Flags().Int("width", 0, "pad width in pad mode (default: from config or 3)")
	normalizeCmd.Flags().Bool("verify", true, "re-read the output and check the feature count")
	rootCmd.AddCommand(normalizeCmd)
}
