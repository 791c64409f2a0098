package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/geoprep/internal/shapefile"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a TIGER/Line shapefile to GeoJSON",
	Long: `Reads a shapefile (or the .zip archive the Census Bureau distributes) and
writes every record as a GeoJSON feature. DBF attributes become string
properties; polygons become MultiPolygons.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := commandLogger("convert")

		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		if in == "" || out == "" {
			return fmt.Errorf("convert: --in and --out are required")
		}
		if err := cfg.Validate("convert"); err != nil {
			return err
		}

		res, err := shapefile.Convert(ctx, shapefile.Options{
			InputPath:  in,
			OutputPath: out,
			TempDir:    cfg.Convert.TempDir,
		})
		if err != nil {
			return logFailure(log, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d features (%d without geometry)\n",
			out, res.Features, res.NullGeometries)
		return nil
	},
}

func init() {
	convertCmd.Flags().String("in", "", "shapefile (.shp) or zipped shapefile (.zip)")
	convertCmd.Flags().String("out", "", "output GeoJSON file")
	rootCmd.AddCommand(convertCmd)
}
