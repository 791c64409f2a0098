// Package shapefile converts Census TIGER/Line shapefiles into GeoJSON
// feature collections.
package shapefile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/dataerr"
	"github.com/sells-group/geoprep/internal/features"
)

// Options configures Convert.
type Options struct {
	InputPath  string // .shp or .zip
	OutputPath string
	TempDir    string // extraction root for .zip inputs
}

// Result summarizes a conversion.
type Result struct {
	Features       int `json:"features"`
	NullGeometries int `json:"null_geometries"`
}

// ReadFeatures reads every record of a shapefile as a GeoJSON feature. DBF
// attributes become properties (blank values become null). Shapes that cannot
// be converted yield a nil geometry; their count is returned alongside.
func ReadFeatures(shpPath string) ([]*geojson.Feature, int, error) {
	if _, err := os.Stat(shpPath); err != nil {
		return nil, 0, dataerr.New(dataerr.InputNotFound, shpPath, eris.Wrap(err, "shapefile: stat"))
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, 0, dataerr.New(dataerr.MalformedInput, shpPath, eris.Wrapf(err, "shapefile: open %s", shpPath))
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	out := []*geojson.Feature{}
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		props := make(map[string]any, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				props[name] = nil
			} else {
				props[name] = val
			}
		}

		g := ToGeom(shape)
		if g == nil {
			skipped++
		}
		out = append(out, &geojson.Feature{Geometry: g, Properties: props})
	}

	if skipped > 0 {
		zap.L().Debug("shapefile: records without usable geometry",
			zap.String("path", shpPath),
			zap.Int("skipped", skipped),
		)
	}

	return out, skipped, nil
}

// Convert reads a shapefile (or a ZIP archive holding one) and writes it as
// an indented GeoJSON feature collection.
func Convert(ctx context.Context, opts Options) (*Result, error) {
	if opts.InputPath == "" || opts.OutputPath == "" {
		return nil, eris.New("shapefile: input and output paths are required")
	}
	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "shapefile: context cancelled")
	}
	if err := features.DistinctOutput(opts.InputPath, opts.OutputPath); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "shapefile"))

	shpPath := opts.InputPath
	if strings.EqualFold(filepath.Ext(opts.InputPath), ".zip") {
		if _, err := os.Stat(opts.InputPath); err != nil {
			return nil, dataerr.New(dataerr.InputNotFound, opts.InputPath, eris.Wrap(err, "shapefile: stat"))
		}
		if opts.TempDir != "" {
			if err := os.MkdirAll(opts.TempDir, 0o755); err != nil {
				return nil, eris.Wrap(err, "shapefile: create temp dir")
			}
		}
		dir, err := os.MkdirTemp(opts.TempDir, "convert-*")
		if err != nil {
			return nil, eris.Wrap(err, "shapefile: create extract dir")
		}
		defer func() { _ = os.RemoveAll(dir) }()

		shpPath, err = extractArchive(opts.InputPath, dir)
		if err != nil {
			return nil, dataerr.New(dataerr.MalformedInput, opts.InputPath, err)
		}
		log.Debug("extracted shapefile archive", zap.String("archive", opts.InputPath), zap.String("shp", shpPath))
	}

	feats, skipped, err := ReadFeatures(shpPath)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(&geojson.FeatureCollection{Features: feats})
	if err != nil {
		return nil, dataerr.New(dataerr.WriteFailure, opts.OutputPath, eris.Wrap(err, "shapefile: encode geojson"))
	}
	if err := os.WriteFile(opts.OutputPath, features.Pretty(data), 0o644); err != nil {
		return nil, dataerr.New(dataerr.WriteFailure, opts.OutputPath, eris.Wrap(err, "shapefile: write"))
	}
	if err := features.VerifyGeometry(opts.OutputPath, len(feats)); err != nil {
		return nil, err
	}

	log.Info("converted shapefile",
		zap.String("input", opts.InputPath),
		zap.String("output", opts.OutputPath),
		zap.Int("features", len(feats)),
		zap.Int("null_geometries", skipped),
	)
	return &Result{Features: len(feats), NullGeometries: skipped}, nil
}
