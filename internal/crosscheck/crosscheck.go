// Package crosscheck compares the identifiers of a tabular dataset with the
// district tokens of a GeoJSON feature collection.
package crosscheck

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geoprep/internal/features"
	"github.com/sells-group/geoprep/internal/tabular"
)

// Defaults for Options.
const (
	DefaultIDColumn         = "GEOID"
	DefaultDistrictProperty = "District"
)

// Options configures Check.
type Options struct {
	TablePath        string
	CollectionPath   string
	IDColumn         string
	DistrictProperty string
	Table            tabular.Options
}

// Report holds both identifier collections and their differences.
type Report struct {
	GeoIDs              []string `json:"geoids" yaml:"geoids"`
	Districts           []string `json:"districts" yaml:"districts"`
	MissingInCollection []string `json:"missing_in_collection" yaml:"missing_in_collection"`
	MissingInTable      []string `json:"missing_in_table" yaml:"missing_in_table"`
}

// Check loads both inputs and builds the report. GeoIDs are the distinct
// identifier values in first-seen order; Districts keep feature order and
// duplicates.
func Check(ctx context.Context, opts Options) (*Report, error) {
	if opts.IDColumn == "" {
		opts.IDColumn = DefaultIDColumn
	}
	if opts.DistrictProperty == "" {
		opts.DistrictProperty = DefaultDistrictProperty
	}
	if opts.TablePath == "" || opts.CollectionPath == "" {
		return nil, eris.New("crosscheck: table and collection paths are required")
	}

	var (
		geoids    []string
		districts []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tbl, err := tabular.Load(gctx, opts.TablePath, opts.Table)
		if err != nil {
			return err
		}
		geoids, err = tbl.Unique(opts.IDColumn)
		return err
	})
	g.Go(func() error {
		c, err := features.Load(opts.CollectionPath)
		if err != nil {
			return err
		}
		districts, err = c.Values(opts.DistrictProperty)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := Build(geoids, districts)
	zap.L().Debug("crosscheck: compared identifiers",
		zap.Int("geoids", len(r.GeoIDs)),
		zap.Int("districts", len(r.Districts)),
		zap.Int("missing_in_collection", len(r.MissingInCollection)),
		zap.Int("missing_in_table", len(r.MissingInTable)),
	)
	return r, nil
}

// Build assembles a Report from already extracted identifier lists.
func Build(geoids, districts []string) *Report {
	r := &Report{
		GeoIDs:    geoids,
		Districts: districts,
	}
	r.MissingInCollection = difference(geoids, districts)
	r.MissingInTable = difference(districts, geoids)
	return r
}

// difference returns the distinct values of a absent from b, sorted.
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range a {
		if _, ok := in[v]; ok {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
