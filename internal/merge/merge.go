// Package merge joins tabular values into GeoJSON feature properties by key.
package merge

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/features"
	"github.com/sells-group/geoprep/internal/tabular"
)

// Defaults for Options.
const (
	DefaultKeyColumn    = "geoid"
	DefaultJoinProperty = "GEOID10"
	DefaultValueColumn  = "alzheimer_prob"
)

// Options configures Run.
type Options struct {
	CollectionPath string
	TablePath      string
	OutputPath     string
	KeyColumn      string
	JoinProperty   string
	ValueColumns   []string
	Table          tabular.Options
}

// Result summarizes a join.
type Result struct {
	Features  int `json:"features"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

func (o *Options) defaults() {
	if o.KeyColumn == "" {
		o.KeyColumn = DefaultKeyColumn
	}
	if o.JoinProperty == "" {
		o.JoinProperty = DefaultJoinProperty
	}
	if len(o.ValueColumns) == 0 {
		o.ValueColumns = []string{DefaultValueColumn}
	}
}

// Run joins the table into the collection and writes the result to OutputPath.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.defaults()
	if opts.CollectionPath == "" || opts.TablePath == "" || opts.OutputPath == "" {
		return nil, eris.New("merge: collection, table, and output paths are required")
	}
	if err := features.DistinctOutput(opts.CollectionPath, opts.OutputPath); err != nil {
		return nil, err
	}
	if err := features.DistinctOutput(opts.TablePath, opts.OutputPath); err != nil {
		return nil, err
	}

	tbl, err := tabular.Load(ctx, opts.TablePath, opts.Table)
	if err != nil {
		return nil, err
	}

	c, err := features.Load(opts.CollectionPath)
	if err != nil {
		return nil, err
	}

	res, err := Apply(ctx, c, tbl, opts)
	if err != nil {
		return nil, err
	}

	if err := c.Save(opts.OutputPath); err != nil {
		return nil, err
	}

	zap.L().Info("merged table into feature collection",
		zap.String("collection", opts.CollectionPath),
		zap.String("table", opts.TablePath),
		zap.String("output", opts.OutputPath),
		zap.Int("features", res.Features),
		zap.Int("matched", res.Matched),
		zap.Int("unmatched", res.Unmatched),
	)
	return res, nil
}

// Apply copies the value columns of the first table row whose key matches
// each feature's join property. Features without a match, or without the
// join property, are left untouched.
func Apply(ctx context.Context, c *features.Collection, tbl *tabular.Table, opts Options) (*Result, error) {
	opts.defaults()

	index, err := tbl.Index(opts.KeyColumn)
	if err != nil {
		return nil, err
	}

	cols := make([]int, len(opts.ValueColumns))
	for i, name := range opts.ValueColumns {
		idx, err := tbl.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		cols[i] = idx
	}

	res := &Result{Features: c.Len()}
	for _, f := range c.Features {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "merge: context cancelled")
		}

		key, ok := f.Property(opts.JoinProperty)
		if !ok {
			res.Unmatched++
			continue
		}
		row, ok := index[features.Token(key)]
		if !ok {
			res.Unmatched++
			continue
		}

		for i, name := range opts.ValueColumns {
			if err := setValue(f, name, tabular.Cell(row, cols[i])); err != nil {
				return nil, err
			}
		}
		res.Matched++
	}

	return res, nil
}

// setValue writes JSON number literals as numbers and everything else as strings.
func setValue(f *features.Feature, name, value string) error {
	if features.IsNumberLiteral(value) {
		return f.SetPropertyRaw(name, []byte(value))
	}
	return f.SetProperty(name, value)
}
