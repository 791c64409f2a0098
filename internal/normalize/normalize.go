// Package normalize rewrites a zero-padded code property (COUNTYFP by default)
// on every feature of a GeoJSON feature collection.
package normalize

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/features"
)

// Mode selects how a code value is rewritten.
type Mode string

const (
	// ModeStrip removes leading zeros ("003" -> "3").
	ModeStrip Mode = "strip"
	// ModePad left-pads with zeros to Options.Width ("3" -> "003").
	ModePad Mode = "pad"
)

// DefaultProperty is the property rewritten when Options.Property is empty.
const DefaultProperty = "COUNTYFP"

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrip, ModePad:
		return Mode(s), nil
	case "":
		return ModeStrip, nil
	default:
		return "", eris.Errorf("normalize: unknown mode %q (want strip or pad)", s)
	}
}

// Options configures Run.
type Options struct {
	InputPath  string
	OutputPath string
	Property   string
	Mode       Mode
	Width      int
	Verify     bool
}

// Result summarizes a normalization run.
type Result struct {
	Features        int `json:"features"`
	Changed         int `json:"changed"`
	EmptyAfterStrip int `json:"empty_after_strip"`
}

// Run loads the input collection, rewrites the property on every feature, and
// writes the indented document to the output path. Every feature is checked
// before anything is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Property == "" {
		opts.Property = DefaultProperty
	}
	if opts.Mode == "" {
		opts.Mode = ModeStrip
	}
	if opts.Mode == ModePad && opts.Width <= 0 {
		opts.Width = 3
	}
	if opts.InputPath == "" || opts.OutputPath == "" {
		return nil, eris.New("normalize: input and output paths are required")
	}

	if err := features.DistinctOutput(opts.InputPath, opts.OutputPath); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "normalize"), zap.String("property", opts.Property))

	c, err := features.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}

	res, err := Apply(ctx, c, opts)
	if err != nil {
		return nil, err
	}

	if err := c.Save(opts.OutputPath); err != nil {
		return nil, err
	}

	if opts.Verify && res.Changed > 0 {
		if err := features.Verify(opts.OutputPath, res.Features); err != nil {
			return nil, err
		}
	}

	log.Info("normalized feature collection",
		zap.String("input", opts.InputPath),
		zap.String("output", opts.OutputPath),
		zap.Int("features", res.Features),
		zap.Int("changed", res.Changed),
	)
	return res, nil
}

// Apply rewrites the property in memory. It fails without modifying c if any
// feature lacks the property or holds a non-string value.
func Apply(ctx context.Context, c *features.Collection, opts Options) (*Result, error) {
	if opts.Property == "" {
		opts.Property = DefaultProperty
	}

	values := make([]string, len(c.Features))
	for i, f := range c.Features {
		v, err := c.StringValue(f, opts.Property)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	res := &Result{Features: c.Len()}
	for i, f := range c.Features {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "normalize: context cancelled")
		}

		next := rewrite(values[i], opts)
		if next == values[i] {
			continue
		}
		if next == "" && opts.Mode != ModePad {
			// All-zero codes strip to "". Kept as-is so output matches earlier runs.
			res.EmptyAfterStrip++
			zap.L().Warn("normalize: code stripped to empty string",
				zap.String("path", c.Path),
				zap.Int("feature", f.Index),
				zap.String("value", values[i]),
			)
		}
		if err := f.SetProperty(opts.Property, next); err != nil {
			return nil, err
		}
		res.Changed++
	}

	return res, nil
}

func rewrite(v string, opts Options) string {
	if opts.Mode == ModePad {
		return PadFIPS(v, opts.Width)
	}
	return StripLeadingZeros(v)
}
