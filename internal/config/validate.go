package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings a command depends on. command is one of
// "check", "normalize", "merge", or "convert".
func (c *Config) Validate(command string) error {
	var errs []string

	switch command {
	case "check":
		if c.Check.IDColumn == "" {
			errs = append(errs, "check.id_column is required")
		}
		if c.Check.DistrictProperty == "" {
			errs = append(errs, "check.district_property is required")
		}
		switch strings.ToLower(c.Check.Format) {
		case "", "text", "json", "yaml", "yml":
		default:
			errs = append(errs, "check.format must be text, json, or yaml")
		}
	case "normalize":
		if c.Normalize.Property == "" {
			errs = append(errs, "normalize.property is required")
		}
		switch c.Normalize.Mode {
		case "", "strip":
		case "pad":
			if c.Normalize.Width < 1 {
				errs = append(errs, "normalize.width must be at least 1 in pad mode")
			}
		default:
			errs = append(errs, "normalize.mode must be strip or pad")
		}
	case "merge":
		if c.Merge.KeyColumn == "" {
			errs = append(errs, "merge.key_column is required")
		}
		if c.Merge.JoinProperty == "" {
			errs = append(errs, "merge.join_property is required")
		}
		if len(c.Merge.ValueColumns) == 0 {
			errs = append(errs, "merge.value_columns is required")
		}
	case "convert":
	default:
		return eris.Errorf("config: unknown command %q", command)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
