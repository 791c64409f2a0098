package crosscheck

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Format selects the report rendering.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("crosscheck: unknown format %q (want text, json, or yaml)", s)
	}
}

// Write renders the report. The text form prints the two labelled
// identifier lines, plus the missing sets when diff is set; the structured
// forms always include everything.
func (r *Report) Write(w io.Writer, format Format, diff bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "crosscheck: encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return eris.Wrap(err, "crosscheck: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "crosscheck: close yaml encoder")
		}
		return nil
	default:
		lines := []string{
			fmt.Sprintf("CSV GEOID values: %v", r.GeoIDs),
			fmt.Sprintf("GeoJSON District values: %v", r.Districts),
		}
		if diff {
			lines = append(lines,
				fmt.Sprintf("GEOID values missing from GeoJSON: %v", r.MissingInCollection),
				fmt.Sprintf("District values missing from CSV: %v", r.MissingInTable),
			)
		}
		if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
			return eris.Wrap(err, "crosscheck: write report")
		}
		return nil
	}
}
