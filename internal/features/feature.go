package features

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Feature is one element of a collection's features array, held as raw JSON.
type Feature struct {
	Index int

	raw []byte
}

// Raw returns the feature's current JSON.
func (f *Feature) Raw() []byte {
	return f.raw
}

// Property looks up properties[key].
func (f *Feature) Property(key string) (gjson.Result, bool) {
	v := gjson.GetBytes(f.raw, propertyPath(key))
	return v, v.Exists()
}

// Geometry returns the feature's geometry member.
func (f *Feature) Geometry() gjson.Result {
	return gjson.GetBytes(f.raw, "geometry")
}

// SetProperty sets properties[key] to value, leaving the rest of the feature intact.
func (f *Feature) SetProperty(key string, value any) error {
	raw, err := sjson.SetBytes(f.raw, propertyPath(key), value)
	if err != nil {
		return eris.Wrapf(err, "features: set property %q on feature %d", key, f.Index)
	}
	f.raw = raw
	return nil
}

// SetPropertyRaw sets properties[key] to an already encoded JSON value.
func (f *Feature) SetPropertyRaw(key string, value []byte) error {
	raw, err := sjson.SetRawBytes(f.raw, propertyPath(key), value)
	if err != nil {
		return eris.Wrapf(err, "features: set property %q on feature %d", key, f.Index)
	}
	f.raw = raw
	return nil
}

// Token renders a property value as a comparable string: strings unquoted,
// null as "null", everything else as its JSON literal.
func Token(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return "null"
	default:
		return v.Raw
	}
}

// IsNumberLiteral reports whether s is a valid JSON number.
func IsNumberLiteral(s string) bool {
	if s == "" || strings.TrimSpace(s) != s || !gjson.Valid(s) {
		return false
	}
	return gjson.Parse(s).Type == gjson.Number
}

func propertyPath(key string) string {
	return "properties." + gjson.Escape(key)
}
