// Package features reads and rewrites GeoJSON feature collections without
// disturbing the bytes it does not touch: key order, number literals, and
// geometry survive a load/save cycle unchanged.
package features

import (
	"bytes"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/sells-group/geoprep/internal/dataerr"
)

// Indent is the indentation used when encoding a collection.
const Indent = "  "

// Collection is a parsed feature collection document.
type Collection struct {
	Path     string
	Features []*Feature

	raw []byte
}

// Load reads and parses the feature collection at path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dataerr.New(dataerr.InputNotFound, path, eris.Wrap(err, "features: read"))
	}
	return Parse(path, data)
}

// Parse parses a feature collection document. path is only used in errors.
func Parse(path string, data []byte) (*Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, dataerr.New(dataerr.MalformedInput, path, eris.New("features: invalid JSON"))
	}

	list := gjson.GetBytes(data, "features")
	if !list.IsArray() {
		return nil, dataerr.New(dataerr.MalformedInput, path, eris.New("features: document has no features array"))
	}

	c := &Collection{Path: path, raw: data}
	var parseErr error
	list.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			parseErr = dataerr.New(dataerr.MalformedInput, path, eris.Errorf("features: element %d is not an object", len(c.Features)))
			return false
		}
		c.Features = append(c.Features, &Feature{Index: len(c.Features), raw: []byte(v.Raw)})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return c, nil
}

// Len returns the number of features.
func (c *Collection) Len() int {
	return len(c.Features)
}

// Values returns the token of key for every feature, in feature order.
// Every feature must carry the property.
func (c *Collection) Values(key string) ([]string, error) {
	out := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		v, ok := f.Property(key)
		if !ok {
			return nil, c.missing(f, key)
		}
		out = append(out, Token(v))
	}
	return out, nil
}

// StringValue returns the string value of key on f, failing with a
// SchemaViolation when the property is absent or not a string.
func (c *Collection) StringValue(f *Feature, key string) (string, error) {
	v, ok := f.Property(key)
	if !ok {
		return "", c.missing(f, key)
	}
	if v.Type != gjson.String {
		return "", dataerr.Schema(c.Path, key, eris.Errorf("features: feature %d property %q is %s, not a string", f.Index, key, v.Type))
	}
	return v.Str, nil
}

func (c *Collection) missing(f *Feature, key string) error {
	return dataerr.Schema(c.Path, key, eris.Errorf("features: feature %d has no property %q", f.Index, key))
}

// Bytes returns the compact document with the current feature contents.
func (c *Collection) Bytes() ([]byte, error) {
	var arr bytes.Buffer
	arr.WriteByte('[')
	for i, f := range c.Features {
		if i > 0 {
			arr.WriteByte(',')
		}
		arr.Write(f.raw)
	}
	arr.WriteByte(']')

	out, err := sjson.SetRawBytes(c.raw, "features", arr.Bytes())
	if err != nil {
		return nil, eris.Wrap(err, "features: rebuild document")
	}
	return out, nil
}

// Encode returns the document indented with Indent, one array element per line.
func (c *Collection) Encode() ([]byte, error) {
	data, err := c.Bytes()
	if err != nil {
		return nil, err
	}
	return Pretty(data), nil
}

// Save writes the encoded document to path, creating or truncating it.
func (c *Collection) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return dataerr.New(dataerr.WriteFailure, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return dataerr.New(dataerr.WriteFailure, path, eris.Wrap(err, "features: write"))
	}
	return nil
}

// Pretty indents a JSON document. Width 0 keeps every array element on its own line.
func Pretty(data []byte) []byte {
	return pretty.PrettyOptions(data, &pretty.Options{Indent: Indent, Width: 0})
}
