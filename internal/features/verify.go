package features

import (
	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geoprep/internal/dataerr"
)

// Geometries decodes every feature geometry. Features with a null or absent
// geometry yield a nil entry.
func (c *Collection) Geometries() ([]geom.T, error) {
	out := make([]geom.T, len(c.Features))
	for i, f := range c.Features {
		g := f.Geometry()
		if !g.Exists() || g.Type == gjson.Null {
			continue
		}
		var t geom.T
		if err := geojson.Unmarshal([]byte(g.Raw), &t); err != nil {
			return nil, dataerr.New(dataerr.MalformedInput, c.Path, eris.Wrapf(err, "features: decode geometry of feature %d", i))
		}
		out[i] = t
	}
	return out, nil
}

// Verify re-reads the collection at path and checks that it parses and holds
// want features. Geometry is not decoded; it passes through untouched.
func Verify(path string, want int) error {
	_, err := verifyCount(path, want)
	return err
}

// VerifyGeometry is Verify plus a typed decode of every geometry.
func VerifyGeometry(path string, want int) error {
	c, err := verifyCount(path, want)
	if err != nil {
		return err
	}
	_, err = c.Geometries()
	return err
}

func verifyCount(path string, want int) (*Collection, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if c.Len() != want {
		return nil, dataerr.New(dataerr.MalformedInput, path, eris.Errorf("features: expected %d features, found %d", want, c.Len()))
	}
	return c, nil
}
