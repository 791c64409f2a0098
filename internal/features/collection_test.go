package features

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sells-group/geoprep/internal/dataerr"
)

const countyDoc = `{"type":"FeatureCollection","name":"county_maine","features":[` +
	`{"type":"Feature","properties":{"STATEFP":"23","COUNTYFP":"001","NAME":"Androscoggin","ALAND":1213,"ratio":1.50},"geometry":{"type":"Point","coordinates":[-70.2,44.1]}},` +
	`{"type":"Feature","properties":{"STATEFP":"23","COUNTYFP":"003","NAME":"Aroostook","ALAND":17279,"ratio":2.0},"geometry":null}` +
	`]}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeDoc(t, countyDoc))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Features[1].Index)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Equal(t, dataerr.InputNotFound, dataerr.KindOf(err))

	_, err = Load(writeDoc(t, `{"type":"FeatureCollection","features":[`))
	assert.Equal(t, dataerr.MalformedInput, dataerr.KindOf(err))

	_, err = Load(writeDoc(t, `{"type":"FeatureCollection"}`))
	assert.Equal(t, dataerr.MalformedInput, dataerr.KindOf(err))

	_, err = Load(writeDoc(t, `{"type":"FeatureCollection","features":{}}`))
	assert.Equal(t, dataerr.MalformedInput, dataerr.KindOf(err))

	_, err = Load(writeDoc(t, `{"type":"FeatureCollection","features":[1]}`))
	assert.Equal(t, dataerr.MalformedInput, dataerr.KindOf(err))
}

func TestValues(t *testing.T) {
	doc := `{"features":[` +
		`{"properties":{"District":"A"}},` +
		`{"properties":{"District":"B"}},` +
		`{"properties":{"District":"A"}},` +
		`{"properties":{"District":4}},` +
		`{"properties":{"District":null}}]}`
	c, err := Parse("districts.geojson", []byte(doc))
	require.NoError(t, err)

	vals, err := c.Values("District")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A", "4", "null"}, vals)
}

func TestValues_MissingProperty(t *testing.T) {
	doc := `{"features":[{"properties":{"District":"A"}},{"properties":{"NAME":"x"}}]}`
	c, err := Parse("districts.geojson", []byte(doc))
	require.NoError(t, err)

	_, err = c.Values("District")
	require.Error(t, err)
	assert.Equal(t, dataerr.SchemaViolation, dataerr.KindOf(err))
	assert.Contains(t, err.Error(), "feature 1")
}

func TestStringValue(t *testing.T) {
	doc := `{"features":[{"properties":{"COUNTYFP":"007"}},{"properties":{"COUNTYFP":7}}]}`
	c, err := Parse("county.geojson", []byte(doc))
	require.NoError(t, err)

	v, err := c.StringValue(c.Features[0], "COUNTYFP")
	require.NoError(t, err)
	assert.Equal(t, "007", v)

	_, err = c.StringValue(c.Features[1], "COUNTYFP")
	require.Error(t, err)
	assert.Equal(t, dataerr.SchemaViolation, dataerr.KindOf(err))
}

func TestSetProperty_PreservesOtherBytes(t *testing.T) {
	c, err := Parse("county.geojson", []byte(countyDoc))
	require.NoError(t, err)

	require.NoError(t, c.Features[0].SetProperty("COUNTYFP", "1"))
	assert.Equal(t,
		`{"type":"Feature","properties":{"STATEFP":"23","COUNTYFP":"1","NAME":"Androscoggin","ALAND":1213,"ratio":1.50},"geometry":{"type":"Point","coordinates":[-70.2,44.1]}}`,
		string(c.Features[0].Raw()))

	out, err := c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "county_maine", gjson.GetBytes(out, "name").String())
	assert.Equal(t, "1", gjson.GetBytes(out, "features.0.properties.COUNTYFP").String())
	assert.Equal(t, "003", gjson.GetBytes(out, "features.1.properties.COUNTYFP").String())
	assert.Equal(t, "1.50", gjson.GetBytes(out, "features.0.properties.ratio").Raw)
}

func TestSetPropertyRaw(t *testing.T) {
	c, err := Parse("puma.geojson", []byte(`{"features":[{"properties":{"GEOID10":"2300100"}}]}`))
	require.NoError(t, err)

	require.NoError(t, c.Features[0].SetPropertyRaw("alzheimer_prob", []byte("9.25")))
	assert.Equal(t, `{"properties":{"GEOID10":"2300100","alzheimer_prob":9.25}}`, string(c.Features[0].Raw()))
}

func TestEncode(t *testing.T) {
	c, err := Parse("x.geojson", []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"a":1},"geometry":null}]}`))
	require.NoError(t, err)

	out, err := c.Encode()
	require.NoError(t, err)

	want := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {
        "a": 1
      },
      "geometry": null
    }
  ]
}
`
	assert.Equal(t, want, string(out))
}

func TestSave(t *testing.T) {
	c, err := Parse("county.geojson", []byte(countyDoc))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.geojson")
	require.NoError(t, c.Save(out))

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), again.Len())
}

func TestSave_Unwritable(t *testing.T) {
	c, err := Parse("county.geojson", []byte(countyDoc))
	require.NoError(t, err)

	err = c.Save(filepath.Join(t.TempDir(), "no-such-dir", "out.geojson"))
	require.Error(t, err)
	assert.Equal(t, dataerr.WriteFailure, dataerr.KindOf(err))
}

func TestToken(t *testing.T) {
	tests := []struct {
		json string
		want string
	}{
		{`"A"`, "A"},
		{`2301`, "2301"},
		{`1.50`, "1.50"},
		{`null`, "null"},
		{`true`, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Token(gjson.Parse(tt.json)), "json: %s", tt.json)
	}
}

func TestIsNumberLiteral(t *testing.T) {
	assert.True(t, IsNumberLiteral("9.25"))
	assert.True(t, IsNumberLiteral("-3"))
	assert.True(t, IsNumberLiteral("1e5"))
	assert.False(t, IsNumberLiteral("007"))
	assert.False(t, IsNumberLiteral("NaN"))
	assert.False(t, IsNumberLiteral(""))
	assert.False(t, IsNumberLiteral("abc"))
	assert.False(t, IsNumberLiteral(" 1"))
	assert.False(t, IsNumberLiteral("1\n"))
}
