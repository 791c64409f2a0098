package merge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sells-group/geoprep/internal/dataerr"
	"github.com/sells-group/geoprep/internal/features"
	"github.com/sells-group/geoprep/internal/tabular"
)

const pumaDoc = `{"type":"FeatureCollection","features":[` +
	`{"type":"Feature","properties":{"GEOID10":"2300100","NAME10":"Aroostook"},"geometry":null},` +
	`{"type":"Feature","properties":{"GEOID10":"2300200","NAME10":"Penobscot"},"geometry":null},` +
	`{"type":"Feature","properties":{"NAME10":"No key"},"geometry":null},` +
	`{"type":"Feature","properties":{"GEOID10":"2399999","NAME10":"Unknown"},"geometry":null}]}`

const estimatesCSV = "geoid,alzheimer_prob,label\n" +
	"2300100,9.75,high\n" +
	"2300200,n/a,low\n" +
	"2300100,1.00,dup\n"

func fixtures(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	geo := filepath.Join(dir, "puma_newengland.geojson")
	csv := filepath.Join(dir, "estimates.csv")
	require.NoError(t, os.WriteFile(geo, []byte(pumaDoc), 0o644))
	require.NoError(t, os.WriteFile(csv, []byte(estimatesCSV), 0o644))
	return geo, csv, filepath.Join(dir, "merged.geojson")
}

func TestRun(t *testing.T) {
	geo, csv, out := fixtures(t)

	res, err := Run(context.Background(), Options{
		CollectionPath: geo,
		TablePath:      csv,
		OutputPath:     out,
		ValueColumns:   []string{"alzheimer_prob", "label"},
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Features: 4, Matched: 2, Unmatched: 2}, *res)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	// First matching row wins; numeric literals stay numbers.
	prob := gjson.GetBytes(data, "features.0.properties.alzheimer_prob")
	assert.Equal(t, gjson.Number, prob.Type)
	assert.Equal(t, "9.75", prob.Raw)
	assert.Equal(t, "high", gjson.GetBytes(data, "features.0.properties.label").Str)

	// Non-numeric values become strings.
	prob = gjson.GetBytes(data, "features.1.properties.alzheimer_prob")
	assert.Equal(t, gjson.String, prob.Type)
	assert.Equal(t, "n/a", prob.Str)

	assert.False(t, gjson.GetBytes(data, "features.2.properties.alzheimer_prob").Exists())
	assert.False(t, gjson.GetBytes(data, "features.3.properties.alzheimer_prob").Exists())
	assert.Equal(t, "Aroostook", gjson.GetBytes(data, "features.0.properties.NAME10").Str)
}

func TestRun_Defaults(t *testing.T) {
	geo, csv, out := fixtures(t)

	res, err := Run(context.Background(), Options{CollectionPath: geo, TablePath: csv, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)

	c, err := features.Load(out)
	require.NoError(t, err)
	_, ok := c.Features[0].Property("label")
	assert.False(t, ok)
}

func TestRun_MissingColumns(t *testing.T) {
	geo, csv, out := fixtures(t)

	_, err := Run(context.Background(), Options{CollectionPath: geo, TablePath: csv, OutputPath: out, KeyColumn: "GEOID"})
	require.Error(t, err)
	assert.Equal(t, dataerr.SchemaViolation, dataerr.KindOf(err))

	_, err = Run(context.Background(), Options{CollectionPath: geo, TablePath: csv, OutputPath: out, ValueColumns: []string{"rate"}})
	require.Error(t, err)
	assert.Equal(t, dataerr.SchemaViolation, dataerr.KindOf(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_RequiresPaths(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paths are required")
}

func TestApply_NumericJoinKey(t *testing.T) {
	c, err := features.Parse("districts.geojson", []byte(`{"features":[{"properties":{"District":2301}}]}`))
	require.NoError(t, err)
	tbl := tabular.New("estimates.csv", []string{"GEOID", "rate"}, [][]string{{"2301", "8.5"}})

	res, err := Apply(context.Background(), c, tbl, Options{KeyColumn: "GEOID", JoinProperty: "District", ValueColumns: []string{"rate"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, `{"properties":{"District":2301,"rate":8.5}}`, string(c.Features[0].Raw()))
}

func TestRun_RefusesToOverwriteInputs(t *testing.T) {
	geo, csv, _ := fixtures(t)

	_, err := Run(context.Background(), Options{CollectionPath: geo, TablePath: csv, OutputPath: geo})
	require.Error(t, err)
	assert.Equal(t, dataerr.WriteFailure, dataerr.KindOf(err))

	_, err = Run(context.Background(), Options{CollectionPath: geo, TablePath: csv, OutputPath: csv})
	require.Error(t, err)
	assert.Equal(t, dataerr.WriteFailure, dataerr.KindOf(err))

	orig, err := os.ReadFile(geo)
	require.NoError(t, err)
	assert.Equal(t, pumaDoc, string(orig))
}
