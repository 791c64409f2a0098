package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sells-group/geoprep/internal/dataerr"
)

const countyDoc = `{"type":"FeatureCollection","features":[` +
	`{"type":"Feature","properties":{"COUNTYFP":"001","NAME":"Androscoggin"},"geometry":null},` +
	`{"type":"Feature","properties":{"COUNTYFP":"003","NAME":"Aroostook"},"geometry":null},` +
	`{"type":"Feature","properties":{"COUNTYFP":"000","NAME":"Placeholder"},"geometry":null}]}`

func TestNormalizeCmd_Flags(t *testing.T) {
	for _, name := range []string{"in", "out", "property", "mode", "width", "verify"} {
		assert.NotNil(t, normalizeCmd.Flags().Lookup(name), "normalize should have --%s flag", name)
	}
	assert.Equal(t, "true", normalizeCmd.Flags().Lookup("verify").DefValue)
}

func TestNormalizeCmd_Strip(t *testing.T) {
	dir := t.TempDir()
	cfg = testConfig(dir)
	writeFixture(t, cfg.Normalize.InputPath, countyDoc)

	out, err := runCommand(t, normalizeCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "3 features, 3 COUNTYFP values changed")

	data, err := os.ReadFile(cfg.Normalize.OutputPath)
	require.NoError(t, err)
	vals := gjson.GetBytes(data, "features.#.properties.COUNTYFP").Array()
	require.Len(t, vals, 3)
	assert.Equal(t, "1", vals[0].Str)
	assert.Equal(t, "3", vals[1].Str)
	assert.Equal(t, "", vals[2].Str)
}

func TestNormalizeCmd_PadWithFlags(t *testing.T) {
	dir := t.TempDir()
	cfg = testConfig(dir)
	in := dir + "/tracts.geojson"
	out := dir + "/tracts_padded.geojson"
	writeFixture(t, in, `{"features":[{"properties":{"TRACTCE":"100"}}]}`)

	_, err := runCommand(t, normalizeCmd, map[string]string{
		"in":       in,
		"out":      out,
		"property": "TRACTCE",
		"mode":     "pad",
		"width":    "6",
		"verify":   "false",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "000100", gjson.GetBytes(data, "features.0.properties.TRACTCE").Str)
}

func TestNormalizeCmd_BadMode(t *testing.T) {
	cfg = testConfig(t.TempDir())

	_, err := runCommand(t, normalizeCmd, map[string]string{"mode": "upper"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalize.mode")
}

func TestNormalizeCmd_MissingInput(t *testing.T) {
	cfg = testConfig(t.TempDir())

	_, err := runCommand(t, normalizeCmd, nil)
	require.Error(t, err)
	assert.Equal(t, dataerr.InputNotFound, dataerr.KindOf(err))
}
