package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoprep/internal/dataerr"
)

func TestConvertCmd_Flags(t *testing.T) {
	assert.NotNil(t, convertCmd.Flags().Lookup("in"))
	assert.NotNil(t, convertCmd.Flags().Lookup("out"))
}

func TestConvertCmd_RequiresPaths(t *testing.T) {
	cfg = testConfig(t.TempDir())

	_, err := runCommand(t, convertCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--in and --out are required")
}

func TestConvertCmd_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg = testConfig(dir)

	_, err := runCommand(t, convertCmd, map[string]string{
		"in":  dir + "/tl_2024_us_county.zip",
		"out": dir + "/county.geojson",
	})
	require.Error(t, err)
	assert.Equal(t, dataerr.InputNotFound, dataerr.KindOf(err))
}
