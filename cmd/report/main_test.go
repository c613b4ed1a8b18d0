package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (rawPath, srcPath string) {
	t.Helper()
	dir := t.TempDir()
	rawPath = filepath.Join(dir, "response.json")
	srcPath = filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(rawPath, []byte(`{
		"encodedData": "0101", "crc": 123,
		"codes": {"a": "0", "b": "10"},
		"frequencies": {"a": 3, "b": 1},
		"probabilities": {"a": 0.75, "b": 0.25},
		"buildSteps": [{"step": 1, "heap": [["a", 3], ["b", 1]]}, {"step": 2, "heap": [["ab", 4]]}]
	}`), 0o644))
	require.NoError(t, os.WriteFile(srcPath, []byte("aaabaaabaa"), 0o644))
	return rawPath, srcPath
}

func TestRunText(t *testing.T) {
	rawPath, srcPath := writeFixtures(t)
	var out bytes.Buffer
	require.NoError(t, run(rawPath, srcPath, "", "encode", 1, "text", "critical", &out))

	s := out.String()
	assert.Contains(t, s, "File:              input.txt")
	assert.Contains(t, s, "Compressed size:   4 bytes")
	assert.Contains(t, s, "Compression ratio: 60.00%")
	assert.Contains(t, s, "Stage 1")
	assert.Contains(t, s, `"ab"`)
}

func TestRunJSON(t *testing.T) {
	rawPath, srcPath := writeFixtures(t)
	var out bytes.Buffer
	require.NoError(t, run(rawPath, srcPath, "", "encode", 10, "json", "critical", &out))

	var got struct {
		Aggregates struct {
			BitRate float64 `json:"bitRate"`
		} `json:"aggregates"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.InDelta(t, 12.5, got.Aggregates.BitRate, 1e-9)
}

func TestRunErrors(t *testing.T) {
	rawPath, srcPath := writeFixtures(t)
	var out bytes.Buffer
	assert.Error(t, run(rawPath, "", "", "encode", 1, "text", "critical", &out))
	assert.Error(t, run("", srcPath, "", "encode", 1, "text", "critical", &out))
	assert.Error(t, run(rawPath, srcPath, "", "encode", 1, "yaml", "critical", &out))
	assert.Error(t, run("", srcPath, "http://127.0.0.1:1", "squash", 1, "text", "critical", &out))
}
