package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func executeImporter(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, progress bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&progress)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), progress.String(), err
}

func TestImporter_DryRunSummary(t *testing.T) {
	out, progress, err := executeImporter(t, "--file", "../../internal/loader/testdata/facilities.csv", "--dry-run", "--summary")
	require.NoError(t, err)

	assert.Contains(t, progress, "Starting import from file: ../../internal/loader/testdata/facilities.csv\n")
	assert.Contains(t, progress, "Parsed 8 records\n")
	assert.NotContains(t, progress, "Successfully imported")
	assert.NotContains(t, out, "Starting import")

	var summary importSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	assert.Equal(t, importSummary{
		File:    "../../internal/loader/testdata/facilities.csv",
		Records: 8,
		DryRun:  true,
		ByStatus: map[string]int{
			"APPROVED":  5,
			"EXPIRED":   2,
			"REQUESTED": 1,
		},
	}, summary)
}

func TestImporter_NoSummaryWritesNothingToOut(t *testing.T) {
	out, progress, err := executeImporter(t, "--file", "../../internal/loader/testdata/facilities.csv", "--dry-run")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, progress, "Parsed 8 records\n")
}

func TestImporter_RequiresFile(t *testing.T) {
	_, _, err := executeImporter(t, "--dry-run")
	assert.ErrorContains(t, err, `required flag(s) "file" not set`)
}

func TestImporter_BadFile(t *testing.T) {
	_, _, err := executeImporter(t, "--file", "does-not-exist.csv", "--dry-run")
	assert.ErrorContains(t, err, "parsing dataset")
}
