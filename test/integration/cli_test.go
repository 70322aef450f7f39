package integration

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIRunScenarioFile(t *testing.T) {
	cmd := cli.NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--settings", filepath.Join(t.TempDir(), "settings.toml"),
		"run", scenarioFile, "--format", "console",
	})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "CONSOLIDATED FISCAL PROJECTION")
	assert.Contains(t, out, "SCENARIO 3: Consumption tax 15% from the start")
	assert.Contains(t, out, "Projection window: 2026-2055 (30 years)")
	assert.Contains(t, out, "SUMMARY & RECOMMENDATIONS")
}

func TestCLIRunWritesReportFiles(t *testing.T) {
	dir := t.TempDir()
	cmd := cli.NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--settings", filepath.Join(dir, "settings.toml"),
		"run", scenarioFile, "--format", "html", "--output-dir", dir,
	})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "wrote "+filepath.Join(dir, "fiscal_projection_html_")))
}
