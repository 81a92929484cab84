package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "netsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGraphCmd_PrintsNodesAndLinks(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--config", path, "graph"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "node A")
	assert.Contains(t, out.String(), "link A:1->B:1")
}

func TestPathsCmd_ReportsLowestDelayPath(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--config", path, "paths", "--src", "A", "--dst", "B", "--mode", "lowest"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "path 0:")
}

func TestFlowCmd_ReportsFeasibility(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--config", path, "flow", "--mode", "feasible"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "feasible: true")
}
