package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/cli"
)

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"check", "--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"check", "--log-format", "xml"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_CheckReportsEveryProblem(t *testing.T) {
	t.Parallel()

	// A syntax error in the curriculum and an untitled manifest.
	root := writeContent(t, map[string]string{
		"activities/probability/untitled.hcl": "activity {\n}\n",
		"curriculum/calculus.hcl": `
node "1" {
  label = "미분"
  // Missing closing brace here
`,
	})

	out := &bytes.Buffer{}
	err := run(out, []string{"check", "--content", root})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "content problem(s) found")
	assert.Contains(t, out.String(), "untitled.hcl")
	assert.Contains(t, out.String(), "calculus.hcl")
}

func TestRun_CheckOK(t *testing.T) {
	t.Parallel()

	root := writeContent(t, map[string]string{
		"activities/probability/monty_hall_p5.hcl": "activity {\n  title = \"몬티 홀\"\n}\n",
		"curriculum/probability.hcl":               "node \"1\" {\n  label = \"몬티 홀\"\n  activity {\n    slug = \"monty_hall_p5\"\n  }\n}\n",
		"mathlab.yaml":                             "version: 1\n",
	})

	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"check", "--content", root, "--log-level", "error"}))
	assert.Contains(t, out.String(), "ok: 1 activities, 1 curriculum subjects")
}

func TestRun_BadSiteFile(t *testing.T) {
	t.Parallel()

	root := writeContent(t, map[string]string{"mathlab.yaml": "version: 9\n"})
	err := run(&bytes.Buffer{}, []string{"check", "--content", root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported site file version: 9")
}

func TestRun_List(t *testing.T) {
	t.Parallel()

	root := writeContent(t, map[string]string{
		"activities/probability/_order.yaml":       "- monty_hall_p5\n",
		"activities/probability/galton_board.hcl":  "activity {\n  title = \"갈톤 보드\"\n}\n",
		"activities/probability/monty_hall_p5.hcl": "activity {\n  title = \"몬티 홀\"\n}\n",
		"activities/probability/secret.hcl":        "activity {\n  title = \"비밀\"\n  hidden = true\n}\n",
	})

	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"list", "probability", "--content", root, "--log-level", "error"}))
	assert.Contains(t, out.String(), "probability:\n  monty_hall_p5\t몬티 홀\n  galton_board\t갈톤 보드\n")
	assert.NotContains(t, out.String(), "secret")

	out.Reset()
	require.NoError(t, run(out, []string{"list", "--all", "--content", root, "--log-level", "error"}))
	assert.Contains(t, out.String(), "secret\t비밀")

	err := run(&bytes.Buffer{}, []string{"list", "physics", "--content", root, "--log-level", "error"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
}

func TestRun_Normalize(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"normalize", "youtube", "https://youtu.be/dQw4w9WgXcQ?t=42"}))
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?start=42\n", out.String())

	out.Reset()
	require.NoError(t, run(out, []string{"normalize", "sheet", "https://docs.google.com/spreadsheets/d/abc123/edit#gid=7"}))
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=7\n", out.String())

	err := run(&bytes.Buffer{}, []string{"normalize", "youtube", "https://example.com/video"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}
