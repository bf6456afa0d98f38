package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgoptim/svgopt"
)

const testSVG = `<?xml version="1.0"?>
<!-- generated -->
<svg xmlns="http://www.w3.org/2000/svg" width="120" height="80" viewBox="0 0 12 8">
  <title>Test</title>
  <rect width="6" height="8" fill="red"/>
</svg>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run parses `args` and runs the selected command
func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("svgoptim"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Run(&cli)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, svgopt.DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "svgoptim.yaml", `
pretty: true
jobs:
  removeComments: false
  removeDimensions: true
custom:
  extractDimensions: false
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	want := svgopt.DefaultConfig()
	want.Pretty = true
	want.Jobs.RemoveComments = false
	want.Jobs.RemoveDimensions = true
	want.Custom.ExtractDimensions = false
	assert.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "invalid.yaml", "jobs: [1, 2")
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}

func TestOptimiseCommandJSON(t *testing.T) {
	input := writeFile(t, "in.svg", testSVG)
	output := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, run(t, "optimise", input, "--json", "-o", output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var res svgopt.Result
	require.NoError(t, json.Unmarshal(data, &res))
	require.NotNil(t, res.Dimensions)
	assert.Equal(t, 120., res.Dimensions.Width)
	assert.Equal(t, 80., res.Dimensions.Height)
	assert.NotContains(t, res.Data, "<title>")
	assert.NotContains(t, res.Data, "generated")
}

func TestOptimiseCommandConfig(t *testing.T) {
	input := writeFile(t, "in.svg", testSVG)
	config := writeFile(t, "config.yaml", "jobs:\n  removeDimensions: true\n")
	output := filepath.Join(t.TempDir(), "out.svg")

	require.NoError(t, run(t, "--config", config, "optimise", input, "-o", output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `width="120"`)
	assert.Contains(t, string(data), `viewBox="0 0 12 8"`)
}

func TestOptimiseCommandInvalid(t *testing.T) {
	input := writeFile(t, "in.svg", "<svg><g></svg>")
	err := run(t, "optimise", input, "-o", filepath.Join(t.TempDir(), "out.svg"))
	assert.ErrorContains(t, err, "parse svg")
}

func TestDimensionsCommandMissing(t *testing.T) {
	input := writeFile(t, "in.svg", `<svg width="10em" height="5em"/>`)
	assert.ErrorIs(t, run(t, "dimensions", input), errNoDimensions)
}

func TestRenderCommand(t *testing.T) {
	input := writeFile(t, "in.svg", testSVG)
	dir := t.TempDir()

	png := filepath.Join(dir, "preview.png")
	require.NoError(t, run(t, "render", input, "-o", png))
	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	pdf := filepath.Join(dir, "preview.pdf")
	require.NoError(t, run(t, "render", input, "-o", pdf))
	data, err = os.ReadFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))

	forced := filepath.Join(dir, "preview.bin")
	require.NoError(t, run(t, "render", input, "-o", forced, "-f", "pdf"))
	data, err = os.ReadFile(forced)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestRenderFormat(t *testing.T) {
	for output, want := range map[string]string{
		"a.png": "png",
		"a.PDF": "pdf",
		"a":     "png",
	} {
		cmd := RenderCmd{Output: output, Format: "auto"}
		assert.Equal(t, want, cmd.format(), output)
	}
	cmd := RenderCmd{Output: "a.png", Format: "pdf"}
	assert.Equal(t, "pdf", cmd.format())
}
