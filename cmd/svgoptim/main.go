package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI definition & global flags
type CLI struct {
	Config  string `short:"c" help:"YAML configuration file (optional)" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Optimise   OptimiseCmd   `cmd:"" help:"Optimise an SVG document and report its dimensions"`
	Dimensions DimensionsCmd `cmd:"" help:"Print the intrinsic dimensions of an SVG document"`
	Render     RenderCmd     `cmd:"" help:"Render a PNG or PDF preview of an SVG document at its intrinsic size"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("svgoptim"),
		kong.Description("Optimise SVG documents and extract their dimensions."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
