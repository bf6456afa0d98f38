package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/benoitkugler/svgoptim/svgopt"
	"github.com/benoitkugler/svgoptim/svgpdf"
	"github.com/benoitkugler/svgoptim/svgraster"
)

var errNoDimensions = errors.New("document has no usable dimensions")

// OptimiseCmd implements the 'optimise' command.
type OptimiseCmd struct {
	Input  string `arg:"" optional:"" help:"SVG file to optimise (standard input if omitted)" default:"-"`
	Output string `short:"o" help:"Output file (standard output if omitted)" default:"-"`
	Pretty bool   `short:"p" help:"Indent the optimised document"`
	JSON   bool   `name:"json" help:"Print the result and the dimensions as JSON"`
}

// Run executes the optimise command.
func (cmd *OptimiseCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cmd.Pretty {
		cfg.Pretty = true
	}
	input, err := readInput(cmd.Input)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	optimiser := svgopt.Optimiser{Config: cfg, Metrics: svgopt.NewMetrics(reg)}
	res, err := optimiser.Optimise(input)
	logMetrics(reg)
	if err != nil {
		return err
	}

	if res.Dimensions != nil {
		slog.Info("Optimised document", "input", cmd.Input, "width", res.Dimensions.Width, "height", res.Dimensions.Height)
	} else {
		slog.Warn("Optimised document has no dimensions", "input", cmd.Input)
	}

	out := []byte(res.Data)
	if cmd.JSON {
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	}
	return writeOutput(cmd.Output, out)
}

// logMetrics prints the collected counters at debug level
func logMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		slog.Debug("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			slog.Debug("Metric", "name", mf.GetName(), "labels", strings.Join(labels, ","), "value", m.GetCounter().GetValue())
		}
	}
}

// DimensionsCmd implements the 'dimensions' command.
type DimensionsCmd struct {
	Input string `arg:"" optional:"" help:"SVG file (standard input if omitted)" default:"-"`
	JSON  bool   `name:"json" help:"Print the dimensions as JSON (null when absent)"`
}

// Run executes the dimensions command.
func (cmd *DimensionsCmd) Run(*CLI) error {
	input, err := readInput(cmd.Input)
	if err != nil {
		return err
	}
	dims, err := svgopt.GetDimensions(input)
	if err != nil {
		return err
	}

	if cmd.JSON {
		out, err := json.Marshal(dims)
		if err != nil {
			return err
		}
		return writeOutput("-", append(out, '\n'))
	}
	if dims == nil {
		return errNoDimensions
	}
	return writeOutput("-", []byte(fmt.Sprintf("%g %g\n", dims.Width, dims.Height)))
}

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Input  string `arg:"" help:"SVG file to render" type:"existingfile"`
	Output string `short:"o" required:"" help:"Output file"`
	Format string `short:"f" help:"Output format: png, pdf, or auto to use the output extension" enum:"auto,png,pdf" default:"auto"`
}

func (cmd *RenderCmd) format() string {
	if cmd.Format != "auto" {
		return cmd.Format
	}
	if strings.EqualFold(filepath.Ext(cmd.Output), ".pdf") {
		return "pdf"
	}
	return "png"
}

// Run executes the render command.
func (cmd *RenderCmd) Run(*CLI) error {
	f, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	var out bytes.Buffer
	switch cmd.format() {
	case "pdf":
		if err := svgpdf.RenderSVGToPDF(f, &out); err != nil {
			return fmt.Errorf("failed to render pdf: %w", err)
		}
	default:
		img, err := svgraster.RasterSVGToImage(f)
		if err != nil {
			return fmt.Errorf("failed to render png: %w", err)
		}
		if err := png.Encode(&out, img); err != nil {
			return err
		}
	}
	if err := writeOutput(cmd.Output, out.Bytes()); err != nil {
		return err
	}
	slog.Info("Preview written", "file", cmd.Output, "format", cmd.format())
	return nil
}
