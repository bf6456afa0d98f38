// Optimises SVG documents and reports their dimensions.
//
// The built-in optimisations run first, then the custom jobs
// of package svgjobs, so that the reported dimensions
// describe the optimised document.
package svgopt

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/benoitkugler/svgoptim/svgjobs"
	"github.com/benoitkugler/svgoptim/svgtree"
)

// Config is the full configuration of an optimisation.
type Config struct {
	Jobs   Jobs           `json:"jobs" yaml:"jobs"`
	Custom svgjobs.Config `json:"custom" yaml:"custom"`
	// Pretty indents the output with 2 spaces.
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// DefaultConfig returns the default preset, with every custom job enabled.
func DefaultConfig() Config {
	return Config{Jobs: DefaultJobs(), Custom: svgjobs.DefaultConfig()}
}

// Result is the output of an optimisation.
type Result struct {
	// Data is the optimised document
	Data string `json:"data"`
	// Dimensions is nil if the document does not declare usable dimensions
	Dimensions *svgjobs.Dimensions `json:"dimensions"`
}

// Optimiser runs optimisations with a fixed configuration.
// It may be used concurrently: each call uses its own tree and jobs.
type Optimiser struct {
	Config Config
	// Metrics is optional
	Metrics *Metrics
}

// Optimise parses `svg`, runs the enabled optimisations and custom jobs,
// and serializes the result.
// An error is returned if the document fails to parse, if any job fails
// or if the document fails to serialize; no partial result is returned.
func (o *Optimiser) Optimise(svg string) (*Result, error) {
	res, err := o.optimise(svg)
	o.Metrics.observeDocument(res, err)
	return res, err
}

func (o *Optimiser) optimise(svg string) (*Result, error) {
	doc, err := svgtree.ParseString(svg)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	count, err := svgjobs.Run(doc, o.Config.Jobs.list()...)
	if err != nil {
		return nil, err
	}
	o.Metrics.observeJobs("builtin", count)
	slog.Debug("completed optimisations", "count", count)

	custom := svgjobs.NewCustomJobs(o.Config.Custom)
	count, err = custom.Run(doc)
	if err != nil {
		return nil, err
	}
	o.Metrics.observeJobs("custom", count)

	indent := 0
	if o.Config.Pretty {
		indent = 2
	}
	var b strings.Builder
	if err := svgtree.Serialize(&b, doc, svgtree.SerializeOptions{Indent: indent}); err != nil {
		return nil, fmt.Errorf("serialize svg: %w", err)
	}
	return &Result{Data: b.String(), Dimensions: custom.Dimensions()}, nil
}

// Optimise optimises `svg` using `config`, or the
// default configuration if it is nil.
func Optimise(svg string, config *Config) (*Result, error) {
	o := Optimiser{Config: DefaultConfig()}
	if config != nil {
		o.Config = *config
	}
	return o.Optimise(svg)
}

// GetDimensions returns the dimensions of `svg`, without
// running any optimisation. It returns nil if the document
// has no usable dimensions.
func GetDimensions(svg string) (*svgjobs.Dimensions, error) {
	doc, err := svgtree.ParseString(svg)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	custom := svgjobs.NewCustomJobs(svgjobs.DefaultConfig())
	if _, err := custom.Run(doc); err != nil {
		return nil, err
	}
	return custom.Dimensions(), nil
}
