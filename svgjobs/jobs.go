// Implements passes over a parsed SVG document ("jobs"),
// and the custom jobs run after the optimisations,
// such as the extraction of the document dimensions.
package svgjobs

import (
	"log/slog"

	"github.com/benoitkugler/svgoptim/svgtree"
)

// PrepareOutcome is returned by Job.Prepare to
// control the traversal.
type PrepareOutcome uint8

const (
	// PrepareNone requests a full traversal.
	PrepareNone PrepareOutcome = 0
	// PrepareSkip disables the job for this document.
	PrepareSkip PrepareOutcome = 1
)

// Contains reports if all the flags of `flag` are set.
func (p PrepareOutcome) Contains(flag PrepareOutcome) bool { return p&flag == flag }

// Job is one pass over a document.
type Job interface {
	// Name identifies the job in errors and logs.
	Name() string

	// Prepare is called once with the document node, before the traversal.
	// Returning PrepareSkip disables the traversal for this job.
	Prepare(document *svgtree.Node) (PrepareOutcome, error)

	// Element is called for every element, in document order.
	Element(element *svgtree.Node) error
}

// Error is returned when a job fails.
type Error struct {
	Job string
	Err error
}

func (e *Error) Error() string { return e.Job + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Run runs the given jobs one after the other on `document`,
// returning the number of jobs which were not skipped.
// A nil document or one without any element is not an error: no job is run.
// The first error stops the run, and is returned as an *Error.
func Run(document *svgtree.Node, jobs ...Job) (int, error) {
	if document == nil || (document.RootElement() == nil && !document.IsElement()) {
		slog.Warn("no elements found in the document, skipping")
		return 0, nil
	}

	count := 0
	for _, job := range jobs {
		outcome, err := job.Prepare(document)
		if err != nil {
			return count, &Error{Job: job.Name(), Err: err}
		}
		if outcome.Contains(PrepareSkip) {
			continue
		}
		count++
		if err := svgtree.Walk(document, job.Element); err != nil {
			return count, &Error{Job: job.Name(), Err: err}
		}
	}
	return count, nil
}

// Config enables or disables the custom jobs.
type Config struct {
	ExtractDimensions bool `json:"extractDimensions" yaml:"extractDimensions"`
}

// DefaultConfig enables every custom job.
func DefaultConfig() Config {
	return Config{ExtractDimensions: true}
}

// CustomJobs holds the custom jobs and their results.
// A value should be used for only one document: use Reset
// or a new value to process another one.
type CustomJobs struct {
	ExtractDimensions ExtractDimensions
}

// NewCustomJobs returns the custom jobs configured by `config`.
func NewCustomJobs(config Config) *CustomJobs {
	return &CustomJobs{
		ExtractDimensions: ExtractDimensions{Enabled: config.ExtractDimensions},
	}
}

func (cj *CustomJobs) jobs() []Job {
	return []Job{&cj.ExtractDimensions}
}

// Run runs each custom job on `document`, returning
// the number of non-skipped jobs.
func (cj *CustomJobs) Run(document *svgtree.Node) (int, error) {
	count, err := Run(document, cj.jobs()...)
	if err != nil {
		return count, err
	}
	slog.Debug("completed custom jobs", "count", count)
	return count, nil
}

// Dimensions returns the dimensions found by the last run, or nil.
func (cj *CustomJobs) Dimensions() *Dimensions {
	return cj.ExtractDimensions.Dimensions()
}

// Reset clears the results of a previous run, keeping the configuration.
func (cj *CustomJobs) Reset() {
	cj.ExtractDimensions.Reset()
}
