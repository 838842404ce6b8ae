// Package subsumption implements the Solver Driver & Witness Extractor
// (spec §4.4): asserting P(x) ∧ ¬C(x), deciding it, and on a
// satisfiable result extracting a witness plus a labeled diagnosis of
// which consumer constraints it violates.
//
// Grounded on _examples/original_source/core/subsumption.py (driver
// control flow: setup components, assert P ∧ ¬C, branch on
// sat/unsat/unknown), _examples/original_source/core/witness.py
// (model-driven reconstruction by recognizer, never inventing keys or
// values), and _examples/original_source/core/labeling.py (evaluating
// labels under a model to separate P-true from C-false).
package subsumption

import (
	"log/slog"
	"time"
)

// RefResolution enumerates the supported $ref resolution strategies.
// "unfold" (full inlining) is the only one implemented; a cyclic
// schema is rejected outright rather than partially unfolded (spec §6
// "the only supported strategy here").
type RefResolution string

const RefResolutionUnfold RefResolution = "unfold"

// OutputFormat governs the CLI front-end's rendering only; the core
// itself is format-agnostic (spec §6).
type OutputFormat string

const (
	OutputPretty  OutputFormat = "pretty"
	OutputJSON    OutputFormat = "json"
	OutputMinimal OutputFormat = "minimal"
)

// Options is the programmatic surface's configuration struct (spec §6
// "Options (enumerated)").
type Options struct {
	MaxArrayLength    int
	MaxRecursionDepth int
	Timeout           time.Duration
	RefResolution     RefResolution
	Explanations      bool
	OutputFormat      OutputFormat

	// Logger receives Debug-level progress messages for each pipeline
	// stage (compile producer, compile consumer, solve, extract
	// witness), per SPEC_FULL.md §7.1. Library packages never create
	// their own package-level loggers; nil here means "use
	// slog.Default()" (see DefaultOptions).
	Logger *slog.Logger
}

// DefaultOptions matches spec §6's stated defaults (max_array_length
// 8-16, ref_resolution unfold).
func DefaultOptions() Options {
	return Options{
		MaxArrayLength:    12,
		MaxRecursionDepth: 3,
		Timeout:           30 * time.Second,
		RefResolution:     RefResolutionUnfold,
		Explanations:      true,
		OutputFormat:      OutputPretty,
		Logger:            slog.Default(),
	}
}
