package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jsound-go/jsound/subsumption"
	"github.com/mattn/go-isatty"
)

// jsonResult is the exact wire shape spec §6 mandates for
// `--output-format json`: note "solver_time", not
// subsumption.Result's "SolverTimeSeconds" — the CLI's JSON contract
// and the programmatic Result type are allowed to diverge, so this
// type exists purely to pin the external shape independently of
// internal field renames.
type jsonResult struct {
	Compatible        bool     `json:"compatible"`
	Counterexample    any      `json:"counterexample"`
	SolverTime        float64  `json:"solver_time"`
	Explanation       string   `json:"explanation,omitempty"`
	FailedConstraints []string `json:"failed_constraints,omitempty"`
	Recommendations   []string `json:"recommendations,omitempty"`
}

// writeResult renders result in the requested output_format. pretty
// and minimal are human-facing; json is the bit-exact machine
// contract of spec §6.
func writeResult(w io.Writer, result *subsumption.Result, format subsumption.OutputFormat, producerSrc, consumerSrc []byte) error {
	switch format {
	case subsumption.OutputJSON:
		return writeJSON(w, result)
	case subsumption.OutputMinimal:
		return writeMinimal(w, result)
	default:
		return writePretty(w, result, producerSrc, consumerSrc)
	}
}

func writeJSON(w io.Writer, result *subsumption.Result) error {
	out := jsonResult{
		Compatible:        result.Compatible,
		Counterexample:    result.Counterexample,
		SolverTime:        result.SolverTimeSeconds,
		Explanation:       result.Explanation,
		FailedConstraints: result.FailedConstraints,
		Recommendations:   result.Recommendations,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeMinimal prints nothing but the verdict word, for scripting
// contexts that only care about the exit code and want no output
// noise on top of it.
func writeMinimal(w io.Writer, result *subsumption.Result) error {
	if result.Compatible {
		_, err := fmt.Fprintln(w, "compatible")
		return err
	}
	_, err := fmt.Fprintln(w, "incompatible")
	return err
}

// writePretty renders a colored verdict, the counterexample, the
// recommendations, and (when the verdict is incompatible) an inline
// character-level diff between the two schema source texts so a reader can see at a
// glance where producer and consumer diverge. Color is gated on
// stdout being a real terminal, exactly as the teacher's `o view`
// gates its own color output.
func writePretty(w io.Writer, result *subsumption.Result, producerSrc, consumerSrc []byte) error {
	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	if !useColor {
		color.NoColor = true
	}

	if result.Compatible {
		green.Fprintln(w, "COMPATIBLE")
		fmt.Fprintf(w, "solver time: %.3fs\n", result.SolverTimeSeconds)
		return nil
	}

	red.Fprintln(w, "INCOMPATIBLE")
	fmt.Fprintf(w, "solver time: %.3fs\n", result.SolverTimeSeconds)
	if result.Counterexample != nil {
		cx, err := json.MarshalIndent(result.Counterexample, "", "  ")
		if err == nil {
			fmt.Fprintf(w, "counterexample:\n%s\n", cx)
		}
	}
	if result.Explanation != "" {
		fmt.Fprintf(w, "explanation: %s\n", result.Explanation)
	}
	if len(result.FailedConstraints) > 0 {
		fmt.Fprintln(w, "failed consumer constraints:")
		for _, c := range result.FailedConstraints {
			fmt.Fprintf(w, "  - %s\n", c)
		}
	}
	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "recommendations:")
		for _, r := range result.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	writeSchemaDiff(w, producerSrc, consumerSrc, green, red)
	return nil
}

// writeSchemaDiff renders a character-level diff between the producer and
// consumer schema source text, grounded on
// _examples/signadot-tony-format/libdiff/string.go's use of
// diffpatch.New().DiffMain — here rendered directly as colored
// insert/delete/equal spans instead of folded back into an ir.Node,
// since the CLI just wants to show a human the divergence.
func writeSchemaDiff(w io.Writer, producerSrc, consumerSrc []byte, green, red *color.Color) {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(producerSrc), string(consumerSrc), true)
	fmt.Fprintln(w, "schema diff (producer -> consumer):")
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			green.Fprint(w, d.Text)
		case diffpatch.DiffDelete:
			red.Fprint(w, d.Text)
		default:
			fmt.Fprint(w, d.Text)
		}
	}
	fmt.Fprintln(w)
}
