package subsumption

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsound-go/jsound/compiler"
	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonschema"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// Check is the programmatic surface's entry point (spec §6
// "check_subsumption(producer, consumer, options) -> SubsumptionResult").
// It owns one Z3 context, one JSON sort instance, and one universe for
// the duration of the call (spec §5: no process-wide singletons; safe
// to run many Checks concurrently). Control flow — assert P ∧ ¬C,
// branch on sat/unsat/unknown — is grounded on
// _examples/original_source/core/subsumption.py's
// SubsumptionChecker.check_subsumption.
func Check(ctx context.Context, producer, consumer *jsonschema.Document, opts Options) (*Result, error) {
	start := nowFunc()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := ctx.Err(); err != nil {
		return nil, jerr.New(jerr.SolverTimeout, "", fmt.Errorf("subsumption: deadline already exceeded: %w", err))
	}

	univ := jsonschema.BuildUniverse(opts.MaxArrayLength, producer, consumer)
	logger.Debug("subsumption: universe sealed", "keys", len(univ.Keys), "max_array_length", opts.MaxArrayLength)

	if err := ctx.Err(); err != nil {
		return nil, jerr.New(jerr.SolverTimeout, "", fmt.Errorf("subsumption: deadline exceeded before compilation: %w", err))
	}

	if sat, _ := compiler.PreCheckTypeSatisfiable(producer.Raw); !sat {
		// Producer accepts nothing: the empty set is vacuously
		// subsumed by any consumer, without paying for a Z3 call.
		logger.Debug("subsumption: producer vacuously unsatisfiable, skipping solver")
		return &Result{Compatible: true, SolverTimeSeconds: elapsedSeconds(start)}, nil
	}

	z3cfg := smt.NewConfig()
	defer z3cfg.Close()
	z3ctx := smt.NewContext(z3cfg)
	defer z3ctx.Close()

	sort := jsonval.NewSort(z3ctx)
	x := sort.Var("x")

	logger.Debug("subsumption: compiling producer")
	producerCompiler := compiler.New(z3ctx, sort, univ, compiler.Producer, logger)
	compiledP, err := producerCompiler.Compile(producer.Raw, x)
	if err != nil {
		return nil, err
	}
	logger.Debug("subsumption: compiling consumer")
	consumerCompiler := compiler.New(z3ctx, sort, univ, compiler.Consumer, logger)
	compiledC, err := consumerCompiler.Compile(consumer.Raw, x)
	if err != nil {
		return nil, err
	}

	solver := z3ctx.NewSolver()
	defer solver.Close()
	if opts.Timeout > 0 {
		solver.SetTimeout(uint(opts.Timeout.Milliseconds()))
	}

	solver.Assert(compiledP.Pred)
	for _, ax := range compiledP.Axioms {
		solver.Assert(ax)
	}
	solver.Assert(compiledC.Pred.Not())
	for _, ax := range compiledC.Axioms {
		solver.Assert(ax)
	}

	if err := ctx.Err(); err != nil {
		return nil, jerr.New(jerr.SolverTimeout, "", fmt.Errorf("subsumption: deadline exceeded before solving: %w", err))
	}

	logger.Debug("subsumption: solving P ∧ ¬C", "timeout", opts.Timeout)
	result, checkErr := runWithDeadline(ctx, solver)

	solverTime := elapsedSeconds(start)

	switch result {
	case smt.Unsat:
		logger.Debug("subsumption: unsat, compatible", "solver_time_seconds", solverTime)
		return &Result{Compatible: true, SolverTimeSeconds: solverTime}, nil
	case smt.Sat:
		logger.Debug("subsumption: sat, extracting witness", "solver_time_seconds", solverTime)
		if opts.Explanations {
			Minimize(solver, sort, univ, x, z3ctx)
			solver.Check() // re-decide under the tightened bounds just asserted
		}
		model := solver.Model()
		defer model.Close()

		witness, err := ExtractWitness(model, sort, univ, x)
		if err != nil {
			return nil, err
		}

		res := &Result{
			Compatible:        false,
			Counterexample:    witness,
			SolverTimeSeconds: solverTime,
		}
		if opts.Explanations {
			diag := Diagnose(model, producerCompiler.Labels(), consumerCompiler.Labels())
			AttachPatchSuggestion(diag, witness)
			res.FailedConstraints = diag.FailedConstraints
			res.Recommendations = diag.Recommendations
			if diag.PatchSuggestion != "" {
				res.Recommendations = append(res.Recommendations, "patch: "+diag.PatchSuggestion)
			}
			res.Explanation = explain(witness, diag)
		}
		return res, nil
	default:
		msg := "solver returned unknown"
		if checkErr != nil {
			msg = checkErr.Error()
		}
		return nil, jerr.New(jerr.SolverTimeout, "", fmt.Errorf("subsumption: %s after %.2fs", msg, solverTime))
	}
}

// runWithDeadline races the blocking Z3 call against ctx's deadline
// (spec §5: "cancellation is exposed as a timeout passed to the
// solver plus a cooperative deadline checked between stages"). The
// solver's own SetTimeout is the hard backstop; this only lets a
// caller-supplied context cancel the wait without crossing back into
// the cgo call.
func runWithDeadline(ctx context.Context, solver *smt.Solver) (smt.CheckResult, error) {
	type outcome struct {
		result smt.CheckResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := solver.Check()
		done <- outcome{r, err}
	}()
	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return smt.Unknown, ctx.Err()
	}
}

func explain(witness any, diag *Diagnosis) string {
	if len(diag.FailedConstraints) == 0 {
		return "subsumption failed but no specific constraint violations were identified"
	}
	return fmt.Sprintf("counterexample %v violates consumer constraints: %v", witness, diag.FailedConstraints)
}

// nowFunc/elapsedSeconds isolate the one wall-clock read this package
// needs (spec §6's solver_time_seconds) so Check itself stays free of
// direct time.Now() calls beyond this single seam.
func nowFunc() time.Time { return time.Now() }

func elapsedSeconds(start time.Time) float64 { return time.Since(start).Seconds() }
