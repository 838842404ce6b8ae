//go:build cgo

package subsumption

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jsound-go/jsound/compiler"
	"github.com/jsound-go/jsound/jsonschema"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

func mustParse(t *testing.T, src string) *jsonschema.Document {
	t.Helper()
	doc, err := jsonschema.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse schema %s: %v", src, err)
	}
	return doc
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Timeout = 10 * time.Second
	return opts
}

type scenario struct {
	name       string
	producer   string
	consumer   string
	compatible bool
}

// TestScenarios covers spec §8's "Concrete end-to-end scenarios" table
// exactly, rows 1-6.
func TestScenarios(t *testing.T) {
	cases := []scenario{
		{"integer-subsumed-by-number", `{"type":"integer"}`, `{"type":"number"}`, true},
		{"number-not-subsumed-by-integer", `{"type":"number"}`, `{"type":"integer"}`, false},
		{"minLength-irrelevant-to-plain-string", `{"type":"string","minLength":5}`, `{"type":"string"}`, true},
		{"union-type-not-subsumed-by-string", `{"type":["string","number"]}`, `{"type":"string"}`, false},
		{
			"pattern-mismatch-on-required-property",
			`{"type":"object","required":["contact"],"properties":{"contact":{"type":"string","pattern":".*@.*"}}}`,
			`{"type":"object","required":["contact"],"properties":{"contact":{"type":"string","pattern":"^https?://.*"}}}`,
			false,
		},
		{"required-superset-subsumed-by-subset", `{"type":"object","required":["a","b"]}`, `{"type":"object","required":["a"]}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			producer := mustParse(t, tc.producer)
			consumer := mustParse(t, tc.consumer)
			res, err := Check(context.Background(), producer, consumer, testOptions())
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if res.Compatible != tc.compatible {
				t.Fatalf("Compatible = %v, want %v (counterexample: %v)", res.Compatible, tc.compatible, res.Counterexample)
			}
		})
	}
}

// TestReflexivity checks spec §8 invariant 1: check(S, S) is always
// compatible.
func TestReflexivity(t *testing.T) {
	schemas := []string{
		`{"type":"string","minLength":1,"maxLength":10}`,
		`{"type":"object","required":["a"],"properties":{"a":{"type":"integer"}}}`,
		`{"type":"array","items":{"type":"number"},"uniqueItems":true}`,
		`{"oneOf":[{"type":"string"},{"type":"integer"}]}`,
	}
	for _, src := range schemas {
		doc := mustParse(t, src)
		res, err := Check(context.Background(), doc, doc, testOptions())
		if err != nil {
			t.Fatalf("Check(%s, %s): %v", src, src, err)
		}
		if !res.Compatible {
			t.Fatalf("schema %s is not reflexively compatible with itself (counterexample: %v)", src, res.Counterexample)
		}
	}
}

// TestWitnessSoundness checks spec §8 invariant 2: an incompatible
// verdict's witness validates against the producer and fails the
// consumer under an independent reference validator.
func TestWitnessSoundness(t *testing.T) {
	producerSrc := `{"type":"number"}`
	consumerSrc := `{"type":"integer"}`
	producer := mustParse(t, producerSrc)
	consumer := mustParse(t, consumerSrc)

	res, err := Check(context.Background(), producer, consumer, testOptions())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compatible {
		t.Fatal("expected number ⊄ integer to be incompatible")
	}
	if res.Counterexample == nil {
		t.Fatal("expected a counterexample")
	}
	witnessJSON, err := marshalWitness(res.Counterexample)
	if err != nil {
		t.Fatalf("marshal witness: %v", err)
	}

	env := newTestEnv(t, nil)
	defer env.Close()
	if !validatesRaw(t, env, producerSrc, witnessJSON) {
		t.Fatalf("witness %s does not validate against producer %s", witnessJSON, producerSrc)
	}
	if validatesRaw(t, env, consumerSrc, witnessJSON) {
		t.Fatalf("witness %s unexpectedly validates against consumer %s", witnessJSON, consumerSrc)
	}
}

func TestTypeDisjointness(t *testing.T) {
	producer := mustParse(t, `{"type":"string"}`)
	consumer := mustParse(t, `{"type":"number"}`)
	res, err := Check(context.Background(), producer, consumer, testOptions())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compatible {
		t.Fatal("expected disjoint types to be incompatible")
	}
}

func TestArrayElementTypingNotSubsumed(t *testing.T) {
	producer := mustParse(t, `{"type":"array","items":{"type":"string"}}`)
	consumer := mustParse(t, `{"type":"array","items":{"type":"number"}}`)
	res, err := Check(context.Background(), producer, consumer, testOptions())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compatible {
		t.Fatal("expected string-array items to not be subsumed by number-array items")
	}
}

func TestConstSubsumedByEnum(t *testing.T) {
	producer := mustParse(t, `{"const":"x"}`)
	consumer := mustParse(t, `{"enum":["x","y"]}`)
	res, err := Check(context.Background(), producer, consumer, testOptions())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Compatible {
		t.Fatalf("expected const:\"x\" to be subsumed by enum:[x,y] (counterexample: %v)", res.Counterexample)
	}
}

// referenceValidatorEnv wraps a standalone Z3 context used purely to
// independently re-validate a witness against a single schema, kept
// separate from the Check call under test so the soundness property
// (spec §8 invariant 2) is checked by machinery that doesn't share
// any state with the checker being tested.
type referenceValidatorEnv struct {
	cfg *smt.Config
	ctx *smt.Context
}

func newTestEnv(t *testing.T, _ []string) *referenceValidatorEnv {
	t.Helper()
	cfg := smt.NewConfig()
	ctx := smt.NewContext(cfg)
	return &referenceValidatorEnv{cfg: cfg, ctx: ctx}
}

func (e *referenceValidatorEnv) Close() {
	e.ctx.Close()
	e.cfg.Close()
}

func decodeWithNumbers(t *testing.T, src string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return v
}

func marshalWitness(w any) (string, error) {
	b, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// validatesRaw independently compiles schemaSrc and checks whether
// the literal decoded from literalJSON can hold simultaneously — the
// "reference validator" spec §8 invariant 2 calls for.
func validatesRaw(t *testing.T, env *referenceValidatorEnv, schemaSrc, literalJSON string) bool {
	t.Helper()
	schema := decodeWithNumbers(t, schemaSrc)
	literal := decodeWithNumbers(t, literalJSON)

	sort := jsonval.NewSort(env.ctx)
	univ := jsonval.NewUniverse(nil, jsonval.DefaultMaxArrayLen)
	c := compiler.New(env.ctx, sort, univ, compiler.Producer)
	x := sort.Var("x")
	compiled, err := c.Compile(schema, x)
	if err != nil {
		t.Fatalf("compile %q: %v", schemaSrc, err)
	}
	litPred, err := jsonval.Lift(sort, univ, x, literal)
	if err != nil {
		t.Fatalf("lift literal %q: %v", literalJSON, err)
	}

	solver := env.ctx.NewSolver()
	defer solver.Close()
	solver.Assert(compiled.Pred)
	for _, ax := range compiled.Axioms {
		solver.Assert(ax)
	}
	solver.Assert(litPred)
	result, err := solver.Check()
	if err != nil {
		t.Fatalf("solver check: %v", err)
	}
	return result == smt.Sat
}

func TestAdditionalPropertiesFalseBoundary(t *testing.T) {
	producer := mustParse(t, `{"type":"object","properties":{"a":{"type":"string"}}}`)
	consumer := mustParse(t, `{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":false}`)
	res, err := Check(context.Background(), producer, consumer, testOptions())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compatible {
		t.Fatal("expected an open producer object to not be subsumed by a closed consumer object")
	}
}
