//go:build cgo

package compiler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// testEnv bundles the Z3 context, JSON sort, and universe a compiler
// test needs; callers must call Close when done.
type testEnv struct {
	cfg  *smt.Config
	ctx  *smt.Context
	sort *jsonval.Sort
	univ *jsonval.Universe
}

func newTestEnv(t *testing.T, keys []string) *testEnv {
	t.Helper()
	cfg := smt.NewConfig()
	ctx := smt.NewContext(cfg)
	sort := jsonval.NewSort(ctx)
	univ := jsonval.NewUniverse(keys, jsonval.DefaultMaxArrayLen)
	return &testEnv{cfg: cfg, ctx: ctx, sort: sort, univ: univ}
}

func (e *testEnv) Close() {
	e.ctx.Close()
	e.cfg.Close()
}

func decodeSchema(t *testing.T, src string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	return v
}

func decodeLiteral(t *testing.T, src string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode literal: %v", err)
	}
	return v
}

// ValidatesLiteral is the reference-validator helper from spec §8: it
// compiles schema, lifts literal into an equality predicate, and asks
// the solver whether both can hold together. Used to check that a
// concrete witness/counterexample is actually accepted or rejected by
// a schema, independent of subsumption's own machinery.
func ValidatesLiteral(t *testing.T, e *testEnv, schemaSrc, literalSrc string) bool {
	t.Helper()
	schema := decodeSchema(t, schemaSrc)
	literal := decodeLiteral(t, literalSrc)

	c := New(e.ctx, e.sort, e.univ, Producer)
	x := e.sort.Var("x")
	compiled, err := c.Compile(schema, x)
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	litPred, err := jsonval.Lift(e.sort, e.univ, x, literal)
	if err != nil {
		t.Fatalf("lift literal: %v", err)
	}

	solver := e.ctx.NewSolver()
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

func TestCompileTypeAcceptsMatchingLiteral(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	if !ValidatesLiteral(t, e, `{"type":"string"}`, `"hello"`) {
		t.Fatal("expected string literal to satisfy type:string")
	}
	if ValidatesLiteral(t, e, `{"type":"string"}`, `42`) {
		t.Fatal("expected integer literal to violate type:string")
	}
}

func TestCompileNumericBounds(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	schema := `{"type":"integer","minimum":0,"maximum":10}`
	if !ValidatesLiteral(t, e, schema, `5`) {
		t.Fatal("expected 5 to satisfy [0,10]")
	}
	if ValidatesLiteral(t, e, schema, `11`) {
		t.Fatal("expected 11 to violate maximum:10")
	}
	if ValidatesLiteral(t, e, schema, `-1`) {
		t.Fatal("expected -1 to violate minimum:0")
	}
}

func TestCompileMultipleOfRejectsNonIntegerDivisor(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	c := New(e.ctx, e.sort, e.univ, Producer)
	x := e.sort.Var("x")
	schema := decodeSchema(t, `{"multipleOf":0.5}`)
	if _, err := c.Compile(schema, x); err == nil {
		t.Fatal("expected multipleOf with a non-integer divisor to be rejected")
	}
}

func TestCompileStringPatternAndLength(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	schema := `{"type":"string","pattern":"^[a-z]+$","minLength":2,"maxLength":4}`
	if !ValidatesLiteral(t, e, schema, `"abc"`) {
		t.Fatal("expected \"abc\" to match pattern and length bounds")
	}
	if ValidatesLiteral(t, e, schema, `"AB"`) {
		t.Fatal("expected uppercase literal to violate the pattern")
	}
	if ValidatesLiteral(t, e, schema, `"a"`) {
		t.Fatal("expected single-char literal to violate minLength:2")
	}
}

func TestCompileOneOfMutualExclusion(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	schema := `{"oneOf":[{"type":"string"},{"type":"integer"}]}`
	if !ValidatesLiteral(t, e, schema, `"x"`) {
		t.Fatal("expected a string literal to satisfy oneOf[string,integer]")
	}
	if !ValidatesLiteral(t, e, schema, `1`) {
		t.Fatal("expected an integer literal to satisfy oneOf[string,integer]")
	}
	if ValidatesLiteral(t, e, schema, `true`) {
		t.Fatal("expected a boolean literal to violate oneOf[string,integer]")
	}
	overlapping := `{"oneOf":[{"type":"number"},{"type":"integer"}]}`
	if ValidatesLiteral(t, e, overlapping, `1`) {
		t.Fatal("expected an integer literal matching both branches to violate oneOf[number,integer]")
	}
	if !ValidatesLiteral(t, e, overlapping, `1.5`) {
		t.Fatal("expected a real literal matching only the number branch to satisfy oneOf[number,integer]")
	}
}

func TestCompileRequiredAndProperties(t *testing.T) {
	e := newTestEnv(t, []string{"name", "age"})
	defer e.Close()
	schema := `{"type":"object","required":["name"],"properties":{"age":{"type":"integer","minimum":0}}}`
	if !ValidatesLiteral(t, e, schema, `{"name":"a","age":5}`) {
		t.Fatal("expected object satisfying required+properties to validate")
	}
	if ValidatesLiteral(t, e, schema, `{"age":5}`) {
		t.Fatal("expected object missing required \"name\" to be rejected")
	}
	if ValidatesLiteral(t, e, schema, `{"name":"a","age":-1}`) {
		t.Fatal("expected object with age violating minimum to be rejected")
	}
}

func TestCompileAdditionalPropertiesFalse(t *testing.T) {
	e := newTestEnv(t, []string{"a", "b"})
	defer e.Close()
	schema := `{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":false}`
	if !ValidatesLiteral(t, e, schema, `{"a":"x"}`) {
		t.Fatal("expected object with only the declared property to validate")
	}
	if ValidatesLiteral(t, e, schema, `{"a":"x","b":1}`) {
		t.Fatal("expected object with an undeclared property \"b\" to be rejected")
	}
}

func TestCompileArrayItemsAndUnique(t *testing.T) {
	e := newTestEnv(t, nil)
	defer e.Close()
	schema := `{"type":"array","items":{"type":"integer"},"uniqueItems":true,"minItems":1}`
	if !ValidatesLiteral(t, e, schema, `[1,2,3]`) {
		t.Fatal("expected a unique integer array to validate")
	}
	if ValidatesLiteral(t, e, schema, `[1,1]`) {
		t.Fatal("expected a non-unique array to violate uniqueItems")
	}
	if ValidatesLiteral(t, e, schema, `["x"]`) {
		t.Fatal("expected a string element to violate items:{type:integer}")
	}
	if ValidatesLiteral(t, e, schema, `[]`) {
		t.Fatal("expected an empty array to violate minItems:1")
	}
}

func TestPreCheckTypeSatisfiableDetectsConflict(t *testing.T) {
	schema := decodeSchema(t, `{"allOf":[{"type":"string"},{"type":"integer"}]}`)
	sat, err := PreCheckTypeSatisfiable(schema)
	if err != nil {
		t.Fatalf("PreCheckTypeSatisfiable: %v", err)
	}
	if sat {
		t.Fatal("expected allOf[string,integer] to be trivially unsatisfiable")
	}
}

func TestPreCheckTypeSatisfiableAllowsAnyOf(t *testing.T) {
	schema := decodeSchema(t, `{"anyOf":[{"type":"string"},{"type":"integer"}]}`)
	sat, err := PreCheckTypeSatisfiable(schema)
	if err != nil {
		t.Fatalf("PreCheckTypeSatisfiable: %v", err)
	}
	if !sat {
		t.Fatal("expected anyOf[string,integer] to be satisfiable")
	}
}
