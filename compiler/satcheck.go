package compiler

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/smt"
)

var jsonTypeNames = map[string]bool{
	"null": true, "boolean": true, "integer": true, "number": true,
	"string": true, "array": true, "object": true,
}

// typeCircuitBuilder builds a cheap boolean circuit over a schema
// node's own type/allOf/anyOf/oneOf composition, generalizing
// _examples/signadot-tony-format/go-tony/schema/formula_builder.go's
// (position, type) variable scheme and mutex-clause construction to
// JSON Schema's type keyword, for a single position (the node being
// checked). "number" is encoded as integer ∨ real, so it overlaps
// "integer" exactly as the compiler's recognizers do. oneOf is
// over-approximated as "at least one" rather than "exactly one", and
// "not" is left unmodeled (treated as true), since negating an
// over-approximation would turn it into an under-approximation. The
// circuit is therefore monotone and only ever over-approximates: it
// can report SAT where the real schema is UNSAT, never the reverse,
// so pruning on UNSAT stays sound.
type typeCircuitBuilder struct {
	c    *logic.C
	vars map[string]z.Lit
	seen []z.Lit
}

func newTypeCircuitBuilder() *typeCircuitBuilder {
	return &typeCircuitBuilder{c: logic.NewC(), vars: make(map[string]z.Lit)}
}

func (b *typeCircuitBuilder) getVar(typeName string) z.Lit {
	if lit, ok := b.vars[typeName]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[typeName] = lit
	b.seen = append(b.seen, lit)
	return lit
}

func (b *typeCircuitBuilder) build(node any) z.Lit {
	switch v := node.(type) {
	case bool:
		if v {
			return b.c.T
		}
		return b.c.F
	case nil:
		return b.c.T
	case map[string]any:
		return b.buildObject(v)
	default:
		return b.c.T
	}
}

func (b *typeCircuitBuilder) buildObject(v map[string]any) z.Lit {
	var parts []z.Lit
	if t, ok := v["type"]; ok {
		parts = append(parts, b.buildType(t))
	}
	if arr, ok := v["allOf"].([]any); ok {
		for _, s := range arr {
			parts = append(parts, b.build(s))
		}
	}
	if arr, ok := v["anyOf"].([]any); ok {
		parts = append(parts, b.buildOrs(arr))
	}
	if arr, ok := v["oneOf"].([]any); ok {
		parts = append(parts, b.buildOrs(arr))
	}
	if len(parts) == 0 {
		return b.c.T
	}
	return b.c.Ands(parts...)
}

func (b *typeCircuitBuilder) buildOrs(arr []any) z.Lit {
	var lits []z.Lit
	for _, s := range arr {
		lits = append(lits, b.build(s))
	}
	if len(lits) == 0 {
		return b.c.F
	}
	return b.c.Ors(lits...)
}

func (b *typeCircuitBuilder) buildType(t any) z.Lit {
	switch v := t.(type) {
	case string:
		if !jsonTypeNames[v] {
			return b.c.T
		}
		if v == "number" {
			return b.c.Ors(b.getVar("integer"), b.getVar("real"))
		}
		return b.getVar(v)
	case []any:
		var lits []z.Lit
		for _, e := range v {
			name, ok := e.(string)
			if !ok || !jsonTypeNames[name] {
				return b.c.T
			}
			if name == "number" {
				lits = append(lits, b.getVar("integer"), b.getVar("real"))
				continue
			}
			lits = append(lits, b.getVar(name))
		}
		if len(lits) == 0 {
			return b.c.T
		}
		return b.c.Ors(lits...)
	default:
		return b.c.T
	}
}

func (b *typeCircuitBuilder) addMutexClauses(g *gini.Gini) {
	for i := 0; i < len(b.seen); i++ {
		for j := i + 1; j < len(b.seen); j++ {
			g.Add(b.seen[i].Not())
			g.Add(b.seen[j].Not())
			g.Add(0)
		}
	}
}

// PreCheckTypeSatisfiable is a cheap fast-path run before the full Z3
// compile (spec §4.4's driver calls it first): schemas that combine
// type/allOf/anyOf/oneOf into a trivial type conflict — e.g.
// allOf: [{type: string}, {type: number}] — are rejected here without
// ever invoking the SMT solver. Schemas that pass may still be
// unsatisfiable for reasons this pre-check doesn't model; it only
// ever returns a definite "no".
func PreCheckTypeSatisfiable(schema any) (bool, error) {
	b := newTypeCircuitBuilder()
	formula := b.build(schema)

	g := gini.New()
	b.c.ToCnf(g)
	b.addMutexClauses(g)
	g.Assume(formula)
	result := g.Solve()
	return result == 1, nil
}

// CheckSatisfiable runs the authoritative check: is pred satisfiable
// under the current solver's assertions? Uses Push/Pop so the probe
// leaves the solver's permanent assertion stack untouched, mirroring
// the driver's later use of Push/Pop for witness minimization (spec
// §4.4).
func CheckSatisfiable(solver *smt.Solver, pred smt.AST, path string) (smt.CheckResult, error) {
	solver.Push()
	defer solver.Pop(1)
	solver.Assert(pred)
	result, err := solver.Check()
	if err != nil {
		return smt.Unknown, jerr.New(jerr.InternalInvariant, path, err)
	}
	return result, nil
}
