package subsumption

import (
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// minimizeArrayLength implements the array-length part of spec §4.4's
// "Minimization (optional but specified)" step. The reference Python implementation has no
// minimization pass to ground this on; Z3's own Optimize object would
// be the natural tool, but this codebase deliberately keeps a single
// Solver type (spec §5 "no hidden shared mutable state" plus the
// smt package's existing Push/Pop-based probing already used by
// compiler.CheckSatisfiable) — so minimization is implemented as
// repeated Push/tighten-bound/Check/Pop rounds against the same
// solver: each candidate bound is verified sat before being kept, and
// Pop discards any bound that made the assertions unsat.
//
// The bound is a linear scan upward from 0, and the first satisfiable
// bound is asserted. Only len(x) of the root value is tightened;
// arrays nested inside the witness and string lengths are not
// minimized.
func minimizeArrayLength(solver *smt.Solver, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, ctx *smt.Context) {
	for bound := int64(0); bound <= int64(univ.MaxArrayLen); bound++ {
		b := ctx.IntVal(bound)
		solver.Push()
		solver.Assert(smt.Le(sort.LenAccessor(x), b))
		result, err := solver.Check()
		solver.Pop(1)
		if err == nil && result == smt.Sat {
			solver.Assert(smt.Le(sort.LenAccessor(x), b))
			return
		}
	}
}

// minimizePropertyCount tightens the number of present keys in x's
// object encoding using the same has(x,k) indicator sum the compiler
// uses for minProperties/maxProperties (spec §9 Open Question iii).
func minimizePropertyCount(solver *smt.Solver, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, ctx *smt.Context) {
	if len(univ.Keys) == 0 {
		return
	}
	var terms []smt.AST
	for _, k := range univ.Keys {
		terms = append(terms, smt.Ite(sort.Has(x, k), ctx.IntVal(1), ctx.IntVal(0)))
	}
	count := smt.Add(terms...)
	for bound := int64(0); bound < int64(len(univ.Keys)); bound++ {
		solver.Push()
		solver.Assert(smt.Le(count, ctx.IntVal(bound)))
		result, err := solver.Check()
		solver.Pop(1)
		if err == nil && result == smt.Sat {
			solver.Assert(smt.Le(count, ctx.IntVal(bound)))
			return
		}
	}
}

// Minimize applies the soft-preference tightening spec §4.4 describes
// ("minimize len(x) for arrays... minimize count of present object
// keys...") directly against solver's permanent assertion stack, then
// leaves the caller to Check() once more and read back the (now
// smaller) model. Hard constraints are never touched — every
// tightening asserted here was itself verified sat before being kept.
// Only the root value's array length and present-key count are
// tightened; string lengths and nested values are not minimized.
func Minimize(solver *smt.Solver, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, ctx *smt.Context) {
	minimizeArrayLength(solver, sort, univ, x, ctx)
	minimizePropertyCount(solver, sort, univ, x, ctx)
}
