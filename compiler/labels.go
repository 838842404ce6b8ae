package compiler

import (
	"fmt"

	"github.com/jsound-go/jsound/smt"
)

// Side distinguishes producer-side labels from consumer-side labels,
// since both schemas are compiled against the same variable and must
// not collide (spec §3 "Labels form a set per side").
type Side string

const (
	Producer Side = "P"
	Consumer Side = "C"
)

// Label is a path-like identifier paired with the boolean handle
// biconditionally tied to the leaf constraint it names (spec §3
// "Constraint label", §4.3 "Labeling").
type Label struct {
	Name    string
	Path    string
	Keyword string
	Handle  smt.AST
}

// LabelTable accumulates one Label per leaf constraint compiled, plus
// the biconditional axioms (b <-> leaf) that must be asserted
// alongside the compiled predicate for the labels to mean anything.
//
// Grounded on _examples/original_source/core/labeling.py's label-name
// format "{side}:{path}:{keyword}" and counter-based disambiguation.
type LabelTable struct {
	Side    Side
	ctx     *smt.Context
	labels  []Label
	counter map[string]int
	axioms  []smt.AST
}

func NewLabelTable(ctx *smt.Context, side Side) *LabelTable {
	return &LabelTable{Side: side, ctx: ctx, counter: make(map[string]int)}
}

// Label allocates a fresh boolean handle for leaf, names it
// "{side}:{path}:{keyword}" (disambiguated with a trailing "#n" on
// collision), records the b <-> leaf axiom, and returns the handle —
// the compiled predicate should use the handle in place of leaf.
func (lt *LabelTable) Label(path, keyword string, leaf smt.AST) smt.AST {
	base := fmt.Sprintf("%s:%s:%s", lt.Side, path, keyword)
	name := base
	if n, exists := lt.counter[base]; exists {
		lt.counter[base] = n + 1
		name = fmt.Sprintf("%s#%d", base, n+1)
	} else {
		lt.counter[base] = 0
	}
	handle := lt.ctx.Const(name, lt.ctx.BoolSort())
	lt.axioms = append(lt.axioms, smt.Eq(handle, leaf))
	lt.labels = append(lt.labels, Label{Name: name, Path: path, Keyword: keyword, Handle: handle})
	return handle
}

// Labels returns every label allocated so far, in allocation order
// (spec §8 property 5: "Label completeness").
func (lt *LabelTable) Labels() []Label { return lt.labels }

// Axioms returns the b <-> leaf biconditionals that must be asserted
// alongside the compiled predicate.
func (lt *LabelTable) Axioms() []smt.AST { return lt.axioms }
