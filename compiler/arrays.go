package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// compileArray implements spec §4.3's array keywords. Every leaf here
// is guarded by is_arr(x): per JSON Schema semantics these assertions
// only apply to array instances, and Z3's datatype accessors are
// total functions whose value is unconstrained outside their own
// constructor — leaving the guard off would let the solver pick
// arbitrary, unsound values for len(x)/elems(x) on a non-array x.
func (c *Compiler) compileArray(v map[string]any, x smt.AST, path string, add func(smt.AST, error) error) error {
	guard := c.sort.Is(jsonval.KindArr, x)
	maxLen := c.univ.MaxArrayLen

	if n, ok := v["minItems"].(json.Number); ok {
		if err := add(c.arrayLenBound("minItems", n, x, guard, path, ge)); err != nil {
			return err
		}
	}
	if n, ok := v["maxItems"].(json.Number); ok {
		if err := add(c.arrayLenBound("maxItems", n, x, guard, path, le)); err != nil {
			return err
		}
	}

	prefixItems, hasPrefix := v["prefixItems"].([]any)
	items, hasItems := v["items"]

	switch {
	case hasPrefix:
		if err := add(c.compilePrefixItems(prefixItems, items, hasItems, x, guard, maxLen, path)); err != nil {
			return err
		}
	case hasItems:
		if err := add(c.compileItems(items, x, guard, 0, maxLen, path, "items")); err != nil {
			return err
		}
	}

	if contains, ok := v["contains"]; ok {
		if err := add(c.compileContains(contains, x, guard, maxLen, path)); err != nil {
			return err
		}
	}
	if unique, ok := v["uniqueItems"].(bool); ok && unique {
		if err := add(c.compileUniqueItems(x, guard, maxLen, path)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) arrayLenBound(keyword string, n json.Number, x, guard smt.AST, path string, cmp func(a, b smt.AST) smt.AST) (smt.AST, error) {
	i, err := n.Int64()
	if err != nil {
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: %s must be an integer, got %q", keyword, n.String()))
	}
	leaf := smt.Implies(guard, cmp(c.sort.LenAccessor(x), c.ctx.IntVal(i)))
	return c.label(path, keyword, leaf), nil
}

// compileItems unrolls a single schema over indices [from, to) —
// bounded, quantifier-free (spec §4.3 "items S").
func (c *Compiler) compileItems(schema any, x, guard smt.AST, from, to int, path, keyword string) (smt.AST, error) {
	var parts []smt.AST
	for i := from; i < to; i++ {
		idx := c.ctx.IntVal(int64(i))
		elemPred, err := c.compile(schema, c.sort.ElemAt(x, idx), childPath(path, fmt.Sprintf("%s/%d", keyword, i)))
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, smt.Implies(smt.Lt(idx, c.sort.LenAccessor(x)), elemPred))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(guard, body)
	return c.label(path, keyword, leaf), nil
}

// compilePrefixItems implements positional typing for indices < k
// (the prefixItems list), with either a tail schema (spec's "items S"
// after prefixItems) or an implicit len <= k when no tail is given.
func (c *Compiler) compilePrefixItems(prefixItems []any, tail any, hasTail bool, x, guard smt.AST, maxLen int, path string) (smt.AST, error) {
	var parts []smt.AST
	k := len(prefixItems)
	for i, schema := range prefixItems {
		if i >= maxLen {
			break
		}
		idx := c.ctx.IntVal(int64(i))
		elemPred, err := c.compile(schema, c.sort.ElemAt(x, idx), childPath(path, fmt.Sprintf("prefixItems/%d", i)))
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, smt.Implies(smt.Lt(idx, c.sort.LenAccessor(x)), elemPred))
	}
	if hasTail {
		for i := k; i < maxLen; i++ {
			idx := c.ctx.IntVal(int64(i))
			elemPred, err := c.compile(tail, c.sort.ElemAt(x, idx), childPath(path, fmt.Sprintf("items/%d", i)))
			if err != nil {
				return smt.AST{}, err
			}
			parts = append(parts, smt.Implies(smt.Lt(idx, c.sort.LenAccessor(x)), elemPred))
		}
	} else {
		parts = append(parts, smt.Le(c.sort.LenAccessor(x), c.ctx.IntVal(int64(k))))
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(guard, body)
	return c.label(path, "prefixItems", leaf), nil
}

// compileContains encodes the bounded existential of spec §4.3
// "contains S" as a disjunction over indices.
func (c *Compiler) compileContains(schema any, x, guard smt.AST, maxLen int, path string) (smt.AST, error) {
	var disj []smt.AST
	for i := 0; i < maxLen; i++ {
		idx := c.ctx.IntVal(int64(i))
		elemPred, err := c.compile(schema, c.sort.ElemAt(x, idx), childPath(path, fmt.Sprintf("contains/%d", i)))
		if err != nil {
			return smt.AST{}, err
		}
		disj = append(disj, smt.And(smt.Lt(idx, c.sort.LenAccessor(x)), elemPred))
	}
	var body smt.AST
	if len(disj) == 0 {
		body = c.ctx.BoolVal(false)
	} else {
		body = smt.Or(disj...)
	}
	leaf := smt.Implies(guard, body)
	return c.label(path, "contains", leaf), nil
}

// compileUniqueItems encodes pairwise inequality over i < j < len(x).
func (c *Compiler) compileUniqueItems(x, guard smt.AST, maxLen int, path string) (smt.AST, error) {
	var parts []smt.AST
	for i := 0; i < maxLen; i++ {
		for j := i + 1; j < maxLen; j++ {
			ii, jj := c.ctx.IntVal(int64(i)), c.ctx.IntVal(int64(j))
			bothInBounds := smt.And(smt.Lt(jj, c.sort.LenAccessor(x)), smt.Lt(ii, c.sort.LenAccessor(x)))
			distinct := smt.Distinct(c.sort.ElemAt(x, ii), c.sort.ElemAt(x, jj))
			parts = append(parts, smt.Implies(bothInBounds, distinct))
		}
	}
	var body smt.AST
	if len(parts) == 0 {
		body = c.ctx.BoolVal(true)
	} else {
		body = smt.And(parts...)
	}
	leaf := smt.Implies(guard, body)
	return c.label(path, "uniqueItems", leaf), nil
}
