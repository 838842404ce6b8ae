package compiler

import (
	"fmt"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

func (c *Compiler) typeRecognizer(name string, x smt.AST) (smt.AST, error) {
	switch name {
	case "null":
		return c.sort.Is(jsonval.KindNull, x), nil
	case "boolean":
		return c.sort.Is(jsonval.KindBool, x), nil
	case "integer":
		return c.sort.Is(jsonval.KindInt, x), nil
	case "number":
		return smt.Or(c.sort.Is(jsonval.KindInt, x), c.sort.Is(jsonval.KindReal, x)), nil
	case "string":
		return c.sort.Is(jsonval.KindStr, x), nil
	case "array":
		return c.sort.Is(jsonval.KindArr, x), nil
	case "object":
		return c.sort.Is(jsonval.KindObj, x), nil
	default:
		return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, "", fmt.Errorf("compiler: unknown type name %q", name))
	}
}

// compileType handles both the single-string and array-of-strings
// forms of the "type" keyword (spec §4.3).
func (c *Compiler) compileType(t any, x smt.AST, path string) (smt.AST, error) {
	var leaf smt.AST
	switch v := t.(type) {
	case string:
		r, err := c.typeRecognizer(v, x)
		if err != nil {
			return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, path, err)
		}
		leaf = r
	case []any:
		var disj []smt.AST
		for _, n := range v {
			name, ok := n.(string)
			if !ok {
				return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: type array element is not a string: %v", n))
			}
			r, err := c.typeRecognizer(name, x)
			if err != nil {
				return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, path, err)
			}
			disj = append(disj, r)
		}
		if len(disj) == 0 {
			leaf = c.ctx.BoolVal(true)
		} else {
			leaf = smt.Or(disj...)
		}
	default:
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: type keyword has unexpected shape %T", t))
	}
	return c.label(path, "type", leaf), nil
}

func (c *Compiler) compileConst(v any, x smt.AST, path string) (smt.AST, error) {
	leaf, err := jsonval.Lift(c.sort, c.univ, x, v)
	if err != nil {
		return smt.AST{}, err
	}
	return c.label(path, "const", leaf), nil
}

func (c *Compiler) compileEnum(vals []any, x smt.AST, path string) (smt.AST, error) {
	var disj []smt.AST
	for _, v := range vals {
		eq, err := jsonval.Lift(c.sort, c.univ, x, v)
		if err != nil {
			return smt.AST{}, err
		}
		disj = append(disj, eq)
	}
	var leaf smt.AST
	if len(disj) == 0 {
		leaf = c.ctx.BoolVal(false)
	} else {
		leaf = smt.Or(disj...)
	}
	return c.label(path, "enum", leaf), nil
}

func (c *Compiler) compileAllAny(kw string, subs []any, x smt.AST, path string) (smt.AST, error) {
	preds, err := c.compileEach(kw, subs, x, path)
	if err != nil {
		return smt.AST{}, err
	}
	if len(preds) == 0 {
		return c.ctx.BoolVal(true), nil
	}
	if kw == "allOf" {
		return smt.And(preds...), nil
	}
	return smt.Or(preds...), nil
}

// compileOneOf enforces both "at least one" and "at most one" via
// pairwise mutual exclusion, one exclusion clause per pair of branches
// (quadratic in arity) — directly
// generalizing the per-position mutex-clause generation in
// _examples/signadot-tony-format/go-tony/schema/formula_builder.go's
// addMutexClauses, there used for tony's type tags.
func (c *Compiler) compileOneOf(subs []any, x smt.AST, path string) (smt.AST, error) {
	preds, err := c.compileEach("oneOf", subs, x, path)
	if err != nil {
		return smt.AST{}, err
	}
	if len(preds) == 0 {
		return c.ctx.BoolVal(true), nil
	}
	atLeastOne := smt.Or(preds...)
	parts := []smt.AST{atLeastOne}
	for i := 0; i < len(preds); i++ {
		for j := i + 1; j < len(preds); j++ {
			parts = append(parts, smt.And(preds[i], preds[j]).Not())
		}
	}
	return smt.And(parts...), nil
}

func (c *Compiler) compileEach(kw string, subs []any, x smt.AST, path string) ([]smt.AST, error) {
	preds := make([]smt.AST, 0, len(subs))
	for i, sub := range subs {
		p, err := c.compile(sub, x, childPath(path, fmt.Sprintf("%s/%d", kw, i)))
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func (c *Compiler) compileNot(sub any, x smt.AST, path string) (smt.AST, error) {
	p, err := c.compile(sub, x, childPath(path, "not"))
	if err != nil {
		return smt.AST{}, err
	}
	return p.Not(), nil
}

// compileIfThenElse implements (if -> then) AND (not if -> else),
// with absent then/else defaulting to true (spec §4.3).
func (c *Compiler) compileIfThenElse(v map[string]any, x smt.AST, path string) (smt.AST, error) {
	ifPred, err := c.compile(v["if"], x, childPath(path, "if"))
	if err != nil {
		return smt.AST{}, err
	}
	thenPred := c.ctx.BoolVal(true)
	if t, ok := v["then"]; ok {
		thenPred, err = c.compile(t, x, childPath(path, "then"))
		if err != nil {
			return smt.AST{}, err
		}
	}
	elsePred := c.ctx.BoolVal(true)
	if e, ok := v["else"]; ok {
		elsePred, err = c.compile(e, x, childPath(path, "else"))
		if err != nil {
			return smt.AST{}, err
		}
	}
	return smt.And(smt.Implies(ifPred, thenPred), smt.Implies(ifPred.Not(), elsePred)), nil
}
