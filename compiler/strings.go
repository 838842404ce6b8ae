package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

func (c *Compiler) compileString(v map[string]any, x smt.AST, path string, add func(smt.AST, error) error) error {
	if n, ok := v["minLength"].(json.Number); ok {
		if err := add(c.stringLength("minLength", n, x, path, ge)); err != nil {
			return err
		}
	}
	if n, ok := v["maxLength"].(json.Number); ok {
		if err := add(c.stringLength("maxLength", n, x, path, le)); err != nil {
			return err
		}
	}
	if pat, ok := v["pattern"].(string); ok {
		if err := add(c.compilePattern(pat, x, path)); err != nil {
			return err
		}
	}
	if f, ok := v["format"].(string); ok {
		if err := add(c.compileFormat(f, x, path)); err != nil {
			return err
		}
	}
	return nil
}

// stringLength compiles minLength/maxLength: vacuously true for
// non-string x, otherwise a bound on Length(str_val(x)).
func (c *Compiler) stringLength(keyword string, n json.Number, x smt.AST, path string, cmp func(a, b smt.AST) smt.AST) (smt.AST, error) {
	i, err := n.Int64()
	if err != nil {
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: %s must be an integer, got %q", keyword, n.String()))
	}
	leaf := smt.Implies(
		c.sort.Is(jsonval.KindStr, x),
		cmp(smt.Length(c.sort.StrAccessor(x)), c.ctx.IntVal(i)),
	)
	return c.label(path, keyword, leaf), nil
}

func (c *Compiler) compilePattern(pat string, x smt.AST, path string) (smt.AST, error) {
	re, err := TranslatePattern(c.ctx, c.ctx.StringSort(), pat)
	if err != nil {
		return smt.AST{}, jerr.New(jerr.UnsupportedRegex, path, fmt.Errorf("compiler: pattern %q: %w", pat, err))
	}
	leaf := smt.Implies(c.sort.Is(jsonval.KindStr, x), smt.InRe(c.sort.StrAccessor(x), re))
	return c.label(path, "pattern", leaf), nil
}

// compileFormat expands a known format name to its fixed regex plus a
// length bound; unknown formats are a documented no-op (spec §4.3).
func (c *Compiler) compileFormat(name string, x smt.AST, path string) (smt.AST, error) {
	spec, known := formatPatterns[name]
	if !known {
		return c.ctx.BoolVal(true), nil
	}
	re, err := TranslatePattern(c.ctx, c.ctx.StringSort(), spec.Pattern)
	if err != nil {
		return smt.AST{}, jerr.New(jerr.InternalInvariant, path, fmt.Errorf("compiler: built-in format %q pattern failed to compile: %w", name, err))
	}
	strVal := c.sort.StrAccessor(x)
	leaf := smt.Implies(
		c.sort.Is(jsonval.KindStr, x),
		smt.And(smt.InRe(strVal, re), smt.Le(smt.Length(strVal), c.ctx.IntVal(int64(spec.MaxLength)))),
	)
	return c.label(path, "format:"+name, leaf), nil
}
