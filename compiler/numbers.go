package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// numericBound compiles one of minimum/maximum/exclusiveMinimum/
// exclusiveMaximum (spec §4.3): the constraint applies conditionally
// per numeric variant — "for integer x, int_val(x) [cmp] m; for real,
// real_val(x) [cmp] m" — implemented as an int_val cast to Real so a
// single comparator works for both branches, and vacuously true for
// non-numeric x (assertions only constrain applicable instances).
func (c *Compiler) numericBound(keyword string, bound json.Number, x smt.AST, path string, cmp func(a, b smt.AST) smt.AST) (smt.AST, error) {
	m := c.ctx.RealVal(bound.String())
	intBranch := smt.Implies(c.sort.Is(jsonval.KindInt, x), cmp(smt.ToReal(c.sort.IntAccessor(x)), m))
	realBranch := smt.Implies(c.sort.Is(jsonval.KindReal, x), cmp(c.sort.RealAccessor(x), m))
	leaf := smt.And(intBranch, realBranch)
	return c.label(path, keyword, leaf), nil
}

func ge(a, b smt.AST) smt.AST { return smt.Ge(a, b) }
func gt(a, b smt.AST) smt.AST { return smt.Gt(a, b) }
func le(a, b smt.AST) smt.AST { return smt.Le(a, b) }
func lt(a, b smt.AST) smt.AST { return smt.Lt(a, b) }

func (c *Compiler) compileNumeric(v map[string]any, x smt.AST, path string, add func(smt.AST, error) error) error {
	if m, ok := v["minimum"].(json.Number); ok {
		if err := add(c.numericBound("minimum", m, x, path, ge)); err != nil {
			return err
		}
	}
	if m, ok := v["maximum"].(json.Number); ok {
		if err := add(c.numericBound("maximum", m, x, path, le)); err != nil {
			return err
		}
	}
	// exclusiveMinimum/Maximum: draft-6+ numeric form, and the
	// draft-4/tony-adjacent boolean-modifier form (paired with
	// minimum/maximum) both need supporting, per SPEC_FULL.md §4.3.
	if em, ok := v["exclusiveMinimum"]; ok {
		switch t := em.(type) {
		case json.Number:
			if err := add(c.numericBound("exclusiveMinimum", t, x, path, gt)); err != nil {
				return err
			}
		case bool:
			if t {
				if m, ok := v["minimum"].(json.Number); ok {
					if err := add(c.numericBound("exclusiveMinimum", m, x, path, gt)); err != nil {
						return err
					}
				}
			}
		}
	}
	if em, ok := v["exclusiveMaximum"]; ok {
		switch t := em.(type) {
		case json.Number:
			if err := add(c.numericBound("exclusiveMaximum", t, x, path, lt)); err != nil {
				return err
			}
		case bool:
			if t {
				if m, ok := v["maximum"].(json.Number); ok {
					if err := add(c.numericBound("exclusiveMaximum", m, x, path, lt)); err != nil {
						return err
					}
				}
			}
		}
	}
	if k, ok := v["multipleOf"].(json.Number); ok {
		if err := add(c.compileMultipleOf(k, x, path)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileMultipleOf(k json.Number, x smt.AST, path string) (smt.AST, error) {
	if strings.ContainsAny(k.String(), ".eE") {
		return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, path, fmt.Errorf("compiler: multipleOf with a non-integer divisor (%s) is not supported", k.String()))
	}
	ki, err := k.Int64()
	if err != nil || ki == 0 {
		return smt.AST{}, jerr.New(jerr.UnsupportedKeyword, path, fmt.Errorf("compiler: multipleOf divisor %q is invalid", k.String()))
	}
	leaf := smt.Implies(
		c.sort.Is(jsonval.KindInt, x),
		smt.Eq(smt.Mod(c.sort.IntAccessor(x), c.ctx.IntVal(ki)), c.ctx.IntVal(0)),
	)
	return c.label(path, "multipleOf", leaf), nil
}
