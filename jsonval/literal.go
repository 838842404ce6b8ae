package jsonval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/smt"
)

// Lift builds the predicate "x equals this literal" for a decoded
// JSON value (spec §4.2). val must have come from a json.Decoder with
// UseNumber() enabled, so integers and reals can be told apart the
// same way the compiler distinguishes `type: integer` from
// `type: number`.
//
// Composite literals expand into a conjunction over the sealed Keys
// and MaxArrayLen universes (spec §4.2: "the lifter uses the
// configured MAX_ARRAY_LEN ... and Keys ... literals with
// out-of-universe keys are rejected as unconvertible").
func Lift(s *Sort, u *Universe, x smt.AST, val any) (smt.AST, error) {
	ctx := s.Ctx()
	switch v := val.(type) {
	case nil:
		return s.Is(KindNull, x), nil
	case bool:
		return smt.And(s.Is(KindBool, x), smt.Eq(s.BoolAccessor(x), ctx.BoolVal(v))), nil
	case json.Number:
		return liftNumber(s, x, v)
	case string:
		return smt.And(s.Is(KindStr, x), smt.Eq(s.StrAccessor(x), ctx.StringVal(v))), nil
	case []any:
		return liftArray(s, u, x, v)
	case map[string]any:
		return liftObject(s, u, x, v)
	default:
		return smt.AST{}, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("jsonval: unsupported literal type %T", val))
	}
}

func liftNumber(s *Sort, x smt.AST, n json.Number) (smt.AST, error) {
	ctx := s.Ctx()
	str := n.String()
	if !strings.ContainsAny(str, ".eE") {
		i, err := n.Int64()
		if err == nil {
			return smt.And(s.Is(KindInt, x), smt.Eq(s.IntAccessor(x), ctx.IntVal(i))), nil
		}
	}
	return smt.And(s.Is(KindReal, x), smt.Eq(s.RealAccessor(x), ctx.RealVal(str))), nil
}

func liftArray(s *Sort, u *Universe, x smt.AST, v []any) (smt.AST, error) {
	if len(v) > u.MaxArrayLen {
		return smt.AST{}, jerr.New(jerr.BoundExceeded, "", fmt.Errorf("jsonval: array literal of length %d exceeds MaxArrayLen %d", len(v), u.MaxArrayLen))
	}
	ctx := s.Ctx()
	parts := []smt.AST{s.Is(KindArr, x), smt.Eq(s.LenAccessor(x), ctx.IntVal(int64(len(v))))}
	for i, elem := range v {
		elemPred, err := Lift(s, u, s.ElemAt(x, ctx.IntVal(int64(i))), elem)
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, elemPred)
	}
	return smt.And(parts...), nil
}

func liftObject(s *Sort, u *Universe, x smt.AST, v map[string]any) (smt.AST, error) {
	for k := range v {
		if !u.HasKey(k) {
			return smt.AST{}, jerr.New(jerr.BoundExceeded, "", fmt.Errorf("jsonval: object literal key %q is outside the sealed key universe", k))
		}
	}
	ctx := s.Ctx()
	parts := []smt.AST{s.Is(KindObj, x)}
	for _, k := range u.Keys {
		val, present := v[k]
		parts = append(parts, smt.Eq(s.Has(x, k), ctx.BoolVal(present)))
		if present {
			valPred, err := Lift(s, u, s.Val(x, k), val)
			if err != nil {
				return smt.AST{}, err
			}
			parts = append(parts, valPred)
		}
	}
	return smt.And(parts...), nil
}
