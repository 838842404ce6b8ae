package subsumption

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsound-go/jsound/jerr"
	"github.com/jsound-go/jsound/jsonval"
	"github.com/jsound-go/jsound/smt"
)

// ExtractWitness reads a concrete JSON value back out of a satisfying
// model, following spec §4.4's five steps exactly: recognizer first,
// then per-variant reconstruction, always under model completion, and
// never inventing an object key or array element the model doesn't
// force.
func ExtractWitness(model *smt.Model, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST) (any, error) {
	return readValue(model, sort, univ, x, 0)
}

// maxWitnessDepth is a defensive recursion cap: arrays/objects only
// ever nest through elems/val applied to a strictly smaller model
// term in a well-formed model, but a malformed or adversarial model
// should fail loudly rather than loop forever.
const maxWitnessDepth = 64

func readValue(model *smt.Model, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, depth int) (any, error) {
	if depth > maxWitnessDepth {
		return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: witness nesting exceeded %d levels", maxWitnessDepth))
	}

	for _, k := range []jsonval.Kind{
		jsonval.KindNull, jsonval.KindBool, jsonval.KindInt, jsonval.KindReal,
		jsonval.KindStr, jsonval.KindArr, jsonval.KindObj,
	} {
		isK := model.Eval(sort.Is(k, x), true)
		b, err := isK.BoolValue()
		if err != nil {
			return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: evaluating recognizer: %w", err))
		}
		if !b {
			continue
		}
		switch k {
		case jsonval.KindNull:
			return nil, nil
		case jsonval.KindBool:
			v := model.Eval(sort.BoolAccessor(x), true)
			return v.BoolValue()
		case jsonval.KindInt:
			v := model.Eval(sort.IntAccessor(x), true)
			i, err := v.Int64Value()
			if err != nil {
				return nil, jerr.New(jerr.InternalInvariant, "", err)
			}
			return i, nil
		case jsonval.KindReal:
			v := model.Eval(sort.RealAccessor(x), true)
			return parseZ3Real(v.NumeralString())
		case jsonval.KindStr:
			v := model.Eval(sort.StrAccessor(x), true)
			return v.StringValue()
		case jsonval.KindArr:
			return readArray(model, sort, univ, x, depth)
		case jsonval.KindObj:
			return readObject(model, sort, univ, x, depth)
		}
	}
	return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: model term satisfied no JSON variant recognizer"))
}

// parseZ3Real converts Z3's numeral string for a Real value — either
// a plain decimal ("3.5") or a rational "a/b" — into a float64.
func parseZ3Real(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: parsing real numerator %q: %w", num, err))
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: parsing real denominator %q: %w", den, err))
		}
		return n / d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: parsing real %q: %w", s, err))
	}
	return f, nil
}

func readArray(model *smt.Model, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, depth int) (any, error) {
	lenAST := model.Eval(sort.LenAccessor(x), true)
	length, err := lenAST.Int64Value()
	if err != nil {
		return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: evaluating array length: %w", err))
	}
	if length < 0 {
		length = 0
	}
	if int(length) > univ.MaxArrayLen {
		length = int64(univ.MaxArrayLen)
	}
	ctx := sort.Ctx()
	result := make([]any, 0, length)
	for i := int64(0); i < length; i++ {
		elem := sort.ElemAt(x, ctx.IntVal(i))
		v, err := readValue(model, sort, univ, elem, depth+1)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func readObject(model *smt.Model, sort *jsonval.Sort, univ *jsonval.Universe, x smt.AST, depth int) (any, error) {
	result := make(map[string]any)
	for _, key := range univ.Keys {
		present := model.Eval(sort.Has(x, key), true)
		b, err := present.BoolValue()
		if err != nil {
			return nil, jerr.New(jerr.InternalInvariant, "", fmt.Errorf("subsumption: evaluating has(x,%q): %w", key, err))
		}
		if !b {
			continue
		}
		v, err := readValue(model, sort, univ, sort.Val(x, key), depth+1)
		if err != nil {
			return nil, err
		}
		result[key] = v
	}
	return result, nil
}
