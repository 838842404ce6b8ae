// Package jsonval implements the tagged JSON value sort (spec §3/§4.2):
// a seven-variant algebraic datatype plus the finite Keys/MaxArrayLen
// universes it is parameterized over, and the literal-lifting helper
// used to turn a decoded JSON value into an equality predicate.
//
// Grounded on _examples/original_source/core/json_encoding.py for the
// variant set and the elems/has/val uninterpreted-function encoding
// of arrays and objects; built on top of the smt package's datatype
// construction (itself generalizing the ADT pattern from
// _examples/other_examples/vhavlena-z3-go__z3.go).
package jsonval

import "github.com/jsound-go/jsound/smt"

// Kind enumerates the seven disjoint JSON value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindStr
	KindArr
	KindObj
)

var allKinds = []Kind{KindNull, KindBool, KindInt, KindReal, KindStr, KindArr, KindObj}

// Sort wraps the JSON algebraic datatype and its recognizers,
// accessors, and the uninterpreted functions used for array elements
// and object has/val relations.
type Sort struct {
	ctx *smt.Context
	DT  smt.Sort

	recognizer map[Kind]smt.FuncDecl
	boolVal    smt.FuncDecl
	intVal     smt.FuncDecl
	realVal    smt.FuncDecl
	strVal     smt.FuncDecl
	lenVal     smt.FuncDecl

	elemsFn smt.FuncDecl // JSON -> Array(Int, JSON)
	hasFn   smt.FuncDecl // JSON x String -> Bool
	valFn   smt.FuncDecl // JSON x String -> JSON

	strConsts map[string]smt.AST // memoized StringVal(key) per key
}

// NewSort constructs the JSON datatype and its associated functions
// in the given context. One Sort is built per subsumption check
// (spec §5: no process-wide singletons).
func NewSort(ctx *smt.Context) *Sort {
	boolSort := ctx.BoolSort()
	intSort := ctx.IntSort()
	realSort := ctx.RealSort()
	strSort := ctx.StringSort()

	nullCtor := ctx.MkConstructor("null", "is_null", nil)
	boolCtor := ctx.MkConstructor("bool", "is_bool", []smt.ADTField{{Name: "bool_val", Sort: boolSort}})
	intCtor := ctx.MkConstructor("int", "is_int", []smt.ADTField{{Name: "int_val", Sort: intSort}})
	realCtor := ctx.MkConstructor("real", "is_real", []smt.ADTField{{Name: "real_val", Sort: realSort}})
	strCtor := ctx.MkConstructor("str", "is_str", []smt.ADTField{{Name: "str_val", Sort: strSort}})
	arrCtor := ctx.MkConstructor("arr", "is_arr", []smt.ADTField{{Name: "arr_len", Sort: intSort}})
	objCtor := ctx.MkConstructor("obj", "is_obj", nil)

	dt, decls := ctx.MkDatatype("JSON", []*smt.Constructor{nullCtor, boolCtor, intCtor, realCtor, strCtor, arrCtor, objCtor})

	s := &Sort{
		ctx:        ctx,
		DT:         dt,
		recognizer: make(map[Kind]smt.FuncDecl, 7),
		strConsts:  make(map[string]smt.AST),
	}
	for i, k := range allKinds {
		s.recognizer[k] = decls[i].Recognizer
	}
	s.boolVal = decls[KindBool].Accessors[0]
	s.intVal = decls[KindInt].Accessors[0]
	s.realVal = decls[KindReal].Accessors[0]
	s.strVal = decls[KindStr].Accessors[0]
	s.lenVal = decls[KindArr].Accessors[0]

	s.elemsFn = ctx.FuncDecl("elems", []smt.Sort{dt}, ctx.ArraySort(intSort, dt))
	s.hasFn = ctx.FuncDecl("has", []smt.Sort{dt, strSort}, boolSort)
	s.valFn = ctx.FuncDecl("val", []smt.Sort{dt, strSort}, dt)
	return s
}

func (s *Sort) Var(name string) smt.AST { return s.ctx.Const(name, s.DT) }

func (s *Sort) Is(k Kind, x smt.AST) smt.AST { return s.ctx.App(s.recognizer[k], x) }

func (s *Sort) BoolAccessor(x smt.AST) smt.AST { return s.ctx.App(s.boolVal, x) }
func (s *Sort) IntAccessor(x smt.AST) smt.AST  { return s.ctx.App(s.intVal, x) }
func (s *Sort) RealAccessor(x smt.AST) smt.AST { return s.ctx.App(s.realVal, x) }
func (s *Sort) StrAccessor(x smt.AST) smt.AST  { return s.ctx.App(s.strVal, x) }
func (s *Sort) LenAccessor(x smt.AST) smt.AST  { return s.ctx.App(s.lenVal, x) }

// Elems returns the Array(Int, JSON) value backing an array's elements.
func (s *Sort) Elems(x smt.AST) smt.AST { return s.ctx.App(s.elemsFn, x) }

// ElemAt returns elems(x)[i].
func (s *Sort) ElemAt(x smt.AST, i smt.AST) smt.AST { return smt.Select(s.Elems(x), i) }

func (s *Sort) strConst(key string) smt.AST {
	if a, ok := s.strConsts[key]; ok {
		return a
	}
	a := s.ctx.StringVal(key)
	s.strConsts[key] = a
	return a
}

// Has returns has(x, key).
func (s *Sort) Has(x smt.AST, key string) smt.AST { return s.ctx.App(s.hasFn, x, s.strConst(key)) }

// Val returns val(x, key).
func (s *Sort) Val(x smt.AST, key string) smt.AST { return s.ctx.App(s.valFn, x, s.strConst(key)) }

// Ctx exposes the underlying context for callers that need to build
// raw literals (IntVal, StringVal, ...) alongside JSON-sort terms.
func (s *Sort) Ctx() *smt.Context { return s.ctx }
