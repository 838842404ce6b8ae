//go:build cgo
// +build cgo

// Package smt provides a Go binding to the subset of Z3's C API this
// repository's Schema Compiler and Solver Driver need: boolean,
// integer, real, string (with bounded regex), array, and algebraic
// datatype theories, plus the solver lifecycle and model readback.
package smt

/*
#include <stdlib.h>
#include "z3.h"

static Z3_symbol mk_str_symbol(Z3_context c, const char* s) {
	return Z3_mk_string_symbol(c, s);
}

// Wrap Z3_model_eval to avoid referencing Z3_bool / Z3_TRUE macros in cgo.
static int model_eval_wrap(Z3_context c, Z3_model m, Z3_ast a, int model_completion, Z3_ast* out) {
	return Z3_model_eval(c, m, a, model_completion, out);
}

static int bool_value_wrap(Z3_context c, Z3_ast a) {
	return (int)Z3_get_bool_value(c, a);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// Context wraps Z3_context.
type Context struct{ c C.Z3_context }

// Config wraps Z3_config.
type Config struct{ cfg C.Z3_config }

// NewConfig creates a default config and enables model construction.
func NewConfig() *Config {
	cfg := &Config{cfg: C.Z3_mk_config()}
	cfg.SetParam("model", "true")
	return cfg
}

// SetParam sets a configuration parameter before creating a context.
func (cfg *Config) SetParam(key, value string) {
	if cfg == nil || cfg.cfg == nil {
		return
	}
	k := C.CString(key)
	v := C.CString(value)
	C.Z3_set_param_value(cfg.cfg, k, v)
	C.free(unsafe.Pointer(k))
	C.free(unsafe.Pointer(v))
}

// Close frees the config.
func (cfg *Config) Close() {
	if cfg != nil && cfg.cfg != nil {
		C.Z3_del_config(cfg.cfg)
		cfg.cfg = nil
	}
}

// NewContext creates a new Z3 context with the given config (optional).
func NewContext(cfg *Config) *Context {
	var c C.Z3_context
	if cfg != nil {
		c = C.Z3_mk_context(cfg.cfg)
	} else {
		tmp := C.Z3_mk_config()
		c = C.Z3_mk_context(tmp)
		C.Z3_del_config(tmp)
	}
	ctx := &Context{c: c}
	runtime.SetFinalizer(ctx, func(x *Context) { x.Close() })
	return ctx
}

// Close deletes the context.
func (ctx *Context) Close() {
	if ctx != nil && ctx.c != nil {
		C.Z3_del_context(ctx.c)
		ctx.c = nil
	}
}

// Sort wraps Z3_sort.
type Sort struct {
	ctx *Context
	s   C.Z3_sort
}

// AST wraps Z3_ast.
type AST struct {
	ctx *Context
	a   C.Z3_ast
}

// FuncDecl wraps Z3_func_decl.
type FuncDecl struct {
	ctx *Context
	d   C.Z3_func_decl
}

// Solver wraps Z3_solver.
type Solver struct {
	ctx *Context
	s   C.Z3_solver
}

// Model wraps Z3_model.
type Model struct {
	ctx *Context
	m   C.Z3_model
}

// Valid reports whether the AST is non-nil (Model.Eval returns an
// invalid AST when the evaluation itself fails, not merely "unknown").
func (a AST) Valid() bool { return a.a != nil }

func (ctx *Context) BoolSort() Sort   { return Sort{ctx, C.Z3_mk_bool_sort(ctx.c)} }
func (ctx *Context) IntSort() Sort    { return Sort{ctx, C.Z3_mk_int_sort(ctx.c)} }
func (ctx *Context) RealSort() Sort   { return Sort{ctx, C.Z3_mk_real_sort(ctx.c)} }
func (ctx *Context) StringSort() Sort { return Sort{ctx, C.Z3_mk_string_sort(ctx.c)} }

// ArraySort returns Array(domain, rng).
func (ctx *Context) ArraySort(domain, rng Sort) Sort {
	return Sort{ctx, C.Z3_mk_array_sort(ctx.c, domain.s, rng.s)}
}

// ReSort returns the regular-expression sort over sequences of seqElem.
func (ctx *Context) ReSort(seqElem Sort) Sort {
	return Sort{ctx, C.Z3_mk_re_sort(ctx.c, seqElem.s)}
}

func (ctx *Context) stringSymbol(name string) C.Z3_symbol {
	cstr := C.CString(name)
	defer C.free(unsafe.Pointer(cstr))
	return C.mk_str_symbol(ctx.c, cstr)
}

// Const creates a constant with given name and sort.
func (ctx *Context) Const(name string, s Sort) AST {
	sym := ctx.stringSymbol(name)
	a := C.Z3_mk_const(ctx.c, sym, s.s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// FuncDecl declares an uninterpreted function from domain sorts to rng.
func (ctx *Context) FuncDecl(name string, domain []Sort, rng Sort) FuncDecl {
	sym := ctx.stringSymbol(name)
	n := len(domain)
	var dom *C.Z3_sort
	if n > 0 {
		sorts := make([]C.Z3_sort, n)
		for i, s := range domain {
			sorts[i] = s.s
		}
		dom = (*C.Z3_sort)(unsafe.Pointer(&sorts[0]))
	}
	d := C.Z3_mk_func_decl(ctx.c, sym, C.uint(n), dom, rng.s)
	return FuncDecl{ctx, d}
}

func (ctx *Context) IntVal(v int64) AST {
	a := C.Z3_mk_int64(ctx.c, C.longlong(v), ctx.IntSort().s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// RealVal creates a real numeral from a string like "1/3" or "2".
func (ctx *Context) RealVal(num string) AST {
	cstr := C.CString(num)
	defer C.free(unsafe.Pointer(cstr))
	a := C.Z3_mk_numeral(ctx.c, cstr, ctx.RealSort().s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func (ctx *Context) StringVal(s string) AST {
	cstr := C.CString(s)
	defer C.free(unsafe.Pointer(cstr))
	a := C.Z3_mk_string(ctx.c, cstr)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func (ctx *Context) BoolVal(b bool) AST {
	var a C.Z3_ast
	if b {
		a = C.Z3_mk_true(ctx.c)
	} else {
		a = C.Z3_mk_false(ctx.c)
	}
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func (t AST) Not() AST {
	a := C.Z3_mk_not(t.ctx.c, t.a)
	C.Z3_inc_ref(t.ctx.c, a)
	return AST{t.ctx, a}
}

func variadic(args []AST, f func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast) AST {
	if len(args) == 0 {
		panic("smt: variadic op requires at least one arg")
	}
	ctx := args[0].ctx
	cargs := make([]C.Z3_ast, len(args))
	for i, a := range args {
		cargs[i] = a.a
	}
	a := f(ctx.c, C.uint(len(cargs)), (*C.Z3_ast)(unsafe.Pointer(&cargs[0])))
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func And(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_and(c, n, a) })
}

func Or(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_or(c, n, a) })
}

func Add(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_add(c, n, a) })
}

func Sub(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_sub(c, n, a) })
}

func Mul(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_mul(c, n, a) })
}

func Distinct(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_distinct(c, n, a) })
}

// Concat concatenates sequences (strings) variadically.
func Concat(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_seq_concat(c, n, a) })
}

func binOp(x, y AST, f func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast) AST {
	ctx := x.ctx
	a := f(ctx.c, x.a, y.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func Eq(x, y AST) AST { return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_eq(c, a, b) }) }
func Le(x, y AST) AST { return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_le(c, a, b) }) }
func Lt(x, y AST) AST { return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_lt(c, a, b) }) }
func Ge(x, y AST) AST { return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_ge(c, a, b) }) }
func Gt(x, y AST) AST { return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_gt(c, a, b) }) }

// Implies builds (x => y).
func Implies(x, y AST) AST {
	return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_implies(c, a, b) })
}

// Ite builds if-then-else (c ? t : e).
func Ite(cnd, t, e AST) AST {
	ctx := cnd.ctx
	a := C.Z3_mk_ite(ctx.c, cnd.a, t.a, e.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// ToReal casts an Int-sorted AST to Real.
func ToReal(x AST) AST {
	ctx := x.ctx
	a := C.Z3_mk_int2real(ctx.c, x.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// Mod builds the integer modulus (x mod y).
func Mod(x, y AST) AST {
	return binOp(x, y, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_mod(c, a, b) })
}

// Length returns the length of a sequence (string) as an Int AST.
func Length(s AST) AST {
	ctx := s.ctx
	a := C.Z3_mk_seq_length(ctx.c, s.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// Contains returns (contains s t).
func Contains(s, t AST) AST {
	return binOp(s, t, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_seq_contains(c, a, b) })
}

// Select reads arr[idx] for an SMT array value.
func Select(arr, idx AST) AST {
	return binOp(arr, idx, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_select(c, a, b) })
}

// Store builds arr[idx := val].
func Store(arr, idx, val AST) AST {
	ctx := arr.ctx
	a := C.Z3_mk_store(ctx.c, arr.a, idx.a, val.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// --- Regex theory ---

// StrToRe lifts a string literal (or any sequence AST) into the
// regex matching exactly that sequence.
func StrToRe(s AST) AST {
	ctx := s.ctx
	a := C.Z3_mk_seq_to_re(ctx.c, s.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// InRe builds (str.in_re s r): s fully matches the regex r.
func InRe(s, r AST) AST {
	return binOp(s, r, func(c C.Z3_context, a, b C.Z3_ast) C.Z3_ast { return C.Z3_mk_seq_in_re(c, a, b) })
}

func ReUnion(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_re_union(c, n, a) })
}

func ReConcat(args ...AST) AST {
	return variadic(args, func(c C.Z3_context, n C.uint, a *C.Z3_ast) C.Z3_ast { return C.Z3_mk_re_concat(c, n, a) })
}

func ReStar(r AST) AST {
	ctx := r.ctx
	a := C.Z3_mk_re_star(ctx.c, r.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func RePlus(r AST) AST {
	ctx := r.ctx
	a := C.Z3_mk_re_plus(ctx.c, r.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

func ReOption(r AST) AST {
	ctx := r.ctx
	a := C.Z3_mk_re_option(ctx.c, r.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// ReLoop builds r{lo,hi} (bounded repetition).
func ReLoop(r AST, lo, hi uint) AST {
	ctx := r.ctx
	a := C.Z3_mk_re_loop(ctx.c, r.a, C.uint(lo), C.uint(hi))
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// ReComplement builds the regex matching any sequence NOT matched by r.
func ReComplement(r AST) AST {
	ctx := r.ctx
	a := C.Z3_mk_re_complement(ctx.c, r.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// ReDiff builds the regex matching a but not b.
func ReDiff(a, b AST) AST {
	return binOp(a, b, func(c C.Z3_context, x, y C.Z3_ast) C.Z3_ast { return C.Z3_mk_re_diff(c, x, y) })
}

// ReRange builds a regex matching any single character in [lo, hi].
func (ctx *Context) ReRange(lo, hi string) AST {
	loA := ctx.StringVal(lo)
	hiA := ctx.StringVal(hi)
	a := C.Z3_mk_re_range(ctx.c, loA.a, hiA.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// ReAllChar returns a regex matching exactly one arbitrary character.
func (ctx *Context) ReAllChar(seqSort Sort) AST {
	reSort := ctx.ReSort(seqSort)
	a := C.Z3_mk_re_allchar(ctx.c, reSort.s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// --- Solver API ---

func (ctx *Context) NewSolver() *Solver {
	s := &Solver{ctx, C.Z3_mk_solver(ctx.c)}
	C.Z3_solver_inc_ref(ctx.c, s.s)
	runtime.SetFinalizer(s, func(x *Solver) { x.Close() })
	return s
}

func (s *Solver) Close() {
	if s != nil && s.s != nil {
		C.Z3_solver_dec_ref(s.ctx.c, s.s)
		s.s = nil
	}
}

func (s *Solver) Assert(a AST) { C.Z3_solver_assert(s.ctx.c, s.s, a.a) }

// Push creates a new solver scope.
func (s *Solver) Push() { C.Z3_solver_push(s.ctx.c, s.s) }

// Pop removes n scopes.
func (s *Solver) Pop(n uint) { C.Z3_solver_pop(s.ctx.c, s.s, C.uint(n)) }

// SetTimeout sets the solver's per-call millisecond timeout.
func (s *Solver) SetTimeout(ms uint) {
	params := C.Z3_mk_params(s.ctx.c)
	C.Z3_params_inc_ref(s.ctx.c, params)
	defer C.Z3_params_dec_ref(s.ctx.c, params)
	k := s.ctx.stringSymbol("timeout")
	C.Z3_params_set_uint(s.ctx.c, params, k, C.uint(ms))
	C.Z3_solver_set_params(s.ctx.c, s.s, params)
}

// App applies a function declaration to arguments, producing an AST.
func (ctx *Context) App(f FuncDecl, args ...AST) AST {
	var a C.Z3_ast
	if len(args) == 0 {
		a = C.Z3_mk_app(ctx.c, f.d, 0, nil)
	} else {
		cargs := make([]C.Z3_ast, len(args))
		for i, v := range args {
			cargs[i] = v.a
		}
		a = C.Z3_mk_app(ctx.c, f.d, C.uint(len(cargs)), (*C.Z3_ast)(unsafe.Pointer(&cargs[0])))
	}
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// --- ADT (algebraic data type) support ---

// Constructor is a temporary object used when creating datatypes.
type Constructor struct {
	ctx *Context
	c   C.Z3_constructor
}

// ADTField describes a field name and sort for a constructor (non-recursive).
type ADTField struct {
	Name string
	Sort Sort
}

// MkConstructor creates a constructor descriptor with explicit recognizer and fields.
func (ctx *Context) MkConstructor(name, recognizer string, fields []ADTField) *Constructor {
	symName := ctx.stringSymbol(name)
	symRec := ctx.stringSymbol(recognizer)

	n := len(fields)
	var fieldSyms *C.Z3_symbol
	var fieldSorts *C.Z3_sort
	var sortRefs *C.uint
	if n > 0 {
		syms := make([]C.Z3_symbol, n)
		sorts := make([]C.Z3_sort, n)
		refs := make([]C.uint, n)
		for i, f := range fields {
			cstr := C.CString(f.Name)
			syms[i] = C.mk_str_symbol(ctx.c, cstr)
			C.free(unsafe.Pointer(cstr))
			sorts[i] = f.Sort.s
			refs[i] = 0
		}
		fieldSyms = (*C.Z3_symbol)(unsafe.Pointer(&syms[0]))
		fieldSorts = (*C.Z3_sort)(unsafe.Pointer(&sorts[0]))
		sortRefs = (*C.uint)(unsafe.Pointer(&refs[0]))
	}
	c := C.Z3_mk_constructor(ctx.c, symName, symRec, C.uint(n), fieldSyms, fieldSorts, sortRefs)
	return &Constructor{ctx: ctx, c: c}
}

// ADTConstructorDecl contains the usable function declarations extracted from a constructor.
type ADTConstructorDecl struct {
	Constructor FuncDecl
	Recognizer  FuncDecl
	Accessors   []FuncDecl
}

// MkDatatype creates a datatype sort from constructors, and returns the sort and per-constructor declarations.
func (ctx *Context) MkDatatype(name string, ctors []*Constructor) (Sort, []ADTConstructorDecl) {
	sym := ctx.stringSymbol(name)
	n := len(ctors)
	var arr *C.Z3_constructor
	if n > 0 {
		carr := make([]C.Z3_constructor, n)
		for i, k := range ctors {
			carr[i] = k.c
		}
		arr = (*C.Z3_constructor)(unsafe.Pointer(&carr[0]))
	}
	srt := C.Z3_mk_datatype(ctx.c, sym, C.uint(n), arr)
	decls := make([]ADTConstructorDecl, n)
	for i := 0; i < n; i++ {
		k := ctors[i]
		nf := int(C.Z3_constructor_num_fields(ctx.c, k.c))
		var fdecl C.Z3_func_decl
		var rdecl C.Z3_func_decl
		var acc *C.Z3_func_decl
		if nf > 0 {
			accArr := make([]C.Z3_func_decl, nf)
			acc = (*C.Z3_func_decl)(unsafe.Pointer(&accArr[0]))
			C.Z3_query_constructor(ctx.c, k.c, C.uint(nf), &fdecl, &rdecl, acc)
			accOut := make([]FuncDecl, nf)
			for j := 0; j < nf; j++ {
				accOut[j] = FuncDecl{ctx, accArr[j]}
			}
			decls[i] = ADTConstructorDecl{Constructor: FuncDecl{ctx, fdecl}, Recognizer: FuncDecl{ctx, rdecl}, Accessors: accOut}
		} else {
			C.Z3_query_constructor(ctx.c, k.c, 0, &fdecl, &rdecl, nil)
			decls[i] = ADTConstructorDecl{Constructor: FuncDecl{ctx, fdecl}, Recognizer: FuncDecl{ctx, rdecl}, Accessors: nil}
		}
		C.Z3_del_constructor(ctx.c, k.c)
	}
	return Sort{ctx, srt}, decls
}

type CheckResult int

const (
	Unknown CheckResult = iota
	Sat
	Unsat
)

func (r CheckResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

func (s *Solver) Check() (CheckResult, error) {
	r := C.Z3_solver_check(s.ctx.c, s.s)
	switch r {
	case C.Z3_L_TRUE:
		return Sat, nil
	case C.Z3_L_FALSE:
		return Unsat, nil
	default:
		rstr := C.Z3_solver_get_reason_unknown(s.ctx.c, s.s)
		if rstr != nil {
			return Unknown, errors.New(C.GoString(rstr))
		}
		return Unknown, errors.New("unknown")
	}
}

func (s *Solver) Model() *Model {
	m := C.Z3_solver_get_model(s.ctx.c, s.s)
	if m == nil {
		return nil
	}
	C.Z3_model_inc_ref(s.ctx.c, m)
	mod := &Model{s.ctx, m}
	runtime.SetFinalizer(mod, func(x *Model) { x.Close() })
	return mod
}

func (m *Model) Close() {
	if m != nil && m.m != nil {
		C.Z3_model_dec_ref(m.ctx.c, m.m)
		m.m = nil
	}
}

// Eval evaluates an AST in the model, with model completion optionally
// requesting a default value for unconstrained subexpressions.
func (m *Model) Eval(a AST, modelCompletion bool) AST {
	var out C.Z3_ast
	mc := C.int(0)
	if modelCompletion {
		mc = C.int(1)
	}
	ok := C.model_eval_wrap(m.ctx.c, m.m, a.a, mc, &out)
	if ok == 0 || out == nil {
		return AST{m.ctx, nil}
	}
	C.Z3_inc_ref(m.ctx.c, out)
	return AST{m.ctx, out}
}

func (m *Model) String() string {
	if m == nil || m.m == nil {
		return "<nil-model>"
	}
	s := C.Z3_model_to_string(m.ctx.c, m.m)
	if s == nil {
		return "<invalid-model>"
	}
	return C.GoString(s)
}

func (a AST) String() string {
	if a.a == nil {
		return "<nil>"
	}
	s := C.Z3_ast_to_string(a.ctx.c, a.a)
	if s == nil {
		return "<invalid>"
	}
	return C.GoString(s)
}

func (s Sort) String() string {
	str := C.Z3_sort_to_string(s.ctx.c, s.s)
	if str == nil {
		return "<invalid-sort>"
	}
	return C.GoString(str)
}

// NumeralString returns a textual numeral if the AST is numeric; otherwise a string form.
func (a AST) NumeralString() string {
	if a.a == nil {
		return ""
	}
	s := C.Z3_get_numeral_string(a.ctx.c, a.a)
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// Int64Value reads a model-evaluated integer numeral.
func (a AST) Int64Value() (int64, error) {
	var v C.longlong
	if C.Z3_get_numeral_int64(a.ctx.c, a.a, &v) == 0 {
		return 0, fmt.Errorf("smt: %q is not an integer numeral", a.String())
	}
	return int64(v), nil
}

// StringValue reads a model-evaluated string literal.
func (a AST) StringValue() (string, error) {
	if a.a == nil {
		return "", errors.New("smt: nil ast")
	}
	if C.Z3_is_string(a.ctx.c, a.a) == 0 {
		return "", fmt.Errorf("smt: %q is not a string literal", a.String())
	}
	s := C.Z3_get_string(a.ctx.c, a.a)
	return C.GoString(s), nil
}

// BoolValue reads a model-evaluated boolean constant.
func (a AST) BoolValue() (bool, error) {
	switch C.bool_value_wrap(a.ctx.c, a.a) {
	case C.Z3_L_TRUE:
		return true, nil
	case C.Z3_L_FALSE:
		return false, nil
	default:
		return false, fmt.Errorf("smt: %q is not a boolean constant", a.String())
	}
}
