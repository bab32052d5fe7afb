// Package objects defines VirtoLang's tagged value model: the dynamic
// types every expression evaluates to, plus the two control-flow signal
// wrappers (Return, Raised) the evaluator threads through statement
// execution. Grounded on go-mix's objects.GoMixObject/ReturnValue
// pattern, extended with the container and error-kind machinery
// spec.md §3.3/§4.5 require.
package objects

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Virtosync/VirtoLang/lexer"
)

// Type names the dynamic type of a Value for type-checking and display.
type Type string

const (
	IntType      Type = "int"
	FloatType    Type = "float"
	StringType   Type = "string"
	BoolType     Type = "bool"
	NullType     Type = "null"
	ListType     Type = "list"
	DictType     Type = "dict"
	SetType      Type = "set"
	TupleType    Type = "tuple"
	FunctionType Type = "function"
	BuiltinType  Type = "builtin"
	TaskType     Type = "task"
	ErrorType    Type = "error"
	FileType     Type = "file"
)

// Value is implemented by every runtime value in VirtoLang.
type Value interface {
	Type() Type
	String() string
	Inspect() string
}

// Hashable values may be used as dict keys or set members.
type Hashable interface {
	HashKey() string
}

// Integer wraps a signed integer. The spec recommends arbitrary
// precision "at minimum 64-bit"; int64 is used here as the practical
// floor the teacher's own Integer type also picks.
type Integer struct{ Value int64 }

func (i *Integer) Type() Type        { return IntType }
func (i *Integer) String() string    { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Inspect() string   { return i.String() }
func (i *Integer) HashKey() string   { return "i:" + i.String() }

// Float wraps a 64-bit floating point value.
type Float struct{ Value float64 }

func (f *Float) Type() Type      { return FloatType }
func (f *Float) Inspect() string { return f.String() }
func (f *Float) HashKey() string { return "f:" + f.String() }
func (f *Float) String() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// String is an immutable text value.
type String struct{ Value string }

func (s *String) Type() Type        { return StringType }
func (s *String) String() string    { return s.Value }
func (s *String) Inspect() string   { return fmt.Sprintf("%q", s.Value) }
func (s *String) HashKey() string   { return "s:" + s.Value }

// Boolean wraps true/false. True and False below are the canonical
// singletons so identity (`is`) comparison is trivially correct.
type Boolean struct{ Value bool }

func (b *Boolean) Type() Type      { return BoolType }
func (b *Boolean) String() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Inspect() string { return b.String() }
func (b *Boolean) HashKey() string { return "b:" + b.String() }

// True and False are the language's singleton booleans.
var (
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
)

// Bool returns the canonical singleton for a Go bool.
func Bool(v bool) *Boolean {
	if v {
		return True
	}
	return False
}

// Null is the language's singleton null/None value.
type Null struct{}

func (n *Null) Type() Type      { return NullType }
func (n *Null) String() string  { return "null" }
func (n *Null) Inspect() string { return "null" }
func (n *Null) HashKey() string { return "null" }

// NullValue is the canonical singleton null.
var NullValue = &Null{}

// List is an ordered, mutable, reference-shared sequence.
type List struct{ Elements []Value }

func (l *List) Type() Type { return ListType }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Inspect() string { return l.String() }

// Tuple is an immutable, ordered sequence.
type Tuple struct{ Elements []Value }

func (t *Tuple) Type() Type { return TupleType }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Inspect() string { return t.String() }

// Dict is an insertion-ordered, mutable, reference-shared mapping from
// string/number keys to values.
type Dict struct {
	Keys   []string
	Pairs  map[string]Value
	KeyObj map[string]Value // original key value, for iteration/display
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{Pairs: map[string]Value{}, KeyObj: map[string]Value{}}
}

func (d *Dict) Type() Type { return DictType }

// Set inserts or overwrites a key, preserving first-insertion order.
func (d *Dict) Set(key Hashable, value Value) {
	hk := key.HashKey()
	if _, exists := d.Pairs[hk]; !exists {
		d.Keys = append(d.Keys, hk)
	}
	d.Pairs[hk] = value
	d.KeyObj[hk] = key.(Value)
}

// Get looks up a key, reporting whether it was present.
func (d *Dict) Get(key Hashable) (Value, bool) {
	v, ok := d.Pairs[key.HashKey()]
	return v, ok
}

// Delete removes a key if present.
func (d *Dict) Delete(key Hashable) {
	hk := key.HashKey()
	if _, ok := d.Pairs[hk]; !ok {
		return
	}
	delete(d.Pairs, hk)
	delete(d.KeyObj, hk)
	for i, k := range d.Keys {
		if k == hk {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			break
		}
	}
}

func (d *Dict) String() string {
	parts := make([]string, 0, len(d.Keys))
	for _, hk := range d.Keys {
		parts = append(parts, fmt.Sprintf("%s: %s", d.KeyObj[hk].Inspect(), d.Pairs[hk].Inspect()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) Inspect() string { return d.String() }

// Set is a collection of unique, hashable values, iterated in insertion
// order and displayed with its members sorted by their text.
type Set struct {
	order  []string
	values map[string]Value
}

// NewSet creates an empty set.
func NewSet() *Set { return &Set{values: map[string]Value{}} }

func (s *Set) Type() Type { return SetType }

// Add inserts v if not already present.
func (s *Set) Add(v Value) {
	h, ok := v.(Hashable)
	if !ok {
		return
	}
	key := h.HashKey()
	if _, exists := s.values[key]; exists {
		return
	}
	s.order = append(s.order, key)
	s.values[key] = v
}

// Has reports whether v is a member.
func (s *Set) Has(v Value) bool {
	h, ok := v.(Hashable)
	if !ok {
		return false
	}
	_, exists := s.values[h.HashKey()]
	return exists
}

// Elements returns the set's members in insertion order.
func (s *Set) Elements() []Value {
	out := make([]Value, len(s.order))
	for i, k := range s.order {
		out[i] = s.values[k]
	}
	return out
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) String() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, s.values[k].Inspect())
	}
	sort.Strings(parts)
	return "set{" + strings.Join(parts, ", ") + "}"
}
func (s *Set) Inspect() string { return s.String() }

// File is an opaque handle around an open os.File, per spec.md §3.3's
// "file handle (opaque)" value kind. Closed is tracked so a double
// close or a read/write after close reports a clean RuntimeError
// instead of relying on the os package's own error text.
type File struct {
	Handle *os.File
	Path   string
	Closed bool
}

func (f *File) Type() Type      { return FileType }
func (f *File) String() string  { return fmt.Sprintf("<file %s>", f.Path) }
func (f *File) Inspect() string { return f.String() }

// Error is a raised VirtoLang exception: a message, a kind tag used for
// except-clause matching, and the span where it was raised. Hint carries
// the parser's optional suggestion for syntax errors (e.g. "Did you mean
// 'not in' or 'is not'?"); Trace accumulates call-site spans as the
// signal unwinds through nested function calls.
type Error struct {
	Message string
	Kind    string
	Hint    string
	Span    lexer.Span
	Trace   []lexer.Span
}

func (e *Error) Type() Type      { return ErrorType }
func (e *Error) String() string  { return e.Message }
func (e *Error) Inspect() string { return fmt.Sprintf("<%s: %s>", e.Kind, e.Message) }

// NewError builds a user-raised error with the default "Error" kind tag.
func NewError(message string, span lexer.Span) *Error {
	return &Error{Message: message, Kind: "Error", Span: span}
}

// Return signals that a `return` statement has unwound to a function
// call boundary, carrying the returned value. It is never exposed to
// user code directly.
type Return struct{ Value Value }

func (r *Return) Type() Type      { return r.Value.Type() }
func (r *Return) String() string  { return r.Value.String() }
func (r *Return) Inspect() string { return r.Value.Inspect() }

// Raised signals that a `raise` has unwound the stack looking for a
// matching except clause.
type Raised struct{ Err *Error }

func (r *Raised) Type() Type      { return ErrorType }
func (r *Raised) String() string  { return r.Err.String() }
func (r *Raised) Inspect() string { return r.Err.Inspect() }

// IsTruthy implements the truthiness rule from spec.md §8: null, false,
// 0, 0.0, "", [], {}, set{}, and () are falsy; everything else is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case *Null:
		return false
	case *Boolean:
		return val.Value
	case *Integer:
		return val.Value != 0
	case *Float:
		return val.Value != 0
	case *String:
		return val.Value != ""
	case *List:
		return len(val.Elements) != 0
	case *Tuple:
		return len(val.Elements) != 0
	case *Dict:
		return len(val.Keys) != 0
	case *Set:
		return val.Len() != 0
	default:
		return true
	}
}

// Equal implements structural `==` comparison for primitives and
// containers, per spec.md §4.3.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Integer:
		switch bv := b.(type) {
		case *Integer:
			return av.Value == bv.Value
		case *Float:
			return float64(av.Value) == bv.Value
		}
		return false
	case *Float:
		switch bv := b.(type) {
		case *Integer:
			return av.Value == float64(bv.Value)
		case *Float:
			return av.Value == bv.Value
		}
		return false
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || len(av.Keys) != len(bv.Keys) {
			return false
		}
		for _, k := range av.Keys {
			bval, ok := bv.Pairs[k]
			if !ok || !Equal(av.Pairs[k], bval) {
				return false
			}
		}
		return true
	case *Set:
		bv, ok := b.(*Set)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.Elements() {
			if !bv.Has(e) {
				return false
			}
		}
		return true
	}
	return a == b
}

// Identical implements `is` comparison: identity for heap values,
// value equality for primitives, per spec.md §3.3/§4.3.
func Identical(a, b Value) bool {
	switch a.(type) {
	case *Integer, *Float, *String, *Boolean, *Null:
		return Equal(a, b)
	}
	return a == b
}
