package eval

import (
	"fmt"

	"github.com/Virtosync/VirtoLang/async"
	"github.com/Virtosync/VirtoLang/function"
	"github.com/Virtosync/VirtoLang/lexer"
	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
)

func (e *Evaluator) evalCall(n *parser.CallExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	callee, sig := e.evalExpr(n.Callee, frame)
	if sig != nil {
		return nil, sig
	}
	args := make([]objects.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, sig := e.evalExpr(a, frame)
		if sig != nil {
			return nil, sig
		}
		args = append(args, v)
	}
	return e.callValue(callee, args, n.Span())
}

// callValue implements spec.md §4.3's function-call mechanics for both
// user-defined functions and host builtins.
func (e *Evaluator) callValue(callee objects.Value, args []objects.Value, span lexer.Span) (objects.Value, objects.Value) {
	switch fn := callee.(type) {
	case *function.Function:
		if len(args) != len(fn.Params) {
			return nil, raise("ArgumentError", fmt.Sprintf("%s takes %d argument(s), got %d", fn.String(), len(fn.Params), len(args)), span)
		}
		runBody := func() (objects.Value, *objects.Error) {
			child := scope.NewFrame(fn.Closure)
			for i, p := range fn.Params {
				child.SetLocal(p, args[i])
			}
			sig := e.evalBlock(fn.Body, child)
			switch s := sig.(type) {
			case *objects.Return:
				return s.Value, nil
			case *objects.Raised:
				return nil, s.Err
			default:
				return objects.NullValue, nil
			}
		}
		if fn.Async {
			t := async.Spawn(runBody, e.lock, e.unlock)
			return t, nil
		}
		v, err := runBody()
		if err != nil {
			err.Trace = append(err.Trace, span)
			return nil, &objects.Raised{Err: err}
		}
		// Custom-exception-class convention (spec.md §9/SPEC_FULL.md §14):
		// a named function that returns a default-tagged Error value is
		// treated as that error's class, so `raise ValueError("bad")`
		// produces a Kind of "ValueError" rather than the generic "Error".
		if errVal, ok := v.(*objects.Error); ok && errVal.Kind == "Error" && fn.Name != "" {
			errVal.Kind = fn.Name
		}
		return v, nil

	case *function.Builtin:
		if err := fn.CheckArity(len(args)); err != nil {
			err.Span = span
			return nil, &objects.Raised{Err: err}
		}
		v, err := fn.Fn(args)
		if err != nil {
			if err.Span == (lexer.Span{}) {
				err.Span = span
			}
			return nil, &objects.Raised{Err: err}
		}
		return v, nil

	default:
		return nil, raise("TypeError", fmt.Sprintf("%s is not callable", callee.Type()), span)
	}
}

func (e *Evaluator) evalIndex(n *parser.IndexExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	target, sig := e.evalExpr(n.Target, frame)
	if sig != nil {
		return nil, sig
	}
	idx, sig := e.evalExpr(n.Index, frame)
	if sig != nil {
		return nil, sig
	}
	v, err := indexInto(target, idx)
	if err != nil {
		return nil, raise(err.kind, err.msg, n.Span())
	}
	return v, nil
}

type indexError struct{ kind, msg string }

func (e *indexError) Error() string { return e.msg }

func indexInto(target, idx objects.Value) (objects.Value, *indexError) {
	switch t := target.(type) {
	case *objects.List:
		i, ok := idx.(*objects.Integer)
		if !ok {
			return nil, &indexError{"TypeError", "list index must be an integer"}
		}
		pos := normalizeIndex(i.Value, len(t.Elements))
		if pos < 0 || pos >= len(t.Elements) {
			return nil, &indexError{"RuntimeError", "list index out of range"}
		}
		return t.Elements[pos], nil
	case *objects.Tuple:
		i, ok := idx.(*objects.Integer)
		if !ok {
			return nil, &indexError{"TypeError", "tuple index must be an integer"}
		}
		pos := normalizeIndex(i.Value, len(t.Elements))
		if pos < 0 || pos >= len(t.Elements) {
			return nil, &indexError{"RuntimeError", "tuple index out of range"}
		}
		return t.Elements[pos], nil
	case *objects.String:
		i, ok := idx.(*objects.Integer)
		if !ok {
			return nil, &indexError{"TypeError", "string index must be an integer"}
		}
		runes := []rune(t.Value)
		pos := normalizeIndex(i.Value, len(runes))
		if pos < 0 || pos >= len(runes) {
			return nil, &indexError{"RuntimeError", "string index out of range"}
		}
		return &objects.String{Value: string(runes[pos])}, nil
	case *objects.Dict:
		key, ok := idx.(objects.Hashable)
		if !ok {
			return nil, &indexError{"TypeError", "unhashable dict key"}
		}
		v, found := t.Get(key)
		if !found {
			return nil, &indexError{"RuntimeError", "key not found: " + idx.Inspect()}
		}
		return v, nil
	default:
		return nil, &indexError{"TypeError", fmt.Sprintf("%s is not indexable", target.Type())}
	}
}

func normalizeIndex(i int64, length int) int {
	if i < 0 {
		return length + int(i)
	}
	return int(i)
}

// evalIndexAssign evaluates `target[index] = value`, the mutating
// counterpart of evalIndex: put a key into a dict, or overwrite an
// existing list element. Tuples stay immutable per spec.md §3, so
// assigning into one is a TypeError.
func (e *Evaluator) evalIndexAssign(n *parser.IndexAssignStmt, frame *scope.Frame) objects.Value {
	target, sig := e.evalExpr(n.Target, frame)
	if sig != nil {
		return sig
	}
	idx, sig := e.evalExpr(n.Index, frame)
	if sig != nil {
		return sig
	}
	val, sig := e.evalExpr(n.Value, frame)
	if sig != nil {
		return sig
	}
	switch t := target.(type) {
	case *objects.Dict:
		key, ok := idx.(objects.Hashable)
		if !ok {
			return raise("TypeError", "unhashable dict key", n.Span())
		}
		t.Set(key, val)
		return nil
	case *objects.List:
		i, ok := idx.(*objects.Integer)
		if !ok {
			return raise("TypeError", "list index must be an integer", n.Span())
		}
		pos := normalizeIndex(i.Value, len(t.Elements))
		if pos < 0 || pos >= len(t.Elements) {
			return raise("RuntimeError", "list index out of range", n.Span())
		}
		t.Elements[pos] = val
		return nil
	case *objects.Tuple:
		return raise("TypeError", "tuple does not support item assignment", n.Span())
	default:
		return raise("TypeError", fmt.Sprintf("%s does not support item assignment", target.Type()), n.Span())
	}
}

// evalAttribute resolves `target.name`. VirtoLang has no class system
// (spec.md §9), so the only attributes the core understands are a
// handful of method-like accessors implemented here directly; anything
// else is a NameError.
func (e *Evaluator) evalAttribute(n *parser.AttributeExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	target, sig := e.evalExpr(n.Target, frame)
	if sig != nil {
		return nil, sig
	}
	switch t := target.(type) {
	case *objects.Error:
		switch n.Name {
		case "message":
			return &objects.String{Value: t.Message}, nil
		case "kind":
			return &objects.String{Value: t.Kind}, nil
		}
	case *objects.Dict:
		if n.Name == "keys" {
			return dictKeysList(t), nil
		}
	}
	return nil, raise("NameError", fmt.Sprintf("%s has no attribute %q", target.Type(), n.Name), n.Span())
}

func dictKeysList(d *objects.Dict) *objects.List {
	out := make([]objects.Value, 0, len(d.Keys))
	for _, k := range d.Keys {
		out = append(out, d.KeyObj[k])
	}
	return &objects.List{Elements: out}
}
