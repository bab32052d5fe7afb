package eval

import (
	"fmt"
	"path/filepath"

	"github.com/Virtosync/VirtoLang/async"
	"github.com/Virtosync/VirtoLang/function"
	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
)

func dirname(path string) string { return filepath.Dir(path) }

// evalExpr evaluates an expression. The second return value is non-nil
// only when evaluation produced a *objects.Raised signal; a bare
// *objects.Return can never escape expression evaluation since only
// `return` statements produce one, and those are only legal inside a
// function body block, not inside an expression.
func (e *Evaluator) evalExpr(x parser.Expr, frame *scope.Frame) (objects.Value, objects.Value) {
	switch n := x.(type) {
	case *parser.IntLit:
		return &objects.Integer{Value: n.Value}, nil
	case *parser.FloatLit:
		return &objects.Float{Value: n.Value}, nil
	case *parser.StringLit:
		return &objects.String{Value: n.Value}, nil
	case *parser.BoolLit:
		return objects.Bool(n.Value), nil
	case *parser.NullLit:
		return objects.NullValue, nil
	case *parser.Identifier:
		if v, ok := frame.Get(n.Name); ok {
			return v, nil
		}
		return nil, raise("NameError", fmt.Sprintf("name %q is not defined", n.Name), n.Span())
	case *parser.AssignExpr:
		val, sig := e.evalExpr(n.Value, frame)
		if sig != nil {
			return nil, sig
		}
		frame.SetOrCreate(n.Name, val)
		return val, nil
	case *parser.ListLit:
		elems := make([]objects.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, sig := e.evalExpr(el, frame)
			if sig != nil {
				return nil, sig
			}
			elems = append(elems, v)
		}
		return &objects.List{Elements: elems}, nil
	case *parser.DictCall:
		d := objects.NewDict()
		for _, ent := range n.Entries {
			v, sig := e.evalExpr(ent.Value, frame)
			if sig != nil {
				return nil, sig
			}
			d.Set(&objects.String{Value: ent.Key}, v)
		}
		return d, nil
	case *parser.SetCall:
		s := objects.NewSet()
		for _, el := range n.Elements {
			v, sig := e.evalExpr(el, frame)
			if sig != nil {
				return nil, sig
			}
			s.Add(v)
		}
		return s, nil
	case *parser.TupleCall:
		elems := make([]objects.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, sig := e.evalExpr(el, frame)
			if sig != nil {
				return nil, sig
			}
			elems = append(elems, v)
		}
		return &objects.Tuple{Elements: elems}, nil
	case *parser.UnaryExpr:
		return e.evalUnary(n, frame)
	case *parser.BinaryExpr:
		return e.evalBinary(n, frame)
	case *parser.CallExpr:
		return e.evalCall(n, frame)
	case *parser.IndexExpr:
		return e.evalIndex(n, frame)
	case *parser.AttributeExpr:
		return e.evalAttribute(n, frame)
	case *parser.AwaitExpr:
		return e.evalAwait(n, frame)
	case *parser.RunExpr:
		return e.evalRun(n, frame)
	case *parser.LambdaExpr:
		return &function.Function{Params: n.Params, Body: n.Body, Closure: frame, Async: n.Async}, nil
	default:
		return nil, raise("RuntimeError", fmt.Sprintf("unhandled expression %T", x), x.Span())
	}
}

func (e *Evaluator) evalUnary(n *parser.UnaryExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	v, sig := e.evalExpr(n.Right, frame)
	if sig != nil {
		return nil, sig
	}
	switch n.Op {
	case "not":
		return objects.Bool(!objects.IsTruthy(v)), nil
	case "-":
		switch val := v.(type) {
		case *objects.Integer:
			return &objects.Integer{Value: -val.Value}, nil
		case *objects.Float:
			return &objects.Float{Value: -val.Value}, nil
		default:
			return nil, raise("TypeError", fmt.Sprintf("unary - not supported for %s", v.Type()), n.Span())
		}
	default:
		return nil, raise("RuntimeError", "unknown unary operator "+n.Op, n.Span())
	}
}

func (e *Evaluator) evalBinary(n *parser.BinaryExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	// `and`/`or` short-circuit: the RHS is only evaluated when the LHS
	// doesn't already determine the result (spec.md §4.3/§8).
	if n.Op == "and" || n.Op == "or" {
		left, sig := e.evalExpr(n.Left, frame)
		if sig != nil {
			return nil, sig
		}
		leftTruthy := objects.IsTruthy(left)
		if n.Op == "and" && !leftTruthy {
			return left, nil
		}
		if n.Op == "or" && leftTruthy {
			return left, nil
		}
		return e.evalExpr(n.Right, frame)
	}

	left, sig := e.evalExpr(n.Left, frame)
	if sig != nil {
		return nil, sig
	}
	right, sig := e.evalExpr(n.Right, frame)
	if sig != nil {
		return nil, sig
	}
	return applyBinary(n.Op, left, right, n.Span())
}

func (e *Evaluator) evalAwait(n *parser.AwaitExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	v, sig := e.evalExpr(n.Value, frame)
	if sig != nil {
		return nil, sig
	}
	task, ok := v.(*async.Task)
	if !ok {
		// spec.md §4.7 step 1: awaiting a non-task returns it as-is.
		return v, nil
	}
	result, err := async.Await(task, e.lock, e.unlock)
	if err != nil {
		return nil, &objects.Raised{Err: err}
	}
	return result, nil
}

func (e *Evaluator) evalRun(n *parser.RunExpr, frame *scope.Frame) (objects.Value, objects.Value) {
	pathVal, sig := e.evalExpr(n.Value, frame)
	if sig != nil {
		return nil, sig
	}
	pathStr, ok := pathVal.(*objects.String)
	if !ok {
		return nil, raise("TypeError", "run()/run_async() requires a string path", n.Span())
	}

	runner := func() (objects.Value, *objects.Error) {
		path, err := e.Loader.Resolve(pathStr.Value, true, e.scriptDir)
		if err != nil {
			return nil, &objects.Error{Kind: "ImportError", Message: err.Error(), Span: n.Span()}
		}
		prog, _, perr := e.Loader.Parse(path)
		if perr != nil {
			return nil, &objects.Error{Kind: "ImportError", Message: perr.Error(), Span: n.Span()}
		}
		savedDir := e.scriptDir
		e.scriptDir = dirname(path)
		sig := e.evalProgram(prog, e.Global)
		e.scriptDir = savedDir
		if raised, ok := sig.(*objects.Raised); ok {
			return nil, raised.Err
		}
		return objects.NullValue, nil
	}

	if n.Async {
		t := async.Spawn(runner, e.lock, e.unlock)
		return t, nil
	}
	v, err := runner()
	if err != nil {
		return nil, &objects.Raised{Err: err}
	}
	return v, nil
}
