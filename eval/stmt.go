package eval

import (
	"fmt"
	"path/filepath"

	"github.com/Virtosync/VirtoLang/function"
	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
)

// evalStmt evaluates one statement, returning the control-flow signal it
// produces: nil for "normal", *objects.Return, or *objects.Raised
// (spec.md §4.3's three-signal model).
func (e *Evaluator) evalStmt(s parser.Stmt, frame *scope.Frame) objects.Value {
	switch n := s.(type) {
	case *parser.BlockStmt:
		return e.evalBlock(n, frame)
	case *parser.AssignStmt:
		val, sig := e.evalExpr(n.Value, frame)
		if sig != nil {
			return sig
		}
		frame.SetOrCreate(n.Name, val)
		return nil
	case *parser.ExprStmt:
		_, sig := e.evalExpr(n.X, frame)
		return sig
	case *parser.IndexAssignStmt:
		return e.evalIndexAssign(n, frame)
	case *parser.IfStmt:
		return e.evalIf(n, frame)
	case *parser.WhileStmt:
		return e.evalWhile(n, frame)
	case *parser.ForStmt:
		return e.evalFor(n, frame)
	case *parser.ReturnStmt:
		if n.Value == nil {
			return &objects.Return{Value: objects.NullValue}
		}
		val, sig := e.evalExpr(n.Value, frame)
		if sig != nil {
			return sig
		}
		return &objects.Return{Value: val}
	case *parser.RaiseStmt:
		return e.evalRaise(n, frame)
	case *parser.TryStmt:
		return e.evalTry(n, frame)
	case *parser.ImportStmt:
		return e.evalImport(n, frame)
	case *parser.FuncDefStmt:
		fn := &function.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: frame, Async: n.Async}
		frame.SetOrCreate(n.Name, fn)
		return nil
	default:
		return raise("RuntimeError", fmt.Sprintf("unhandled statement %T", s), s.Span())
	}
}

func (e *Evaluator) evalBlock(b *parser.BlockStmt, frame *scope.Frame) objects.Value {
	for _, stmt := range b.Statements {
		if sig := e.evalStmt(stmt, frame); sig != nil {
			return sig
		}
	}
	return nil
}

func (e *Evaluator) evalIf(n *parser.IfStmt, frame *scope.Frame) objects.Value {
	for i, cond := range n.Conds {
		v, sig := e.evalExpr(cond, frame)
		if sig != nil {
			return sig
		}
		if objects.IsTruthy(v) {
			return e.evalBlock(n.Blocks[i], frame)
		}
	}
	if n.Else != nil {
		return e.evalBlock(n.Else, frame)
	}
	return nil
}

func (e *Evaluator) evalWhile(n *parser.WhileStmt, frame *scope.Frame) objects.Value {
	for {
		v, sig := e.evalExpr(n.Cond, frame)
		if sig != nil {
			return sig
		}
		if !objects.IsTruthy(v) {
			return nil
		}
		if sig := e.evalBlock(n.Body, frame); sig != nil {
			return sig
		}
	}
}

// evalFor evaluates the iterable once and binds Var into the enclosing
// frame for each element, per spec.md §3.4/§4.3.
func (e *Evaluator) evalFor(n *parser.ForStmt, frame *scope.Frame) objects.Value {
	iterable, sig := e.evalExpr(n.Iterable, frame)
	if sig != nil {
		return sig
	}
	elems, err := iterate(iterable)
	if err != nil {
		return raise("TypeError", err.Error(), n.Span())
	}
	for _, el := range elems {
		frame.SetOrCreate(n.Var, el)
		if sig := e.evalBlock(n.Body, frame); sig != nil {
			return sig
		}
	}
	return nil
}

// iterate produces the element sequence for a for-loop target: list/
// tuple/set elements, string characters, or dict keys.
func iterate(v objects.Value) ([]objects.Value, error) {
	switch val := v.(type) {
	case *objects.List:
		return val.Elements, nil
	case *objects.Tuple:
		return val.Elements, nil
	case *objects.Set:
		return val.Elements(), nil
	case *objects.String:
		out := make([]objects.Value, 0, len(val.Value))
		for _, r := range val.Value {
			out = append(out, &objects.String{Value: string(r)})
		}
		return out, nil
	case *objects.Dict:
		out := make([]objects.Value, 0, len(val.Keys))
		for _, k := range val.Keys {
			out = append(out, val.KeyObj[k])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is not iterable", v.Type())
	}
}

func (e *Evaluator) evalRaise(n *parser.RaiseStmt, frame *scope.Frame) objects.Value {
	val, sig := e.evalExpr(n.Value, frame)
	if sig != nil {
		return sig
	}
	errVal, ok := val.(*objects.Error)
	if !ok {
		return raise("TypeError", "raise requires an error value", n.Span())
	}
	errVal.Trace = append(errVal.Trace, n.Span())
	return &objects.Raised{Err: errVal}
}

// evalTry implements spec.md §4.3's try/except/finally semantics: a
// finally block always runs and, if it itself produces a signal,
// replaces whatever was pending.
func (e *Evaluator) evalTry(n *parser.TryStmt, frame *scope.Frame) objects.Value {
	sig := e.evalBlock(n.Try, frame)

	if raised, ok := sig.(*objects.Raised); ok {
		for _, ex := range n.Excepts {
			if !matchesExcept(ex.Kind, raised.Err.Kind) {
				continue
			}
			if ex.As != "" {
				frame.SetOrCreate(ex.As, raised.Err)
			}
			sig = e.evalBlock(ex.Body, frame)
			break
		}
	}

	if n.Finally != nil {
		if finSig := e.evalBlock(n.Finally, frame); finSig != nil {
			return finSig
		}
	}
	return sig
}

// matchesExcept implements the conservative matching rule from spec.md
// §4.3: an except clause matches if its declared kind equals the
// error's kind tag, or the declared kind is the universal "Error"
// super-tag.
func matchesExcept(declared, actual string) bool {
	return declared == actual || declared == "Error"
}

func (e *Evaluator) evalImport(n *parser.ImportStmt, frame *scope.Frame) objects.Value {
	path, err := e.Loader.Resolve(n.Name, n.IsString, e.scriptDir)
	if err != nil {
		return raise("ImportError", err.Error(), n.Span())
	}

	modFrame, cached := e.Loader.Begin(path, nil)
	if !cached {
		prog, _, perr := e.Loader.Parse(path)
		if perr != nil {
			e.Loader.Finish(path, perr)
			return raise("ImportError", perr.Error(), n.Span())
		}
		savedDir := e.scriptDir
		e.scriptDir = filepath.Dir(path)
		sig := e.evalProgram(prog, modFrame)
		e.scriptDir = savedDir
		if raised, ok := sig.(*objects.Raised); ok {
			e.Loader.Finish(path, fmt.Errorf(raised.Err.Message))
			return raised
		}
		e.Loader.Finish(path, nil)
	}

	for _, name := range modFrame.Names() {
		if v, ok := modFrame.Get(name); ok {
			frame.SetLocal(name, v)
		}
	}
	return nil
}
