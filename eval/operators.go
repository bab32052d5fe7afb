package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/Virtosync/VirtoLang/lexer"
	"github.com/Virtosync/VirtoLang/objects"
)

// applyBinary implements the non-short-circuiting binary operators
// (`and`/`or` are handled by evalBinary before this is reached) per
// spec.md §4.3's operator semantics table.
func applyBinary(op string, left, right objects.Value, span lexer.Span) (objects.Value, objects.Value) {
	switch op {
	case "+":
		return applyAdd(left, right, span)
	case "-", "*", "/", "%":
		return applyArith(op, left, right, span)
	case "==":
		return objects.Bool(objects.Equal(left, right)), nil
	case "!=":
		return objects.Bool(!objects.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		return applyCompare(op, left, right, span)
	case "in":
		return applyIn(left, right, span, false)
	case "not in":
		return applyIn(left, right, span, true)
	case "is":
		return objects.Bool(objects.Identical(left, right)), nil
	case "is not":
		return objects.Bool(!objects.Identical(left, right)), nil
	default:
		return nil, raise("RuntimeError", "unknown binary operator "+op, span)
	}
}

func applyAdd(left, right objects.Value, span lexer.Span) (objects.Value, objects.Value) {
	if ls, ok := left.(*objects.String); ok {
		if rs, ok := right.(*objects.String); ok {
			return &objects.String{Value: ls.Value + rs.Value}, nil
		}
		return nil, raise("TypeError", "cannot add string and "+string(right.Type()), span)
	}
	if ll, ok := left.(*objects.List); ok {
		if rl, ok := right.(*objects.List); ok {
			out := make([]objects.Value, 0, len(ll.Elements)+len(rl.Elements))
			out = append(out, ll.Elements...)
			out = append(out, rl.Elements...)
			return &objects.List{Elements: out}, nil
		}
		return nil, raise("TypeError", "cannot add list and "+string(right.Type()), span)
	}
	return applyArith("+", left, right, span)
}

func numeric(v objects.Value) (float64, bool, bool) {
	switch n := v.(type) {
	case *objects.Integer:
		return float64(n.Value), true, true
	case *objects.Float:
		return n.Value, false, true
	default:
		return 0, false, false
	}
}

// applyArith dispatches +, -, *, /, % across int/float operands.
// Division of two integers always yields a float (spec.md §3.3/§8);
// every other numeric result stays an integer only when both operands
// were integers.
func applyArith(op string, left, right objects.Value, span lexer.Span) (objects.Value, objects.Value) {
	li, lIsInt, lOK := numeric(left)
	ri, rIsInt, rOK := numeric(right)
	if !lOK || !rOK {
		return nil, raise("TypeError", fmt.Sprintf("unsupported operand types for %s: %s and %s", op, left.Type(), right.Type()), span)
	}

	bothInt := lIsInt && rIsInt

	switch op {
	case "/":
		if ri == 0 {
			return nil, raise("RuntimeError", "division by zero", span)
		}
		return &objects.Float{Value: li / ri}, nil
	case "%":
		if ri == 0 {
			return nil, raise("RuntimeError", "modulo by zero", span)
		}
		if bothInt {
			return &objects.Integer{Value: left.(*objects.Integer).Value % right.(*objects.Integer).Value}, nil
		}
		return &objects.Float{Value: math.Mod(li, ri)}, nil
	}

	if bothInt {
		a, b := left.(*objects.Integer).Value, right.(*objects.Integer).Value
		switch op {
		case "-":
			return &objects.Integer{Value: a - b}, nil
		case "*":
			return &objects.Integer{Value: a * b}, nil
		default:
			return &objects.Integer{Value: a + b}, nil
		}
	}

	var result float64
	switch op {
	case "-":
		result = li - ri
	case "*":
		result = li * ri
	case "+":
		result = li + ri
	}
	return &objects.Float{Value: result}, nil
}

func applyCompare(op string, left, right objects.Value, span lexer.Span) (objects.Value, objects.Value) {
	if ls, ok := left.(*objects.String); ok {
		rs, ok := right.(*objects.String)
		if !ok {
			return nil, raise("TypeError", "cannot compare string and "+string(right.Type()), span)
		}
		c := strings.Compare(ls.Value, rs.Value)
		return objects.Bool(compareResult(op, c)), nil
	}

	li, _, lOK := numeric(left)
	ri, _, rOK := numeric(right)
	if !lOK || !rOK {
		return nil, raise("TypeError", fmt.Sprintf("cannot compare %s and %s", left.Type(), right.Type()), span)
	}
	var c int
	switch {
	case li < ri:
		c = -1
	case li > ri:
		c = 1
	}
	return objects.Bool(compareResult(op, c)), nil
}

func compareResult(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return false
}

// applyIn implements membership (`in`/`not in`): list/tuple/set element
// equality, string substring search, and dict key membership (the last
// a supplement beyond spec.md §4.3's literal wording, consistent with
// how every container type in the value model supports membership).
func applyIn(left, right objects.Value, span lexer.Span, negate bool) (objects.Value, objects.Value) {
	var found bool
	switch rv := right.(type) {
	case *objects.List:
		for _, el := range rv.Elements {
			if objects.Equal(left, el) {
				found = true
				break
			}
		}
	case *objects.Tuple:
		for _, el := range rv.Elements {
			if objects.Equal(left, el) {
				found = true
				break
			}
		}
	case *objects.Set:
		found = rv.Has(left)
	case *objects.String:
		ls, ok := left.(*objects.String)
		if !ok {
			return nil, raise("TypeError", "string membership requires a string operand", span)
		}
		found = strings.Contains(rv.Value, ls.Value)
	case *objects.Dict:
		key, ok := left.(objects.Hashable)
		if ok {
			_, found = rv.Get(key)
		}
	default:
		return nil, raise("TypeError", string(right.Type())+" does not support membership testing", span)
	}
	if negate {
		found = !found
	}
	return objects.Bool(found), nil
}
