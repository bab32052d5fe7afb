// Package std populates an Evaluator's global frame with VirtoLang's
// starter built-in library: printing, type introspection/conversion,
// container constructors, sequence helpers, async's `sleep`, file I/O,
// and string/math/terminal-styling helpers. Grounded on go-mix's
// std/builtins.go registration idiom (name -> callback table), adapted
// to VirtoLang's Builtin{MinArity,MaxArity,Fn} contract from spec.md
// §4.9/§6.
package std

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Virtosync/VirtoLang/eval"
	"github.com/Virtosync/VirtoLang/function"
	"github.com/Virtosync/VirtoLang/objects"
)

// Register installs the full starter library into ev's global frame.
func Register(ev *eval.Evaluator) {
	reg := func(name string, min, max int, fn func([]objects.Value) (objects.Value, *objects.Error)) {
		ev.Global.SetLocal(name, &function.Builtin{Name: name, MinArity: min, MaxArity: max, Fn: fn})
	}

	registerCore(ev, reg)
	registerContainers(reg)
	registerStrings(reg)
	registerMath(reg)
	registerAsync(ev, reg)
	registerIO(reg)
	registerTerminal(reg)
}

func argErr(name, msg string) *objects.Error {
	return &objects.Error{Kind: "ArgumentError", Message: fmt.Sprintf("%s: %s", name, msg)}
}

func typeErr(msg string) *objects.Error {
	return &objects.Error{Kind: "TypeError", Message: msg}
}

// ---- core: print/len/type/str/int/float/bool/range/Error ----

func registerCore(ev *eval.Evaluator, reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	// print always ends in a newline (spec.md §8 scenario 1: `print(6 / 2)`
	// produces `3.0\n`); there is no builtin that writes to stdout without
	// one (`write` only writes to a file handle).
	reg("print", 0, -1, func(args []objects.Value) (objects.Value, *objects.Error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Fprintln(ev.Stdout, strings.Join(parts, " "))
		return objects.NullValue, nil
	})

	reg("len", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		n, err := lengthOf(args[0])
		if err != nil {
			return nil, err
		}
		return &objects.Integer{Value: int64(n)}, nil
	})

	reg("type", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return &objects.String{Value: string(args[0].Type())}, nil
	})

	reg("str", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return &objects.String{Value: args[0].String()}, nil
	})

	reg("int", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return toInt(args[0])
	})

	reg("float", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return toFloat(args[0])
	})

	reg("bool", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return objects.Bool(objects.IsTruthy(args[0])), nil
	})

	reg("range", 1, 3, func(args []objects.Value) (objects.Value, *objects.Error) {
		return buildRange(args)
	})

	reg("Error", 1, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		msg, ok := args[0].(*objects.String)
		if !ok {
			return nil, typeErr("Error() requires a string message")
		}
		e := &objects.Error{Kind: "Error", Message: msg.Value}
		if len(args) == 2 {
			if kind, ok := args[1].(*objects.String); ok {
				e.Kind = kind.Value
			}
		}
		return e, nil
	})
}

func lengthOf(v objects.Value) (int, *objects.Error) {
	switch val := v.(type) {
	case *objects.String:
		return len([]rune(val.Value)), nil
	case *objects.List:
		return len(val.Elements), nil
	case *objects.Tuple:
		return len(val.Elements), nil
	case *objects.Dict:
		return len(val.Keys), nil
	case *objects.Set:
		return val.Len(), nil
	default:
		return 0, typeErr(fmt.Sprintf("len() unsupported for %s", v.Type()))
	}
}

func toInt(v objects.Value) (objects.Value, *objects.Error) {
	switch val := v.(type) {
	case *objects.Integer:
		return val, nil
	case *objects.Float:
		return &objects.Integer{Value: int64(val.Value)}, nil
	case *objects.Boolean:
		if val.Value {
			return &objects.Integer{Value: 1}, nil
		}
		return &objects.Integer{Value: 0}, nil
	case *objects.String:
		n, err := strconv.ParseInt(strings.TrimSpace(val.Value), 10, 64)
		if err != nil {
			return nil, typeErr(fmt.Sprintf("cannot convert %q to int", val.Value))
		}
		return &objects.Integer{Value: n}, nil
	default:
		return nil, typeErr(fmt.Sprintf("cannot convert %s to int", v.Type()))
	}
}

func toFloat(v objects.Value) (objects.Value, *objects.Error) {
	switch val := v.(type) {
	case *objects.Float:
		return val, nil
	case *objects.Integer:
		return &objects.Float{Value: float64(val.Value)}, nil
	case *objects.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(val.Value), 64)
		if err != nil {
			return nil, typeErr(fmt.Sprintf("cannot convert %q to float", val.Value))
		}
		return &objects.Float{Value: f}, nil
	default:
		return nil, typeErr(fmt.Sprintf("cannot convert %s to float", v.Type()))
	}
}

func buildRange(args []objects.Value) (objects.Value, *objects.Error) {
	ints := make([]int64, len(args))
	for i, a := range args {
		n, ok := a.(*objects.Integer)
		if !ok {
			return nil, typeErr("range() requires integer arguments")
		}
		ints[i] = n.Value
	}
	var start, stop, step int64
	switch len(ints) {
	case 1:
		start, stop, step = 0, ints[0], 1
	case 2:
		start, stop, step = ints[0], ints[1], 1
	default:
		start, stop, step = ints[0], ints[1], ints[2]
	}
	if step == 0 {
		return nil, argErr("range", "step must not be zero")
	}
	var out []objects.Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, &objects.Integer{Value: i})
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, &objects.Integer{Value: i})
		}
	}
	return &objects.List{Elements: out}, nil
}

// ---- containers: list/dict/set/tuple/keys/values/append ----

func registerContainers(reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("list", 0, -1, func(args []objects.Value) (objects.Value, *objects.Error) {
		if len(args) == 1 {
			if elems, ok := elementsOf(args[0]); ok {
				out := make([]objects.Value, len(elems))
				copy(out, elems)
				return &objects.List{Elements: out}, nil
			}
		}
		return &objects.List{Elements: append([]objects.Value{}, args...)}, nil
	})

	reg("dict", 0, 0, func(args []objects.Value) (objects.Value, *objects.Error) {
		return objects.NewDict(), nil
	})

	reg("set", 0, -1, func(args []objects.Value) (objects.Value, *objects.Error) {
		s := objects.NewSet()
		for _, a := range args {
			s.Add(a)
		}
		return s, nil
	})

	reg("tuple", 0, -1, func(args []objects.Value) (objects.Value, *objects.Error) {
		return &objects.Tuple{Elements: append([]objects.Value{}, args...)}, nil
	})

	reg("keys", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		d, ok := args[0].(*objects.Dict)
		if !ok {
			return nil, typeErr("keys() requires a dict")
		}
		out := make([]objects.Value, 0, len(d.Keys))
		for _, k := range d.Keys {
			out = append(out, d.KeyObj[k])
		}
		return &objects.List{Elements: out}, nil
	})

	reg("values", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		d, ok := args[0].(*objects.Dict)
		if !ok {
			return nil, typeErr("values() requires a dict")
		}
		out := make([]objects.Value, 0, len(d.Keys))
		for _, k := range d.Keys {
			out = append(out, d.Pairs[k])
		}
		return &objects.List{Elements: out}, nil
	})

	reg("append", 2, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		l, ok := args[0].(*objects.List)
		if !ok {
			return nil, typeErr("append() requires a list")
		}
		l.Elements = append(l.Elements, args[1])
		return l, nil
	})
}

func elementsOf(v objects.Value) ([]objects.Value, bool) {
	switch val := v.(type) {
	case *objects.List:
		return val.Elements, true
	case *objects.Tuple:
		return val.Elements, true
	case *objects.Set:
		return val.Elements(), true
	default:
		return nil, false
	}
}

// ---- strings ----

func registerStrings(reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("upper", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		s, err := requireString("upper", args[0])
		if err != nil {
			return nil, err
		}
		return &objects.String{Value: strings.ToUpper(s)}, nil
	})
	reg("lower", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		s, err := requireString("lower", args[0])
		if err != nil {
			return nil, err
		}
		return &objects.String{Value: strings.ToLower(s)}, nil
	})
	reg("split", 2, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		s, err := requireString("split", args[0])
		if err != nil {
			return nil, err
		}
		sep, err := requireString("split", args[1])
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		out := make([]objects.Value, len(parts))
		for i, p := range parts {
			out[i] = &objects.String{Value: p}
		}
		return &objects.List{Elements: out}, nil
	})
	reg("join", 2, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		sep, err := requireString("join", args[1])
		if err != nil {
			return nil, err
		}
		elems, ok := elementsOf(args[0])
		if !ok {
			return nil, typeErr("join() requires a list/tuple/set as first argument")
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return &objects.String{Value: strings.Join(parts, sep)}, nil
	})
}

func requireString(fn string, v objects.Value) (string, *objects.Error) {
	s, ok := v.(*objects.String)
	if !ok {
		return "", typeErr(fmt.Sprintf("%s() requires a string, got %s", fn, v.Type()))
	}
	return s.Value, nil
}

// ---- math ----

func registerMath(reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("abs", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		switch n := args[0].(type) {
		case *objects.Integer:
			if n.Value < 0 {
				return &objects.Integer{Value: -n.Value}, nil
			}
			return n, nil
		case *objects.Float:
			return &objects.Float{Value: math.Abs(n.Value)}, nil
		default:
			return nil, typeErr("abs() requires a number")
		}
	})
	reg("min", 1, -1, func(args []objects.Value) (objects.Value, *objects.Error) { return minMax(args, true) })
	reg("max", 1, -1, func(args []objects.Value) (objects.Value, *objects.Error) { return minMax(args, false) })
	reg("round", 1, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		f, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		val := f.(*objects.Float).Value
		digits := 0
		if len(args) == 2 {
			n, ok := args[1].(*objects.Integer)
			if !ok {
				return nil, typeErr("round() precision must be an integer")
			}
			digits = int(n.Value)
		}
		mult := math.Pow(10, float64(digits))
		rounded := math.Round(val*mult) / mult
		if digits <= 0 {
			return &objects.Integer{Value: int64(rounded)}, nil
		}
		return &objects.Float{Value: rounded}, nil
	})
}

func minMax(args []objects.Value, wantMin bool) (objects.Value, *objects.Error) {
	vals := args
	if len(args) == 1 {
		elems, ok := elementsOf(args[0])
		if !ok {
			return nil, typeErr("min()/max() requires numbers or a single list/tuple/set")
		}
		vals = elems
	}
	if len(vals) == 0 {
		return nil, argErr("min/max", "empty sequence")
	}
	best := vals[0]
	bestF, _, ok := numericValue(best)
	if !ok {
		return nil, typeErr("min()/max() requires numbers")
	}
	for _, v := range vals[1:] {
		f, _, ok := numericValue(v)
		if !ok {
			return nil, typeErr("min()/max() requires numbers")
		}
		if (wantMin && f < bestF) || (!wantMin && f > bestF) {
			best, bestF = v, f
		}
	}
	return best, nil
}

func numericValue(v objects.Value) (float64, bool, bool) {
	switch n := v.(type) {
	case *objects.Integer:
		return float64(n.Value), true, true
	case *objects.Float:
		return n.Value, false, true
	default:
		return 0, false, false
	}
}

// ---- async: sleep ----

func registerAsync(ev *eval.Evaluator, reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("sleep", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		secs, _, ok := numericValue(args[0])
		if !ok {
			return nil, typeErr("sleep() requires a number of seconds")
		}
		task := ev.Spawn(func() (objects.Value, *objects.Error) {
			time.Sleep(time.Duration(secs * float64(time.Second)))
			return objects.NullValue, nil
		})
		return task, nil
	})
}

// ---- file I/O ----

func registerIO(reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("open", 1, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		path, err := requireString("open", args[0])
		if err != nil {
			return nil, err
		}
		mode := "r"
		if len(args) == 2 {
			mode, err = requireString("open", args[1])
			if err != nil {
				return nil, err
			}
		}
		flag := os.O_RDONLY
		switch mode {
		case "r":
			flag = os.O_RDONLY
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		default:
			return nil, argErr("open", "mode must be \"r\", \"w\", or \"a\"")
		}
		f, ferr := os.OpenFile(path, flag, 0o644)
		if ferr != nil {
			return nil, &objects.Error{Kind: "RuntimeError", Message: ferr.Error()}
		}
		return &objects.File{Handle: f, Path: path}, nil
	})

	reg("close", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		f, err := requireFile("close", args[0])
		if err != nil {
			return nil, err
		}
		if f.Closed {
			return nil, &objects.Error{Kind: "RuntimeError", Message: "close of closed file"}
		}
		f.Closed = true
		if cerr := f.Handle.Close(); cerr != nil {
			return nil, &objects.Error{Kind: "RuntimeError", Message: cerr.Error()}
		}
		return objects.NullValue, nil
	})

	reg("read", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		f, err := requireFile("read", args[0])
		if err != nil {
			return nil, err
		}
		if f.Closed {
			return nil, &objects.Error{Kind: "RuntimeError", Message: "read from closed file"}
		}
		data, rerr := os.ReadFile(f.Path)
		if rerr != nil {
			return nil, &objects.Error{Kind: "RuntimeError", Message: rerr.Error()}
		}
		return &objects.String{Value: string(data)}, nil
	})

	reg("write", 2, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		f, err := requireFile("write", args[0])
		if err != nil {
			return nil, err
		}
		if f.Closed {
			return nil, &objects.Error{Kind: "RuntimeError", Message: "write to closed file"}
		}
		text, err := requireString("write", args[1])
		if err != nil {
			return nil, err
		}
		n, werr := io.WriteString(f.Handle, text)
		if werr != nil {
			return nil, &objects.Error{Kind: "RuntimeError", Message: werr.Error()}
		}
		return &objects.Integer{Value: int64(n)}, nil
	})
}

func requireFile(fn string, v objects.Value) (*objects.File, *objects.Error) {
	f, ok := v.(*objects.File)
	if !ok {
		return nil, typeErr(fmt.Sprintf("%s() requires a file handle", fn))
	}
	return f, nil
}

// ---- terminal styling ----

func registerTerminal(reg func(string, int, int, func([]objects.Value) (objects.Value, *objects.Error))) {
	reg("color", 2, 2, func(args []objects.Value) (objects.Value, *objects.Error) {
		text, err := requireString("color", args[0])
		if err != nil {
			return nil, err
		}
		name, err := requireString("color", args[1])
		if err != nil {
			return nil, err
		}
		c, ok := colorByName[name]
		if !ok {
			return nil, argErr("color", fmt.Sprintf("unknown color %q", name))
		}
		return &objects.String{Value: color.New(c).Sprint(text)}, nil
	})
	reg("bold", 1, 1, func(args []objects.Value) (objects.Value, *objects.Error) {
		text, err := requireString("bold", args[0])
		if err != nil {
			return nil, err
		}
		return &objects.String{Value: color.New(color.Bold).Sprint(text)}, nil
	})
}

var colorByName = map[string]color.Attribute{
	"red": color.FgRed, "green": color.FgGreen, "yellow": color.FgYellow,
	"blue": color.FgBlue, "magenta": color.FgMagenta, "cyan": color.FgCyan,
	"white": color.FgWhite,
}
