// Package function holds the Function value type. It is split out from
// objects (rather than living alongside Integer/String/etc.) because a
// Function needs to reference both a *parser.BlockStmt body and a
// *scope.Frame closure; folding it into objects would create an
// objects -> parser -> scope -> objects import cycle. Grounded on
// go-mix's identical function package split (function/function.go).
package function

import (
	"fmt"
	"strings"

	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
)

// Function is a user-defined VirtoLang function: a parameter list, a
// body, the frame it closed over at definition time, and whether it is
// declared async (spec.md §4.6/§4.7).
type Function struct {
	Name    string // empty for lambdas
	Params  []string
	Body    *parser.BlockStmt
	Closure *scope.Frame
	Async   bool
}

func (f *Function) Type() objects.Type { return objects.FunctionType }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	prefix := "def"
	if f.Async {
		prefix = "async def"
	}
	return fmt.Sprintf("<%s %s(%s)>", prefix, name, strings.Join(f.Params, ", "))
}

func (f *Function) Inspect() string { return f.String() }

// Builtin is a host-implemented function registered into the global
// frame by the std package. MinArity/MaxArity bound the accepted
// argument count; MaxArity < 0 means unbounded (variadic). Fn returns an
// *objects.Error (rather than a plain Go error) so host bodies can
// choose the right kind tag (TypeError, RuntimeError, ...) per spec.md
// §4.9/§7.
type Builtin struct {
	Name     string
	MinArity int
	MaxArity int
	Fn       func(args []objects.Value) (objects.Value, *objects.Error)
}

func (b *Builtin) Type() objects.Type { return objects.BuiltinType }
func (b *Builtin) String() string     { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *Builtin) Inspect() string    { return b.String() }

// CheckArity validates n against the builtin's declared arity range.
func (b *Builtin) CheckArity(n int) *objects.Error {
	if n < b.MinArity || (b.MaxArity >= 0 && n > b.MaxArity) {
		var msg string
		switch {
		case b.MinArity == b.MaxArity:
			msg = fmt.Sprintf("%s() takes exactly %d argument(s), got %d", b.Name, b.MinArity, n)
		case b.MaxArity < 0:
			msg = fmt.Sprintf("%s() takes at least %d argument(s), got %d", b.Name, b.MinArity, n)
		default:
			msg = fmt.Sprintf("%s() takes between %d and %d arguments, got %d", b.Name, b.MinArity, b.MaxArity, n)
		}
		return &objects.Error{Kind: "ArgumentError", Message: msg}
	}
	return nil
}
