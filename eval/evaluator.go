// Package eval walks a parsed Program against a scope.Frame chain,
// implementing VirtoLang's runtime semantics: name resolution, operator
// dispatch, function calls, the exception engine, and the hooks into the
// async and module packages. Grounded on go-mix's eval.Evaluator
// (evaluator.go's single Evaluator struct carrying the interpreter's
// shared state), but rebuilt around a pure AST walk — go-mix's evaluator
// is entangled with its parser's parse-time folding, which VirtoLang
// cannot reuse (see DESIGN.md's parser entry).
package eval

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Virtosync/VirtoLang/async"
	"github.com/Virtosync/VirtoLang/lexer"
	"github.com/Virtosync/VirtoLang/module"
	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
	"github.com/Virtosync/VirtoLang/source"
)

// asyncTask aliases async.Task so builtins can spawn/await tasks
// through the Evaluator without importing the async package directly.
type asyncTask = async.Task

// Evaluator owns every piece of interpreter-wide state: the global
// frame, the file set and module loader, the output stream builtins
// write to, and the single lock that serialises access to all of it per
// spec.md §4.7/§5's one-big-lock allowance.
type Evaluator struct {
	FS     *source.FileSet
	Loader *module.Loader
	Global *scope.Frame
	Stdout io.Writer
	Stderr io.Writer

	mu sync.Mutex

	// scriptDir is the directory of the file currently executing, used
	// to resolve relative imports/run calls. Safe as plain interpreter
	// state (not a stack) because the big lock guarantees only one
	// logical evaluation is ever in flight at a time; nested file
	// execution saves and restores it around the call.
	scriptDir string
}

// New creates an Evaluator with a fresh global frame and module loader
// rooted at scriptDir.
func New(fs *source.FileSet, scriptDir string) *Evaluator {
	return &Evaluator{
		FS:        fs,
		Loader:    module.New(fs, scriptDir),
		Global:    scope.NewFrame(nil),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		scriptDir: scriptDir,
	}
}

func (e *Evaluator) lock()   { e.mu.Lock() }
func (e *Evaluator) unlock() { e.mu.Unlock() }

// Spawn starts fn on its own task, for builtins (e.g. sleep) that need
// to hand back an awaitable without blocking the caller. See the async
// package for the locking discipline this relies on.
func (e *Evaluator) Spawn(fn func() (objects.Value, *objects.Error)) *asyncTask {
	return async.Spawn(fn, e.lock, e.unlock)
}

// Await blocks until t completes, per spec.md §4.7.
func (e *Evaluator) Await(t *asyncTask) (objects.Value, *objects.Error) {
	return async.Await(t, e.lock, e.unlock)
}

// RunFile parses and evaluates path in the global frame, returning any
// uncaught error.
func (e *Evaluator) RunFile(path string) *objects.Error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &objects.Error{Kind: "ImportError", Message: fmt.Sprintf("cannot read %q: %v", path, err)}
	}
	return e.RunSource(path, string(data))
}

// RunSource parses and evaluates src (registered under name) in the
// global frame.
func (e *Evaluator) RunSource(name, src string) *objects.Error {
	id := e.FS.Add(name, src)
	p := parser.New(e.FS, id, src)
	prog := p.ParseProgram()
	if p.HasErrors() {
		first := p.Errors[0]
		return &objects.Error{Kind: "SyntaxError", Message: first.Message, Span: first.Span, Hint: first.Hint}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.scriptDir = filepath.Dir(name)
	sig := e.evalProgram(prog, e.Global)
	if raised, ok := sig.(*objects.Raised); ok {
		return raised.Err
	}
	return nil
}

func (e *Evaluator) evalProgram(prog *parser.Program, frame *scope.Frame) objects.Value {
	for _, stmt := range prog.Statements {
		if sig := e.evalStmt(stmt, frame); sig != nil {
			return sig
		}
	}
	return nil
}

// raise builds a Raised signal for a given kind/message/span, the
// standard way evaluator code reports a runtime error (spec.md §4.5/§7).
func raise(kind, msg string, span lexer.Span) *objects.Raised {
	return &objects.Raised{Err: &objects.Error{Kind: kind, Message: msg, Span: span}}
}
