// Package module resolves `import` statements to parsed programs and
// caches them by absolute path, tolerating circular imports by handing
// back whatever the in-progress module frame has bound so far. Grounded
// on go-mix's file package (file reading + error wrapping idiom), with
// the cache and circular-import handling spec.md §4.8 adds on top.
package module

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Virtosync/VirtoLang/parser"
	"github.com/Virtosync/VirtoLang/scope"
	"github.com/Virtosync/VirtoLang/source"
)

// entry tracks one module's load state: its frame (populated as the
// module body executes, so a circular import observes a partial frame
// rather than deadlocking or erroring) and whether loading has finished.
type entry struct {
	frame    *scope.Frame
	loading  bool
	loadErr  error
}

// Loader resolves import names to source paths, parses and caches each
// module exactly once, and supports VirtoLang's SearchPaths convention
// (the importing file's directory, then each configured library root).
type Loader struct {
	SearchPaths []string

	cache map[string]*entry
	fs    *source.FileSet
}

// New creates a Loader that registers parsed files into fs.
func New(fs *source.FileSet, searchPaths ...string) *Loader {
	return &Loader{fs: fs, cache: map[string]*entry{}, SearchPaths: searchPaths}
}

// Resolve finds the file backing an `import name` or `import "path"`
// statement, relative to the importing file's directory.
func (l *Loader) Resolve(name string, isString bool, importingDir string) (string, error) {
	candidates := []string{}
	if isString {
		candidates = append(candidates, name)
		if !filepath.IsAbs(name) {
			candidates = append(candidates, filepath.Join(importingDir, name))
		}
	} else {
		fname := name + ".vlang"
		candidates = append(candidates, filepath.Join(importingDir, fname))
		for _, root := range l.SearchPaths {
			candidates = append(candidates, filepath.Join(root, fname))
		}
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c, nil
			}
			return abs, nil
		}
	}
	return "", fmt.Errorf("module %q not found", name)
}

// Parse reads and parses path, registering it in the loader's file set.
// It does not execute the module; the caller's evaluator runs it in the
// frame returned by Begin and then calls Finish to mark it loaded.
func (l *Loader) Parse(path string) (*parser.Program, source.ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, source.NoFile, fmt.Errorf("cannot read module %q: %w", path, err)
	}
	id := l.fs.Add(path, string(data))
	p := parser.New(l.fs, id, string(data))
	prog := p.ParseProgram()
	if p.HasErrors() {
		return prog, id, fmt.Errorf("module %q has %d syntax error(s)", path, len(p.Errors))
	}
	return prog, id, nil
}

// Begin marks path as currently loading and returns its (initially
// empty) frame, or the cached frame plus true if path was already
// loaded or is mid-load (the circular-import case).
func (l *Loader) Begin(path string, parent *scope.Frame) (*scope.Frame, bool) {
	if e, ok := l.cache[path]; ok {
		return e.frame, true
	}
	e := &entry{frame: scope.NewFrame(parent), loading: true}
	l.cache[path] = e
	return e.frame, false
}

// Finish marks path as fully loaded, recording err if execution failed.
func (l *Loader) Finish(path string, err error) {
	if e, ok := l.cache[path]; ok {
		e.loading = false
		e.loadErr = err
	}
}
