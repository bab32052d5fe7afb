// Package scope implements VirtoLang's environment model: a frame chain
// with lexical lookup and the "nearest-defining-frame-or-global"
// assignment rule from spec.md §3.4/§4.3. Grounded on go-mix's
// Scope.LookUp/Bind/Assign traversal idiom, but deliberately without the
// teacher's per-block Scope.Copy — VirtoLang blocks do not introduce a
// new scope, so if/while/for/try bodies are evaluated against the same
// Frame as their enclosing function or the global frame.
package scope

import "github.com/Virtosync/VirtoLang/objects"

// Frame is one lexical scope level: a name→value mapping plus a parent
// pointer. The global frame has Parent == nil.
type Frame struct {
	vars   map[string]objects.Value
	Parent *Frame
}

// NewFrame creates a frame parented to parent (nil for the global frame).
func NewFrame(parent *Frame) *Frame {
	return &Frame{vars: make(map[string]objects.Value), Parent: parent}
}

// Get resolves name by walking from this frame up to the global frame.
func (f *Frame) Get(name string) (objects.Value, bool) {
	if v, ok := f.vars[name]; ok {
		return v, true
	}
	if f.Parent != nil {
		return f.Parent.Get(name)
	}
	return nil, false
}

// SetLocal binds name in this frame only, shadowing any outer binding.
// Used for function parameter binding, built-in registration, and
// binding imported module names into the importing frame.
func (f *Frame) SetLocal(name string, v objects.Value) {
	f.vars[name] = v
}

// SetOrCreate implements the spec's assignment rule: if name is already
// bound somewhere in the chain, that binding is mutated in place;
// otherwise a new binding is created in this frame (the frame belonging
// to the currently executing function, or the global frame at top
// level). Because blocks never introduce their own Frame, "this frame"
// is always the correct target for a fresh binding.
func (f *Frame) SetOrCreate(name string, v objects.Value) {
	if owner := f.findOwner(name); owner != nil {
		owner.vars[name] = v
		return
	}
	f.vars[name] = v
}

func (f *Frame) findOwner(name string) *Frame {
	if _, ok := f.vars[name]; ok {
		return f
	}
	if f.Parent != nil {
		return f.Parent.findOwner(name)
	}
	return nil
}

// Global walks up to the root frame.
func (f *Frame) Global() *Frame {
	cur := f
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Names returns the names bound directly in this frame, for REPL
// introspection (`/scope`) and module re-export.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.vars))
	for n := range f.vars {
		names = append(names, n)
	}
	return names
}
