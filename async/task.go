// Package async implements VirtoLang's cooperative concurrency model:
// each async function call, `run_async` call, or `sleep` spawns a
// goroutine that races to acquire the
// evaluator's single global lock before touching any shared state, so
// the interpreter behaves as if single-threaded between lock
// acquisitions (spec.md §4.7's "single logical thread of execution,
// plus an allowance for the host runtime to implement that guarantee
// with real OS threads provided there are no data races by
// construction"). Grounded on go-mix's std.ReturnValue/objects.Error
// wrapper-not-panic idiom, applied here to task completion instead of
// function return.
package async

import "github.com/Virtosync/VirtoLang/objects"

// Task is a VirtoLang value representing a still-running or completed
// async function call, `run_async` call, or `sleep`.
type Task struct {
	done   chan struct{}
	result objects.Value
	err    *objects.Error
}

func (t *Task) Type() objects.Type { return objects.TaskType }
func (t *Task) String() string     { return "<task>" }
func (t *Task) Inspect() string    { return t.String() }

// Done reports whether the task has finished, without blocking.
func (t *Task) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Spawn starts fn on its own goroutine and returns immediately with a
// Task handle. fn is only invoked once the goroutine has reacquired
// lock, so it always runs holding the interpreter's single big lock;
// unlock/lock are the evaluator's lock release/acquire hooks, letting
// the caller's own lock-held invariant continue to hold across the
// `run_async(...)` call site.
func Spawn(fn func() (objects.Value, *objects.Error), lock, unlock func()) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		lock()
		defer unlock()
		v, e := fn()
		t.result, t.err = v, e
		close(t.done)
	}()
	return t
}

// Await blocks the calling goroutine until t completes, releasing lock
// while waiting and reacquiring it before returning so the caller's
// lock-held invariant is preserved across `await`.
func Await(t *Task, lock, unlock func()) (objects.Value, *objects.Error) {
	if t.Done() {
		return t.result, t.err
	}
	unlock()
	<-t.done
	lock()
	return t.result, t.err
}
