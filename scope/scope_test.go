package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Virtosync/VirtoLang/objects"
)

func TestFrame_GetWalksParentChain(t *testing.T) {
	global := NewFrame(nil)
	global.SetLocal("x", &objects.Integer{Value: 1})

	child := NewFrame(global)
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.(*objects.Integer).Value)

	_, ok = child.Get("missing")
	assert.False(t, ok)
}

func TestFrame_SetLocalShadowsOuter(t *testing.T) {
	global := NewFrame(nil)
	global.SetLocal("x", &objects.Integer{Value: 1})

	child := NewFrame(global)
	child.SetLocal("x", &objects.Integer{Value: 2})

	v, _ := child.Get("x")
	assert.Equal(t, int64(2), v.(*objects.Integer).Value)

	gv, _ := global.Get("x")
	assert.Equal(t, int64(1), gv.(*objects.Integer).Value)
}

// TestFrame_SetOrCreateMutatesNearestDefiningFrame exercises spec.md
// §3.4/§4.3's assignment rule: a block body's assignment to a name bound
// in an enclosing function frame mutates that frame's binding in place,
// it does not create a new local shadow.
func TestFrame_SetOrCreateMutatesNearestDefiningFrame(t *testing.T) {
	global := NewFrame(nil)
	fn := NewFrame(global)
	fn.SetLocal("count", &objects.Integer{Value: 0})

	// Blocks don't get their own Frame: a while-loop body assigning
	// "count" operates directly on fn.
	fn.SetOrCreate("count", &objects.Integer{Value: 1})

	v, ok := fn.Get("count")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.(*objects.Integer).Value)

	// count was never bound in global.
	_, ok = global.vars["count"]
	assert.False(t, ok)
}

func TestFrame_SetOrCreateCreatesInCurrentFrameWhenUnbound(t *testing.T) {
	global := NewFrame(nil)
	fn := NewFrame(global)

	fn.SetOrCreate("fresh", &objects.Integer{Value: 42})

	v, ok := fn.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, int64(42), v.(*objects.Integer).Value)
	_, ok = global.Get("fresh")
	assert.False(t, ok)
}

func TestFrame_SetOrCreateAtGlobalCreatesGlobalBinding(t *testing.T) {
	global := NewFrame(nil)
	global.SetOrCreate("g", &objects.Integer{Value: 7})

	v, ok := global.Get("g")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.(*objects.Integer).Value)
}

func TestFrame_Global(t *testing.T) {
	global := NewFrame(nil)
	fn := NewFrame(global)
	child := NewFrame(fn)
	assert.Same(t, global, child.Global())
	assert.Same(t, global, global.Global())
}

func TestFrame_Names(t *testing.T) {
	f := NewFrame(nil)
	f.SetLocal("a", objects.NullValue)
	f.SetLocal("b", objects.NullValue)
	names := f.Names()
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
