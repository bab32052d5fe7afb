package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtosync/VirtoLang/objects"
	"github.com/Virtosync/VirtoLang/scope"
)

func TestFunction_StringRepr(t *testing.T) {
	fn := &Function{Name: "add", Params: []string{"a", "b"}, Closure: scope.NewFrame(nil)}
	assert.Equal(t, "<def add(a, b)>", fn.String())

	lambda := &Function{Params: []string{"n"}, Closure: scope.NewFrame(nil), Async: true}
	assert.Equal(t, "<async def <lambda>(n)>", lambda.String())
}

func TestFunction_Type(t *testing.T) {
	fn := &Function{}
	assert.Equal(t, objects.FunctionType, fn.Type())
}

func TestBuiltin_CheckArity_Exact(t *testing.T) {
	b := &Builtin{Name: "len", MinArity: 1, MaxArity: 1}
	assert.Nil(t, b.CheckArity(1))

	err := b.CheckArity(2)
	require.NotNil(t, err)
	assert.Equal(t, "ArgumentError", err.Kind)
	assert.Contains(t, err.Message, "takes exactly 1 argument")
}

func TestBuiltin_CheckArity_Variadic(t *testing.T) {
	b := &Builtin{Name: "print", MinArity: 0, MaxArity: -1}
	assert.Nil(t, b.CheckArity(0))
	assert.Nil(t, b.CheckArity(50))
}

func TestBuiltin_CheckArity_Range(t *testing.T) {
	b := &Builtin{Name: "range", MinArity: 1, MaxArity: 3}
	assert.Nil(t, b.CheckArity(2))
	err := b.CheckArity(4)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "takes between 1 and 3 arguments")

	err = b.CheckArity(0)
	require.NotNil(t, err)
	assert.Equal(t, "ArgumentError", err.Kind)
}

func TestBuiltin_FnReturnsTypedError(t *testing.T) {
	b := &Builtin{
		Name: "boom", MinArity: 0, MaxArity: 0,
		Fn: func(args []objects.Value) (objects.Value, *objects.Error) {
			return nil, &objects.Error{Kind: "RuntimeError", Message: "boom"}
		},
	}
	v, err := b.Fn(nil)
	assert.Nil(t, v)
	require.NotNil(t, err)
	assert.Equal(t, "RuntimeError", err.Kind)
}
