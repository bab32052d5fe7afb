package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(NullValue))
	assert.False(t, IsTruthy(False))
	assert.True(t, IsTruthy(True))
	assert.False(t, IsTruthy(&Integer{Value: 0}))
	assert.True(t, IsTruthy(&Integer{Value: 1}))
	assert.False(t, IsTruthy(&Float{Value: 0.0}))
	assert.False(t, IsTruthy(&String{Value: ""}))
	assert.True(t, IsTruthy(&String{Value: "x"}))
	assert.False(t, IsTruthy(&List{}))
	assert.True(t, IsTruthy(&List{Elements: []Value{True}}))
	assert.False(t, IsTruthy(NewDict()))
	assert.False(t, IsTruthy(NewSet()))
	assert.False(t, IsTruthy(&Tuple{}))
}

func TestEqual_NumericCrossType(t *testing.T) {
	assert.True(t, Equal(&Integer{Value: 3}, &Float{Value: 3.0}))
	assert.True(t, Equal(&Float{Value: 3.0}, &Integer{Value: 3}))
	assert.False(t, Equal(&Integer{Value: 3}, &Float{Value: 3.5}))
}

func TestEqual_Containers(t *testing.T) {
	a := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}
	b := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "x"}}}
	assert.True(t, Equal(a, b))

	c := &List{Elements: []Value{&Integer{Value: 1}, &String{Value: "y"}}}
	assert.False(t, Equal(a, c))
}

func TestEqual_Dict(t *testing.T) {
	d1 := NewDict()
	d1.Set(&String{Value: "a"}, &Integer{Value: 1})
	d2 := NewDict()
	d2.Set(&String{Value: "a"}, &Integer{Value: 1})
	assert.True(t, Equal(d1, d2))

	d2.Set(&String{Value: "a"}, &Integer{Value: 2})
	assert.False(t, Equal(d1, d2))
}

func TestIdentical_PrimitivesByValue(t *testing.T) {
	assert.True(t, Identical(&Integer{Value: 5}, &Integer{Value: 5}))
	assert.False(t, Identical(&Integer{Value: 5}, &Integer{Value: 6}))
	assert.True(t, Identical(True, True))
}

func TestIdentical_ContainersByReference(t *testing.T) {
	l1 := &List{Elements: []Value{&Integer{Value: 1}}}
	l2 := &List{Elements: []Value{&Integer{Value: 1}}}
	assert.True(t, Equal(l1, l2))
	assert.False(t, Identical(l1, l2))
	assert.True(t, Identical(l1, l1))
}

func TestDict_SetGetDeletePreservesOrder(t *testing.T) {
	d := NewDict()
	d.Set(&String{Value: "first"}, &Integer{Value: 1})
	d.Set(&String{Value: "second"}, &Integer{Value: 2})
	d.Set(&String{Value: "first"}, &Integer{Value: 10})

	v, ok := d.Get(&String{Value: "first"})
	assert.True(t, ok)
	assert.Equal(t, int64(10), v.(*Integer).Value)
	assert.Equal(t, []string{"s:first", "s:second"}, d.Keys)

	d.Delete(&String{Value: "first"})
	_, ok = d.Get(&String{Value: "first"})
	assert.False(t, ok)
	assert.Equal(t, []string{"s:second"}, d.Keys)
}

func TestSet_AddAndHas(t *testing.T) {
	s := NewSet()
	s.Add(&Integer{Value: 1})
	s.Add(&Integer{Value: 2})
	s.Add(&Integer{Value: 1}) // duplicate, ignored

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(&Integer{Value: 1}))
	assert.False(t, s.Has(&Integer{Value: 3}))
}

func TestFloat_StringAlwaysShowsDecimalPoint(t *testing.T) {
	assert.Equal(t, "3.0", (&Float{Value: 3}).String())
	assert.Equal(t, "3.5", (&Float{Value: 3.5}).String())
}

func TestBool_SingletonsAreShared(t *testing.T) {
	assert.Same(t, True, Bool(true))
	assert.Same(t, False, Bool(false))
}
