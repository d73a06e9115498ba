package vimson

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Construction and type checks
// ============================================================

func TestNew_DefaultIsIntZero(t *testing.T) {
	v := New()
	assert.True(t, v.IsInt())
	n, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0), n)

	var zero Value
	assert.Equal(t, TypeInt, zero.Type())
	assert.Equal(t, "0", zero.Serialize())
}

func TestType_Checks(t *testing.T) {
	tests := []struct {
		val  *Value
		typ  Type
		name string
	}{
		{Int(1), TypeInt, "int"},
		{Float(1), TypeFloat, "float"},
		{Str("x"), TypeStr, "str"},
		{List(), TypeList, "list"},
		{Dict(), TypeDict, "dict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.val.Type())
			assert.Equal(t, tt.name, tt.val.Type().String())
			assert.Equal(t, tt.typ == TypeInt, tt.val.IsInt())
			assert.Equal(t, tt.typ == TypeFloat, tt.val.IsFloat())
			assert.Equal(t, tt.typ == TypeStr, tt.val.IsStr())
			assert.Equal(t, tt.typ == TypeList, tt.val.IsList())
			assert.Equal(t, tt.typ == TypeDict, tt.val.IsDict())
		})
	}
	assert.Equal(t, "unknown", Type(99).String())
}

func TestAccessors_TypeMismatch(t *testing.T) {
	s := Str("x")

	_, err := s.AsInt()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	var terr *TypeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "int", terr.Want)
	assert.Equal(t, TypeStr, terr.Got)
	assert.Equal(t, "vimson: expected int, got str", err.Error())

	_, err = Int(1).AsFloat()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Int(1).AsStr()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Int(1).AsList()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = List().AsDict()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Dict().AsList()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = s.Number()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNumber(t *testing.T) {
	f, err := Int(3).Number()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	f, err = Float(2.5).Number()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
}

// ============================================================
// Ownership
// ============================================================

func TestList_CopiesOnConstruction(t *testing.T) {
	inner := List(Int(1))
	outer := List(inner)

	require.NoError(t, inner.Append(Int(2)))
	assert.Equal(t, "[[1,],]", outer.Serialize())
}

func TestDict_CopiesOnConstruction(t *testing.T) {
	inner := List(Int(1))
	d := Dict(DictEntry{"k", inner})
	require.NoError(t, inner.Append(Int(2)))
	assert.Equal(t, "{'k':[1,],}", d.Serialize())

	m := DictFromMap(map[string]*Value{"a": inner, "b": Str("s")})
	require.NoError(t, inner.Append(Int(3)))
	assert.Equal(t, "{'a':[1,2,],'b':'s',}", m.Serialize())
}

func TestDict_LaterEntryWins(t *testing.T) {
	d := Dict(DictEntry{"a", Int(1)}, DictEntry{"a", Int(2)})
	assert.Equal(t, "{'a':2,}", d.Serialize())
}

func TestClone_IsDeep(t *testing.T) {
	orig := MustParse("{'a':[1,{'b':'c'}],'d':2.5}")
	c := orig.Clone()
	require.True(t, orig.Equal(c))

	a, ok, err := c.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, a.Append(Int(9)))
	inner, err := a.Index(1)
	require.NoError(t, err)
	require.NoError(t, inner.Set("b", Str("changed")))

	assert.Equal(t, "{'a':[1,{'b':'c',},],'d':2.5,}", orig.Serialize())
	assert.Equal(t, "{'a':[1,{'b':'changed',},9,],'d':2.5,}", c.Serialize())
	assert.False(t, orig.Equal(c))

	var nilVal *Value
	assert.True(t, Int(0).Equal(nilVal.Clone()))
}

func TestClone_Scalars(t *testing.T) {
	for _, v := range []*Value{Int(-4), Float(2.5), Str("s"), New()} {
		c := v.Clone()
		assert.NotSame(t, v, c)
		assert.True(t, v.Equal(c), "%#v", v)
	}
}

// Value carries a Locker field so that go vet's copylocks check rejects
// struct copies, which would share list and dict storage.
func TestValue_CopyIsVetChecked(t *testing.T) {
	field := reflect.TypeOf((*Value)(nil)).Elem().Field(0)
	require.Equal(t, "_", field.Name)
	assert.True(t, reflect.PointerTo(field.Type).Implements(reflect.TypeOf((*sync.Locker)(nil)).Elem()))
}

func TestAsList_ReturnsLiveChildren(t *testing.T) {
	l := List(List(), Int(1))
	items, err := l.AsList()
	require.NoError(t, err)

	items[1] = Int(5)
	assert.Equal(t, "[[],1,]", l.Serialize(), "replacing slice slots must not touch the list")

	require.NoError(t, items[0].Append(Str("x")))
	assert.Equal(t, "[['x',],1,]", l.Serialize())
}

// ============================================================
// Equality
// ============================================================

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"same int", Int(1), Int(1), true},
		{"diff int", Int(1), Int(2), false},
		{"int vs float", Int(1), Float(1), false},
		{"nan", Float(math.NaN()), Float(math.NaN()), true},
		{"zero signs", Float(0), Float(math.Copysign(0, -1)), true},
		{"strings", Str("a"), Str("a"), true},
		{"list order", List(Int(1), Int(2)), List(Int(2), Int(1)), false},
		{"list length", List(Int(1)), List(Int(1), Int(1)), false},
		{"dict", MustParse("{'a':1,'b':[2]}"), MustParse("{'b':[2],'a':1}"), true},
		{"dict values", MustParse("{'a':1}"), MustParse("{'a':2}"), false},
		{"dict keys", MustParse("{'a':1}"), MustParse("{'b':1}"), false},
		{"dict size", MustParse("{'a':1}"), MustParse("{'a':1,'b':1}"), false},
		{"nil vs zero", nil, Int(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

// ============================================================
// Container operations
// ============================================================

func TestListOps(t *testing.T) {
	l := List(Int(1), Int(2), Int(3))

	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	last, err := l.Index(-1)
	require.NoError(t, err)
	assert.True(t, Int(3).Equal(last))

	_, err = l.Index(3)
	assert.ErrorIs(t, err, ErrIndexRange)
	var ierr *IndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 3, ierr.Index)
	assert.Equal(t, 3, ierr.Len)

	_, err = l.Index(-4)
	assert.ErrorIs(t, err, ErrIndexRange)

	require.NoError(t, l.Append(Str("a"), Float(1)))
	assert.Equal(t, "[1,2,3,'a',1.0,]", l.Serialize())

	err = Int(1).Append(Int(2))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Dict().Index(0)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Str("abc").Len()
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestDictOps(t *testing.T) {
	d := Dict()
	require.NoError(t, d.Set("b", Int(2)))
	require.NoError(t, d.Set("a", Int(1)))
	require.NoError(t, d.Set("c", Int(3)))

	keys, err := d.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	v, ok, err := d.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, Int(2).Equal(v))

	_, ok, err = d.Get("zz")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := d.Delete("b")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = d.Delete("b")
	require.NoError(t, err)
	assert.False(t, removed)

	var seen []string
	require.NoError(t, d.Range(func(key string, _ *Value) bool {
		seen = append(seen, key)
		return key != "a"
	}))
	assert.Equal(t, []string{"a"}, seen)

	entries, err := d.AsDict()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[1].Key)

	_, _, err = List().Get("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, List().Set("a", Int(1)), ErrTypeMismatch)
	_, err = Int(0).Delete("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Int(0).Keys()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, Int(0).Range(func(string, *Value) bool { return true }), ErrTypeMismatch)
}
