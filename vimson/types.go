package vimson

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Type represents the VIMSON value variants.
type Type uint8

const (
	TypeInt Type = iota
	TypeFloat
	TypeStr
	TypeList
	TypeDict
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeStr:
		return "str"
	case TypeList:
		return "list"
	case TypeDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is a VIMSON value. The zero Value is the integer 0.
//
// A Value owns everything reachable from it: constructors and mutators copy
// the Values passed to them, so no Value is ever shared between two parents.
// Always handle Values through pointers and copy them with Clone. A struct
// copy (x := *v) shares list and dict storage with v; go vet reports it.
type Value struct {
	_ noCopy

	typ Type

	intVal   int32
	floatVal float64
	strVal   string

	listVal []*Value
	dictVal *redblacktree.Tree
}

// noCopy makes go vet's copylocks check flag struct copies of Value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// DictEntry is a key/value pair used to build a Dict.
type DictEntry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// New returns the default value, integer 0.
func New() *Value {
	return &Value{typ: TypeInt}
}

// Int creates an integer value.
func Int(v int32) *Value {
	return &Value{typ: TypeInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{typ: TypeFloat, floatVal: v}
}

// Str creates a string value holding the decoded bytes of v.
func Str(v string) *Value {
	return &Value{typ: TypeStr, strVal: v}
}

// List creates a list holding copies of values. A nil element becomes 0.
func List(values ...*Value) *Value {
	items := make([]*Value, len(values))
	for i, v := range values {
		items[i] = v.Clone()
	}
	return newList(items)
}

// Dict creates a dictionary from entries. Later entries overwrite earlier
// ones with the same key.
func Dict(entries ...DictEntry) *Value {
	d := newDict()
	for _, e := range entries {
		d.dictVal.Put(e.Key, e.Value.Clone())
	}
	return d
}

// DictFromMap creates a dictionary holding copies of the map's values.
func DictFromMap(m map[string]*Value) *Value {
	d := newDict()
	for k, v := range m {
		d.dictVal.Put(k, v.Clone())
	}
	return d
}

// newList takes ownership of items without copying.
func newList(items []*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{typ: TypeList, listVal: items}
}

func newDict() *Value {
	return &Value{typ: TypeDict, dictVal: redblacktree.NewWithStringComparator()}
}

// ============================================================
// Type checks
// ============================================================

// Type returns the active variant. A nil Value reports TypeInt.
func (v *Value) Type() Type {
	if v == nil {
		return TypeInt
	}
	return v.typ
}

// Is reports whether the active variant is t.
func (v *Value) Is(t Type) bool {
	return v.Type() == t
}

// IsInt returns true if this is an integer value.
func (v *Value) IsInt() bool { return v.Is(TypeInt) }

// IsFloat returns true if this is a float value.
func (v *Value) IsFloat() bool { return v.Is(TypeFloat) }

// IsStr returns true if this is a string value.
func (v *Value) IsStr() bool { return v.Is(TypeStr) }

// IsList returns true if this is a list value.
func (v *Value) IsList() bool { return v.Is(TypeList) }

// IsDict returns true if this is a dict value.
func (v *Value) IsDict() bool { return v.Is(TypeDict) }

// ============================================================
// Accessors
// ============================================================

// AsInt returns the integer payload.
func (v *Value) AsInt() (int32, error) {
	if !v.IsInt() {
		return 0, mismatch(TypeInt, v.Type())
	}
	if v == nil {
		return 0, nil
	}
	return v.intVal, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float64, error) {
	if !v.IsFloat() {
		return 0, mismatch(TypeFloat, v.Type())
	}
	return v.floatVal, nil
}

// AsStr returns the string payload.
func (v *Value) AsStr() (string, error) {
	if !v.IsStr() {
		return "", mismatch(TypeStr, v.Type())
	}
	return v.strVal, nil
}

// AsList returns the list elements. The slice is fresh but its elements are
// the list's own children; modifying them modifies the list.
func (v *Value) AsList() ([]*Value, error) {
	if !v.IsList() {
		return nil, mismatch(TypeList, v.Type())
	}
	out := make([]*Value, len(v.listVal))
	copy(out, v.listVal)
	return out, nil
}

// AsDict returns the dictionary entries in key order. As with AsList, the
// entry values are the dictionary's own children.
func (v *Value) AsDict() ([]DictEntry, error) {
	if !v.IsDict() {
		return nil, mismatch(TypeDict, v.Type())
	}
	return v.entries(), nil
}

// Number returns the payload of an Int or Float as float64.
func (v *Value) Number() (float64, error) {
	switch v.Type() {
	case TypeInt:
		if v == nil {
			return 0, nil
		}
		return float64(v.intVal), nil
	case TypeFloat:
		return v.floatVal, nil
	default:
		return 0, &TypeError{Want: "number", Got: v.Type()}
	}
}

// ============================================================
// Copy and comparison
// ============================================================

// Clone returns a deep copy of v. Cloning nil yields integer 0.
func (v *Value) Clone() *Value {
	if v == nil {
		return New()
	}
	switch v.typ {
	case TypeList:
		items := make([]*Value, len(v.listVal))
		for i, item := range v.listVal {
			items[i] = item.Clone()
		}
		return newList(items)
	case TypeDict:
		d := newDict()
		it := v.dictVal.Iterator()
		for it.Next() {
			d.dictVal.Put(it.Key(), it.Value().(*Value).Clone())
		}
		return d
	default:
		return &Value{typ: v.Type(), intVal: v.intVal, floatVal: v.floatVal, strVal: v.strVal}
	}
}

// Equal reports whether v and other hold the same variant and content.
// NaN floats compare equal to each other.
func (v *Value) Equal(other *Value) bool {
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case TypeInt:
		a, _ := v.AsInt()
		b, _ := other.AsInt()
		return a == b
	case TypeFloat:
		if math.IsNaN(v.floatVal) && math.IsNaN(other.floatVal) {
			return true
		}
		return v.floatVal == other.floatVal
	case TypeStr:
		return v.strVal == other.strVal
	case TypeList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeDict:
		if v.dictVal.Size() != other.dictVal.Size() {
			return false
		}
		a, b := v.dictVal.Iterator(), other.dictVal.Iterator()
		for a.Next() && b.Next() {
			if a.Key().(string) != b.Key().(string) {
				return false
			}
			if !a.Value().(*Value).Equal(b.Value().(*Value)) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the canonical serialization.
func (v *Value) String() string {
	return v.Serialize()
}

// GoString returns a debug representation.
func (v *Value) GoString() string {
	return fmt.Sprintf("vimson.Value{%s %s}", v.Type(), v.Serialize())
}
