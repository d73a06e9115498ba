package vimson

import (
	"errors"
	"fmt"
	"strconv"
)

// A Visitor handles each VIMSON variant. Accept calls exactly one method,
// chosen by the value's active variant. List and Dict receive the value's
// own children and may call Accept on them recursively.
type Visitor[T any] interface {
	Int(int32) (T, error)
	Float(float64) (T, error)
	Str(string) (T, error)
	List([]*Value) (T, error)
	Dict([]DictEntry) (T, error)
}

// Accept applies visitor to v.
//
// Accept is a function rather than a method because Go methods cannot
// introduce type parameters.
func Accept[T any](v *Value, visitor Visitor[T]) (T, error) {
	switch v.Type() {
	case TypeInt:
		n, _ := v.AsInt()
		return visitor.Int(n)
	case TypeFloat:
		return visitor.Float(v.floatVal)
	case TypeStr:
		return visitor.Str(v.strVal)
	case TypeList:
		return visitor.List(v.listVal)
	case TypeDict:
		return visitor.Dict(v.entries())
	default:
		var zero T
		return zero, fmt.Errorf("vimson: invalid variant %d", v.Type())
	}
}

// WalkFunc is called by Walk for every value in a tree. path is the
// location of val in the canonical accessor form, e.g. $['a'][0].
// Returning SkipChildren skips the children of a list or dict; any other
// non-nil error stops the walk.
type WalkFunc func(path string, val *Value) error

// SkipChildren is used as a return value from WalkFunc.
var SkipChildren = errors.New("vimson: skip children")

// Walk visits v and its descendants depth-first in canonical order.
func Walk(v *Value, fn WalkFunc) error {
	return walk("$", v, fn)
}

func walk(path string, v *Value, fn WalkFunc) error {
	if err := fn(path, v); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	switch v.Type() {
	case TypeList:
		for i, item := range v.listVal {
			if err := walk(path+"["+strconv.Itoa(i)+"]", item, fn); err != nil {
				return err
			}
		}
	case TypeDict:
		for _, e := range v.entries() {
			if err := walk(path+"["+Quote(e.Key)+"]", e.Value, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
