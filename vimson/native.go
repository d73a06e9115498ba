package vimson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Native Go bridge
// ============================================================
//
// Converts between Values and plain Go data (the shapes produced by
// encoding/json and gopkg.in/yaml.v3 when decoding into interface{}).
//
// The format has no boolean or null variants. Booleans become the
// integers 1 and 0, as the editor itself does; nil is rejected.

// ConvertError reports a value that could not be converted, with the path
// at which it was found.
type ConvertError struct {
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// ToNative converts v to plain Go data: int64, float64, string,
// []interface{} and map[string]interface{}.
func ToNative(v *Value) interface{} {
	switch v.Type() {
	case TypeInt:
		n, _ := v.AsInt()
		return int64(n)
	case TypeFloat:
		return v.floatVal
	case TypeStr:
		return v.strVal
	case TypeList:
		out := make([]interface{}, len(v.listVal))
		for i, item := range v.listVal {
			out[i] = ToNative(item)
		}
		return out
	case TypeDict:
		out := make(map[string]interface{}, v.dictVal.Size())
		it := v.dictVal.Iterator()
		for it.Next() {
			out[it.Key().(string)] = ToNative(it.Value().(*Value))
		}
		return out
	}
	return nil
}

// FromNative converts plain Go data to a Value. Integers outside the
// 32-bit range become floats.
func FromNative(x interface{}) (*Value, error) {
	return fromNative("$", x)
}

func fromNative(path string, x interface{}) (*Value, error) {
	switch val := x.(type) {
	case nil:
		return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: null", ErrUnsupported)}
	case *Value:
		return val.Clone(), nil
	case bool:
		if val {
			return Int(1), nil
		}
		return Int(0), nil
	case int:
		return intOrFloat(int64(val)), nil
	case int8:
		return Int(int32(val)), nil
	case int16:
		return Int(int32(val)), nil
	case int32:
		return Int(val), nil
	case int64:
		return intOrFloat(val), nil
	case uint:
		return uintOrFloat(uint64(val)), nil
	case uint8:
		return Int(int32(val)), nil
	case uint16:
		return Int(int32(val)), nil
	case uint32:
		return uintOrFloat(uint64(val)), nil
	case uint64:
		return uintOrFloat(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return fromJSONNumber(path, val)
	case string:
		return Str(val), nil
	case []string:
		items := make([]*Value, len(val))
		for i, s := range val {
			items[i] = Str(s)
		}
		return newList(items), nil
	case []interface{}:
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			item, err := fromNative(path+"["+strconv.Itoa(i)+"]", elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return newList(items), nil
	case map[string]interface{}:
		d := newDict()
		for k, elem := range val {
			item, err := fromNative(path+"["+Quote(k)+"]", elem)
			if err != nil {
				return nil, err
			}
			d.put(k, item)
		}
		return d, nil
	case map[interface{}]interface{}:
		d := newDict()
		for k, elem := range val {
			key, ok := k.(string)
			if !ok {
				return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: dict key of type %T", ErrUnsupported, k)}
			}
			item, err := fromNative(path+"["+Quote(key)+"]", elem)
			if err != nil {
				return nil, err
			}
			d.put(key, item)
		}
		return d, nil
	default:
		return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: %T", ErrUnsupported, x)}
	}
}

func intOrFloat(n int64) *Value {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return Float(float64(n))
	}
	return Int(int32(n))
}

func uintOrFloat(n uint64) *Value {
	if n > math.MaxInt32 {
		return Float(float64(n))
	}
	return Int(int32(n))
}

// fromJSONNumber keeps the int/float distinction of the literal: numbers
// written with a fraction or exponent are floats.
func fromJSONNumber(path string, n json.Number) (*Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intOrFloat(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: number %s", ErrNumericOverflow, s)}
	}
	return Float(f), nil
}
