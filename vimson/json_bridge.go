package vimson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// ============================================================
// JSON Bridge
// ============================================================

// FromJSON converts JSON bytes to a Value. Numbers written with a fraction
// or exponent become floats, other numbers integers; true/false become 1/0;
// null is rejected with ErrUnsupported.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("JSON parse error: %w", ErrTrailingData)
	}
	return FromNative(v)
}

// ToJSON converts v to compact JSON. Object keys come out in the same
// order as dict iteration. Floats keep a '.' so that FromJSON restores
// them as floats. NaN and infinities cannot be represented.
func ToJSON(v *Value) ([]byte, error) {
	native, err := toJSONNative("$", v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(native); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func toJSONNative(path string, v *Value) (interface{}, error) {
	switch v.Type() {
	case TypeFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: %s in JSON", ErrUnsupported, v.Serialize())}
		}
		return json.Number(v.Serialize()), nil
	case TypeList:
		out := make([]interface{}, len(v.listVal))
		for i, item := range v.listVal {
			elem, err := toJSONNative(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil
	case TypeDict:
		out := make(map[string]interface{}, v.dictVal.Size())
		for _, e := range v.entries() {
			elem, err := toJSONNative(path+"["+Quote(e.Key)+"]", e.Value)
			if err != nil {
				return nil, err
			}
			out[e.Key] = elem
		}
		return out, nil
	default:
		return ToNative(v), nil
	}
}
