// Package ctybridge converts between vimson values and go-cty values, so
// that VIMSON data can be fed to HCL-based tooling and back.
//
// cty has a single arbitrary-precision number type. Ints and Floats both
// become cty.Number; on the way back, numbers with an exact 32-bit integer
// value become Ints and everything else Floats, so an integral Float such
// as 2.0 returns as Int 2. cty normalizes strings to NFC.
package ctybridge

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/zclconf/go-cty/cty"

	"github.com/Neumenon/vimson/vimson"
)

// ErrUnconvertible is wrapped by every conversion failure.
var ErrUnconvertible = errors.New("ctybridge: value cannot be converted")

// ToCty converts v. Lists become tuples and dicts objects, since their
// elements need not share a type.
func ToCty(v *vimson.Value) (cty.Value, error) {
	return vimson.Accept[cty.Value](v, toCty{})
}

type toCty struct{}

func (toCty) Int(n int32) (cty.Value, error) {
	return cty.NumberIntVal(int64(n)), nil
}

func (toCty) Float(f float64) (cty.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, fmt.Errorf("%w: %v", ErrUnconvertible, f)
	}
	return cty.NumberFloatVal(f), nil
}

func (toCty) Str(s string) (cty.Value, error) {
	return cty.StringVal(s), nil
}

func (c toCty) List(items []*vimson.Value) (cty.Value, error) {
	if len(items) == 0 {
		return cty.EmptyTupleVal, nil
	}
	out := make([]cty.Value, len(items))
	for i, item := range items {
		cv, err := vimson.Accept[cty.Value](item, c)
		if err != nil {
			return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = cv
	}
	return cty.TupleVal(out), nil
}

func (c toCty) Dict(entries []vimson.DictEntry) (cty.Value, error) {
	if len(entries) == 0 {
		return cty.EmptyObjectVal, nil
	}
	out := make(map[string]cty.Value, len(entries))
	for _, e := range entries {
		cv, err := vimson.Accept[cty.Value](e.Value, c)
		if err != nil {
			return cty.NilVal, fmt.Errorf("[%s]: %w", vimson.Quote(e.Key), err)
		}
		out[e.Key] = cv
	}
	return cty.ObjectVal(out), nil
}

// FromCty converts a known, non-null cty value. Bools become 1/0.
func FromCty(v cty.Value) (*vimson.Value, error) {
	return fromCty("$", v)
}

func fromCty(path string, v cty.Value) (*vimson.Value, error) {
	if v.IsMarked() {
		v, _ = v.Unmark()
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("%s: %w: unknown value", path, ErrUnconvertible)
	}
	if v.IsNull() {
		return nil, fmt.Errorf("%s: %w: null", path, ErrUnconvertible)
	}

	ty := v.Type()
	switch {
	case ty == cty.Number:
		return fromNumber(v.AsBigFloat()), nil

	case ty == cty.String:
		return vimson.Str(v.AsString()), nil

	case ty == cty.Bool:
		if v.True() {
			return vimson.Int(1), nil
		}
		return vimson.Int(0), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := vimson.List()
		for i, elem := range v.AsValueSlice() {
			item, err := fromCty(path+"["+strconv.Itoa(i)+"]", elem)
			if err != nil {
				return nil, err
			}
			if err := out.Append(item); err != nil {
				return nil, err
			}
		}
		return out, nil

	case ty.IsMapType() || ty.IsObjectType():
		out := vimson.Dict()
		for k, elem := range v.AsValueMap() {
			item, err := fromCty(path+"["+vimson.Quote(k)+"]", elem)
			if err != nil {
				return nil, err
			}
			if err := out.Set(k, item); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("%s: %w: %s", path, ErrUnconvertible, ty.FriendlyName())
}

func fromNumber(bf *big.Float) *vimson.Value {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact && i >= math.MinInt32 && i <= math.MaxInt32 {
			return vimson.Int(int32(i))
		}
	}
	f, _ := bf.Float64()
	return vimson.Float(f)
}
