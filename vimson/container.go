package vimson

// ============================================================
// List operations
// ============================================================

// Len returns the number of list elements or dictionary entries.
func (v *Value) Len() (int, error) {
	switch v.Type() {
	case TypeList:
		return len(v.listVal), nil
	case TypeDict:
		return v.dictVal.Size(), nil
	default:
		return 0, &TypeError{Want: "list or dict", Got: v.Type()}
	}
}

// Index returns the i-th list element. Negative indexes count from the end.
func (v *Value) Index(i int) (*Value, error) {
	if !v.IsList() {
		return nil, mismatch(TypeList, v.Type())
	}
	n := len(v.listVal)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, &IndexError{Index: i, Len: n}
	}
	return v.listVal[i], nil
}

// Append adds copies of items to the end of the list.
func (v *Value) Append(items ...*Value) error {
	if !v.IsList() {
		return mismatch(TypeList, v.Type())
	}
	for _, item := range items {
		v.listVal = append(v.listVal, item.Clone())
	}
	return nil
}

// ============================================================
// Dict operations
// ============================================================

// Get returns the value stored at key.
func (v *Value) Get(key string) (*Value, bool, error) {
	if !v.IsDict() {
		return nil, false, mismatch(TypeDict, v.Type())
	}
	found, ok := v.dictVal.Get(key)
	if !ok {
		return nil, false, nil
	}
	return found.(*Value), true, nil
}

// Set stores a copy of val at key, replacing any previous value.
func (v *Value) Set(key string, val *Value) error {
	if !v.IsDict() {
		return mismatch(TypeDict, v.Type())
	}
	v.dictVal.Put(key, val.Clone())
	return nil
}

// Delete removes key and reports whether it was present.
func (v *Value) Delete(key string) (bool, error) {
	if !v.IsDict() {
		return false, mismatch(TypeDict, v.Type())
	}
	if _, ok := v.dictVal.Get(key); !ok {
		return false, nil
	}
	v.dictVal.Remove(key)
	return true, nil
}

// Keys returns the dictionary keys in iteration (sorted) order.
func (v *Value) Keys() ([]string, error) {
	if !v.IsDict() {
		return nil, mismatch(TypeDict, v.Type())
	}
	keys := make([]string, 0, v.dictVal.Size())
	for _, k := range v.dictVal.Keys() {
		keys = append(keys, k.(string))
	}
	return keys, nil
}

// Range calls fn for each entry in key order until fn returns false.
func (v *Value) Range(fn func(key string, val *Value) bool) error {
	if !v.IsDict() {
		return mismatch(TypeDict, v.Type())
	}
	it := v.dictVal.Iterator()
	for it.Next() {
		if !fn(it.Key().(string), it.Value().(*Value)) {
			break
		}
	}
	return nil
}

func (v *Value) entries() []DictEntry {
	out := make([]DictEntry, 0, v.dictVal.Size())
	it := v.dictVal.Iterator()
	for it.Next() {
		out = append(out, DictEntry{Key: it.Key().(string), Value: it.Value().(*Value)})
	}
	return out
}

// put stores val without copying; the parser hands over freshly built values.
func (v *Value) put(key string, val *Value) {
	v.dictVal.Put(key, val)
}
