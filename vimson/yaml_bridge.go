package vimson

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================

// FromYAML converts the first YAML document in data to a Value. Tags
// decide the variant: !!int becomes Int (or Float beyond 32 bits), !!float
// Float, !!str Str, !!bool 1/0. Null and binary scalars are rejected.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("YAML parse error: %w: empty document", ErrUnsupported)
	}
	return fromYAMLNode("$", doc.Content[0])
}

func fromYAMLNode(path string, n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(path, n.Alias)

	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for i, c := range n.Content {
			item, err := fromYAMLNode(path+"["+strconv.Itoa(i)+"]", c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return newList(items), nil

	case yaml.MappingNode:
		d := newDict()
		var merges []*yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, yamlErr(path, n, "non-scalar dict key")
			}
			if k.ShortTag() == "!!merge" {
				merges = append(merges, v)
				continue
			}
			item, err := fromYAMLNode(path+"["+Quote(k.Value)+"]", v)
			if err != nil {
				return nil, err
			}
			d.put(k.Value, item)
		}
		for _, m := range merges {
			if err := mergeYAML(path, d, m); err != nil {
				return nil, err
			}
		}
		return d, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(path, n)
	}
	return nil, yamlErr(path, n, "unexpected node kind")
}

// mergeYAML applies a "<<" merge key to d. The source is a mapping, an alias
// of one, or a sequence of those; keys already in d are kept, and earlier
// sources win over later ones.
func mergeYAML(path string, d *Value, src *yaml.Node) error {
	for src.Kind == yaml.AliasNode {
		src = src.Alias
	}
	switch src.Kind {
	case yaml.MappingNode:
		merged, err := fromYAMLNode(path, src)
		if err != nil {
			return err
		}
		for _, e := range merged.entries() {
			if _, found := d.dictVal.Get(e.Key); !found {
				d.put(e.Key, e.Value)
			}
		}
		return nil
	case yaml.SequenceNode:
		for _, c := range src.Content {
			for c.Kind == yaml.AliasNode {
				c = c.Alias
			}
			if c.Kind != yaml.MappingNode {
				return yamlErr(path, c, "merge of a non-mapping")
			}
			if err := mergeYAML(path, d, c); err != nil {
				return err
			}
		}
		return nil
	}
	return yamlErr(path, src, "merge of a non-mapping")
}

func fromYAMLScalar(path string, n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!str":
		return Str(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: %v", ErrNumericOverflow, err)}
		}
		return intOrFloat(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, &ConvertError{Path: path, Err: fmt.Errorf("%w: %v", ErrMalformedNumber, err)}
		}
		return Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, &ConvertError{Path: path, Err: err}
		}
		if b {
			return Int(1), nil
		}
		return Int(0), nil
	}
	return nil, yamlErr(path, n, n.ShortTag()+" scalar")
}

func yamlErr(path string, n *yaml.Node, what string) error {
	return &ConvertError{
		Path: path,
		Err:  fmt.Errorf("%w: %s at line %d", ErrUnsupported, what, n.Line),
	}
}

// ToYAML converts v to a YAML document. Dict entries keep their key order,
// floats are tagged so they read back as floats.
func ToYAML(v *Value) ([]byte, error) {
	return yaml.Marshal(toYAMLNode(v))
}

func toYAMLNode(v *Value) *yaml.Node {
	switch v.Type() {
	case TypeInt:
		n, _ := v.AsInt()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(n), 10)}
	case TypeFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.floatVal)}
	case TypeStr:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}
	case TypeList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.listVal {
			seq.Content = append(seq.Content, toYAMLNode(item))
		}
		return seq
	case TypeDict:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.entries() {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toYAMLNode(e.Value))
		}
		return m
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	e := &emitter{}
	e.emitFloat(f)
	return e.sb.String()
}
