package yamlx

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON) text and returns its value.
// Mapping keys keep the order of the text.
// An empty text is Null.
func Decode(text []byte) (Value, error) {
	var n yaml.Node
	err := yaml.Unmarshal(text, &n)
	if err != nil {
		return nil, err
	}
	return FromNode(&n)
}

// FromNode converts a yaml.v3 node tree into a Value.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null{}, nil
	}

	switch n.Kind {
	case 0:
		return Null{}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.MappingNode:
		return mappingFromNode(n)
	case yaml.SequenceNode:
		s := make(Sequence, 0, len(n.Content))
		for _, en := range n.Content {
			v, err := FromNode(en)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return Null{}, nil
		}
		var x interface{}
		err := n.Decode(&x)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Scalar{V: x}, nil
	}

	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// MappingFromNode converts a mapping node.
// Merge keys (<<: *anchor or <<: [*a, *b]) add the keys of the referenced mappings
// that the mapping doesn't set itself, earlier mappings in a list take precedence.
func mappingFromNode(n *yaml.Node) (*Mapping, error) {
	explicit := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if kn := n.Content[i]; !isMergeKey(kn) {
			explicit[kn.Value] = true
		}
	}

	m := NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", kn.Line)
		}
		v, err := FromNode(vn)
		if err != nil {
			return nil, err
		}

		if !isMergeKey(kn) {
			m.Set(kn.Value, v)
			continue
		}

		var sources []Value
		switch x := v.(type) {
		case *Mapping:
			sources = []Value{x}
		case Sequence:
			sources = x
		default:
			return nil, fmt.Errorf("line %d: merge key value must be a mapping or a sequence of mappings", kn.Line)
		}
		for _, src := range sources {
			sm, ok := src.(*Mapping)
			if !ok {
				return nil, fmt.Errorf("line %d: merge key value must be a mapping or a sequence of mappings", kn.Line)
			}
			for _, k := range sm.keys {
				if explicit[k] || m.Has(k) {
					continue
				}
				m.Set(k, sm.items[k])
			}
		}
	}
	return m, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// FromInterface converts decoded Go values (maps, slices, scalars) into a Value.
// Keys of Go maps are sorted because their order is unknown.
func FromInterface(x interface{}) Value {
	switch t := x.(type) {
	case nil:
		return Null{}
	case Value:
		return Clone(t)
	case map[string]interface{}:
		m := NewMapping()
		for _, k := range sortedKeys(t) {
			m.Set(k, FromInterface(t[k]))
		}
		return m
	case map[interface{}]interface{}:
		sm := make(map[string]interface{}, len(t))
		for k, v := range t {
			sm[fmt.Sprint(k)] = v
		}
		return FromInterface(sm)
	case []interface{}:
		s := make(Sequence, len(t))
		for i, e := range t {
			s[i] = FromInterface(e)
		}
		return s
	case []map[string]interface{}:
		s := make(Sequence, len(t))
		for i, e := range t {
			s[i] = FromInterface(e)
		}
		return s
	case []string:
		s := make(Sequence, len(t))
		for i, e := range t {
			s[i] = Scalar{V: e}
		}
		return s
	case int64:
		return Scalar{V: int(t)}
	}
	return Scalar{V: x}
}

// ToInterface converts v into Go maps, slices and scalars.
// Use it to hand a Value to code that expects generic data like templates or mapstructure.
func ToInterface(v Value) interface{} {
	switch x := v.(type) {
	case *Mapping:
		if x == nil {
			return nil
		}
		r := make(map[string]interface{}, len(x.keys))
		for _, k := range x.keys {
			r[k] = ToInterface(x.items[k])
		}
		return r
	case Sequence:
		r := make([]interface{}, len(x))
		for i, e := range x {
			r[i] = ToInterface(e)
		}
		return r
	case Scalar:
		return x.V
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
