package yamlx

//go:generate stringer -type=Kind

// Kind is the variant of a Value.
type Kind int

const (
	// NullKind is a null or absent value.
	NullKind Kind = iota
	// ScalarKind is a string, number, boolean or timestamp.
	ScalarKind
	// SequenceKind is an ordered list of values.
	SequenceKind
	// MappingKind is a set of unique keys with values, in insertion order.
	MappingKind
)

// Value is a node in a configuration tree.
// It is one of Null, Scalar, Sequence or *Mapping.
// A nil Value is treated as Null.
type Value interface {
	Kind() Kind
}

// Null is the null value.
type Null struct{}

// Kind implements Value.
func (Null) Kind() Kind { return NullKind }

// Scalar holds a string, bool, int, float64 or time.Time.
type Scalar struct {
	V interface{}
}

// Kind implements Value.
func (Scalar) Kind() Kind { return ScalarKind }

// S returns v as a Scalar.
func S(v interface{}) Scalar {
	return Scalar{V: v}
}

// Sequence is an ordered list of values.
type Sequence []Value

// Kind implements Value.
func (Sequence) Kind() Kind { return SequenceKind }

// Mapping is a string keyed map that remembers the order in which keys are added.
type Mapping struct {
	keys  []string
	items map[string]Value
}

// Kind implements Value.
func (*Mapping) Kind() Kind { return MappingKind }

// NewMapping returns a mapping with alternating key, value arguments.
// It panics when a key is not a string.
func NewMapping(kv ...interface{}) *Mapping {
	m := &Mapping{items: map[string]Value{}}
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("yamlx: mapping key must be a string")
		}
		m.Set(k, valueOf(kv[i+1]))
	}
	return m
}

// Get returns the value of key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.items[key]
	return v, ok
}

// Set sets key to v.
// A new key is added after the existing keys, an existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if m.items == nil {
		m.items = map[string]Value{}
	}
	if v == nil {
		v = Null{}
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Has returns true when key is in the mapping.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	r := make([]string, len(m.keys))
	copy(r, m.keys)
	return r
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// KindOf returns the Kind of v, a nil v is NullKind.
func KindOf(v Value) Kind {
	if v == nil {
		return NullKind
	}
	if m, ok := v.(*Mapping); ok && m == nil {
		return NullKind
	}
	return v.Kind()
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch x := v.(type) {
	case *Mapping:
		if x == nil {
			return Null{}
		}
		return x.Clone()
	case Sequence:
		if x == nil {
			return Sequence(nil)
		}
		r := make(Sequence, len(x))
		for i, e := range x {
			r[i] = Clone(e)
		}
		return r
	case Scalar:
		return x
	default:
		return Null{}
	}
}

// Clone returns a deep copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	r := &Mapping{
		keys:  make([]string, len(m.keys)),
		items: make(map[string]Value, len(m.items)),
	}
	copy(r.keys, m.keys)
	for k, v := range m.items {
		r.items[k] = Clone(v)
	}
	return r
}

// valueOf turns a Go value into a Value; Values are returned as-is.
func valueOf(x interface{}) Value {
	if v, ok := x.(Value); ok {
		return v
	}
	return FromInterface(x)
}
