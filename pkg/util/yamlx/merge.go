package yamlx

// DropFunc is called for each override value that is not merged.
// Path is the position of the value, base is nil when the key doesn't exist in base.
type DropFunc func(path []string, base, override Value)

// Merge merges overrides into a copy of base and returns the new value.
// No argument values are modified.
// Value precedence is from left (lowest) to right (highest).
func Merge(base Value, overrides ...Value) Value {
	result := Clone(base)
	for _, o := range overrides {
		result = merge(result, o, nil, nil)
	}
	return result
}

// MergeInto merges override into base and returns the result.
// Base is modified, override isn't.
//
// A mapping is merged key by key, only keys that exist in base are considered.
// A mapping or sequence is only replaced by a value of the same kind.
// A scalar or null is replaced by any value.
// Overrides that are not used are passed to dropped (when not nil).
func MergeInto(base, override Value, dropped DropFunc) Value {
	return merge(base, override, nil, dropped)
}

func merge(base, override Value, path []string, dropped DropFunc) Value {
	switch b := base.(type) {
	case *Mapping:
		if b == nil {
			break
		}
		o, ok := override.(*Mapping)
		if !ok || o == nil {
			drop(dropped, path, base, override)
			return b
		}
		for _, k := range b.keys {
			ov, found := o.items[k]
			if !found {
				continue
			}
			b.items[k] = merge(b.items[k], ov, append(path, k), dropped)
		}
		if dropped != nil {
			for _, k := range o.keys {
				if _, found := b.items[k]; !found {
					drop(dropped, append(path, k), nil, o.items[k])
				}
			}
		}
		return b
	case Sequence:
		o, ok := override.(Sequence)
		if !ok {
			drop(dropped, path, base, override)
			return b
		}
		return Clone(o)
	}

	return Clone(override)
}

func drop(fn DropFunc, path []string, base, override Value) {
	if fn == nil {
		return
	}
	p := make([]string, len(path))
	copy(p, path)
	fn(p, base, override)
}
