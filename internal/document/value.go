// Package document models the schema-less structured document produced by
// extraction: a tagged recursive value whose mappings keep key order.
package document

import (
	"math"
	"sort"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Value is a scalar, an ordered sequence of values, or a nested Mapping.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	seq  []Value
	m    *Mapping
}

func Null() Value             { return Value{} }
func String(s string) Value   { return Value{kind: KindString, str: s} }
func Number(f float64) Value  { return Value{kind: KindNumber, num: f} }
func Int(i int) Value         { return Value{kind: KindNumber, num: float64(i)} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Object(m *Mapping) Value { return Value{kind: KindMapping, m: orEmpty(m)} }
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// Strings builds a sequence of string values.
func Strings(items []string) Value {
	out := make([]Value, 0, len(items))
	for _, s := range items {
		out = append(out, String(s))
	}
	return Sequence(out...)
}

func orEmpty(m *Mapping) *Mapping {
	if m == nil {
		return NewMapping()
	}
	return m
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsSequence() bool  { return v.kind == KindSequence }
func (v Value) IsMapping() bool   { return v.kind == KindMapping }
func (v Value) Sequence() []Value { return v.seq }
func (v Value) Mapping() *Mapping { return v.m }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Clone returns a deep copy; mutating the copy never affects v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindSequence:
		items := make([]Value, len(v.seq))
		for i, it := range v.seq {
			items[i] = it.Clone()
		}
		return Sequence(items...)
	case KindMapping:
		return Object(v.m.Clone())
	default:
		return v
	}
}

// Mapping is an insertion-ordered string-keyed map of values.
type Mapping struct {
	keys []string
	vals map[string]Value
}

func NewMapping() *Mapping {
	return &Mapping{vals: make(map[string]Value)}
}

// Set assigns key; a new key is appended, an existing key keeps its position.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[key]
	return v, ok
}

func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.vals[k].Clone())
	}
	return out
}

// Lookup resolves a dotted path through nested mappings.
func (m *Mapping) Lookup(path string) (Value, bool) {
	cur := m
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, ok := cur.Get(p)
		if !ok {
			return Value{}, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if v.kind != KindMapping {
			return Value{}, false
		}
		cur = v.m
	}
	return Value{}, false
}

// FromAny converts decoded Go values (as produced by encoding/json into any)
// into a Value. Go maps carry no order, so their keys are sorted.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Mapping:
		return Object(t)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Int(t)
	case int64:
		return Number(float64(t))
	case []string:
		return Strings(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, it := range t {
			items = append(items, FromAny(it))
		}
		return Sequence(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return Object(m)
	default:
		return Null()
	}
}

// ToAny converts v into plain Go values (map[string]any, []any, scalars).
func (v Value) ToAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil
		}
		return v.num
	case KindBool:
		return v.b
	case KindSequence:
		out := make([]any, 0, len(v.seq))
		for _, it := range v.seq {
			out = append(out, it.ToAny())
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for _, k := range v.m.keys {
			out[k] = v.m.vals[k].ToAny()
		}
		return out
	default:
		return nil
	}
}
