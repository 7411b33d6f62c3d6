package document

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToStructPB converts a mapping into a protobuf Struct for gRPC transport.
// Struct fields are unordered on the wire; key order is not preserved.
func ToStructPB(m *Mapping) (*structpb.Struct, error) {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, m.Len())}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		pv, err := ToValuePB(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out.Fields[k] = pv
	}
	return out, nil
}

func ToValuePB(v Value) (*structpb.Value, error) {
	switch v.kind {
	case KindNull:
		return structpb.NewNullValue(), nil
	case KindString:
		return structpb.NewStringValue(v.str), nil
	case KindNumber:
		return structpb.NewNumberValue(v.num), nil
	case KindBool:
		return structpb.NewBoolValue(v.b), nil
	case KindSequence:
		items := make([]*structpb.Value, 0, len(v.seq))
		for i, it := range v.seq {
			pv, err := ToValuePB(it)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, pv)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: items}), nil
	case KindMapping:
		s, err := ToStructPB(v.m)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(s), nil
	default:
		return nil, fmt.Errorf("unknown kind %d", v.kind)
	}
}

// FromValuePB converts a protobuf value back; struct keys come out sorted.
func FromValuePB(pv *structpb.Value) Value {
	if pv == nil {
		return Null()
	}
	return FromAny(pv.AsInterface())
}
