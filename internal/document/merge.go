package document

// ConflictPolicy decides what happens when both sides hold a non-mergeable
// value under the same key.
type ConflictPolicy int

const (
	// KeepFirst leaves the target's value in place; earlier chunks win.
	KeepFirst ConflictPolicy = iota
	// Overwrite replaces the target's value with the source's.
	Overwrite
)

func (p ConflictPolicy) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "keep-first"
}

// Merge folds source into target in place, key by key in source order:
//   - sequence + sequence: concatenate, then drop elements whose canonical
//     serialization was already seen (first occurrence kept)
//   - mapping + mapping: merge recursively; a missing target key starts as
//     an empty mapping
//   - key absent in target: copy the source value
//   - anything else: resolved by policy
func Merge(target, source *Mapping, policy ConflictPolicy) {
	if target == nil || source == nil {
		return
	}
	for _, key := range source.keys {
		sv := source.vals[key]
		tv, exists := target.vals[key]

		switch {
		case exists && tv.kind == KindSequence && sv.kind == KindSequence:
			combined := make([]Value, 0, len(tv.seq)+len(sv.seq))
			combined = append(combined, tv.seq...)
			for _, it := range sv.seq {
				combined = append(combined, it.Clone())
			}
			target.Set(key, Sequence(Dedupe(combined)...))

		case sv.kind == KindMapping && (!exists || tv.kind == KindMapping):
			sub := tv.m
			if !exists {
				sub = NewMapping()
				target.Set(key, Object(sub))
			}
			Merge(sub, sv.m, policy)

		case !exists:
			target.Set(key, sv.Clone())

		case policy == Overwrite:
			target.Set(key, sv.Clone())
		}
	}
}

// Dedupe keeps the first occurrence of each structurally equal element.
func Dedupe(items []Value) []Value {
	seen := make(map[string]struct{}, len(items))
	out := make([]Value, 0, len(items))
	for _, it := range items {
		c := Canonical(it)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, it)
	}
	return out
}
