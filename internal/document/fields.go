package document

import "strings"

// Fields lists the dotted key paths of doc depth-first, in key order.
// Sequences are reported at their own key but never descended into.
// Recursion into a nested mapping stops once the parent prefix already has
// maxDepth or more segments (the top level counts as one segment).
func Fields(doc *Mapping, maxDepth int) []string {
	out := []string{}
	collectFields(doc, "", maxDepth, &out)
	return out
}

func collectFields(m *Mapping, prefix string, maxDepth int, out *[]string) {
	if m == nil {
		return
	}
	depth := len(strings.Split(prefix, "."))
	for _, key := range m.keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		*out = append(*out, path)

		v := m.vals[key]
		if v.kind == KindMapping && depth < maxDepth {
			collectFields(v.m, path, maxDepth, out)
		}
	}
}
