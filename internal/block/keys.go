package block

import (
	"sort"
	"strings"
	"unicode/utf16"
)

// ExperimentalPrefix marks keys that never show up in generated docs.
const ExperimentalPrefix = "__exp"

// TruthyKeys returns, in document order, the keys of mapping v whose values
// are truthy. Experimental keys are skipped. Non-mappings have no keys.
func TruthyKeys(v Value) []string {
	if v.Kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(v.Keys))
	for _, k := range v.Keys {
		if strings.HasPrefix(k, ExperimentalPrefix) {
			continue
		}
		if v.Fields[k].Truthy() {
			keys = append(keys, k)
		}
	}
	return keys
}

// InnerKeys expands each truthy key of v with what it holds: a sequence
// becomes "k (a, b)" with sorted elements, a mapping becomes "k (x, y)" with
// its sorted truthy keys, anything else is just "k".
func InnerKeys(v Value) []string {
	keys := TruthyKeys(v)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		child := v.Fields[k]
		switch child.Kind {
		case Sequence:
			items := append([]Value(nil), child.Items...)
			sort.SliceStable(items, func(i, j int) bool {
				return lessUTF16(items[i].sortKey(), items[j].sortKey())
			})
			texts := make([]string, len(items))
			for i, item := range items {
				texts[i] = item.Display()
			}
			out = append(out, k+" ("+strings.Join(texts, ", ")+")")
		case Mapping:
			inner := TruthyKeys(child)
			SortStrings(inner)
			out = append(out, k+" ("+strings.Join(inner, ", ")+")")
		default:
			out = append(out, k)
		}
	}
	return out
}

// SortStrings sorts by UTF-16 code units, the order the block editor's
// tooling produces. It only differs from byte order for characters outside
// the Basic Multilingual Plane.
func SortStrings(ss []string) {
	sort.SliceStable(ss, func(i, j int) bool { return lessUTF16(ss[i], ss[j]) })
}

func lessUTF16(a, b string) bool {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}
