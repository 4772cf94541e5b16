package fieldschema

import "strconv"

// Update writes a raw submitted value at a path.
type Update struct {
	Path  Path
	Value any
}

// Merge applies updates in order, then removals in order, returning a new
// tree. The input tree is never mutated, so merges stay composable. Writing
// into a list index beyond the current length pads with empty maps; removing
// a list entry nils its slot instead of compacting, keeping the index space
// of the same request stable.
func Merge(values map[string]any, updates []Update, removals []Path) map[string]any {
	out, _ := cloneTree(values).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}

	for _, update := range updates {
		// The root is always a map, so an index-leading path has no slot
		// to land in; such updates degrade to no-ops instead of replacing
		// the tree with a list.
		if len(update.Path) == 0 || isIndexSegment(update.Path[0]) {
			continue
		}
		if merged, ok := write(out, update.Path, update.Value).(map[string]any); ok {
			out = merged
		}
	}

	for _, removal := range removals {
		if len(removal) == 0 {
			continue
		}
		removeAt(out, removal)
	}

	return out
}

// write descends along the path, creating intermediate nodes as needed and
// replacing mismatched shapes. A numeric segment addresses a list, anything
// else a map; a numeric-looking field id therefore cannot sit below a map
// value, which matches how submissions are keyed.
func write(node any, p Path, value any) any {
	if len(p) == 0 {
		return value
	}

	segment := p[0]
	if isIndexSegment(segment) {
		i, _ := strconv.Atoi(segment)
		list, ok := node.([]any)
		if !ok {
			list = []any{}
		}
		for len(list) <= i {
			list = append(list, map[string]any{})
		}
		list[i] = write(list[i], p[1:], value)
		return list
	}

	m, ok := node.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	m[segment] = write(m[segment], p[1:], value)

	return m
}

func removeAt(root map[string]any, p Path) {
	parent, ok := Lookup(root, p[:len(p)-1])
	if !ok {
		return
	}

	last := p[len(p)-1]
	switch t := parent.(type) {
	case map[string]any:
		delete(t, last)
	case []any:
		i, err := strconv.Atoi(last)
		if err != nil || i < 0 || i >= len(t) {
			return
		}
		t[i] = nil
	}
}
