package infmap

// Resolve sets Parent and RefCount of every entry from the names alone,
// against the current order of entries. The first entry with a matching
// name wins and an entry never resolves to itself. Previous results are
// discarded, so Resolve may be called again after reordering.
//
// It returns the number of entries whose declared parent matched nothing.
func Resolve(entries []*Entry) int {
	for _, e := range entries {
		e.Parent = NoParent
		e.RefCount = 0
	}
	unresolved := 0
	for i, e := range entries {
		if e.ParentName == "" {
			continue
		}
		for j, p := range entries {
			if j != i && p.Name == e.ParentName {
				e.Parent = j
				p.RefCount++
				break
			}
		}
		if e.Parent == NoParent {
			unresolved++
		}
	}
	return unresolved
}

// Unresolved returns the entries with a declared parent that Resolve could
// not match.
func Unresolved(entries []*Entry) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if e.ParentName != "" && e.Parent == NoParent {
			out = append(out, e)
		}
	}
	return out
}
