package infmap

import (
	"fmt"
	"strings"

	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// Sort returns the entries reordered so that every parent precedes its
// children. The result is resolved again, so Parent indexes into it.
//
// Entries are peeled off while nothing remaining inherits from them, filling
// the result from the back. Each step takes the last such entry, not the
// first, so unrelated entries keep their declaration order rather than
// coming out reversed. The exception is the primary global: it is taken as
// soon as it is free, so it ends up after everything that does not depend
// on it.
func Sort(entries []*Entry) ([]*Entry, error) {
	n := len(entries)
	Resolve(entries)

	refs := make([]int, n)
	remaining := make([]int, n)
	for i, e := range entries {
		refs[i] = e.RefCount
		remaining[i] = i
	}

	sorted := make([]*Entry, n)
	for slot := n - 1; slot >= 0; slot-- {
		pick := -1
		for k := len(remaining) - 1; k >= 0; k-- {
			i := remaining[k]
			if refs[i] != 0 {
				continue
			}
			if pick < 0 {
				pick = k
			}
			if entries[i].PrimaryGlobal {
				pick = k
				break
			}
		}
		if pick < 0 {
			return nil, stuckError(entries, remaining)
		}

		i := remaining[pick]
		e := entries[i]
		sorted[slot] = e
		if e.Parent != NoParent {
			refs[e.Parent]--
		}
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		logger.Debugw("Placed interface", "name", e.Name, "slot", slot, "parent", e.ParentName)
	}

	Resolve(sorted)
	return sorted, nil
}

func stuckError(entries []*Entry, remaining []int) error {
	names := make([]string, 0, len(remaining))
	for _, i := range remaining {
		e := entries[i]
		names = append(names, fmt.Sprintf("%s -> %s", e.Name, e.ParentName))
	}
	err := errors.Wrapf(ErrOrderingInconsistency, "%d of %d interfaces cannot be ordered", len(remaining), len(entries))
	err = errors.WithDetailf(err, "stuck: %s", strings.Join(names, ", "))
	return errors.WithHint(err, "check the stuck interfaces for an inheritance cycle")
}
