package infmap

import (
	"strings"

	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// Map is the ordered, resolved interface table. It is read-only once built.
type Map struct {
	entries []*Entry
	index   map[string]int
	webidl  *ast.File
	bind    *binding.File
}

// New builds, resolves, sorts and validates the interface map of idl.
func New(cfg *config.Config, idl *ast.File, bind *binding.File) (*Map, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	entries, err := Build(cfg, idl, bind)
	if err != nil {
		return nil, err
	}

	if Resolve(entries) != 0 {
		if err := checkUnresolved(cfg, Unresolved(entries)); err != nil {
			return nil, err
		}
	}

	sorted, err := Sort(entries)
	if err != nil {
		return nil, err
	}

	m := &Map{
		entries: sorted,
		index:   make(map[string]int, len(sorted)),
		webidl:  idl,
		bind:    bind,
	}
	for i, e := range sorted {
		if _, ok := m.index[e.Name]; !ok {
			m.index[e.Name] = i
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func checkUnresolved(cfg *config.Config, list []*Entry) error {
	names := make([]string, 0, len(list))
	for _, e := range list {
		if !cfg.StrictParents {
			logger.Warnw("Parent interface not found, treating as root",
				"interface", e.Name, "parent", e.ParentName)
		}
		names = append(names, e.Name+" : "+e.ParentName)
	}
	if !cfg.StrictParents {
		return nil
	}
	err := errors.Wrapf(ErrUnresolvedParent, "%d interfaces inherit from undeclared names", len(list))
	err = errors.WithDetailf(err, "unresolved: %s", strings.Join(names, ", "))
	return errors.WithHint(err, "add the missing WebIDL files to the binding, or drop --strict-parents")
}

func (m *Map) validate() error {
	var globals []string
	for _, e := range m.entries {
		if e.PrimaryGlobal {
			globals = append(globals, e.Name)
		}
	}
	if len(globals) > 1 {
		return errors.WithDetailf(
			errors.Wrapf(ErrMultiplePrimaryGlobals, "%d interfaces are marked as the primary global", len(globals)),
			"globals: %s", strings.Join(globals, ", "),
		)
	}
	for _, e := range m.entries {
		if p := m.Parent(e); p != nil && p.PrimaryGlobal {
			logger.Warnw("Interface inherits from the primary global, which will not be created last",
				"interface", e.Name, "global", p.Name)
		}
	}
	return nil
}

// Entries returns the entries in emission order. The slice must not be
// modified.
func (m *Map) Entries() []*Entry {
	return m.entries
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entry returns the entry with the given name, or nil.
func (m *Map) Entry(name string) *Entry {
	if i := m.Index(name); i >= 0 {
		return m.entries[i]
	}
	return nil
}

// Index returns the position of the named entry, or -1.
func (m *Map) Index(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

// Parent returns the parent entry of e, or nil.
func (m *Map) Parent(e *Entry) *Entry {
	if e == nil || e.Parent == NoParent || e.Parent >= len(m.entries) {
		return nil
	}
	return m.entries[e.Parent]
}

// ObjectEntries returns the entries an interface object is emitted for, in
// emission order.
func (m *Map) ObjectEntries() []*Entry {
	var out []*Entry
	for _, e := range m.entries {
		if e.EligibleForObject() {
			out = append(out, e)
		}
	}
	return out
}

// PrototypeOrder returns the interfaces whose prototypes are created, in
// creation order. Dictionaries get no prototype. The primary global comes
// last unless another interface inherits from it.
func (m *Map) PrototypeOrder() []*Entry {
	var out []*Entry
	for _, e := range m.entries {
		if e.EligibleForObject() && e.Kind == KindInterface {
			out = append(out, e)
		}
	}
	return out
}

// Includes returns the entries e includes, skipping names not in the map.
func (m *Map) Includes(e *Entry) []*Entry {
	var out []*Entry
	for _, name := range e.Includes {
		if inc := m.Entry(name); inc != nil {
			out = append(out, inc)
		}
	}
	return out
}

// Binding returns the binding file the map was built with.
func (m *Map) Binding() *binding.File {
	return m.bind
}

// WebIDL returns the WebIDL tree the map was built from.
func (m *Map) WebIDL() *ast.File {
	return m.webidl
}
