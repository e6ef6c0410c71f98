// Package binding loads binding declaration files.
//
// A binding file names the WebIDL sources to map and pairs interface names
// with hand written implementation snippets. It is TOML or YAML:
//
//	[binding]
//	name = "dom"
//	type = "duktape"
//	webidl = ["dom.webidl", "html.webidl"]
//
//	[[class]]
//	name = "Node"
//	private = [{ type = "struct dom_node *", name = "node" }]
//
//	[class.init]
//	params = [{ type = "struct dom_node *", name = "node" }]
//	body = "priv->node = dom_node_ref(node);"
//
//	[class.getters.nodeName]
//	body = "return dom_node_get_node_name(priv->node);"
package binding

import (
	"github.com/dennwc/genbind/errors"
)

// ErrMalformedBinding is matched by every structural error in a binding file.
var ErrMalformedBinding = errors.New("malformed binding")

// File is the root of a decoded binding file.
type File struct {
	Binding Binding  `toml:"binding" yaml:"binding"`
	Classes []*Class `toml:"class" yaml:"class"`
}

// Binding holds the file-wide settings.
type Binding struct {
	Name string `toml:"name" yaml:"name"`
	// Type names the target engine, e.g. "duktape".
	Type string `toml:"type" yaml:"type"`
	// WebIDL lists the WebIDL files to load, relative to the IDL path.
	WebIDL []string `toml:"webidl" yaml:"webidl"`

	Preface  string `toml:"preface,omitempty" yaml:"preface,omitempty"`
	Prologue string `toml:"prologue,omitempty" yaml:"prologue,omitempty"`
	Epilogue string `toml:"epilogue,omitempty" yaml:"epilogue,omitempty"`
	Postface string `toml:"postface,omitempty" yaml:"postface,omitempty"`
}

// Field is a typed C declaration, such as a private struct member or a
// method parameter.
type Field struct {
	Type string `toml:"type" yaml:"type"`
	Name string `toml:"name" yaml:"name"`
}

// Method is a hand written method body.
type Method struct {
	Params []Field `toml:"params,omitempty" yaml:"params,omitempty"`
	Body   string  `toml:"body" yaml:"body"`
}

// Class is the binding for one WebIDL interface or dictionary.
type Class struct {
	Name     string  `toml:"name" yaml:"name"`
	Private  []Field `toml:"private,omitempty" yaml:"private,omitempty"`
	Internal []Field `toml:"internal,omitempty" yaml:"internal,omitempty"`

	Init *Method `toml:"init,omitempty" yaml:"init,omitempty"`
	Fini *Method `toml:"fini,omitempty" yaml:"fini,omitempty"`

	// Methods, Getters and Setters are keyed by WebIDL member name.
	Methods map[string]*Method `toml:"methods,omitempty" yaml:"methods,omitempty"`
	Getters map[string]*Method `toml:"getters,omitempty" yaml:"getters,omitempty"`
	Setters map[string]*Method `toml:"setters,omitempty" yaml:"setters,omitempty"`
}

// MethodKind selects a method table of a class.
type MethodKind int

const (
	MethodInit MethodKind = iota
	MethodFini
	MethodOperation
	MethodGetter
	MethodSetter
)

func (k MethodKind) String() string {
	switch k {
	case MethodInit:
		return "init"
	case MethodFini:
		return "fini"
	case MethodOperation:
		return "method"
	case MethodGetter:
		return "getter"
	case MethodSetter:
		return "setter"
	}
	return "unknown"
}

// Class returns the class bound to the given interface name, or nil.
// A nil file has no classes.
func (f *File) Class(name string) *Class {
	if f == nil {
		return nil
	}
	for _, c := range f.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Method returns the method of the given kind and name, or nil. The name is
// ignored for init and fini. A nil class has no methods.
func (c *Class) Method(kind MethodKind, name string) *Method {
	if c == nil {
		return nil
	}
	switch kind {
	case MethodInit:
		return c.Init
	case MethodFini:
		return c.Fini
	case MethodOperation:
		return c.Methods[name]
	case MethodGetter:
		return c.Getters[name]
	case MethodSetter:
		return c.Setters[name]
	}
	return nil
}

// Validate checks the structure of a decoded file.
func (f *File) Validate() error {
	seen := make(map[string]struct{}, len(f.Classes))
	for i, c := range f.Classes {
		if c == nil || c.Name == "" {
			return errors.Wrapf(ErrMalformedBinding, "class #%d has no name", i+1)
		}
		if _, ok := seen[c.Name]; ok {
			return errors.WithHint(
				errors.Wrapf(ErrMalformedBinding, "class %s declared twice", c.Name),
				"merge the two class declarations into one",
			)
		}
		seen[c.Name] = struct{}{}

		for _, group := range []struct {
			kind  MethodKind
			table map[string]*Method
		}{
			{MethodOperation, c.Methods},
			{MethodGetter, c.Getters},
			{MethodSetter, c.Setters},
		} {
			for name, m := range group.table {
				if m == nil {
					return errors.Wrapf(ErrMalformedBinding, "class %s: %s %s is empty", c.Name, group.kind, name)
				}
				if err := validateFields(m.Params); err != nil {
					return errors.Wrapf(err, "class %s: %s %s", c.Name, group.kind, name)
				}
			}
		}
		for _, m := range []*Method{c.Init, c.Fini} {
			if m == nil {
				continue
			}
			if err := validateFields(m.Params); err != nil {
				return errors.Wrapf(err, "class %s", c.Name)
			}
		}
		if err := validateFields(c.Private); err != nil {
			return errors.Wrapf(err, "class %s: private", c.Name)
		}
		if err := validateFields(c.Internal); err != nil {
			return errors.Wrapf(err, "class %s: internal", c.Name)
		}
	}
	return nil
}

func validateFields(fields []Field) error {
	for _, fl := range fields {
		if fl.Name == "" || fl.Type == "" {
			return errors.Wrapf(ErrMalformedBinding, "field (type %q, name %q) needs both a type and a name", fl.Type, fl.Name)
		}
	}
	return nil
}
