// Package infmap builds the interface map: the ordered table of WebIDL
// interfaces and dictionaries, with inheritance resolved, that code emission
// walks front to back.
package infmap

import (
	"fmt"

	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/errors"
)

// NoParent is the Parent index of an entry without a resolved parent.
const NoParent = -1

// Kind distinguishes interface entries from dictionary entries.
type Kind int

const (
	KindInterface Kind = iota
	KindDictionary
)

func (k Kind) String() string {
	if k == KindDictionary {
		return "dictionary"
	}
	return "interface"
}

// Entry is one interface or dictionary of the map.
type Entry struct {
	Name string
	// ParentName is the declared parent, or empty.
	ParentName string
	// Parent is the index of the parent entry in the table the entry was
	// last resolved against, or NoParent.
	Parent int
	// RefCount is the number of entries whose Parent is this entry.
	RefCount int

	Kind Kind
	// NoObject entries take part in ordering but get no interface object.
	NoObject      bool
	PrimaryGlobal bool

	// Class is the matching binding class, or nil.
	Class *binding.Class

	Operations []*Operation
	Attributes []*Attribute
	Constants  []*Constant

	// Includes lists the names of mixins and interfaces pulled in with
	// includes or implements statements, in declaration order.
	Includes []string

	// Decls holds every fragment merged into this entry, the non-partial
	// definition first when there is one.
	Decls []ast.Decl

	// Set by code emission.
	Filename      string
	ClassName     string
	ClassInitArgc int
}

// EligibleForObject reports whether an interface object is emitted for e.
func (e *Entry) EligibleForObject() bool {
	return !e.NoObject
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Name)
}

// Operation groups all overloads sharing a name.
type Operation struct {
	Name      string
	Overloads []*Overload
	// Method is the bound method body, or nil.
	Method *binding.Method
}

// Overloaded reports whether more than one signature exists.
func (op *Operation) Overloaded() bool {
	return len(op.Overloads) > 1
}

// Overload is one signature of an operation.
type Overload struct {
	Member    *ast.Member
	Return    ast.Type
	Arguments []*Argument

	OptionalCount int
	VariadicCount int

	Static bool
	// Special is the special operation keyword (getter, setter, deleter or
	// stringifier), if any.
	Special string
}

// Argument is one argument of an overload.
type Argument struct {
	Name     string
	Type     ast.Type
	Optional bool
	Variadic bool
	Default  ast.Literal
}

// Attribute is an interface attribute or dictionary member.
type Attribute struct {
	Name     string
	Member   *ast.Member
	Type     ast.Type
	Readonly bool
	Static   bool
	// PutForwards names the attribute of the value that assignments are
	// forwarded to.
	PutForwards string

	Getter *binding.Method
	// Setter is only looked up for writable or PutForwards attributes.
	Setter *binding.Method
}

// Constant is an interface constant.
type Constant struct {
	Name  string
	Type  ast.Type
	Value ast.Literal
}

// Int returns the integer value of the constant. Values above the int64
// range are unsupported; use Uint for them.
func (c *Constant) Int() (int64, error) {
	lit, ok := c.Value.(*ast.IntLiteral)
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedLiteral, "constant %s has a %T value", c.Name, c.Value)
	}
	if lit.Large {
		return 0, errors.Wrapf(ErrUnsupportedLiteral, "constant %s value %s overflows int64", c.Name, lit.Raw)
	}
	return lit.Value, nil
}

// Uint returns the value of a non-negative integer constant.
func (c *Constant) Uint() (uint64, error) {
	lit, ok := c.Value.(*ast.IntLiteral)
	switch {
	case !ok:
		return 0, errors.Wrapf(ErrUnsupportedLiteral, "constant %s has a %T value", c.Name, c.Value)
	case lit.Large:
		return lit.Uint, nil
	case lit.Value < 0:
		return 0, errors.Wrapf(ErrUnsupportedLiteral, "constant %s value %s is negative", c.Name, lit.Raw)
	}
	return uint64(lit.Value), nil
}
