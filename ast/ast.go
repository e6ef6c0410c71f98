// Package ast declares the types used to represent WebIDL syntax trees.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	NodeBase() *Base
}

// Base holds the position and diagnostics shared by all nodes.
type Base struct {
	Start    int          `json:"start"` // rune
	End      int          `json:"end"`   // rune
	Comments []string     `json:"comments,omitempty"`
	Errors   []*ErrorNode `json:"errors,omitempty"`
}

func (b *Base) NodeBase() *Base {
	return b
}

// error occurred; value is text of error
type ErrorNode struct {
	Base
	Message string `json:"message"`
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	isDecl()
}

// The file root node
type File struct {
	Base
	Declarations []Decl `json:"declarations,omitempty"`
}

// interface Foo : Bar { ... }
type Interface struct {
	Base
	Name        string      `json:"name"`
	Inherits    string      `json:"inherits,omitempty"`
	Partial     bool        `json:"partial,omitempty"`
	Callback    bool        `json:"callback,omitempty"`
	Annotations Annotations `json:"annotations,omitempty"`
	Members     []*Member   `json:"members,omitempty"`
	CustomOps   []*CustomOp `json:"custom_ops,omitempty"`
	Iterable    *Iterable   `json:"iterable,omitempty"`
}

func (*Interface) isDecl() {}

// interface mixin Foo { ... }
type Mixin struct {
	Base
	Name        string      `json:"name"`
	Inherits    string      `json:"inherits,omitempty"`
	Partial     bool        `json:"partial,omitempty"`
	Annotations Annotations `json:"annotations,omitempty"`
	Members     []*Member   `json:"members,omitempty"`
	CustomOps   []*CustomOp `json:"custom_ops,omitempty"`
	Iterable    *Iterable   `json:"iterable,omitempty"`
}

func (*Mixin) isDecl() {}

// dictionary Foo : Bar { ... }
type Dictionary struct {
	Base
	Name        string      `json:"name"`
	Inherits    string      `json:"inherits,omitempty"`
	Partial     bool        `json:"partial,omitempty"`
	Annotations Annotations `json:"annotations,omitempty"`
	Members     []*Member   `json:"members,omitempty"`
}

func (*Dictionary) isDecl() {}

// enum Foo { "a", "b" }
type Enum struct {
	Base
	Name        string      `json:"name"`
	Annotations Annotations `json:"annotations,omitempty"`
	Values      []Literal   `json:"values,omitempty"`
}

func (*Enum) isDecl() {}

// callback Foo = void (Bar x);
type Callback struct {
	Base
	Name        string       `json:"name"`
	Annotations Annotations  `json:"annotations,omitempty"`
	Return      Type         `json:"return,omitempty"`
	Parameters  []*Parameter `json:"parameters,omitempty"`
}

func (*Callback) isDecl() {}

// typedef (A or B) Foo;
type Typedef struct {
	Base
	Name        string      `json:"name"`
	Annotations Annotations `json:"annotations,omitempty"`
	Type        Type        `json:"type"`
}

func (*Typedef) isDecl() {}

// Window implements ECMA262Globals
type Implementation struct {
	Base
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (*Implementation) isDecl() {}

// Document includes DocumentOrShadowRoot
type Includes struct {
	Base
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (*Includes) isDecl() {}

// [Constructor], []
type Annotation struct {
	Base
	Name       string       `json:"name"`
	Value      string       `json:"value,omitempty"`      // [A=B]
	Parameters []*Parameter `json:"parameters,omitempty"` // [A(X x, Y y)]
	Values     []string     `json:"values,omitempty"`     // [A=(a,b,c)]
}

// Annotations is the extended attribute list of a node.
type Annotations []*Annotation

// Find returns the first annotation with the given name, or nil.
func (a Annotations) Find(name string) *Annotation {
	for _, an := range a {
		if an.Name == name {
			return an
		}
	}
	return nil
}

// Has reports whether an annotation with the given name is present.
func (a Annotations) Has(name string) bool {
	return a.Find(name) != nil
}

// optional any SomeArg
type Parameter struct {
	Base
	Annotations Annotations `json:"annotations,omitempty"`
	Type        Type        `json:"type"`
	Optional    bool        `json:"optional,omitempty"`
	Variadic    bool        `json:"variadic,omitempty"`
	Name        string      `json:"name"`
	Init        Literal     `json:"init,omitempty"`
}

// MemberKind classifies interface and dictionary members.
type MemberKind int

const (
	MemberOperation MemberKind = iota
	MemberAttribute
	MemberConstant
)

func (k MemberKind) String() string {
	switch k {
	case MemberOperation:
		return "operation"
	case MemberAttribute:
		return "attribute"
	case MemberConstant:
		return "constant"
	}
	return "unknown"
}

// readonly attribute something
type Member struct {
	Base
	Name           string       `json:"name,omitempty"`
	Type           Type         `json:"type,omitempty"`
	Init           Literal      `json:"init,omitempty"`
	Attribute      bool         `json:"attribute,omitempty"`
	Static         bool         `json:"static,omitempty"`
	Const          bool         `json:"const,omitempty"`
	Readonly       bool         `json:"readonly,omitempty"`
	Required       bool         `json:"required,omitempty"`
	Specialization string       `json:"specialization,omitempty"`
	Parameters     []*Parameter `json:"parameters,omitempty"`
	Annotations    Annotations  `json:"annotations,omitempty"`
}

// Kind reports whether the member is an operation, attribute or constant.
func (m *Member) Kind() MemberKind {
	switch {
	case m.Const:
		return MemberConstant
	case m.Attribute:
		return MemberAttribute
	}
	return MemberOperation
}

// MembersOf returns the members of the given kind, in declaration order.
func MembersOf(members []*Member, kind MemberKind) []*Member {
	var out []*Member
	for _, m := range members {
		if m.Kind() == kind {
			out = append(out, m)
		}
	}
	return out
}

type CustomOp struct {
	Base
	Name string `json:"name"`
}

type Iterable struct {
	Base
	Key  Type `json:"key,omitempty"`
	Type Type `json:"type"`
}

// Type is a WebIDL type expression.
type Type interface {
	Node
	isType()
}

// DOMString, unsigned long, Node
type TypeName struct {
	Base
	Name string `json:"name"`
}

func (*TypeName) isType() {}

type AnyType struct {
	Base
}

func (*AnyType) isType() {}

// sequence<T>
type SequenceType struct {
	Base
	Elem Type `json:"elem"`
}

func (*SequenceType) isType() {}

// Promise<T>, record<K, V>, FrozenArray<T>
type ParametrizedType struct {
	Base
	Name  string `json:"name"`
	Elems []Type `json:"elems"`
}

func (*ParametrizedType) isType() {}

// (A or B)
type UnionType struct {
	Base
	Types []Type `json:"types"`
}

func (*UnionType) isType() {}

// T?
type NullableType struct {
	Base
	Type Type `json:"type"`
}

func (*NullableType) isType() {}

// Literal is a constant or default value.
type Literal interface {
	Node
	isLiteral()
}

// 42, 0x1F, -7
type IntLiteral struct {
	Base
	Value int64 `json:"value"`
	// Large is set for values above the int64 range. Value is then zero and
	// Uint holds the value.
	Large bool   `json:"large,omitempty"`
	Uint  uint64 `json:"uint,omitempty"`
	Raw   string `json:"raw"`
}

func (*IntLiteral) isLiteral() {}

// 1.5, 2e10
type FloatLiteral struct {
	Base
	Value float64 `json:"value"`
	Raw   string  `json:"raw"`
}

func (*FloatLiteral) isLiteral() {}

type StringLiteral struct {
	Base
	Value string `json:"value"`
}

func (*StringLiteral) isLiteral() {}

type BoolLiteral struct {
	Base
	Value bool `json:"value"`
}

func (*BoolLiteral) isLiteral() {}

type NullLiteral struct {
	Base
}

func (*NullLiteral) isLiteral() {}

// Infinity, -Infinity, NaN
type IdentLiteral struct {
	Base
	Name string `json:"name"`
}

func (*IdentLiteral) isLiteral() {}

// []
type SequenceLiteral struct {
	Base
}

func (*SequenceLiteral) isLiteral() {}

// {}
type DictionaryLiteral struct {
	Base
}

func (*DictionaryLiteral) isLiteral() {}
