package infmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
	"github.com/dennwc/genbind/parser"
)

func parseIDL(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile("test.webidl", src)
	require.NoError(t, err)
	return f
}

func build(t *testing.T, src string, bind *binding.File) []*Entry {
	t.Helper()
	entries, err := Build(nil, parseIDL(t, src), bind)
	require.NoError(t, err)
	return entries
}

func byName(entries []*Entry, name string) *Entry {
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// observeLogs routes the global logger into memory for one test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = prev })
	return logs
}

func TestBuildOverloads(t *testing.T) {
	entries := build(t, `
interface Foo {
  void foo(long a);
  void foo(long a, optional long b, any... rest);
  static boolean bar();
};`, nil)
	require.Len(t, entries, 1)
	ops := entries[0].Operations
	require.Len(t, ops, 2)

	foo := ops[0]
	assert.Equal(t, "foo", foo.Name)
	require.Len(t, foo.Overloads, 2)
	assert.True(t, foo.Overloaded())
	second := foo.Overloads[1]
	require.Len(t, second.Arguments, 3)
	assert.Equal(t, 1, second.OptionalCount)
	assert.Equal(t, 1, second.VariadicCount)
	assert.Equal(t, "rest", second.Arguments[2].Name)
	assert.True(t, second.Arguments[2].Variadic)

	bar := ops[1]
	assert.Equal(t, "bar", bar.Name)
	require.Len(t, bar.Overloads, 1)
	assert.False(t, bar.Overloaded())
	assert.True(t, bar.Overloads[0].Static)
	assert.Equal(t, "boolean", bar.Overloads[0].Return.(*ast.TypeName).Name)
}

func TestBuildAttributes(t *testing.T) {
	bind := &binding.File{Classes: []*binding.Class{{
		Name: "Node",
		Methods: map[string]*binding.Method{
			"appendChild": {Body: "return 0;"},
		},
		Getters: map[string]*binding.Method{
			"nodeName":    {Body: "g1"},
			"textContent": {Body: "g2"},
			"classList":   {Body: "g3"},
		},
		Setters: map[string]*binding.Method{
			"nodeName":    {Body: "s1"},
			"textContent": {Body: "s2"},
			"classList":   {Body: "s3"},
		},
	}}}
	entries := build(t, `
interface Node {
  readonly attribute DOMString nodeName;
  attribute DOMString? textContent;
  [PutForwards=value] readonly attribute DOMTokenList classList;
  static attribute long count;
  Node appendChild(Node node);
};`, bind)
	e := entries[0]
	require.Same(t, bind.Classes[0], e.Class)
	require.Len(t, e.Attributes, 4)

	nodeName := e.Attributes[0]
	assert.True(t, nodeName.Readonly)
	assert.Equal(t, "g1", nodeName.Getter.Body)
	assert.Nil(t, nodeName.Setter, "read-only attributes never look up a setter")

	text := e.Attributes[1]
	assert.False(t, text.Readonly)
	require.NotNil(t, text.Setter)
	assert.Equal(t, "s2", text.Setter.Body)

	classList := e.Attributes[2]
	assert.True(t, classList.Readonly)
	assert.Equal(t, "value", classList.PutForwards)
	require.NotNil(t, classList.Setter)
	assert.Equal(t, "s3", classList.Setter.Body)

	count := e.Attributes[3]
	assert.True(t, count.Static)
	assert.Nil(t, count.Getter)

	require.Len(t, e.Operations, 1)
	require.NotNil(t, e.Operations[0].Method)
	assert.Equal(t, "return 0;", e.Operations[0].Method.Body)
}

func TestBuildPartialMerge(t *testing.T) {
	entries := build(t, `
partial interface Node { void a(); };
interface Node : EventTarget { void b(); void a(long x); };
partial interface Node { const long C = 1; };
interface EventTarget {};
partial interface Orphan { void c(); };
`, nil)
	require.Equal(t, []string{"Node", "EventTarget", "Orphan"}, names(entries))

	node := entries[0]
	assert.Equal(t, "EventTarget", node.ParentName)
	assert.Equal(t, NoParent, node.Parent)
	assert.Zero(t, node.RefCount)
	require.Len(t, node.Decls, 3)
	assert.False(t, node.Decls[0].(*ast.Interface).Partial)

	require.Len(t, node.Operations, 2)
	assert.Equal(t, "b", node.Operations[0].Name)
	a := node.Operations[1]
	assert.Equal(t, "a", a.Name)
	require.Len(t, a.Overloads, 2)
	assert.Len(t, a.Overloads[0].Arguments, 1)
	assert.Empty(t, a.Overloads[1].Arguments)

	require.Len(t, node.Constants, 1)
	v, err := node.Constants[0].Int()
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	orphan := entries[2]
	assert.Len(t, orphan.Operations, 1)
	assert.Empty(t, orphan.ParentName)
}

func TestBuildFlags(t *testing.T) {
	entries := build(t, `
[PrimaryGlobal] interface Window {};
[Global=Worker] interface WorkerGlobalScope {};
[NoInterfaceObject] interface Hidden {};
interface mixin Body { readonly attribute boolean bodyUsed; };
callback interface EventListener { void handleEvent(Event event); };
interface Plain {};
partial interface Plain {};
`, nil)
	flags := func(name string) (bool, bool) {
		e := byName(entries, name)
		require.NotNil(t, e, name)
		return e.NoObject, e.PrimaryGlobal
	}
	tests := []struct {
		name             string
		noObject, global bool
	}{
		{"Window", false, true},
		{"WorkerGlobalScope", false, false},
		{"Hidden", true, false},
		{"Body", true, false},
		{"EventListener", true, false},
		{"Plain", false, false},
	}
	for _, tt := range tests {
		noObject, global := flags(tt.name)
		assert.Equal(t, tt.noObject, noObject, tt.name)
		assert.Equal(t, tt.global, global, tt.name)
		assert.Equal(t, !tt.noObject, byName(entries, tt.name).EligibleForObject(), tt.name)
	}
}

func TestBuildDictionary(t *testing.T) {
	bind := &binding.File{Classes: []*binding.Class{{
		Name:    "EventInit",
		Getters: map[string]*binding.Method{"bubbles": {Body: "get"}},
		Setters: map[string]*binding.Method{"bubbles": {Body: "set"}},
	}}}
	entries := build(t, `
dictionary EventInit : BaseInit {
  boolean bubbles = false;
  required DOMString type;
};
partial dictionary EventInit { long detail = 0; };
`, bind)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, KindDictionary, e.Kind)
	assert.Equal(t, "BaseInit", e.ParentName)
	assert.Empty(t, e.Operations)
	assert.Empty(t, e.Constants)
	require.Len(t, e.Attributes, 3)
	for _, a := range e.Attributes {
		assert.False(t, a.Readonly, a.Name)
	}
	assert.Equal(t, "get", e.Attributes[0].Getter.Body)
	assert.Equal(t, "set", e.Attributes[0].Setter.Body)
	assert.Equal(t, "detail", e.Attributes[2].Name)
}

func TestBuildIncludes(t *testing.T) {
	logs := observeLogs(t)
	logger.EnableWarnings(logger.WarnDuplicated)
	t.Cleanup(func() { logger.EnableWarnings(logger.WarnNone) })

	entries := build(t, `
interface Window {};
interface mixin WindowOrWorkerGlobalScope {};
Window includes WindowOrWorkerGlobalScope;
Window implements GlobalEventHandlers;
Window includes WindowOrWorkerGlobalScope;
Nowhere includes WindowOrWorkerGlobalScope;
`, nil)
	window := byName(entries, "Window")
	assert.Equal(t, []string{"WindowOrWorkerGlobalScope", "GlobalEventHandlers"}, window.Includes)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel)
	assert.Equal(t, 1, warnings.FilterMessage("interface includes an unknown name").Len())
	assert.Equal(t, 1, warnings.FilterMessage("interface included twice").Len())
	assert.Equal(t, 1, warnings.FilterMessage("includes statement for unknown interface").Len())
}

func TestBuildSkipsAnonymousSpecials(t *testing.T) {
	logs := observeLogs(t)

	entries := build(t, `
interface Storage {
  getter DOMString? (DOMString name);
  setter void setItem(DOMString name, DOMString value);
  stringifier;
};`, nil)
	e := entries[0]
	require.Len(t, e.Operations, 1)
	assert.Equal(t, "setItem", e.Operations[0].Name)
	assert.Equal(t, "setter", e.Operations[0].Overloads[0].Special)

	// warnings are off, so the skips are only debug logged
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("anonymous special operation not mapped").Len())
	assert.Equal(t, 1, logs.FilterMessage("custom operation not mapped").Len())
}

func TestBuildConstants(t *testing.T) {
	entries := build(t, `
interface Node {
  const unsigned short ELEMENT_NODE = 1;
  const unsigned long MASK = 0xFF;
  const double RATIO = 1.5;
  const boolean ON = true;
};`, nil)
	consts := entries[0].Constants
	require.Len(t, consts, 4)

	v, err := consts[1].Int()
	require.NoError(t, err)
	assert.EqualValues(t, 255, v)

	for _, c := range consts[2:] {
		_, err := c.Int()
		require.Error(t, err, c.Name)
		assert.True(t, errors.Is(err, ErrUnsupportedLiteral))
		assert.Contains(t, err.Error(), c.Name)
	}
}

func TestBuildLargeConstants(t *testing.T) {
	entries := build(t, `
interface Limits {
  const unsigned long long HEX_MAX = 0xFFFFFFFFFFFFFFFF;
  const unsigned long long DEC_MAX = 18446744073709551615;
  const unsigned long U32_MAX = 0xFFFFFFFF;
  const long NEG = -0x10;
};`, nil)
	consts := entries[0].Constants
	require.Len(t, consts, 4)

	for _, c := range consts[:2] {
		_, err := c.Int()
		require.Error(t, err, c.Name)
		assert.True(t, errors.Is(err, ErrUnsupportedLiteral), c.Name)
		assert.Contains(t, err.Error(), "overflows int64")

		u, err := c.Uint()
		require.NoError(t, err, c.Name)
		assert.Equal(t, uint64(math.MaxUint64), u, c.Name)
	}

	v, err := consts[2].Int()
	require.NoError(t, err)
	assert.EqualValues(t, 4294967295, v)

	v, err = consts[3].Int()
	require.NoError(t, err)
	assert.EqualValues(t, -16, v)
	_, err = consts[3].Uint()
	assert.True(t, errors.Is(err, ErrUnsupportedLiteral))
}

func TestBuildDuplicates(t *testing.T) {
	tests := []string{
		`interface A {}; interface A {};`,
		`interface A {}; dictionary A {};`,
		`dictionary A {}; partial interface A {};`,
	}
	for _, src := range tests {
		_, err := Build(nil, parseIDL(t, src), nil)
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, ErrDuplicateDeclaration), src)
		assert.NotEmpty(t, errors.GetAllHints(err), src)
	}
}

func TestBuildMalformed(t *testing.T) {
	long := &ast.TypeName{Name: "long"}
	tests := []struct {
		name string
		decl ast.Decl
		msg  string
	}{
		{
			name: "unnamed interface",
			decl: &ast.Interface{},
			msg:  "interface declared without a name",
		},
		{
			name: "unnamed operation",
			decl: &ast.Interface{Name: "Foo", Members: []*ast.Member{{Type: long}}},
			msg:  "interface Foo: operation without a name",
		},
		{
			name: "untyped argument",
			decl: &ast.Interface{Name: "Foo", Members: []*ast.Member{{
				Name: "bar", Type: long,
				Parameters: []*ast.Parameter{{Name: "x", Type: long}, {Name: "y"}},
			}}},
			msg: "interface Foo: operation bar: argument y has no type",
		},
		{
			name: "unnamed argument",
			decl: &ast.Interface{Name: "Foo", Members: []*ast.Member{{
				Name: "bar", Type: long,
				Parameters: []*ast.Parameter{{Type: long}},
			}}},
			msg: "operation bar: argument 1 has no name",
		},
		{
			name: "untyped attribute",
			decl: &ast.Interface{Name: "Foo", Members: []*ast.Member{{Name: "x", Attribute: true}}},
			msg:  "attribute x has no type",
		},
		{
			name: "constant without value",
			decl: &ast.Interface{Name: "Foo", Members: []*ast.Member{{Name: "X", Const: true, Type: long}}},
			msg:  "constant X has no value",
		},
		{
			name: "unnamed dictionary member",
			decl: &ast.Dictionary{Name: "Init", Members: []*ast.Member{{Type: long, Attribute: true}}},
			msg:  "dictionary Init: attribute without a name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idl := &ast.File{Declarations: []ast.Decl{
				&ast.Interface{Name: "Fine"},
				tt.decl,
			}}
			entries, err := Build(nil, idl, nil)
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.True(t, errors.Is(err, ErrMalformedDeclaration))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBuildIgnoresOtherDecls(t *testing.T) {
	entries := build(t, `
enum Mode { "a" };
typedef long Id;
callback Cb = void ();
interface A {};
`, nil)
	assert.Equal(t, []string{"A"}, names(entries))

	entries, err := Build(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
