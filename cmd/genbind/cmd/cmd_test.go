package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/infmap"
)

const testBinding = `
[binding]
name = "dom"
type = "duktape"
webidl = ["dom.webidl"]

[[class]]
name = "Node"
private = [{ type = "struct dom_node *", name = "node" }]

[class.getters.nodeName]
body = "return priv->node->name;"
`

const testIDL = `
[PrimaryGlobal]
interface Window : EventTarget {
  readonly attribute Document document;
};
interface EventTarget {
  void addEventListener(DOMString type);
};
interface Node : EventTarget {
  readonly attribute DOMString nodeName;
};
interface Document : Node {};
interface mixin ParentNode {
  readonly attribute unsigned long childElementCount;
};
Document includes ParentNode;
`

const testOrder = `EventTarget
Node : EventTarget
Document : Node
Window : EventTarget
`

// writeFixture writes the given files into a new directory and returns it.
func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	return dir
}

func domFixture(t *testing.T) string {
	return writeFixture(t, map[string]string{
		"binding.toml": testBinding,
		"dom.webidl":   testIDL,
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerate(t *testing.T) {
	dir := domFixture(t)
	out := filepath.Join(t.TempDir(), "build")
	cfg := &config.Config{IDLPath: dir, OutputDir: out}

	require.NoError(t, generate(cfg, filepath.Join(dir, "binding.toml")))
	assert.Equal(t, []string{orderFile}, listDir(t, out))
	assert.Equal(t, testOrder, readFile(t, filepath.Join(out, orderFile)))
}

func TestGenerateDebug(t *testing.T) {
	dir := domFixture(t)
	out := t.TempDir()
	cfg := &config.Config{IDLPath: dir, OutputDir: out, Debug: true, DebugLog: true}

	require.NoError(t, generate(cfg, filepath.Join(dir, "binding.toml")))
	assert.ElementsMatch(t, []string{
		orderFile, webidlASTFile, bindingASTFile, mapFile, dotFile, debugLogFile,
	}, listDir(t, out))

	assert.Contains(t, readFile(t, filepath.Join(out, webidlASTFile)), "EventTarget")
	assert.Contains(t, readFile(t, filepath.Join(out, bindingASTFile)), "struct dom_node *")
	assert.Contains(t, readFile(t, filepath.Join(out, dotFile)), "digraph interfaces {")
	assert.Contains(t, readFile(t, filepath.Join(out, mapFile)), "\tprimary global\n")
	assert.Contains(t, readFile(t, filepath.Join(out, debugLogFile)), "Generated interface map")
}

func TestGenerateFailureRemovesOutputs(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"binding.toml": `
[binding]
name = "dom"
webidl = ["dom.webidl", "dup.webidl"]
`,
		"dom.webidl": testIDL,
		"dup.webidl": "interface Node {};\n",
	})
	out := writeFixture(t, map[string]string{"keep.txt": "unrelated"})
	cfg := &config.Config{IDLPath: dir, OutputDir: out, Debug: true}

	err := generate(cfg, filepath.Join(dir, "binding.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, infmap.ErrDuplicateDeclaration), "%+v", err)
	// the AST dumps were written before mapping failed
	assert.Equal(t, []string{"keep.txt"}, listDir(t, out))
}

func TestGenerateInputErrors(t *testing.T) {
	cases := []struct {
		name  string
		files map[string]string
		msg   string
	}{
		{
			name:  "no webidl",
			files: map[string]string{"binding.toml": "[binding]\nname = \"dom\"\n"},
			msg:   "names no webidl files",
		},
		{
			name:  "missing webidl",
			files: map[string]string{"binding.toml": "[binding]\nwebidl = [\"gone.webidl\"]\n"},
			msg:   "failed to read webidl file gone.webidl",
		},
		{
			name: "syntax error",
			files: map[string]string{
				"binding.toml": "[binding]\nwebidl = [\"bad.webidl\"]\n",
				"bad.webidl":   "interface A {\n  void f(long x;\n};\n",
			},
			msg: "bad.webidl:2:16:",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := writeFixture(t, c.files)
			out := t.TempDir()
			cfg := &config.Config{IDLPath: dir, OutputDir: out}
			err := generate(cfg, filepath.Join(dir, "binding.toml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
			assert.Empty(t, listDir(t, out))
		})
	}
}

func TestGenerateStrictParents(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"binding.toml":  "[binding]\nwebidl = [\"orphan.webidl\"]\n",
		"orphan.webidl": "interface A : Missing {};\n",
	})
	bindingPath := filepath.Join(dir, "binding.toml")

	cfg := &config.Config{IDLPath: dir, OutputDir: t.TempDir()}
	require.NoError(t, generate(cfg, bindingPath))
	assert.Equal(t, "A\n", readFile(t, filepath.Join(cfg.OutputDir, orderFile)))

	cfg = &config.Config{IDLPath: dir, OutputDir: t.TempDir(), StrictParents: true}
	err := generate(cfg, bindingPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, infmap.ErrUnresolvedParent))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestOrderCommand(t *testing.T) {
	dir := domFixture(t)
	out, err := execute(t, "order", "-I", dir, filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)
	assert.Equal(t, testOrder, out)
}

func TestMapCommand(t *testing.T) {
	dir := domFixture(t)
	out, err := execute(t, "map", "--idl-path", dir, filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)
	for _, s := range []string{"Name", "EventTarget", "ParentNode", "noobject", "global"} {
		assert.Contains(t, out, s)
	}
}

func TestMapTable(t *testing.T) {
	dir := domFixture(t)
	m, err := buildMap(&config.Config{IDLPath: dir, OutputDir: "."}, filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)

	data := mapTable(m)
	require.Len(t, data, 6)
	assert.Equal(t, []string{"0", "EventTarget", "interface", "-", "2", "", "-", "1", "0", "0"}, data[1])
	assert.Equal(t, []string{"1", "Node", "interface", "EventTarget", "1", "", "Node", "0", "1", "0"}, data[2])
	assert.Equal(t, []string{"3", "ParentNode", "interface", "-", "0", "noobject", "-", "0", "1", "0"}, data[4])
	assert.Equal(t, []string{"4", "Window", "interface", "EventTarget", "0", "global", "-", "0", "1", "0"}, data[5])
}

func TestRootCommand(t *testing.T) {
	dir := domFixture(t)
	out := t.TempDir()
	_, err := execute(t, "-I", dir, "-o", out, "-W", "all", filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)
	assert.Equal(t, testOrder, readFile(t, filepath.Join(out, orderFile)))
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := domFixture(t)
	out := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "genbind.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("idl_path = \""+dir+"\"\ndebug = true\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "-o", out, filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{orderFile, webidlASTFile, bindingASTFile, mapFile, dotFile}, listDir(t, out))
}

func TestRootCommandErrors(t *testing.T) {
	dir := domFixture(t)
	_, err := execute(t, "-W", "bogus", filepath.Join(dir, "binding.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid warnings")

	_, err = execute(t)
	require.Error(t, err)
}

func waitRun(t *testing.T, runs <-chan error) error {
	t.Helper()
	select {
	case err := <-runs:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
		return nil
	}
}

func TestWatchRegenerates(t *testing.T) {
	dir := domFixture(t)
	out := t.TempDir()
	cfg := &config.Config{IDLPath: dir, OutputDir: out}

	w, err := newWatcher(cfg, filepath.Join(dir, "binding.toml"))
	require.NoError(t, err)
	w.debounce = 100 * time.Millisecond
	runs := make(chan error, 16)
	w.onRun = func(err error) { runs <- err }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, waitRun(t, runs))
	assert.Equal(t, testOrder, readFile(t, filepath.Join(out, orderFile)))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dom.webidl"),
		[]byte(testIDL+"interface Text : Node {};\n"), 0644))
	require.NoError(t, waitRun(t, runs))
	assert.Contains(t, readFile(t, filepath.Join(out, orderFile)), "Text : Node\n")

	// outputs are not inputs
	require.NoError(t, os.WriteFile(filepath.Join(out, "other"), []byte("x"), 0644))
	select {
	case <-runs:
		t.Fatal("unexpected run")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
