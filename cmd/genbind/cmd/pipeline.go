package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dennwc/genbind/ast"
	"github.com/dennwc/genbind/binding"
	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/infmap"
	"github.com/dennwc/genbind/logger"
	"github.com/dennwc/genbind/output"
	"github.com/dennwc/genbind/parser"
)

// Names of the files written into the output directory.
const (
	orderFile      = "interface-order"
	webidlASTFile  = "webidl-ast"
	bindingASTFile = "binding-ast"
	mapFile        = "interface-map"
	dotFile        = "interface.dot"
	debugLogFile   = "genbind.log"
)

// inputs are the decoded sources of one run.
type inputs struct {
	bind *binding.File
	// idl holds the declarations of every WebIDL file, in binding order.
	idl *ast.File
}

// idlPath resolves a WebIDL file named by the binding against the IDL path.
func idlPath(cfg *config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.IDLPath, name)
}

func loadInputs(cfg *config.Config, bindingPath string) (*inputs, error) {
	bind, err := binding.Load(bindingPath)
	if err != nil {
		return nil, err
	}
	if len(bind.Binding.WebIDL) == 0 {
		return nil, errors.WithHint(
			errors.Newf("binding file %s names no webidl files", bindingPath),
			"list the interface definitions in the webidl key of the binding section",
		)
	}
	in := &inputs{bind: bind, idl: &ast.File{}}
	for _, name := range bind.Binding.WebIDL {
		path := idlPath(cfg, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read webidl file %s", name)
		}
		f, err := parser.ParseFile(path, string(data))
		if err != nil {
			return nil, err
		}
		logger.Debugw("Parsed webidl file",
			"path", path,
			"declarations", len(f.Declarations))
		in.idl.Declarations = append(in.idl.Declarations, f.Declarations...)
	}
	return in, nil
}

// buildMap loads the binding and its WebIDL files and maps them.
func buildMap(cfg *config.Config, bindingPath string) (*infmap.Map, error) {
	in, err := loadInputs(cfg, bindingPath)
	if err != nil {
		return nil, err
	}
	m, err := infmap.New(cfg, in.idl, in.bind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to map interfaces of %s", bindingPath)
	}
	return m, nil
}

// generate runs the whole pipeline once and writes its outputs into the
// configured output directory. When it fails, every file it wrote is removed.
func generate(cfg *config.Config, bindingPath string) (err error) {
	dir, err := output.Open(cfg.OutputDir)
	if err != nil {
		return err
	}
	if cfg.DebugLog {
		closeLog, err := logger.TeeFile(dir.Path(debugLogFile))
		if err != nil {
			return errors.Wrap(err, "failed to open debug log")
		}
		defer func() {
			if cerr := closeLog(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "failed to close debug log")
			}
		}()
	}
	defer func() {
		if err == nil {
			return
		}
		if rerr := dir.Remove(); rerr != nil {
			logger.Warnw("Failed to remove output files", "error", rerr)
		}
	}()

	in, err := loadInputs(cfg, bindingPath)
	if err != nil {
		return err
	}
	if cfg.Debug {
		if err := dir.WriteFile(webidlASTFile, func(w io.Writer) error {
			return parser.Dump(w, in.idl)
		}); err != nil {
			return err
		}
		if err := dir.WriteFile(bindingASTFile, func(w io.Writer) error {
			return binding.Dump(w, in.bind)
		}); err != nil {
			return err
		}
	}

	m, err := infmap.New(cfg, in.idl, in.bind)
	if err != nil {
		return errors.Wrapf(err, "failed to map interfaces of %s", bindingPath)
	}
	if cfg.Debug {
		if err := dir.WriteFile(mapFile, m.Dump); err != nil {
			return err
		}
		if err := dir.WriteFile(dotFile, m.DumpDot); err != nil {
			return err
		}
	}
	if err := dir.WriteFile(orderFile, func(w io.Writer) error {
		return writeOrder(w, m)
	}); err != nil {
		return err
	}

	logger.Infow("Generated interface map",
		"binding", in.bind.Binding.Name,
		"interfaces", m.Len(),
		"output", cfg.OutputDir)
	return nil
}

// writeOrder lists the interfaces in prototype creation order, one per
// line, followed by their parent if any.
func writeOrder(w io.Writer, m *infmap.Map) error {
	for _, e := range m.PrototypeOrder() {
		var err error
		if p := m.Parent(e); p != nil {
			_, err = fmt.Fprintf(w, "%s : %s\n", e.Name, p.Name)
		} else {
			_, err = fmt.Fprintln(w, e.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
