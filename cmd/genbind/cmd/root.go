package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dennwc/genbind/config"
	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// RootCmd is the genbind command
var RootCmd = newRootCmd()

// options holds the state shared by the root command and its subcommands.
type options struct {
	v          *viper.Viper
	configFile string
	watch      bool
	// cfg is set by setup before any command runs.
	cfg *config.Config
}

// viper keys of the persistent flags
var flagKeys = map[string]string{
	"idl-path":       "idl_path",
	"output":         "output_dir",
	"verbose":        "verbose",
	"debug":          "debug",
	"debug-log":      "debug_log",
	"warnings":       "warnings",
	"strict-parents": "strict_parents",
	"json-log":       "json_log",
}

func newRootCmd() *cobra.Command {
	o := &options{v: config.NewViper()}
	root := &cobra.Command{
		Use:   "genbind [flags] <binding-file>",
		Short: "Map WebIDL interfaces for JavaScript binding generation",
		Long: `Map the WebIDL interfaces named by a binding file into an ordered
interface table.

The binding file (TOML or YAML) lists the WebIDL sources and the hand written
class implementations. genbind parses them, merges partial declarations,
resolves inheritance and orders the interfaces so every parent precedes its
children and the primary global comes last.

Configuration is read from flags, GENBIND_* environment variables and an
optional TOML file, in that order of precedence.

Examples:
  genbind dom.toml                           # Write interface-order to .
  genbind -I webidl -o build dom.toml        # Read IDL from webidl/, write to build/
  genbind -D -o build dom.toml               # Also write AST dumps and interface.dot
  genbind --watch -o build dom.toml          # Regenerate whenever an input changes
  genbind map dom.toml                       # Show the interface table
  genbind order dom.toml                     # Print the prototype creation order`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Cleanup()
		},
		RunE: o.runGenerate,
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configFile, "config", "", "TOML config file")
	f.StringP("idl-path", "I", ".", "Directory holding the WebIDL files named by the binding")
	f.StringP("output", "o", ".", "Output directory")
	f.BoolP("verbose", "v", false, "Verbose logging")
	f.BoolP("debug", "D", false, "Write AST dumps and interface map diagnostics")
	f.Bool("debug-log", false, "Write a JSON debug log into the output directory")
	f.StringP("warnings", "W", "", "Comma separated warning categories: unimplemented, duplicated, all, none")
	f.Bool("strict-parents", false, "Fail when a parent interface is not declared")
	f.Bool("json-log", false, "Log in JSON")
	for name, key := range flagKeys {
		if err := o.v.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.Flags().BoolVar(&o.watch, "watch", false, "Regenerate whenever an input file changes")

	root.AddCommand(newMapCmd(o), newOrderCmd(o))
	return root
}

// setup loads the configuration and initializes logging.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Verbose, cfg.JSONLog); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	warnings, err := cfg.WarningSet()
	if err != nil {
		return err
	}
	logger.EnableWarnings(warnings)
	o.cfg = cfg
	return nil
}

func (o *options) runGenerate(cmd *cobra.Command, args []string) error {
	if !o.watch {
		return generate(o.cfg, args[0])
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runWatch(ctx, o.cfg, args[0])
}

// runWatch regenerates until ctx is done.
func runWatch(ctx context.Context, cfg *config.Config, bindingPath string) error {
	w, err := newWatcher(cfg, bindingPath)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
