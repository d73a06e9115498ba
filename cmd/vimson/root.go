package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Neumenon/vimson/config"
	"github.com/Neumenon/vimson/vimson"
)

// errReported marks a failure whose diagnostic has already been written.
var errReported = errors.New("error already reported")

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"max-depth":       "maxDepth",
	"reject-trailing": "rejectTrailing",
	"echo":            "echo",
	"debug":           "debug",
	"no-color":        "noColor",
	"output":          "output",
}

type app struct {
	v       *viper.Viper
	cfgFile string
	output  config.OutputFormat
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), output: config.OutputVimson, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:               "vimson",
		Short:             "Parse, canonicalize and convert VIMSON data",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	a.addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		a.newParseCmd(),
		a.newFmtCmd(),
		a.newToJSONCmd(),
		a.newToYAMLCmd(),
		a.newFromJSONCmd(),
		a.newFromYAMLCmd(),
		a.newInspectCmd(),
		a.newHashCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.cfgFile, "config", "", "config file (default ./.vimson.yaml)")
	fs.Int("max-depth", vimson.DefaultMaxDepth, "maximum list/dict nesting, 0 for no limit")
	fs.Bool("reject-trailing", false, "fail when input continues after the value")
	fs.Bool("debug", false, "log parser productions")
	fs.Bool("no-color", false, "disable colored diagnostics")
	fs.VarP(&a.output, "output", "o", `output format: "vimson", "json" or "yaml"`)
}

// setup binds the flags of the running command, loads the config and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to start the logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.Bool("rejectTrailing", cfg.RejectTrailing),
		zap.String("output", string(cfg.Output)),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		// version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vimson %s\n", libVersion)
			return err
		},
	}
}
