// Package cli implements the hdkit command-line interface.
//
// Every invocation builds a fresh command tree around an app value, so
// flag state never leaks between runs. Configuration, logging, and the
// output formatter are set up in PersistentPreRunE. The logger is released
// when the run returns, whether or not the command failed.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/config"
	"github.com/mrz1836/hdkit/internal/output"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// app holds global flags and the state built from them.
type app struct {
	homeDir      string
	configFile   string
	outputFormat string
	verbose      bool

	ctx   *CommandContext
	input *bufio.Reader
}

// Run executes hdkit with args and returns the process exit code. Errors
// are printed to stderr in the active output format.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return (&app{}).run(args, stdin, stdout, stderr)
}

func (a *app) run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	defer a.cleanup()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return kiterr.ExitSuccess
	}

	format := output.FormatText
	if a.ctx != nil {
		format = a.ctx.Fmt.Format()
	}
	_ = output.FormatError(stderr, err, format)
	return kiterr.ExitCode(err)
}

// Execute runs hdkit against the process arguments and standard streams.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hdkit",
		Short: "HD wallet path, address, and legacy mnemonic toolkit",
		Long: `hdkit parses BIP32 derivation paths, encodes public keys into chain
addresses, and decodes legacy Electrum mnemonics back to their entropy.

Example:
  hdkit path parse "m/44'/60'/0'/0/0"
  hdkit addr encode --chain p2wpkh 03c41826...0126
  echo "powerful random nobody ..." | hdkit mnemonic decode`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := a.initGlobals(cmd)
			if err != nil {
				return err
			}
			a.ctx = ctx
			SetCmdContext(cmd, ctx)
			ctx.Logger.Debug("running %s", cmd.CommandPath())
			return nil
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return kiterr.WithCause(kiterr.ErrInvalidInput, err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.homeDir, "home", "", "hdkit data directory (default: ~/.hdkit)")
	pf.StringVar(&a.configFile, "config", "", "config file (default: <home>/config.yaml)")
	pf.StringVarP(&a.outputFormat, "output", "o", "", "output format: text, json, auto")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.pathCmd(),
		a.addrCmd(),
		a.mnemonicCmd(),
		a.deriveCmd(),
		a.configCmd(),
		versionCmd(),
		completionCmd(),
	)
	return root
}

// initGlobals loads configuration, applies environment and flag overrides,
// and builds the logger and formatter.
func (a *app) initGlobals(cmd *cobra.Command) (*CommandContext, error) {
	home := a.homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	path := a.configFile
	if path == "" {
		path = config.Path(home)
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case kiterr.Is(err, kiterr.ErrConfigNotFound) && a.configFile == "":
		cfg = config.Defaults()
		cfg.Home = home
	default:
		return nil, err
	}

	config.ApplyEnvironment(cfg)

	if a.homeDir != "" {
		cfg.Home = a.homeDir
	}
	if a.verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if a.outputFormat != "" {
		cfg.Output.DefaultFormat = a.outputFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:     cfg,
		ConfigPath: path,
		Logger:     newLogger(cfg, cmd.ErrOrStderr()),
		Fmt:        output.NewFormatter(output.ParseFormat(cfg.Output.DefaultFormat), cmd.OutOrStdout()),
	}, nil
}

// newLogger writes JSON to the configured log file, or readable lines to
// stderr in verbose mode. Otherwise logging is off.
func newLogger(cfg *config.Config, stderr io.Writer) *config.Logger {
	level := config.ParseLogLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		l, err := config.NewLogger(level, cfg.Logging.File)
		if err != nil {
			return config.NullLogger()
		}
		return l
	}
	if cfg.Output.Verbose {
		return config.NewConsoleLogger(stderr, level, cfg.Output.Color == "never")
	}
	return config.NullLogger()
}

func (a *app) cleanup() {
	if a.ctx != nil && a.ctx.Logger != nil {
		_ = a.ctx.Logger.Close()
	}
}
