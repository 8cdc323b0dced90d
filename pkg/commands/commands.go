package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/moodtrack/pkg/app"
	"tableflip.dev/moodtrack/pkg/logging"
	"tableflip.dev/moodtrack/pkg/store"
)

// globalOptions holds the persistent flags and what they resolve to.
type globalOptions struct {
	Verbose    bool
	ConfigFile string
	Backend    string

	cfg    store.Config
	logger *zap.Logger
}

var global = &globalOptions{}

func New() *cobra.Command {
	global = &globalOptions{}

	cmd := &cobra.Command{
		Use:           "mood",
		Short:         base.Wrap80("Track how each day felt from the command line."),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return global.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if global.logger != nil {
				_ = global.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&global.Verbose, "verbose", "v", false, "Log debug output to stderr.")
	flags.StringVar(&global.ConfigFile, "config", "", "Config file, default is .moodtrack.yaml in $MOOD_CONFIG_PATH, ./ or $HOME.")
	flags.StringVar(&global.Backend, "backend", "", "Storage backend: disk, sqlite or memory. Overrides the config file.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLog(topLevel)
	addGet(topLevel)
	addList(topLevel)
	addDelete(topLevel)
	addClear(topLevel)
	addWeek(topLevel)
	addMonth(topLevel)
	addStats(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func (g *globalOptions) setup(cmd *cobra.Command) error {
	v := viper.New()
	if g.ConfigFile != "" {
		v.SetConfigFile(g.ConfigFile)
	}
	if f := cmd.Root().PersistentFlags().Lookup("backend"); f != nil && f.Changed {
		if err := v.BindPFlag("backend", f); err != nil {
			return err
		}
	}
	cfg, err := store.LoadConfigFrom(v)
	if err != nil {
		return err
	}
	g.cfg = cfg

	level := cfg.LogLevel()
	if g.Verbose {
		level = "debug"
	}
	g.logger, err = logging.New(level, cfg.LogFormat())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	g.logger.Debug("config loaded",
		zap.String("backend", cfg.Backend()),
		zap.String("path", cfg.BasePath()))
	return nil
}

func (g *globalOptions) log() *zap.Logger {
	if g.logger == nil {
		return zap.NewNop()
	}
	return g.logger
}

// openApp opens the configured backing store. Callers own the returned App
// and must Dispose it.
func openApp(opts ...app.Option) (*app.App, error) {
	cfg := global.cfg
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}
	opts = append([]app.Option{app.WithLogger(global.log())}, opts...)
	return app.New(cfg, opts...)
}

// uiLogger sends log lines to a file next to the data so they stay off the
// alt screen.
func uiLogger() *zap.Logger {
	cfg := global.cfg
	if cfg == nil || cfg.BasePath() == "" || cfg.Backend() == store.BackendMemory {
		return zap.NewNop()
	}
	level := cfg.LogLevel()
	if global.Verbose {
		level = "debug"
	}
	l, err := logging.NewFile(level, logging.FormatJSON, uiLogPath(cfg.BasePath()))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// uiLogPath puts the log beside the data directory, never inside it:
// ~/.moodtrack gives ~/.moodtrack-ui.log.
func uiLogPath(base string) string {
	clean := filepath.Clean(base)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+"-ui.log")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func requireTerminal(what string) error {
	if !isTerminal(os.Stdin) {
		return fmt.Errorf("%s needs an interactive terminal", what)
	}
	return nil
}
