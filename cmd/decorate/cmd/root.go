package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/on-the-ground/decorate_ive_go/decorators/cache"
	"github.com/on-the-ground/decorate_ive_go/decorators/debugger"
	"github.com/on-the-ground/decorate_ive_go/internal/configkeys"
	"github.com/on-the-ground/decorate_ive_go/internal/logging"
)

// app carries what the subcommands share.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *zap.Logger
	exit    func(int)
}

// Execute runs the decorate command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Exit)
}

func newRootCmd(exit func(int)) *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop(), exit: exit}

	root := &cobra.Command{
		Use:   "decorate",
		Short: "Run sample functions through the decorators",
		Long: `decorate applies the call stats, cache, debugger and argument validation
decorators to a few sample functions, so their traces, cache hits and failure
reports can be observed from a shell.

Configuration is read from flags, DECORATE_* environment variables and an
optional YAML config file, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.decorate/config.yaml)")
	pf.String("log-level", logging.LevelWarn, "log level: debug, info, warn or error")
	pf.Bool("display", true, "trace every call made through the debugger")
	pf.Bool("catch", true, "catch and report failures of the decorated function")
	pf.String("policy", debugger.ExitProcess.String(), "after a caught failure: exit or return")
	pf.Int("exit-code", 1, "process exit status used by the exit policy")

	mustBindFlags(a.v, pf, map[string]string{
		configkeys.LogLevel:         "log-level",
		configkeys.DebuggerDisplay:  "display",
		configkeys.DebuggerCatch:    "catch",
		configkeys.DebuggerPolicy:   "policy",
		configkeys.DebuggerExitCode: "exit-code",
	})
	a.v.SetDefault(configkeys.CacheMaxEntries, 0)
	a.v.SetDefault(configkeys.CacheTruthiness, false)
	a.v.SetDefault(configkeys.MetricsNamespace, "decorate")

	root.AddCommand(newFibCmd(a), newAddCmd(a), newDivCmd(a))
	return root
}

// mustBindFlags binds config keys to the named flags. A missing flag is a wiring bug.
func mustBindFlags(v *viper.Viper, fs *pflag.FlagSet, flags map[string]string) {
	for key, name := range flags {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind --%s to %s: %v", name, key, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set
func (a *app) initConfig() error {
	a.v.SetEnvPrefix(configkeys.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".decorate"))
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	logger, err := logging.New(a.v.GetString(configkeys.LogLevel))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) debuggerOptions(out io.Writer) ([]debugger.Option, error) {
	policy, err := debugger.ParsePolicy(a.v.GetString(configkeys.DebuggerPolicy))
	if err != nil {
		return nil, err
	}
	return []debugger.Option{
		debugger.WithDisplay(a.v.GetBool(configkeys.DebuggerDisplay)),
		debugger.WithCatch(a.v.GetBool(configkeys.DebuggerCatch)),
		debugger.WithFailurePolicy(policy),
		debugger.WithExitCode(a.v.GetInt(configkeys.DebuggerExitCode)),
		debugger.WithExit(a.exit),
		debugger.WithOutput(out),
		debugger.WithLogger(a.logger),
	}, nil
}

func (a *app) cacheOptions(out io.Writer) []cache.Option {
	return []cache.Option{
		cache.WithMaxEntries(a.v.GetInt(configkeys.CacheMaxEntries)),
		cache.WithTruthiness(a.v.GetBool(configkeys.CacheTruthiness)),
		cache.WithOutput(out),
		cache.WithLogger(a.logger),
	}
}
