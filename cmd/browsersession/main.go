package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/browsersession/pkg/config"
	"github.com/dmitrymomot/browsersession/pkg/httpserver"
	"github.com/dmitrymomot/browsersession/pkg/logger"
	"github.com/dmitrymomot/browsersession/pkg/requestid"
	"github.com/dmitrymomot/browsersession/pkg/session"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const serviceName = "browsersession"

// appConfig is everything the commands read from the environment or the
// settings file.
type appConfig struct {
	Env      string            `env:"APP_ENV" envDefault:"development" yaml:"env"`
	LogLevel string            `env:"LOG_LEVEL" yaml:"log_level"`
	Session  session.Config    `yaml:"session"`
	HTTP     httpserver.Config `yaml:"http"`
}

type rootFlags struct {
	configFile string
	envFiles   []string
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Signed-cookie sessions for net/http",
		Long: `browsersession keeps session state in signed cookies.

Use it to run a demo server, or to sign and inspect session tokens
with the same settings your application uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML settings file overlaying the environment")
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		serveCmd(flags),
		signCmd(flags),
		inspectCmd(flags),
		versionCmd(),
	)
	return root
}

// loadConfig reads dotenv files, the environment and the optional YAML file.
func loadConfig(flags *rootFlags) (appConfig, error) {
	var cfg appConfig
	if len(flags.envFiles) > 0 {
		if err := config.LoadEnv(flags.envFiles...); err != nil {
			return cfg, err
		}
	}
	if flags.configFile != "" {
		return cfg, config.LoadYAML(flags.configFile, &cfg)
	}
	return cfg, config.Load(&cfg)
}

func newLogger(cfg appConfig, flags *rootFlags, out io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithOutput(out),
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		opts = append(opts, logger.WithLevel(l))
	}

	return logger.New(opts...), nil
}
