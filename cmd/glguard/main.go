// Command glguard exercises the checked GL layer: a smoke test against a real
// context, an offline shader linter and a config dumper.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/richinsley/glguard/config"
	"github.com/richinsley/glguard/safegl"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug, info, warn, error), overrides log.level",
	}
)

const configKey = "config"

func init() {
	// GL contexts are bound to the thread that created them.
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:     "glguard",
		Usage:    "checked OpenGL resource and error handling tools",
		Flags:    []cli.Flag{configFlag, logLevelFlag},
		Before:   setup,
		Metadata: map[string]interface{}{},
		Commands: []*cli.Command{
			smokeCommand,
			lintCommand,
			configCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the --config file, if any, and applies flag overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = ctx.String(logLevelFlag.Name)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func setup(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	safegl.SetLogger(logger)
	ctx.App.Metadata[configKey] = cfg
	return nil
}

func configFrom(ctx *cli.Context) config.Config {
	if cfg, ok := ctx.App.Metadata[configKey].(config.Config); ok {
		return cfg
	}
	return config.Default()
}
