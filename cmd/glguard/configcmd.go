package main

import (
	"github.com/urfave/cli/v2"

	"github.com/richinsley/glguard/config"
)

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "print the effective configuration as TOML",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "default", Usage: "print the built-in defaults instead"},
	},
	Action: func(ctx *cli.Context) error {
		cfg := configFrom(ctx)
		if ctx.Bool("default") {
			cfg = config.Default()
		}
		return config.Write(ctx.App.Writer, cfg)
	},
}
