package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/FlavioCFOliveira/linclass/internal/config"
	"github.com/FlavioCFOliveira/linclass/internal/logger"
)

var (
	configPath string
	seed       int64
	examples   int
	dims       int
	classes    int
	reg        float64
	logLevel   string
	logFormat  string
)

func problemFlags() []cli.Flag {
	defaults := config.Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a YAML check configuration",
			Destination: &configPath,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "random seed for the synthetic problem",
			Value:       defaults.Seed,
			Destination: &seed,
		},
		&cli.IntFlag{
			Name:        "examples",
			Aliases:     []string{"n"},
			Usage:       "number of examples N",
			Value:       defaults.Examples,
			Destination: &examples,
		},
		&cli.IntFlag{
			Name:        "dims",
			Aliases:     []string{"d"},
			Usage:       "feature dimensions D",
			Value:       defaults.Dims,
			Destination: &dims,
		},
		&cli.IntFlag{
			Name:        "classes",
			Aliases:     []string{"c"},
			Usage:       "number of classes C",
			Value:       defaults.Classes,
			Destination: &classes,
		},
		&cli.Float64Flag{
			Name:        "reg",
			Usage:       "regularization strength",
			Value:       defaults.Reg,
			Destination: &reg,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       defaults.LogLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       defaults.LogFormat,
			Destination: &logFormat,
		},
	}
}

// loadConfig merges the config file, if any, with explicitly set flags.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	var o config.Overrides
	if cmd.IsSet("seed") {
		o.Seed = &seed
	}
	if cmd.IsSet("examples") {
		o.Examples = &examples
	}
	if cmd.IsSet("dims") {
		o.Dims = &dims
	}
	if cmd.IsSet("classes") {
		o.Classes = &classes
	}
	if cmd.IsSet("reg") {
		o.Reg = &reg
	}
	if cmd.IsSet("log-level") {
		o.LogLevel = &logLevel
	}
	if cmd.IsSet("log-format") {
		o.LogFormat = &logFormat
	}
	cfg.ApplyOverrides(o)

	return cfg, cfg.Validate()
}

// setup loads the configuration and attaches a logger to ctx.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return ctx, cfg, err
	}
	log, err := logger.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return ctx, cfg, err
	}
	return logger.WithContext(ctx, log), cfg, nil
}
