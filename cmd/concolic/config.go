package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"

	"github.com/concolic/goconcolic/pkg/concolic"
)

// fileConfig is the shape of an optional TOML configuration file (-config).
// Every field is loosely typed on purpose: values arriving from TOML may be
// int64 or float64 depending on how the author wrote the literal, and
// spf13/cast normalizes either into the Options field it feeds.
type fileConfig struct {
	Debug               interface{} `toml:"debug"`
	InterceptionEnabled interface{} `toml:"interception_enabled"`
	MaxRecursionDepth   interface{} `toml:"max_recursion_depth"`
	MaxIterations       interface{} `toml:"max_iterations"`
	SearchWidth         interface{} `toml:"search_width"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// mergeOptions layers file values under explicit CLI flags: explicit holds
// the names of the flags actually given on the command line (collected with
// flag.FlagSet.Visit), and those always win. For every other option, a value
// present in the file replaces the flag's default; options absent from the
// file keep the value already in cli.
func mergeOptions(cfg fileConfig, cli concolic.Options, explicit map[string]bool) (concolic.Options, error) {
	opts := cli

	if !explicit["debug"] && cfg.Debug != nil {
		v, err := cast.ToBoolE(cfg.Debug)
		if err != nil {
			return opts, err
		}
		opts.Debug = v
	}
	if !explicit["interception-enabled"] && cfg.InterceptionEnabled != nil {
		v, err := cast.ToBoolE(cfg.InterceptionEnabled)
		if err != nil {
			return opts, err
		}
		opts.InterceptionEnabled = v
	}
	if !explicit["max-recursion-depth"] && cfg.MaxRecursionDepth != nil {
		v, err := cast.ToIntE(cfg.MaxRecursionDepth)
		if err != nil {
			return opts, err
		}
		opts.MaxRecursionDepth = v
	}
	if !explicit["max-iterations"] && cfg.MaxIterations != nil {
		v, err := cast.ToIntE(cfg.MaxIterations)
		if err != nil {
			return opts, err
		}
		opts.MaxIterations = v
	}
	if !explicit["search-width"] && cfg.SearchWidth != nil {
		v, err := cast.ToIntE(cfg.SearchWidth)
		if err != nil {
			return opts, err
		}
		opts.SearchWidth = v
	}
	return opts, nil
}
