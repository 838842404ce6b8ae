package main

import (
	"github.com/scott-cotton/cli"

	"github.com/jsound-go/jsound/subsumption"
)

// MainConfig is the root config struct, mirroring
// _examples/signadot-tony-format/go-tony/cmd/o/configs.go's MainConfig
// shape: process-wide flags live here, subcommand configs embed a
// pointer back to it.
type MainConfig struct {
	DebugAgent bool `cli:"name=debug-agent desc='start a gops debug agent for this process'"`
	Verbose    bool `cli:"name=v aliases=verbose desc='raise logging to debug level'"`

	Main *cli.Command
}

// CheckConfig is the `jsound check` subcommand's flag surface, named
// and described to match spec §6's Options enumeration; ref_resolution
// has no flag, since unfold is its only value.
type CheckConfig struct {
	*MainConfig
	Check *cli.Command

	MaxArrayLength    int    `cli:"name=max-array-length desc='cap on MAX_ARRAY_LEN' default=8"`
	MaxRecursionDepth int    `cli:"name=max-recursion-depth desc='reserved for future simulation mode' default=3"`
	TimeoutSeconds    int    `cli:"name=timeout-seconds desc='solver budget in seconds' default=30"`
	Explanations      bool   `cli:"name=explanations desc='run labeled evaluation and minimization on a counterexample' default=true"`
	OutputFormat      string `cli:"name=output-format desc='pretty, json, or minimal' default=pretty"`
}

// options converts the parsed flags into subsumption.Options, per
// spec §6's enumerated option set.
func (cfg *CheckConfig) options() (subsumption.Options, error) {
	opts := subsumption.DefaultOptions()
	opts.MaxArrayLength = cfg.MaxArrayLength
	opts.MaxRecursionDepth = cfg.MaxRecursionDepth
	opts.Timeout = secondsToDuration(cfg.TimeoutSeconds)
	opts.Explanations = cfg.Explanations
	switch cfg.OutputFormat {
	case "pretty":
		opts.OutputFormat = subsumption.OutputPretty
	case "json":
		opts.OutputFormat = subsumption.OutputJSON
	case "minimal":
		opts.OutputFormat = subsumption.OutputMinimal
	default:
		return opts, cli.ErrUsage
	}
	return opts, nil
}
