package main

import (
	"errors"
	"os"

	"github.com/scott-cotton/cli"
)

// MainCommand builds the jsound command tree, following the shape of
// _examples/signadot-tony-format/go-tony/cmd/o/commands.go's
// MainCommand: a root config populated via cli.StructOpts, a WithRun
// that just enforces "a subcommand is required", and WithSubs wiring
// each leaf command.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsound").
		WithSynopsis("jsound [opts] command [opts]").
		WithDescription("jsound decides whether one JSON Schema's accepted values are a subset of another's.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsoundMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			LSPDCommand(cfg))
}

func jsoundMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Main.Parse(cc, args); err != nil {
		return err
	}
	if cfg.DebugAgent {
		startDebugAgent(cc)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return cli.ErrNoSuchCommand
	}
	err := sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// CheckCommand wires the `check` subcommand exactly to spec §6's CLI
// contract: `jsound check [OPTIONS] PRODUCER_FILE CONSUMER_FILE`.
func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check [opts] PRODUCER_FILE CONSUMER_FILE").
		WithDescription("check whether every value the producer schema accepts is also accepted by the consumer schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runCheck(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}
