package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/jsound-go/jsound/jsonschema"
	"github.com/jsound-go/jsound/subsumption"
)

// runCheck implements spec §6's CLI contract bit-exactly: two
// positional file arguments, exit 0/1/2 for compatible/incompatible/
// error. It calls os.Exit itself for the 0/1 cases (jsoundMain in
// commands.go also calls os.Exit, after printing usage for a
// cli.ErrUsage error); every other non-nil error it returns flows back
// up through jsoundMain and becomes the "2: error" row.
func runCheck(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: check requires exactly PRODUCER_FILE CONSUMER_FILE, got %d argument(s)", cli.ErrUsage, len(args))
	}
	setVerbose(cfg.Verbose)

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	opts.Logger = theLog

	producerSrc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading producer file %s: %w", args[0], err)
	}
	consumerSrc, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading consumer file %s: %w", args[1], err)
	}

	producer, err := jsonschema.Parse(producerSrc, theLog)
	if err != nil {
		return fmt.Errorf("parsing producer schema %s: %w", args[0], err)
	}
	consumer, err := jsonschema.Parse(consumerSrc, theLog)
	if err != nil {
		return fmt.Errorf("parsing consumer schema %s: %w", args[1], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout+5*time.Second)
	defer cancel()

	result, err := subsumption.Check(ctx, producer, consumer, opts)
	if err != nil {
		return err
	}

	if err := writeResult(cc.Out, result, opts.OutputFormat, producerSrc, consumerSrc); err != nil {
		return err
	}

	if result.Compatible {
		os.Exit(0)
	}
	os.Exit(1)
	return nil
}

func secondsToDuration(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// startDebugAgent wires github.com/google/gops/agent behind
// --debug-agent, following the exact pattern of the teacher's
// docd/system_compose long-running servers: a solver run that hits
// spec §5's timeout budget is exactly the kind of hung process a
// developer wants to attach gops to.
func startDebugAgent(cc *cli.Context) {
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}
}
