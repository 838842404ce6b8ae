package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

// main mirrors _examples/signadot-tony-format/go-tony/cmd/o/main.go's
// single-line entrypoint: build the command tree and hand it to
// cli.MainContext, which parses argv, runs the matched command, and
// maps errors to a process exit code.
func main() {
	cli.MainContext(context.Background(), MainCommand())
}
