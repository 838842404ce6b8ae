package main

import (
	"log/slog"
	"os"
)

// logLevel backs theLog's handler so --verbose/-v can raise it to
// Debug after the handler has already been constructed (spec
// SPEC_FULL.md §7.1).
var logLevel = new(slog.LevelVar)

// theLog mirrors _examples/signadot-tony-format/go-tony/cmd/o/log.go's
// handler setup: a plain text handler on stderr with timestamps and
// INFO-level noise stripped, since the CLI's own output (pretty/json/
// minimal) already carries the signal a caller wants. Library packages
// (schemaref, compiler, subsumption) take this as their *slog.Logger
// via Options/constructor rather than defaulting silently.
var theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: logLevel,
	ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		if a.Key == slog.LevelKey && a.Value.String() == "INFO" {
			return slog.Attr{}
		}
		return a
	},
}))

// setVerbose raises theLog's handler to Debug level when --verbose/-v
// is passed; the default level (LevelVar's zero value) is Info.
func setVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}
