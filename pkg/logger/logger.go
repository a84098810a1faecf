// Package logger builds the slog.Logger used by the commands: a colored
// console handler, plus optional JSON sinks fanned out with slog-multi.
package logger

import (
	"io"
	"log/slog"

	"github.com/mattn/go-colorable"
	slogmulti "github.com/samber/slog-multi"
)

type Options struct {
	// Verbose lowers the console level from info to debug.
	Verbose bool
	// Console receives human readable lines. Defaults to a colorable stderr.
	Console io.Writer
	// LogFile, if set, receives every record as JSON.
	LogFile io.Writer
	// Recent, if set, keeps the latest records as JSON for error reports.
	Recent *Recent
}

// New returns a logger writing to every sink configured in opts.
func New(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	console := opts.Console
	if console == nil {
		console = colorable.NewColorableStderr()
	}

	handlers := []slog.Handler{NewConsoleHandler(console, level)}
	jsonOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if opts.LogFile != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.LogFile, jsonOpts))
	}
	if opts.Recent != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.Recent, jsonOpts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
