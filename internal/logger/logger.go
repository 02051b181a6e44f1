// Package logger holds the process-wide structured logger. Output is
// discarded unless Init enables it, so library code can log unconditionally.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It discards everything until Init is
// called with Enabled set.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures logger initialization.
type Options struct {
	Enabled bool       // if false, all logging is discarded
	Level   slog.Level // minimum level; default LevelInfo
	Output  io.Writer  // destination; default os.Stderr
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level}))
}
