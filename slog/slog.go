// Package slog wires the resolver's ambient logging to the standard
// library's log/slog, the way the teacher's own slog subpackage does,
// but reading LOG_LEVEL and LOG_JSON straight off the process environment
// instead of through struct-tag reflection: the resolver core itself has
// no options of its own to tag, so there is nothing to bind tags to.
package slog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the default slog handler a host program installs
// before calling libopts.Resolve.
type Options struct {
	Level slog.Level
	JSON  bool
}

// FromEnviron reads LOG_LEVEL ("debug", "info", "warn", "error", case
// insensitive, default "info") and LOG_JSON ("1" for JSON output) from
// the given NAME=VALUE environment vector.
func FromEnviron(envp []string) Options {
	env := map[string]string{}
	for _, kv := range envp {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}
	opts := Options{Level: slog.LevelInfo}
	if v, ok := env["LOG_LEVEL"]; ok {
		opts.Level = parseLevel(v)
	}
	opts.JSON = env["LOG_JSON"] == "1"
	return opts
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigureWithHandlerOptions installs a slog.Default handler writing to
// w, using opts.Level and the text/JSON choice in opts.JSON.
func (opts Options) ConfigureWithHandlerOptions(w io.Writer, handlerOpts *slog.HandlerOptions) {
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{}
	}
	handlerOpts.Level = opts.Level

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

// Configure installs a slog.Default handler on os.Stderr per opts.
func (opts Options) Configure() {
	opts.ConfigureWithHandlerOptions(os.Stderr, nil)
}
