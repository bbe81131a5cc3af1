// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package logging builds the process's slog handler.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/rs/zerolog"
)

// Options configure [NewHandler].
type Options struct {
	// Format is text (the default) or json.
	Format string

	// Level is a list of rules separated by semicolons. A rule is either a
	// level, which sets the default, or module=level. For example
	// "info;faucet=debug".
	Level string

	// Out defaults to stderr.
	Out io.Writer

	// NoColor disables colors in text output.
	NoColor bool
}

// ParseRules parses a level rule list. The default level is error.
func ParseRules(s string) (def slog.Level, modules map[string]slog.Level, err error) {
	def = slog.LevelError
	modules = map[string]slog.Level{}
	for _, rule := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		module, level, ok := strings.Cut(rule, "=")
		if !ok {
			module, level = "", rule
		}

		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return 0, nil, errors.BadRequest.WithFormat("invalid log level %q", level)
		}
		if module == "" || module == "*" {
			def = l
		} else {
			modules[strings.ToLower(module)] = l
		}
	}
	return def, modules, nil
}

// NewHandler returns a handler that filters records by the level of their
// module attribute and adds the attributes carried by the context.
func NewHandler(opts Options) (slog.Handler, error) {
	def, modules, err := ParseRules(opts.Level)
	if err != nil {
		return nil, err
	}

	lowest := def
	for _, l := range modules {
		if l < lowest {
			lowest = l
		}
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: lowest}
	var h slog.Handler
	switch opts.Format {
	case "", "text", "plain":
		// Use zerolog's console writer to write pretty logs
		hopts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.MessageKey {
				return a
			}
			if a.Value.Kind() == slog.KindString {
				return slog.Any(zerolog.MessageFieldName, a.Value)
			}
			return slog.String(zerolog.MessageFieldName, fmt.Sprint(a.Value.Any()))
		}
		h = slog.NewJSONHandler(&zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					return strings.ToUpper(ll)
				}
				return "????"
			},
			FormatMessage: func(i interface{}) string {
				s, ok := i.(string)
				if ok {
					return s
				}
				return fmt.Sprint(i)
			},
		}, hopts)
	case "json":
		h = slog.NewJSONHandler(out, hopts)
	default:
		return nil, errors.BadRequest.WithFormat("log format %q is not supported", opts.Format)
	}

	return &handler{
		handler: h,
		level:   def,
		lowest:  lowest,
		modules: modules,
	}, nil
}

// Setup builds a handler and installs it as the default logger.
func Setup(opts Options) (*slog.Logger, error) {
	h, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}

type handler struct {
	handler slog.Handler
	level   slog.Level // Level of records without a known module
	lowest  slog.Level
	modules map[string]slog.Level
	module  string // Module set by WithAttrs
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	i := *h
	i.handler = h.handler.WithAttrs(attrs)
	if m, ok := moduleOf(attrs); ok {
		i.module = m
	}
	return &i
}

func (h *handler) WithGroup(name string) slog.Handler {
	i := *h
	i.handler = h.handler.WithGroup(name)
	return &i
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.lowest {
		return false
	}
	return h.handler.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, record slog.Record) error {
	module := h.module
	if m, ok := moduleOf(Attrs(ctx)); ok {
		module = m
	}
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == "module" {
			module = a.Value.String()
			return false
		}
		return true
	})

	if record.Level < h.levelFor(module) {
		return nil
	}

	if attrs := Attrs(ctx); len(attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, record)
}

func (h *handler) levelFor(module string) slog.Level {
	if l, ok := h.modules[strings.ToLower(module)]; ok {
		return l
	}
	return h.level
}

func moduleOf(attrs []slog.Attr) (string, bool) {
	for _, a := range attrs {
		if a.Key == "module" {
			return a.Value.String(), true
		}
	}
	return "", false
}
