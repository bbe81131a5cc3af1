// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		out = append(out, v)
	}
	return out
}

func TestParseRules(t *testing.T) {
	def, modules, err := ParseRules("info;faucet=debug;API=warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, def)
	require.Equal(t, slog.LevelDebug, modules["faucet"])
	require.Equal(t, slog.LevelWarn, modules["api"])

	def, _, err = ParseRules("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelError, def)

	_, _, err = ParseRules("faucet=loud")
	require.Error(t, err)
}

func TestModuleLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewHandler(Options{Format: "json", Level: "warn;faucet=debug", Out: buf})
	require.NoError(t, err)
	logger := slog.New(h)

	logger.Debug("dropped")
	logger.Debug("kept", "module", "faucet")
	logger.With("module", "faucet").Info("kept too")
	logger.Info("dropped", "module", "api")
	logger.Warn("kept as well", "module", "api")

	var msgs []string
	for _, r := range records(t, buf) {
		msgs = append(msgs, r["msg"].(string))
	}
	require.Equal(t, []string{"kept", "kept too", "kept as well"}, msgs)
}

func TestContextAttrs(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewHandler(Options{Format: "json", Level: "info", Out: buf})
	require.NoError(t, err)

	ctx := With(context.Background(), "request", "abc")
	ctx = With(ctx, slog.String("address", "GABC"))
	slog.New(h).InfoContext(ctx, "Hello")

	r := records(t, buf)
	require.Len(t, r, 1)
	require.Equal(t, "abc", r[0]["request"])
	require.Equal(t, "GABC", r[0]["address"])

	// A module in the context selects the level
	buf.Reset()
	h, err = NewHandler(Options{Format: "json", Level: "error;flow=debug", Out: buf})
	require.NoError(t, err)
	slog.New(h).DebugContext(With(context.Background(), "module", "flow"), "Hello")
	require.Len(t, records(t, buf), 1)
}

func TestTextFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewHandler(Options{Level: "info", Out: buf, NoColor: true})
	require.NoError(t, err)
	slog.New(h).Info("Started", "module", "api")
	require.Contains(t, buf.String(), "INFO")
	require.Contains(t, buf.String(), "Started")
	require.Contains(t, buf.String(), "module=api")

	_, err = NewHandler(Options{Format: "xml"})
	require.Error(t, err)
}
