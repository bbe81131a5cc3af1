// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Name string `json:"name" yaml:"name"`
}

func (g greeting) Text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Hello %s\n", g.Name)
	return err
}

func TestPrint(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Print(buf, Text, greeting{"Ada"}))
	require.Equal(t, "Hello Ada\n", buf.String())

	buf.Reset()
	require.NoError(t, Print(buf, JSON, greeting{"Ada"}))
	require.JSONEq(t, `{"name":"Ada"}`, buf.String())

	buf.Reset()
	require.NoError(t, Print(buf, YAML, greeting{"Ada"}))
	require.Equal(t, "name: Ada\n", buf.String())

	require.Error(t, Print(buf, Text, struct{}{}))
}

func TestOutputFlags(t *testing.T) {
	var f OutputFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Register(fs)
	require.Equal(t, Text, f.Format())
	require.NoError(t, fs.Parse([]string{"--yaml"}))
	require.Equal(t, YAML, f.Format())
	require.NoError(t, fs.Parse([]string{"-j"}))
	require.Equal(t, JSON, f.Format())
}

func TestTable(t *testing.T) {
	buf := new(bytes.Buffer)
	Table(buf, []string{"ID", "Name"}, [][]string{{"albedo", "Albedo"}})
	require.Contains(t, buf.String(), "albedo")
	require.Contains(t, buf.String(), "NAME")
}
