// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// OutputFlags are the output selection flags.
type OutputFlags struct {
	JSON bool
	YAML bool
}

// Register adds the flags to a flag set.
func (f *OutputFlags) Register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.JSON, "json", "j", false, "Output as JSON")
	fs.BoolVar(&f.YAML, "yaml", false, "Output as YAML")
}

// Format returns the selected format.
func (f *OutputFlags) Format() Format {
	switch {
	case f.JSON:
		return JSON
	case f.YAML:
		return YAML
	default:
		return Text
	}
}

// Texter is implemented by values that have a human readable rendering.
type Texter interface {
	Text(w io.Writer) error
}

// Print writes v in the given format. In text format v must implement
// [Texter] or [fmt.Stringer].
func Print(w io.Writer, format Format, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	switch v := v.(type) {
	case Texter:
		return v.Text(w)
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		return errors.InternalError.WithFormat("%T cannot be printed as text", v)
	}
}

// Table writes rows as a table with the given header.
func Table(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.AppendBulk(rows)
	t.Render()
}
