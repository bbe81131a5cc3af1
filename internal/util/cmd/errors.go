// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package cmdutil holds helpers shared by the command line tools.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Exit is called by Fatalf. Tests replace it.
var Exit = os.Exit

func Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	Exit(1)
}

// Check exits if err is not nil. Errors with a status code print the code
// name so scripts can tell failures apart.
func Check(err error) {
	if err == nil {
		return
	}
	if code := errors.Code(err); code != 0 && code != errors.UnknownError {
		Fatalf("%v (%v)", err, code)
		return
	}
	Fatalf("%v", err)
}

func Checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		Fatalf(format+": %v", append(otherArgs, err)...)
	}
}

func Warnf(format string, args ...interface{}) {
	format = "WARNING: " + format + "\n"
	if IsTerminal(os.Stderr) {
		fmt.Fprint(os.Stderr, color.RedString(format, args...))
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Successf prints a line in green if w is a terminal.
func Successf(w io.Writer, format string, args ...interface{}) {
	if IsTerminal(w) {
		fmt.Fprintln(w, color.GreenString(format, args...))
	} else {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
