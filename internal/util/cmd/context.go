// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ContextForMainProcess returns a context that is canceled when the process
// receives an interrupt or terminate signal. A second signal exits
// immediately.
func ContextForMainProcess(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()

		<-sigs
		fmt.Fprintln(os.Stderr, "Interrupted twice, exiting")
		Exit(1)
	}()
	return ctx
}
