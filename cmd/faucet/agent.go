// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet/agent"
	"github.com/spf13/cobra"
)

var cmdAgent = &cobra.Command{
	Use:   "agent",
	Short: "Serve the secret key wallet as a signing agent",
	Long: fmt.Sprintf(`Serve the secret key wallet as a signing agent.

Point another faucet command at the agent to use it as an injected wallet:

  %s=http://127.0.0.1:7070 faucet run <address> --wallet freighter

The key is read from %s.`, agent.VarName(wallet.Freighter.ID), SecretVar),
	Args: cobra.NoArgs,
	Run:  serveAgent,
}

var flagAgent = struct {
	Listen string
	Yes    bool
}{}

func init() {
	cmd.AddCommand(cmdAgent)
	cmdAgent.Flags().StringVarP(&flagAgent.Listen, "listen", "l", "127.0.0.1:7070", "Listening address")
	cmdAgent.Flags().BoolVarP(&flagAgent.Yes, "yes", "y", false, "Sign every request without asking")
}

func serveAgent(c *cobra.Command, _ []string) {
	kp, err := wallet.NewKeypair(Secret, os.Getenv(SecretVar))
	Checkf(err, "%s", SecretVar)
	if !kp.Available() {
		Fatalf("%s is not set", SecretVar)
	}

	h := &agent.Handler{Wallet: kp}
	if !flagAgent.Yes {
		h.Approve = func(req *agent.SignRequest) bool {
			return approve(c.Context(), c.ErrOrStderr(), req)
		}
	}

	l, err := net.Listen("tcp", flagAgent.Listen)
	Check(err)
	server := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-c.Context().Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	Successf(c.ErrOrStderr(), "Signing for %s on %s", kp.Address(), l.Addr())
	err = server.Serve(l)
	if err != http.ErrServerClosed {
		slog.Error("Agent stopped", "module", "agent", "error", err)
		Check(err)
	}
}

// approve describes the request and asks whether to sign it.
func approve(ctx context.Context, out io.Writer, req *agent.SignRequest) bool {
	fmt.Fprintln(out, "Signing request")
	if env, err := ledger.DecodeEnvelope(req.XDR); err == nil {
		fmt.Fprintf(out, "  Source:     %s\n", env.Source())
		fmt.Fprintf(out, "  Operations: %d\n", len(env.Operations()))
		if tl, err := env.AsTrustlineChange(); err == nil {
			fmt.Fprintf(out, "  Trust:      %s\n", tl.Asset)
		}
	}
	fmt.Fprintf(out, "  Network:    %s\n", req.NetworkPassphrase)
	fmt.Fprint(out, "Sign? [y/N] ")

	line, err := readLine(ctx, stdin)
	if err != nil {
		return false
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes")
}
