// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Trustless-Work/Testnet-Faucet/internal/flow"
	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet/agent"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SecretVar holds the seed of the local keypair wallet.
const SecretVar = "FAUCET_WALLET_SECRET"

var stdin = bufio.NewReader(os.Stdin)

// Secret is the local keypair wallet.
var Secret = wallet.Info{ID: "secret", Name: "Secret key"}

var cmdWallets = &cobra.Command{
	Use:   "wallets",
	Short: "List the wallets that can sign a trustline",
	Args:  cobra.NoArgs,
	Run:   listWallets,
}

func init() {
	cmd.AddCommand(cmdWallets)
}

// wallets returns the wallets offered by the CLI, in the order they are
// offered.
func wallets(rd *bufio.Reader, out io.Writer) *wallet.Registry {
	reg := wallet.DefaultRegistry(agent.Environment{}, pasteSigner(rd, out))

	kp, err := wallet.NewKeypair(Secret, os.Getenv(SecretVar))
	Checkf(err, "%s", SecretVar)
	Check(reg.Register(kp))
	return reg
}

// pasteSigner prints the envelope and waits for the signed envelope to be
// pasted back.
func pasteSigner(rd *bufio.Reader, out io.Writer) wallet.Signer {
	return func(ctx context.Context, envelope, passphrase string) (string, error) {
		fmt.Fprintln(out, "Sign this envelope with your wallet:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  "+envelope)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Network: %s\n", passphrase)
		if env, err := ledger.DecodeEnvelope(envelope); err == nil && !env.ValidUntil().IsZero() {
			fmt.Fprintf(out, "Expires: %s\n", humanize.Time(env.ValidUntil()))
		}
		fmt.Fprint(out, "Paste the signed envelope (empty to cancel): ")

		line, err := readLine(ctx, rd)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", errors.UserRejected.With("canceled by user")
		}
		return line, nil
	}
}

// readLine reads a line unless ctx is canceled first.
func readLine(ctx context.Context, rd *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := rd.ReadString('\n')
		ch <- result{strings.TrimSpace(line), err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.Canceled.Wrap(ctx.Err())
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", errors.Canceled.WithFormat("read input: %w", r.err)
		}
		return r.line, nil
	}
}

type walletList []wallet.Option

func (l walletList) Text(w io.Writer) error {
	var rows [][]string
	for _, o := range l {
		status := color.GreenString("Available")
		if !o.Available {
			status = color.RedString(o.Label)
		}
		rows = append(rows, []string{o.ID, o.Name, status})
	}
	Table(w, []string{"ID", "Name", "Status"}, rows)
	return nil
}

func listWallets(c *cobra.Command, _ []string) {
	opts := wallets(stdin, c.OutOrStdout()).Options()
	Check(Print(c.OutOrStdout(), flag.Output.Format(), walletList(opts)))
}

// chooseWallet asks the user to pick one of the available wallets.
func chooseWallet(ctx context.Context, f *flow.Flow, rd *bufio.Reader, out io.Writer) (string, error) {
	opts := f.AvailableWallets()
	fmt.Fprintln(out, "Choose a wallet to sign the trustline:")
	for i, o := range opts {
		if o.Available {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.Name)
		} else {
			fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, o.Name, o.Label)
		}
	}

	for {
		fmt.Fprint(out, "Wallet (empty to cancel): ")
		line, err := readLine(ctx, rd)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", nil
		}

		var n int
		_, err = fmt.Sscan(line, &n)
		for _, o := range opts {
			if line == o.ID && o.Available {
				return o.ID, nil
			}
		}
		if err == nil && n >= 1 && n <= len(opts) && opts[n-1].Available {
			return opts[n-1].ID, nil
		}
		fmt.Fprintln(out, "Not an available wallet")
	}
}
