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

	"github.com/Trustless-Work/Testnet-Faucet/internal/flow"
	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var cmdCheck = &cobra.Command{
	Use:   "check <address>",
	Short: "Check whether an address trusts the faucet asset",
	Args:  cobra.ExactArgs(1),
	Run:   check,
}

var cmdToken = &cobra.Command{
	Use:   "token",
	Short: "Describe the faucet asset and the amounts it gives out",
	Args:  cobra.NoArgs,
	Run:   token,
}

var cmdTrust = &cobra.Command{
	Use:   "trust <address>",
	Short: "Open a trustline for the faucet asset, signed with a wallet",
	Args:  cobra.ExactArgs(1),
	Run:   trust,
}

var cmdRequest = &cobra.Command{
	Use:   "request <address> <amount>",
	Short: "Request tokens for an address that trusts the faucet asset",
	Args:  cobra.ExactArgs(2),
	Run:   request,
}

var cmdRun = &cobra.Command{
	Use:   "run <address>",
	Short: "Check, open a trustline if needed, and request tokens",
	Args:  cobra.ExactArgs(1),
	Run:   runFlow,
}

var flagFlow = struct {
	Wallet string
	Amount string
}{}

func init() {
	cmd.AddCommand(cmdCheck, cmdToken, cmdTrust, cmdRequest, cmdRun)

	for _, c := range []*cobra.Command{cmdTrust, cmdRun} {
		c.Flags().StringVarP(&flagFlow.Wallet, "wallet", "w", "", "Wallet to sign with (prompts if omitted)")
	}
	cmdRun.Flags().StringVarP(&flagFlow.Amount, "amount", "a", "", "Amount to request (prompts if omitted)")
}

func newFlow(c *cobra.Command) *flow.Flow {
	client := client()
	f, err := flow.New(flow.Options{
		Logger:            slog.Default(),
		Trustlines:        client,
		Submitter:         client,
		Distributor:       client,
		Wallets:           wallets(stdin, c.ErrOrStderr()),
		NetworkPassphrase: flag.Passphrase,
	})
	Check(err)

	if flag.Output.Format() == Text {
		progress := color.New(color.Faint)
		f.OnChange(func(s flow.Snapshot) {
			if s.State.Busy() {
				_, _ = progress.Fprintf(c.ErrOrStderr(), "%s...\n", s.State)
			}
		})
	}
	return f
}

func printSnapshot(c *cobra.Command, s flow.Snapshot) {
	Check(Print(c.OutOrStdout(), flag.Output.Format(), snapshot(s)))
}

// settle enters the address and exits if it cannot be checked.
func settle(ctx context.Context, f *flow.Flow, address string) flow.Snapshot {
	snap, err := f.SetAddress(ctx, address)
	Check(err)
	return snap
}

func check(c *cobra.Command, args []string) {
	f := newFlow(c)
	printSnapshot(c, settle(c.Context(), f, args[0]))
}

func token(c *cobra.Command, _ []string) {
	info, err := client().Token(c.Context())
	Check(err)
	Check(Print(c.OutOrStdout(), flag.Output.Format(), (*tokenInfo)(info)))
}

func trust(c *cobra.Command, args []string) {
	f := newFlow(c)
	snap := settle(c.Context(), f, args[0])
	if snap.State == flow.TrustlineMissing {
		snap = openTrustline(c, f)
	}
	printSnapshot(c, snap)
}

// openTrustline runs the wallet choice, signing, and submission.
func openTrustline(c *cobra.Command, f *flow.Flow) flow.Snapshot {
	ctx := c.Context()
	_, err := f.BeginTrustline()
	Check(err)

	id := flagFlow.Wallet
	if id == "" {
		id, err = chooseWallet(ctx, f, stdin, c.ErrOrStderr())
		Check(err)
	}
	if id == "" {
		snap, err := f.CancelWalletChoice()
		Check(err)
		Warnf("Canceled, no trustline was opened")
		return snap
	}

	snap, err := f.SelectWallet(ctx, id)
	if err != nil && snap.Retryable() {
		Warnf("The envelope was not accepted in time, building a new one")
		_, err = f.BeginTrustline()
		Check(err)
		snap, err = f.SelectWallet(ctx, id)
	}
	Check(err)
	return snap
}

func request(c *cobra.Command, args []string) {
	amount, err := decimal.NewFromString(args[1])
	Checkf(err, "invalid amount")

	f := newFlow(c)
	snap := settle(c.Context(), f, args[0])
	if snap.State != flow.TrustlineConfirmed {
		printSnapshot(c, snap)
		Fatalf("%s cannot receive tokens until it trusts the asset", args[0])
	}

	snap, err = f.Distribute(c.Context(), amount)
	Check(err)
	printSnapshot(c, snap)
}

func runFlow(c *cobra.Command, args []string) {
	ctx := c.Context()
	f := newFlow(c)
	snap := settle(ctx, f, args[0])

	switch snap.State {
	case flow.TrustlineConfirmed:
	case flow.TrustlineMissing:
		snap = openTrustline(c, f)
		if snap.State != flow.TrustlineConfirmed {
			printSnapshot(c, snap)
			return
		}
	default:
		printSnapshot(c, snap)
		return
	}

	amount := chooseAmount(ctx, c.ErrOrStderr())
	snap, err := f.Distribute(ctx, amount)
	Check(err)
	printSnapshot(c, snap)
}

// chooseAmount returns the --amount flag, or asks the user to pick one of
// the amounts the faucet allows.
func chooseAmount(ctx context.Context, out io.Writer) decimal.Decimal {
	if flagFlow.Amount != "" {
		amount, err := decimal.NewFromString(flagFlow.Amount)
		Checkf(err, "invalid amount")
		return amount
	}

	info, err := client().Token(ctx)
	Check(err)
	if len(info.Amounts) == 0 {
		Fatalf("the faucet does not list any amounts")
	}

	fmt.Fprintf(out, "How much %s?\n", info.Code)
	for i, a := range info.Amounts {
		fmt.Fprintf(out, "  %d) %s\n", i+1, a)
	}
	for {
		fmt.Fprint(out, "Amount: ")
		line, err := readLine(ctx, stdin)
		Check(err)

		var n int
		if _, err := fmt.Sscan(line, &n); err == nil && n >= 1 && n <= len(info.Amounts) {
			return info.Amounts[n-1]
		}
		for _, a := range info.Amounts {
			if d, err := decimal.NewFromString(line); err == nil && d.Equal(a) {
				return a
			}
		}
		fmt.Fprintln(out, "Choose one of the listed amounts")
	}
}

type snapshot flow.Snapshot

func (s snapshot) Text(w io.Writer) error {
	if s.Submission != nil {
		fmt.Fprintf(w, "Trustline transaction %s\n", s.Submission)
	}

	switch s.State {
	case flow.TrustlineConfirmed:
		Successf(w, "%s trusts the faucet asset", s.Address)
	case flow.TrustlineMissing:
		fmt.Fprintf(w, "%s does not trust the faucet asset\n", s.Address)
	case flow.AccountNotFound:
		fmt.Fprintln(w, color.YellowString("%s does not exist yet, fund it before opening a trustline", s.Address))
	case flow.Done:
		Successf(w, "%s", s.Receipt.Message)
		fmt.Fprintf(w, "Transaction %s (ledger %d)\n", s.Receipt.Hash, s.Receipt.Ledger)
	default:
		fmt.Fprintln(w, s.State)
	}
	return nil
}

type tokenInfo api.TokenInfo

func (t *tokenInfo) Text(w io.Writer) error {
	name := t.Code
	if t.Name != "" {
		name = fmt.Sprintf("%s (%s)", t.Name, t.Code)
	}
	Table(w, []string{"Asset", "Issuer", "Amounts"}, [][]string{{name, t.Issuer, fmt.Sprint(t.Amounts)}})
	return nil
}
