// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package horizon implements [ledger.Client] against a Horizon endpoint.
package horizon

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
)

// Client is a ledger client backed by Horizon.
type Client struct {
	horizon *horizonclient.Client
	now     func() time.Time
}

var _ ledger.Client = (*Client)(nil)

// Options are the options for [New].
type Options struct {
	// URL is the Horizon endpoint.
	URL string

	// Timeout bounds each request. Defaults to 30 seconds.
	Timeout time.Duration

	// HTTP overrides the HTTP client.
	HTTP horizonclient.HTTP
}

// New creates a Horizon-backed ledger client.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		horizon: &horizonclient.Client{
			HorizonURL: opts.URL,
			HTTP:       opts.HTTP,
			AppName:    "testnet-faucet",
		},
		now: time.Now,
	}
}

// LoadAccount implements [ledger.Loader].
func (c *Client) LoadAccount(ctx context.Context, address string) (*ledger.AccountSnapshot, error) {
	acct, err := call(ctx, func() (hProtocol.Account, error) {
		return c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	})
	if err != nil {
		return nil, convertError(err, "load %s", address)
	}

	snap := &ledger.AccountSnapshot{
		Address:  acct.AccountID,
		Sequence: acct.Sequence,
	}
	for _, b := range acct.Balances {
		var asset ledger.Asset
		switch b.Type {
		case "native":
			asset = ledger.Native
		case "credit_alphanum4", "credit_alphanum12":
			asset = ledger.Asset{Code: b.Code, Issuer: b.Issuer}
		default:
			// Pool shares are not assets the faucet deals in
			continue
		}

		bal := ledger.Balance{Asset: asset}
		bal.Amount, err = decimal.NewFromString(b.Balance)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("balance of %v: %w", asset, err)
		}
		if b.Limit != "" {
			bal.Limit, err = decimal.NewFromString(b.Limit)
			if err != nil {
				return nil, errors.EncodingError.WithFormat("limit of %v: %w", asset, err)
			}
		}
		snap.Balances = append(snap.Balances, bal)
	}
	return snap, nil
}

// Submit implements [ledger.Submitter]. Once the envelope has been sent,
// Submit waits for Horizon's answer or the HTTP client's timeout even if ctx
// is canceled, so a caller serializing the source account keeps it until the
// ledger has answered. No answer is reported as OutcomeUnknown.
func (c *Client) Submit(ctx context.Context, envelope string) (*ledger.SubmissionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled.WithFormat("submit: %w", err)
	}

	tx, err := c.horizon.SubmitTransactionXDR(envelope)
	if err != nil {
		return nil, convertSubmitError(err)
	}

	slog.DebugContext(ctx, "Submitted", "module", "ledger", "hash", tx.Hash, "ledger", tx.Ledger)
	return &ledger.SubmissionResult{
		Hash:        tx.Hash,
		Ledger:      tx.Ledger,
		SubmittedAt: c.now(),
	}, nil
}

// call runs a blocking Horizon read, returning early if the context is
// canceled. The request itself is bounded by the HTTP client's timeout. Only
// requests without side effects may be abandoned this way.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}

	var z T
	if err := ctx.Err(); err != nil {
		return z, err
	}

	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return z, ctx.Err()
	}
}
