// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

// Funder creates accounts on a test network.
type Funder interface {
	Fund(ctx context.Context, address string) (*ledger.SubmissionResult, error)
}

// Bootstrapper prepares an issuer and a distributor for a faucet.
type Bootstrapper struct {
	Logger     *slog.Logger
	Ledger     ledger.Client
	Funder     Funder
	Passphrase string
}

// Plan describes the accounts and asset to bootstrap.
type Plan struct {
	Issuer      *keypair.Full
	Distributor *keypair.Full
	Code        string
	Supply      decimal.Decimal
}

// Step is a completed bootstrap step.
type Step struct {
	Name   string                   `json:"name"`
	Result *ledger.SubmissionResult `json:"result,omitempty"`
	Note   string                   `json:"note,omitempty"`
}

// Asset returns the asset the plan issues.
func (p *Plan) Asset() ledger.Asset {
	return ledger.Asset{Code: p.Code, Issuer: p.Issuer.Address()}
}

// Run executes the plan. Steps that were already done by an earlier run are
// skipped, so a failed run can be repeated.
func (b *Bootstrapper) Run(ctx context.Context, plan *Plan) ([]*Step, error) {
	if plan.Issuer == nil || plan.Distributor == nil {
		return nil, errors.BadRequest.With("missing issuer or distributor key")
	}
	if plan.Issuer.Address() == plan.Distributor.Address() {
		return nil, errors.BadRequest.With("the issuer and distributor must be different accounts")
	}
	if !plan.Supply.IsPositive() {
		return nil, errors.BadRequest.WithFormat("supply %v is not positive", plan.Supply)
	}
	if b.Logger == nil {
		b.Logger = slog.Default()
	}

	var steps []*Step
	for _, kp := range []*keypair.Full{plan.Issuer, plan.Distributor} {
		step, err := b.fund(ctx, kp.Address())
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
	}

	asset := plan.Asset()
	dist, err := b.Ledger.LoadAccount(ctx, plan.Distributor.Address())
	if err != nil {
		return steps, err
	}

	if dist.Trusts(asset) {
		steps = append(steps, &Step{Name: "trust " + asset.String(), Note: "already trusted"})
	} else {
		line, err := asset.Txnbuild().(txnbuild.CreditAsset).ToChangeTrustAsset()
		if err != nil {
			return steps, errors.BadRequest.WithFormat("asset %v: %w", asset, err)
		}
		res, err := b.submit(ctx, dist, plan.Distributor, &txnbuild.ChangeTrust{
			Line:  line,
			Limit: txnbuild.MaxTrustlineLimit,
		})
		if err != nil {
			return steps, errors.UnknownError.WithFormat("open distributor trustline: %w", err)
		}
		steps = append(steps, &Step{Name: "trust " + asset.String(), Result: res})
		b.Logger.InfoContext(ctx, "Opened distributor trustline", "module", "bootstrap", "hash", res.Hash)

		dist, err = b.Ledger.LoadAccount(ctx, plan.Distributor.Address())
		if err != nil {
			return steps, err
		}
	}

	held, _ := dist.Balance(asset)
	if held.Amount.GreaterThanOrEqual(plan.Supply) {
		steps = append(steps, &Step{Name: "issue " + plan.Supply.String(), Note: "already issued"})
		return steps, nil
	}

	issuer, err := b.Ledger.LoadAccount(ctx, plan.Issuer.Address())
	if err != nil {
		return steps, err
	}
	amount := plan.Supply.Sub(held.Amount)
	res, err := b.submit(ctx, issuer, plan.Issuer, &txnbuild.Payment{
		Destination: plan.Distributor.Address(),
		Amount:      amount.StringFixed(7),
		Asset:       asset.Txnbuild(),
	})
	if err != nil {
		return steps, errors.UnknownError.WithFormat("issue supply: %w", err)
	}
	b.Logger.InfoContext(ctx, "Issued supply", "module", "bootstrap", "amount", amount, "hash", res.Hash)
	steps = append(steps, &Step{Name: "issue " + amount.String(), Result: res})
	return steps, nil
}

func (b *Bootstrapper) fund(ctx context.Context, address string) (*Step, error) {
	_, err := b.Ledger.LoadAccount(ctx, address)
	switch {
	case err == nil:
		return &Step{Name: "fund " + address, Note: "already exists"}, nil
	case errors.Code(err) != errors.NotFound:
		return nil, err
	case b.Funder == nil:
		return nil, errors.NotFound.WithFormat("%s does not exist and there is no friendbot", address)
	}

	res, err := b.Funder.Fund(ctx, address)
	if err != nil {
		return nil, err
	}
	b.Logger.InfoContext(ctx, "Funded", "module", "bootstrap", "address", address)
	return &Step{Name: "fund " + address, Result: res}, nil
}

func (b *Bootstrapper) submit(ctx context.Context, snap *ledger.AccountSnapshot, key *keypair.Full, op txnbuild.Operation) (*ledger.SubmissionResult, error) {
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        snap.Account(),
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64((5 * time.Minute).Seconds())),
		},
	})
	if err != nil {
		return nil, errors.InternalError.WithFormat("build envelope: %w", err)
	}

	tx, err = tx.Sign(b.Passphrase, key)
	if err != nil {
		return nil, errors.InternalError.WithFormat("sign envelope: %w", err)
	}
	env, err := tx.Base64()
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode envelope: %w", err)
	}
	return b.Ledger.Submit(ctx, env)
}
