// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package faucet implements the faucet's trustline and distribution services.
package faucet

import (
	"context"
	"log/slog"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

// Service implements [api.Faucet] against a ledger.
//
// Trustline envelopes are built for the requester to sign with their own
// wallet. Distribution envelopes are built, signed with the custody key, and
// submitted by the service. Every submission holds the source account's lock
// from the moment its sequence number is read until the ledger has answered.
type Service struct {
	logger     *slog.Logger
	ledger     ledger.Client
	asset      ledger.Asset
	assetName  string
	passphrase string
	custody    *keypair.Full
	amounts    []decimal.Decimal
	limit      string
	trustTTL   time.Duration
	payTTL     time.Duration
	baseFee    int64
	accounts   *Sequencer
	now        func() time.Time
}

// Options are the parameters for a [Service].
type Options struct {
	Logger *slog.Logger
	Ledger ledger.Client

	// Asset is the distributed asset. AssetName is informational.
	Asset     ledger.Asset
	AssetName string

	NetworkPassphrase string

	// Custody is the distributor's key. Distribution is unavailable without
	// it.
	Custody *keypair.Full

	// Amounts is the allow-list of distributable amounts.
	Amounts []decimal.Decimal

	// TrustlineLimit caps built trustlines. Empty means the network maximum.
	TrustlineLimit string

	TrustlineWindow time.Duration
	PaymentWindow   time.Duration
	BaseFee         int64

	// Sequencer may be shared with other services that submit from the same
	// accounts.
	Sequencer *Sequencer

	// Clock defaults to [time.Now].
	Clock func() time.Time
}

var _ api.Faucet = (*Service)(nil)

// New creates a faucet service.
func New(opts Options) (*Service, error) {
	if opts.Ledger == nil {
		return nil, errors.BadRequest.With("missing ledger client")
	}
	if opts.NetworkPassphrase == "" {
		return nil, errors.BadRequest.With("missing network passphrase")
	}
	if opts.Asset.IsNative() {
		return nil, errors.BadRequest.With("the faucet cannot distribute the native asset")
	}
	if err := ledger.ValidateAddress(opts.Asset.Issuer); err != nil {
		return nil, errors.BadRequest.WithFormat("asset issuer: %w", err)
	}
	if len(opts.Amounts) == 0 {
		return nil, errors.BadRequest.With("no amounts are allowed")
	}
	for _, a := range opts.Amounts {
		if err := ledger.ValidateAmount(a); err != nil {
			return nil, errors.BadRequest.WithFormat("allowed amounts: %w", err)
		}
	}
	if opts.TrustlineLimit != "" {
		if _, err := decimal.NewFromString(opts.TrustlineLimit); err != nil {
			return nil, errors.BadRequest.WithFormat("trustline limit: %w", err)
		}
	}

	s := &Service{
		logger:     opts.Logger,
		ledger:     opts.Ledger,
		asset:      opts.Asset,
		assetName:  opts.AssetName,
		passphrase: opts.NetworkPassphrase,
		custody:    opts.Custody,
		amounts:    opts.Amounts,
		limit:      opts.TrustlineLimit,
		trustTTL:   opts.TrustlineWindow,
		payTTL:     opts.PaymentWindow,
		baseFee:    opts.BaseFee,
		accounts:   opts.Sequencer,
		now:        opts.Clock,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("module", "faucet")
	if s.trustTTL == 0 {
		s.trustTTL = 300 * time.Second
	}
	if s.payTTL == 0 {
		s.payTTL = 30 * time.Second
	}
	if s.baseFee == 0 {
		s.baseFee = txnbuild.MinBaseFee
	}
	if s.accounts == nil {
		s.accounts = NewSequencer()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Token implements [api.TokenService].
func (s *Service) Token(context.Context) (*api.TokenInfo, error) {
	return &api.TokenInfo{
		Code:              s.asset.Code,
		Name:              s.assetName,
		Issuer:            s.asset.Issuer,
		Amounts:           append([]decimal.Decimal(nil), s.amounts...),
		NetworkPassphrase: s.passphrase,
	}, nil
}

// CustodyAddress returns the address of the custody account, if configured.
func (s *Service) CustodyAddress() string {
	if s.custody == nil {
		return ""
	}
	return s.custody.Address()
}

// build builds an envelope from the snapshot, expiring after ttl.
func (s *Service) build(snap *ledger.AccountSnapshot, ttl time.Duration, op txnbuild.Operation) (*txnbuild.Transaction, time.Time, error) {
	expires := s.now().Add(ttl).Truncate(time.Second)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        snap.Account(),
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              s.baseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimebounds(0, expires.Unix()),
		},
	})
	if err != nil {
		return nil, time.Time{}, errors.InternalError.WithFormat("build envelope: %w", err)
	}
	return tx, expires.UTC(), nil
}

// submit submits an envelope and records the outcome.
func (s *Service) submit(ctx context.Context, kind, envelope string) (*ledger.SubmissionResult, error) {
	res, err := s.ledger.Submit(ctx, envelope)
	mSubmissions.WithLabelValues(kind, resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}
	return res, nil
}

func codeOf(err error) errors.Status {
	code := errors.Code(err)
	if code == 0 {
		return errors.UnknownError
	}
	return code
}
