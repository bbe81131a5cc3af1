// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package faucet

import (
	"context"

	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/stellar/go/txnbuild"
)

// CheckTrustline implements [api.TrustlineService].
func (s *Service) CheckTrustline(ctx context.Context, address string) (*api.TrustlineCheck, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		mTrustlineChecks.WithLabelValues(errors.InvalidAddress.String()).Inc()
		return nil, err
	}

	check := &api.TrustlineCheck{Address: address}
	snap, err := s.ledger.LoadAccount(ctx, address)
	switch {
	case err == nil:
		if snap.Trusts(s.asset) {
			check.Status = api.TrustlinePresent
		} else {
			check.Status = api.TrustlineAbsent
		}
	case errors.Code(err) == errors.NotFound:
		check.Status = api.AccountMissing
	default:
		mTrustlineChecks.WithLabelValues(codeOf(err).String()).Inc()
		return nil, err
	}

	mTrustlineChecks.WithLabelValues(string(check.Status)).Inc()
	s.logger.DebugContext(ctx, "Checked trustline", "address", address, "status", check.Status)
	return check, nil
}

// BuildTrustline implements [api.TrustlineService]. The envelope is sourced
// from the requesting account, so only the requester can sign it.
func (s *Service) BuildTrustline(ctx context.Context, address string) (*api.TrustlineEnvelope, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return nil, err
	}
	if address == s.CustodyAddress() {
		return nil, errors.BadRequest.With("the custody account cannot request a trustline")
	}

	snap, err := s.ledger.LoadAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	line, err := s.asset.Txnbuild().(txnbuild.CreditAsset).ToChangeTrustAsset()
	if err != nil {
		return nil, errors.InternalError.WithFormat("change trust asset: %w", err)
	}
	limit := s.limit
	if limit == "" {
		limit = txnbuild.MaxTrustlineLimit
	}
	tx, expires, err := s.build(snap, s.trustTTL, &txnbuild.ChangeTrust{
		Line:  line,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	xdr, err := ledger.WrapEnvelope(tx).Encode()
	if err != nil {
		return nil, err
	}

	mEnvelopesBuilt.Inc()
	s.logger.InfoContext(ctx, "Built trustline envelope", "address", address, "sequence", tx.SequenceNumber(), "expires", expires)
	return &api.TrustlineEnvelope{
		XDR:               xdr,
		NetworkPassphrase: s.passphrase,
		ExpiresAt:         expires,
		Message:           api.TrustlinePreparedMessage,
	}, nil
}

// SubmitTrustline implements [api.TrustlineSubmitter]. Only an envelope that
// opens a trustline for the faucet asset, signed by the account that will
// hold it, is accepted.
func (s *Service) SubmitTrustline(ctx context.Context, envelope string) (*ledger.SubmissionResult, error) {
	env, err := ledger.DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	change, err := env.AsTrustlineChange()
	if err != nil {
		return nil, err
	}
	switch {
	case change.Asset != s.asset:
		return nil, errors.MalformedInput.WithFormat("trustline is for %v, not %v", change.Asset, s.asset)
	case change.Account != env.Source():
		return nil, errors.MalformedInput.With("trustline must be opened by the envelope's source")
	case change.Account == s.CustodyAddress():
		return nil, errors.BadRequest.With("the custody account cannot request a trustline")
	case !env.SignedBy(s.passphrase, change.Account):
		return nil, errors.MalformedInput.WithFormat("envelope is not signed by %s", change.Account)
	}

	ctx = logging.With(ctx, "address", change.Account)
	release, err := s.accounts.Acquire(ctx, change.Account)
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := s.submit(ctx, "trustline", envelope)
	if err != nil {
		s.logger.InfoContext(ctx, "Trustline rejected", "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "Trustline submitted", "hash", res.Hash, "ledger", res.Ledger)
	return res, nil
}
