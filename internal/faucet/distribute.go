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
	"github.com/shopspring/decimal"
	"github.com/stellar/go/txnbuild"
)

// Distribute implements [api.DistributionService].
//
// The recipient's trustline is not checked. If it is missing the ledger
// rejects the payment with NoTrust, which is returned as is.
func (s *Service) Distribute(ctx context.Context, address string, amount decimal.Decimal) (*api.Receipt, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return nil, err
	}
	amount, ok := s.allowed(amount)
	if !ok {
		return nil, errors.InvalidAmount.WithFormat("%v is not an allowed amount", amount)
	}
	if s.custody == nil {
		return nil, errors.Unavailable.With("distribution is not configured")
	}

	custody := s.custody.Address()
	ctx = logging.With(ctx, "recipient", address)
	release, err := s.accounts.Acquire(ctx, custody)
	if err != nil {
		return nil, err
	}
	defer release()

	// The snapshot must be loaded while holding the lock, otherwise a
	// concurrent distribution could consume the same sequence number
	snap, err := s.ledger.LoadAccount(ctx, custody)
	if err != nil {
		if errors.Code(err) == errors.NotFound {
			return nil, errors.InternalError.WithFormat("custody account %s does not exist", custody)
		}
		return nil, err
	}

	tx, _, err := s.build(snap, s.payTTL, &txnbuild.Payment{
		Destination: address,
		Amount:      amount.StringFixed(ledger.AmountDecimals),
		Asset:       s.asset.Txnbuild(),
	})
	if err != nil {
		return nil, err
	}
	tx, err = tx.Sign(s.passphrase, s.custody)
	if err != nil {
		return nil, errors.InternalError.WithFormat("sign: %w", err)
	}
	xdr, err := ledger.WrapEnvelope(tx).Encode()
	if err != nil {
		return nil, err
	}

	res, err := s.submit(ctx, "payment", xdr)
	if err != nil {
		s.logger.InfoContext(ctx, "Distribution rejected", "amount", amount, "error", err)
		return nil, err
	}

	f, _ := amount.Float64()
	mDistributed.Add(f)
	s.logger.InfoContext(ctx, "Distributed", "amount", amount, "hash", res.Hash, "ledger", res.Ledger)
	return &api.Receipt{
		Hash:      res.Hash,
		Ledger:    res.Ledger,
		Recipient: address,
		Amount:    amount,
		Code:      s.asset.Code,
		Message:   api.SentMessage(amount, s.asset.Code),
	}, nil
}

// allowed returns the allow-list entry equal to the amount.
func (s *Service) allowed(amount decimal.Decimal) (decimal.Decimal, bool) {
	for _, a := range s.amounts {
		if a.Equal(amount) {
			return a, true
		}
	}
	return amount, false
}
