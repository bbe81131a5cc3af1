// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/txnbuild"
)

//go:generate go run github.com/vektra/mockery/v2
//go:generate go run github.com/rinchsan/gosimports/cmd/gosimports -w .

// Client loads account state from and submits envelopes to the remote ledger.
type Client interface {
	Loader
	Submitter
}

// Loader loads account state.
type Loader interface {
	// LoadAccount returns the current state of the account. LoadAccount fails
	// with NotFound if the account does not exist on the ledger, or with
	// NetworkError if the ledger could not be reached.
	LoadAccount(ctx context.Context, address string) (*AccountSnapshot, error)
}

// Submitter submits signed envelopes.
type Submitter interface {
	// Submit submits a signed, base64 encoded envelope. Submit is not
	// idempotent: resubmitting an accepted envelope fails with BadSequence.
	// Once the envelope has been sent, Submit must not return before the
	// ledger answers or the request times out; a timeout fails with
	// OutcomeUnknown.
	Submit(ctx context.Context, envelope string) (*SubmissionResult, error)
}

// Asset identifies a unit held on the ledger. The zero value is the native
// unit.
type Asset struct {
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// Native is the network's native unit.
var Native = Asset{}

// IsNative returns true if the asset is the native unit.
func (a Asset) IsNative() bool { return a == Native }

func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer
}

// Txnbuild converts the asset for use with txnbuild.
func (a Asset) Txnbuild() txnbuild.Asset {
	if a.IsNative() {
		return txnbuild.NativeAsset{}
	}
	return txnbuild.CreditAsset{Code: a.Code, Issuer: a.Issuer}
}

// AssetOf converts a txnbuild asset.
func AssetOf(a txnbuild.BasicAsset) Asset {
	if a == nil || a.IsNative() {
		return Native
	}
	return Asset{Code: a.GetCode(), Issuer: a.GetIssuer()}
}

// Balance is the amount of an asset held by an account.
type Balance struct {
	Asset  Asset           `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
	Limit  decimal.Decimal `json:"limit"`
}

// AccountSnapshot is the state of an account at the time it was loaded.
type AccountSnapshot struct {
	Address  string    `json:"address"`
	Sequence int64     `json:"sequence"`
	Balances []Balance `json:"balances"`
}

// Balance returns the balance held for the asset, if any.
func (a *AccountSnapshot) Balance(asset Asset) (Balance, bool) {
	for _, b := range a.Balances {
		if b.Asset == asset {
			return b, true
		}
	}
	return Balance{}, false
}

// Trusts returns true if the account holds a trustline for the asset. Every
// account implicitly holds the native unit.
func (a *AccountSnapshot) Trusts(asset Asset) bool {
	if asset.IsNative() {
		return true
	}
	_, ok := a.Balance(asset)
	return ok
}

// Account returns a txnbuild account at the snapshot's sequence number.
func (a *AccountSnapshot) Account() *txnbuild.SimpleAccount {
	return &txnbuild.SimpleAccount{AccountID: a.Address, Sequence: a.Sequence}
}

// SubmissionResult is the result of an accepted envelope.
type SubmissionResult struct {
	Hash        string    `json:"hash"`
	Ledger      int32     `json:"ledger"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (r *SubmissionResult) String() string {
	return fmt.Sprintf("%s (ledger %d)", r.Hash, r.Ledger)
}
