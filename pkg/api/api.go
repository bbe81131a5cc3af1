// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api defines the faucet's service contracts and wire types.
package api

import (
	"context"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
)

//go:generate go run github.com/vektra/mockery/v2
//go:generate go run github.com/rinchsan/gosimports/cmd/gosimports -w .

type TrustlineService interface {
	// CheckTrustline reports whether the account trusts the faucet asset.
	// CheckTrustline fails with InvalidAddress without contacting the ledger
	// if the address is malformed.
	CheckTrustline(ctx context.Context, address string) (*TrustlineCheck, error)

	// BuildTrustline builds an unsigned envelope, sourced from the account,
	// that opens a trustline for the faucet asset.
	BuildTrustline(ctx context.Context, address string) (*TrustlineEnvelope, error)
}

type TrustlineSubmitter interface {
	// SubmitTrustline submits a trustline envelope signed by the account
	// holder.
	SubmitTrustline(ctx context.Context, envelope string) (*ledger.SubmissionResult, error)
}

type DistributionService interface {
	// Distribute sends an allowed amount of the faucet asset from the custody
	// account to the recipient.
	Distribute(ctx context.Context, address string, amount decimal.Decimal) (*Receipt, error)
}

type TokenService interface {
	// Token describes the faucet asset.
	Token(ctx context.Context) (*TokenInfo, error)
}

// Faucet is the complete faucet service.
type Faucet interface {
	TrustlineService
	TrustlineSubmitter
	DistributionService
	TokenService
}

// TrustlineStatus is the result of a trustline check.
type TrustlineStatus string

const (
	// TrustlinePresent means the account trusts the asset.
	TrustlinePresent TrustlineStatus = "present"

	// TrustlineAbsent means the account exists but does not trust the asset.
	TrustlineAbsent TrustlineStatus = "absent"

	// AccountMissing means the account does not exist on the ledger. It can
	// neither open a trustline nor receive the asset.
	AccountMissing TrustlineStatus = "accountMissing"
)

type TrustlineCheck struct {
	Address string          `json:"address"`
	Status  TrustlineStatus `json:"status"`
}

// HasTrustline returns true if the trustline is present.
func (c *TrustlineCheck) HasTrustline() bool { return c.Status == TrustlinePresent }

type TrustlineEnvelope struct {
	// XDR is the unsigned, base64 encoded envelope.
	XDR               string    `json:"xdr"`
	NetworkPassphrase string    `json:"networkPassphrase"`
	ExpiresAt         time.Time `json:"expiresAt"`
	Message           string    `json:"message"`
}

type Receipt struct {
	Hash      string          `json:"hash"`
	Ledger    int32           `json:"ledger"`
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
}

type TokenInfo struct {
	Code              string            `json:"code"`
	Name              string            `json:"name,omitempty"`
	Issuer            string            `json:"issuer"`
	Amounts           []decimal.Decimal `json:"amounts"`
	NetworkPassphrase string            `json:"networkPassphrase"`
}

// Asset returns the asset the token describes.
func (t *TokenInfo) Asset() ledger.Asset {
	return ledger.Asset{Code: t.Code, Issuer: t.Issuer}
}

// Messages returned to requesters.
const (
	TrustlinePreparedMessage = "Transaction prepared. Please sign and submit using your wallet."
	TrustlineCreatedMessage  = "Trustline created successfully"
)

// SentMessage is the message returned for a successful distribution.
func SentMessage(amount decimal.Decimal, code string) string {
	return "Successfully sent " + amount.String() + " " + code + " tokens"
}
