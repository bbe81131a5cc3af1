// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/shopspring/decimal"
)

type CheckTrustlineRequest struct {
	Address string `json:"address" validate:"required"`
}

type CheckTrustlineResponse struct {
	HasTrustline bool            `json:"hasTrustline"`
	Status       TrustlineStatus `json:"status,omitempty"`
}

type CreateTrustlineRequest struct {
	Address string `json:"address" validate:"required"`
}

type CreateTrustlineResponse struct {
	Success           bool      `json:"success"`
	XDR               string    `json:"xdr"`
	NetworkPassphrase string    `json:"networkPassphrase,omitempty"`
	ExpiresAt         time.Time `json:"expiresAt,omitempty"`
	Message           string    `json:"message"`
}

type SubmitTrustlineRequest struct {
	XDR string `json:"xdr" validate:"required"`
}

type SubmitTrustlineResponse struct {
	Success bool   `json:"success"`
	Hash    string `json:"hash"`
	Ledger  int32  `json:"ledger"`
	Message string `json:"message"`
}

// FaucetRequest is a distribution request. The amount may be sent as a JSON
// number or string.
type FaucetRequest struct {
	Address string           `json:"address" validate:"required"`
	Amount  *decimal.Decimal `json:"amount" validate:"required"`
}

type FaucetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Hash    string `json:"hash,omitempty"`
	Ledger  int32  `json:"ledger,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string        `json:"error"`
	Code  errors.Status `json:"code"`
}
