// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package flow

import (
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
)

// State is a state of the flow.
type State string

const (
	Idle                 State = "idle"
	CheckingTrustline    State = "checkingTrustline"
	AddressInvalid       State = "addressInvalid"
	AccountNotFound      State = "accountNotFound"
	TrustlineMissing     State = "trustlineMissing"
	AwaitingWalletChoice State = "awaitingWalletChoice"
	Signing              State = "signing"
	Submitting           State = "submitting"
	TrustlineConfirmed   State = "trustlineConfirmed"
	Distributing         State = "distributing"
	Done                 State = "done"
	Failed               State = "failed"
)

// Busy returns true if the state is waiting on the network or a wallet.
func (s State) Busy() bool {
	switch s {
	case CheckingTrustline, Signing, Submitting, Distributing:
		return true
	}
	return false
}

// Snapshot is a copy of the flow's state.
type Snapshot struct {
	State   State  `json:"state"`
	Address string `json:"address,omitempty"`

	// Trustline is the last known trustline status of the address, or empty
	// if it is not known. A failed distribution does not change it.
	Trustline api.TrustlineStatus `json:"trustline,omitempty"`

	// Wallet is the ID of the wallet that signed, or is signing, the
	// trustline envelope.
	Wallet string `json:"wallet,omitempty"`

	// Phase is the state that failed, when State is Failed.
	Phase State `json:"phase,omitempty"`
	Error error `json:"error,omitempty"`

	Submission *ledger.SubmissionResult `json:"submission,omitempty"`
	Receipt    *api.Receipt             `json:"receipt,omitempty"`
}

// Retryable returns true if the flow failed in a way that a rebuilt envelope
// may fix.
func (s Snapshot) Retryable() bool {
	return s.State == Failed && errors.Code(s.Error).Retryable()
}

// settled returns the state implied by the known trustline status.
func (s *Snapshot) settled() State {
	switch {
	case s.Address == "":
		return Idle
	case s.Trustline == api.TrustlinePresent:
		return TrustlineConfirmed
	case s.Trustline == api.TrustlineAbsent:
		return TrustlineMissing
	case s.Trustline == api.AccountMissing:
		return AccountNotFound
	default:
		return Idle
	}
}
