// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package flow

import (
	"context"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
)

// LedgerSubmitter submits trustline envelopes directly to the ledger,
// for callers that do not go through a faucet server.
type LedgerSubmitter struct {
	Ledger ledger.Submitter
}

var _ api.TrustlineSubmitter = LedgerSubmitter{}

func (s LedgerSubmitter) SubmitTrustline(ctx context.Context, envelope string) (*ledger.SubmissionResult, error) {
	return s.Ledger.Submit(ctx, envelope)
}
