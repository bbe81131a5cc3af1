// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package horizon

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/stellar/go/clients/horizonclient"
)

// Result codes that map to specific statuses. Anything else the network
// rejects with is reported as [errors.Rejected].
var resultCodes = map[string]errors.Status{
	"tx_bad_seq":              errors.BadSequence,
	"tx_too_late":             errors.Expired,
	"tx_insufficient_fee":     errors.InsufficientFee,
	"op_no_trust":             errors.NoTrust,
	"op_not_authorized":       errors.NoTrust,
	"op_underfunded":          errors.Underfunded,
	"op_src_no_trust":         errors.Underfunded,
	"tx_insufficient_balance": errors.Underfunded,
}

// convertSubmitError converts a submission failure. Horizon answers 504 when
// the envelope was accepted for processing but not applied in time, and a
// transport failure leaves no answer at all. In both cases the envelope may
// still be applied.
func convertSubmitError(err error) error {
	herr := horizonclient.GetError(err)
	if herr == nil || herr.Problem.Status == http.StatusGatewayTimeout {
		return errors.OutcomeUnknown.WithFormat("submit: %w", err)
	}
	return convertError(err, "submit")
}

func convertError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	switch {
	case errors.Is(err, context.Canceled):
		return errors.Canceled.WithFormat("%s: %w", msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errors.NetworkError.WithFormat("%s: %w", msg, err)
	case horizonclient.IsNotFoundError(err):
		return errors.NotFound.WithFormat("%s: account not found", msg)
	}

	herr := horizonclient.GetError(err)
	if herr == nil {
		// Not a problem response, so the request never completed
		return errors.NetworkError.WithFormat("%s: %w", msg, err)
	}

	codes, cerr := herr.ResultCodes()
	if cerr != nil || codes == nil {
		if herr.Problem.Status >= 500 {
			return errors.NetworkError.WithFormat("%s: %s", msg, herr.Problem.Title)
		}
		return errors.Rejected.WithFormat("%s: %s", msg, herr.Problem.Title)
	}

	all := []string{codes.TransactionCode}
	if codes.InnerTransactionCode != "" {
		all = append(all, codes.InnerTransactionCode)
	}
	all = append(all, codes.OperationCodes...)

	status := errors.Rejected
	for _, c := range all {
		if s, ok := resultCodes[c]; ok {
			status = s
			break
		}
	}
	return status.WithFormat("%s: rejected: %s", msg, strings.Join(all, ", "))
}
