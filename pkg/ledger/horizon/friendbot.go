// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package horizon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
)

// Friendbot funds new accounts on a test network.
type Friendbot struct {
	URL  string
	HTTP *http.Client
}

type friendbotProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Operations []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

// Fund creates and funds the account. Fund fails with Conflict if the
// account already exists.
func (f *Friendbot) Fund(ctx context.Context, address string) (*ledger.SubmissionResult, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return nil, err
	}

	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("friendbot URL: %w", err)
	}
	q := u.Query()
	q.Set("addr", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("fund %s: %w", address, err)
	}

	hc := f.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: time.Minute}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, convertError(err, "fund %s", address)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.NetworkError.WithFormat("fund %s: %w", address, err)
	}

	if resp.StatusCode >= 300 {
		var p friendbotProblem
		_ = json.Unmarshal(body, &p)
		for _, code := range p.Extras.ResultCodes.Operations {
			if code == "op_already_exists" {
				return nil, errors.Conflict.WithFormat("fund %s: account already exists", address)
			}
		}
		if strings.Contains(p.Detail, "createAccountAlreadyExist") {
			return nil, errors.Conflict.WithFormat("fund %s: account already exists", address)
		}
		msg := p.Detail
		if msg == "" {
			msg = p.Title
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, errors.Rejected.WithFormat("fund %s: %s", address, msg)
	}

	var tx struct {
		Hash   string `json:"hash"`
		Ledger int32  `json:"ledger"`
	}
	err = json.Unmarshal(body, &tx)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("fund %s: decode response: %w", address, err)
	}
	return &ledger.SubmissionResult{Hash: tx.Hash, Ledger: tx.Ledger, SubmittedAt: time.Now()}, nil
}
