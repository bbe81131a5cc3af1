// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package agent implements wallet providers that run as a separate signing
// agent process, reached over HTTP.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet"
)

// EnvPrefix is the prefix of the variables that advertise agents.
const EnvPrefix = "FAUCET_WALLET_"

// SignRequest is the body of a signing request.
type SignRequest struct {
	XDR               string `json:"xdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
	Address           string `json:"address,omitempty"`
}

// SignResponse is the body of a successful signing response.
type SignResponse struct {
	SignedXDR string `json:"signedXdr"`
}

type errorResponse struct {
	Error string        `json:"error"`
	Code  errors.Status `json:"code"`
}

// Client is a provider backed by a signing agent.
type Client struct {
	URL  string
	HTTP *http.Client
}

var _ wallet.Provider = (*Client)(nil)

// SignTransaction implements [wallet.Provider].
func (c *Client) SignTransaction(ctx context.Context, envelope string, opts wallet.SignOptions) (string, error) {
	body, err := json.Marshal(SignRequest{
		XDR:               envelope,
		NetworkPassphrase: opts.NetworkPassphrase,
		Address:           opts.Address,
	})
	if err != nil {
		return "", errors.EncodingError.WithFormat("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(c.URL, "/")+"/sign", bytes.NewReader(body))
	if err != nil {
		return "", errors.BadRequest.WithFormat("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Canceled.Wrap(ctx.Err())
		}
		return "", errors.Unavailable.WithFormat("agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.NewDecoder(resp.Body).Decode(&e) != nil || e.Code == 0 {
			return "", errors.Unavailable.WithFormat("agent responded with %s", resp.Status)
		}
		return "", e.Code.With(e.Error)
	}

	var r SignResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", errors.EncodingError.WithFormat("decode response: %w", err)
	}
	return r.SignedXDR, nil
}

// Environment resolves providers from environment variables of the form
// FAUCET_WALLET_<NAME>_URL.
type Environment struct {
	// Getenv defaults to [os.Getenv].
	Getenv func(string) string

	// Timeout bounds each signing request. Signing waits on a human, so the
	// default is generous.
	Timeout time.Duration
}

var _ wallet.Environment = Environment{}

// VarName returns the variable that advertises the named provider.
func VarName(name string) string {
	return fmt.Sprintf("%s%s_URL", EnvPrefix, strings.ToUpper(name))
}

// Lookup implements [wallet.Environment].
func (e Environment) Lookup(name string) wallet.Provider {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	u := getenv(VarName(name))
	if u == "" {
		return nil
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{URL: u, HTTP: &http.Client{Timeout: timeout}}
}
