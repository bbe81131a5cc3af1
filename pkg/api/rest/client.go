// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Client is a client for a faucet served by [NewHandler].
type Client struct {
	Server string
	HTTP   *http.Client
}

var _ api.Faucet = (*Client)(nil)

// NewClient returns a client for the faucet at the given base URL.
func NewClient(server string) *Client {
	return &Client{Server: strings.TrimSuffix(server, "/")}
}

// CheckTrustline implements [api.TrustlineService]. A faucet that does not
// find the account reports [api.AccountMissing].
func (c *Client) CheckTrustline(ctx context.Context, address string) (*api.TrustlineCheck, error) {
	res, err := post[api.CheckTrustlineResponse](ctx, c, PathCheckTrustline, &api.CheckTrustlineRequest{Address: address})
	switch {
	case err == nil:
	case errors.Code(err) == errors.NotFound:
		return &api.TrustlineCheck{Address: address, Status: api.AccountMissing}, nil
	default:
		return nil, err
	}

	check := &api.TrustlineCheck{Address: address, Status: res.Status}
	if check.Status == "" {
		check.Status = api.TrustlineAbsent
		if res.HasTrustline {
			check.Status = api.TrustlinePresent
		}
	}
	return check, nil
}

// BuildTrustline implements [api.TrustlineService].
func (c *Client) BuildTrustline(ctx context.Context, address string) (*api.TrustlineEnvelope, error) {
	res, err := post[api.CreateTrustlineResponse](ctx, c, PathCreateTrustline, &api.CreateTrustlineRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if res.XDR == "" {
		return nil, errors.MalformedInput.With("response is missing the envelope")
	}
	return &api.TrustlineEnvelope{
		XDR:               res.XDR,
		NetworkPassphrase: res.NetworkPassphrase,
		ExpiresAt:         res.ExpiresAt,
		Message:           res.Message,
	}, nil
}

// SubmitTrustline implements [api.TrustlineSubmitter].
func (c *Client) SubmitTrustline(ctx context.Context, envelope string) (*ledger.SubmissionResult, error) {
	res, err := post[api.SubmitTrustlineResponse](ctx, c, PathSubmitTrustline, &api.SubmitTrustlineRequest{XDR: envelope})
	if err != nil {
		return nil, err
	}
	return &ledger.SubmissionResult{
		Hash:        res.Hash,
		Ledger:      res.Ledger,
		SubmittedAt: time.Now(),
	}, nil
}

// Distribute implements [api.DistributionService].
func (c *Client) Distribute(ctx context.Context, address string, amount decimal.Decimal) (*api.Receipt, error) {
	res, err := post[api.FaucetResponse](ctx, c, PathFaucet, &api.FaucetRequest{Address: address, Amount: &amount})
	if err != nil {
		return nil, err
	}

	receipt := &api.Receipt{
		Hash:      res.Hash,
		Ledger:    res.Ledger,
		Recipient: address,
		Amount:    amount,
		Code:      res.Code,
		Message:   res.Message,
	}
	if res.Amount != "" {
		receipt.Amount, err = decimal.NewFromString(res.Amount)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("invalid amount: %w", err)
		}
	}
	return receipt, nil
}

// Token implements [api.TokenService].
func (c *Client) Token(ctx context.Context) (*api.TokenInfo, error) {
	return send[api.TokenInfo](ctx, c, http.MethodGet, PathToken, nil)
}

func post[T any](ctx context.Context, c *Client, path string, req any) (*T, error) {
	return send[T](ctx, c, http.MethodPost, path, req)
}

func send[T any](ctx context.Context, c *Client, method, path string, req any) (*T, error) {
	var body io.Reader
	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, c.Server+path, body)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("create request: %w", err)
	}
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(hreq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Canceled.WithFormat("%s %s: %w", method, path, ctx.Err())
		}
		return nil, errors.NetworkError.WithFormat("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, errors.NetworkError.WithFormat("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, b)
	}

	v := new(T)
	err = json.Unmarshal(b, v)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode response: %w", err)
	}
	return v, nil
}

// decodeError rebuilds the error from an error response. Responses without a
// code are classified by HTTP status.
func decodeError(status int, body []byte) error {
	var res api.ErrorResponse
	if json.Unmarshal(body, &res) != nil || res.Error == "" {
		res.Error = strings.TrimSpace(string(body))
		if res.Error == "" {
			res.Error = http.StatusText(status)
		}
	}
	if res.Code != 0 {
		return res.Code.With(res.Error)
	}

	switch {
	case status == http.StatusNotFound:
		return errors.NotFound.With(res.Error)
	case status < 500:
		return errors.BadRequest.With(res.Error)
	default:
		return errors.InternalError.With(res.Error)
	}
}
