// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package horizon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"
)

type fakeHorizon struct {
	accounts map[string]any
	submit   func(tx string) (int, any)
}

func (f *fakeHorizon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/hal+json")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/accounts/"):
		acct, ok := f.accounts[strings.TrimPrefix(r.URL.Path, "/accounts/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type":   "https://stellar.org/horizon-errors/not_found",
				"title":  "Resource Missing",
				"status": 404,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(acct)

	case r.Method == http.MethodPost && r.URL.Path == "/transactions":
		_ = r.ParseForm()
		code, body := f.submit(r.PostForm.Get("tx"))
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)

	default:
		w.WriteHeader(http.StatusTeapot)
	}
}

func newTestClient(t *testing.T, f *fakeHorizon) *Client {
	s := httptest.NewServer(f)
	t.Cleanup(s.Close)
	return New(Options{URL: s.URL, Timeout: 5 * time.Second})
}

func TestLoadAccount(t *testing.T) {
	addr := keypair.MustRandom().Address()
	issuer := keypair.MustRandom().Address()
	c := newTestClient(t, &fakeHorizon{accounts: map[string]any{
		addr: map[string]any{
			"id":         addr,
			"account_id": addr,
			"sequence":   "123456",
			"balances": []map[string]any{
				{"balance": "9999.5000000", "asset_type": "native"},
				{"balance": "25.0000000", "limit": "922337203685.4775807", "asset_type": "credit_alphanum12", "asset_code": "TRUST", "asset_issuer": issuer},
				{"balance": "1.0000000", "asset_type": "liquidity_pool_shares", "liquidity_pool_id": "abcd"},
			},
		},
	}})

	snap, err := c.LoadAccount(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, addr, snap.Address)
	require.Equal(t, int64(123456), snap.Sequence)
	require.Len(t, snap.Balances, 2)

	b, ok := snap.Balance(ledger.Asset{Code: "TRUST", Issuer: issuer})
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(25).Equal(b.Amount))
}

func TestLoadMissingAccount(t *testing.T) {
	c := newTestClient(t, &fakeHorizon{})
	_, err := c.LoadAccount(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestLoadUnreachable(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()
	c := New(Options{URL: s.URL, Timeout: time.Second})
	_, err := c.LoadAccount(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	require.Equal(t, errors.NetworkError, errors.Code(err))
}

func TestSubmit(t *testing.T) {
	var got string
	c := newTestClient(t, &fakeHorizon{submit: func(tx string) (int, any) {
		got = tx
		return http.StatusOK, map[string]any{"hash": "deadbeef", "ledger": 77, "successful": true, "fee_charged": "100", "max_fee": "100"}
	}})

	res, err := c.Submit(context.Background(), "AAAA")
	require.NoError(t, err)
	require.Equal(t, "AAAA", got)
	require.Equal(t, "deadbeef", res.Hash)
	require.Equal(t, int32(77), res.Ledger)
}

func TestSubmitRejected(t *testing.T) {
	cases := []struct {
		Name   string
		Tx     string
		Ops    []string
		Expect errors.Status
	}{
		{"Sequence", "tx_bad_seq", nil, errors.BadSequence},
		{"Expired", "tx_too_late", nil, errors.Expired},
		{"Fee", "tx_insufficient_fee", nil, errors.InsufficientFee},
		{"No trust", "tx_failed", []string{"op_no_trust"}, errors.NoTrust},
		{"Underfunded", "tx_failed", []string{"op_underfunded"}, errors.Underfunded},
		{"Other", "tx_bad_auth", nil, errors.Rejected},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			client := newTestClient(t, &fakeHorizon{submit: func(string) (int, any) {
				return http.StatusBadRequest, map[string]any{
					"type":   "https://stellar.org/horizon-errors/transaction_failed",
					"title":  "Transaction Failed",
					"status": 400,
					"extras": map[string]any{
						"result_codes": map[string]any{
							"transaction": c.Tx,
							"operations":  c.Ops,
						},
					},
				}
			}})

			_, err := client.Submit(context.Background(), "AAAA")
			require.Error(t, err)
			require.Equal(t, c.Expect, errors.Code(err))
			require.True(t, errors.Code(err).IsRejection())
			require.Contains(t, err.Error(), c.Tx)
		})
	}
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, &fakeHorizon{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.LoadAccount(ctx, keypair.MustRandom().Address())
	require.Equal(t, errors.Canceled, errors.Code(err))
}

func TestSubmitWithoutAnswer(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()
	c := New(Options{URL: s.URL, Timeout: time.Second})
	_, err := c.Submit(context.Background(), "AAAA")
	require.Error(t, err)
	require.Equal(t, errors.OutcomeUnknown, errors.Code(err))

	c = newTestClient(t, &fakeHorizon{submit: func(string) (int, any) {
		return http.StatusGatewayTimeout, map[string]any{
			"type":   "https://stellar.org/horizon-errors/timeout",
			"title":  "Timeout",
			"status": 504,
		}
	}})
	_, err = c.Submit(context.Background(), "AAAA")
	require.Error(t, err)
	require.Equal(t, errors.OutcomeUnknown, errors.Code(err))
}

func TestSubmitOutlivesContext(t *testing.T) {
	c := newTestClient(t, &fakeHorizon{submit: func(string) (int, any) {
		time.Sleep(200 * time.Millisecond)
		return http.StatusOK, map[string]any{"hash": "deadbeef", "ledger": 78, "successful": true, "fee_charged": "100", "max_fee": "100"}
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res, err := c.Submit(ctx, "AAAA")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", res.Hash)

	var submitted bool
	c = newTestClient(t, &fakeHorizon{submit: func(string) (int, any) {
		submitted = true
		return http.StatusOK, map[string]any{}
	}})
	_, err = c.Submit(ctx, "AAAA")
	require.Equal(t, errors.Canceled, errors.Code(err))
	require.False(t, submitted, "a canceled submission must not be sent")
}
