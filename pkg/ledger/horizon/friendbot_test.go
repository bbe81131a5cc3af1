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
	"testing"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"
)

func TestFriendbot(t *testing.T) {
	funded := map[string]bool{}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.URL.Query().Get("addr")
		if funded[addr] {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"title":  "Transaction Failed",
				"status": 400,
				"extras": map[string]any{
					"result_codes": map[string]any{
						"transaction": "tx_failed",
						"operations":  []string{"op_already_exists"},
					},
				},
			})
			return
		}
		funded[addr] = true
		_ = json.NewEncoder(w).Encode(map[string]any{"hash": "abc", "ledger": 12})
	}))
	defer s.Close()

	fb := &Friendbot{URL: s.URL}
	addr := keypair.MustRandom().Address()

	res, err := fb.Fund(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, "abc", res.Hash)
	require.Equal(t, int32(12), res.Ledger)

	_, err = fb.Fund(context.Background(), addr)
	require.Error(t, err)
	require.Equal(t, errors.Conflict, errors.Code(err))

	_, err = fb.Fund(context.Background(), "INVALID")
	require.Equal(t, errors.InvalidAddress, errors.Code(err))
}

func TestFriendbotFailure(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"title":"Internal Server Error","status":500}`))
	}))
	defer s.Close()

	_, err := (&Friendbot{URL: s.URL}).Fund(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	require.Equal(t, errors.Rejected, errors.Code(err))
	require.Contains(t, err.Error(), "Internal Server Error")
}
