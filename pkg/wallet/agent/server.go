// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package agent

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet"
)

// Handler serves signing requests by forwarding them to a wallet.
type Handler struct {
	Wallet wallet.Wallet

	// Approve is asked before each signature. A nil Approve approves
	// everything.
	Approve func(*SignRequest) bool
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/sign" {
		writeError(w, http.StatusNotFound, errors.NotFound.With("not found"))
		return
	}

	var req SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.BadRequest.WithFormat("decode request: %w", err))
		return
	}

	if h.Approve != nil && !h.Approve(&req) {
		slog.InfoContext(r.Context(), "Declined signing request", "module", "agent", "address", req.Address)
		writeError(w, http.StatusForbidden, errors.UserRejected.With("declined"))
		return
	}

	signed, err := h.Wallet.Sign(r.Context(), req.XDR, req.NetworkPassphrase)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Code(err).IsClientError() {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	slog.InfoContext(r.Context(), "Signed", "module", "agent", "address", req.Address)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SignResponse{SignedXDR: signed})
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.Code(err)
	if code == 0 {
		code = errors.UnknownError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Code: code})
}
