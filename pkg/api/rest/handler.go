// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package rest implements the faucet's HTTP surface: a handler that serves
// an [api.Faucet] and a client that consumes one.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// MaxBodySize is the largest request body the handler accepts.
const MaxBodySize = 64 << 10

// RequestIDHeader carries the request ID assigned by the handler.
const RequestIDHeader = "X-Request-ID"

// Routes. The faucet is also served under [LegacyPrefix], where distribution
// is the prefix itself.
const (
	PathCheckTrustline  = "/check-trustline"
	PathCreateTrustline = "/create-trustline"
	PathSubmitTrustline = "/submit-trustline"
	PathFaucet          = "/faucet"
	PathToken           = "/token"
	PathHealth          = "/healthz"

	LegacyPrefix = "/api/faucet"
)

type Options struct {
	Logger *slog.Logger
	Faucet api.Faucet
}

type handler struct {
	logger   *slog.Logger
	faucet   api.Faucet
	validate *validator.Validate
}

// NewHandler returns a handler serving the faucet.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Faucet == nil {
		return nil, errors.BadRequest.With("missing faucet")
	}
	h := &handler{
		logger:   opts.Logger,
		faucet:   opts.Faucet,
		validate: validator.New(),
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	h.logger = h.logger.With("module", "api")

	r := httprouter.New()
	r.POST(PathCheckTrustline, h.checkTrustline)
	r.POST(PathCreateTrustline, h.createTrustline)
	r.POST(PathSubmitTrustline, h.submitTrustline)
	r.POST(PathFaucet, h.distribute)
	r.GET(PathToken, h.token)
	r.GET(PathHealth, h.health)

	r.POST(LegacyPrefix, h.distribute)
	r.POST(LegacyPrefix+PathCheckTrustline, h.checkTrustline)
	r.POST(LegacyPrefix+PathCreateTrustline, h.createTrustline)
	r.POST(LegacyPrefix+PathSubmitTrustline, h.submitTrustline)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, errors.NotFound.WithFormat("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, http.StatusMethodNotAllowed, api.ErrorResponse{
			Error: r.Method + " is not allowed",
			Code:  errors.BadRequest,
		})
	})
	r.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		h.logger.ErrorContext(r.Context(), "Handler panicked", "panic", v)
		h.writeError(w, r, errors.InternalError.With("internal server error"))
	}

	return h.withRequestID(r), nil
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		ctx := logging.With(r.Context(), "request", id)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))
		h.logger.DebugContext(ctx, "Request", "method", r.Method, "path", r.URL.Path, "status", sw.status, "duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// decode reads and validates a request body.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any, missing string) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(v)
	if err != nil {
		h.writeError(w, r, errors.BadRequest.WithFormat("invalid request body: %w", err))
		return false
	}
	err = h.validate.Struct(v)
	if err != nil {
		h.writeError(w, r, errors.BadRequest.With(missing))
		return false
	}
	return true
}

func (h *handler) checkTrustline(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.CheckTrustlineRequest
	if !h.decode(w, r, &req, "Address is required") {
		return
	}

	check, err := h.faucet.CheckTrustline(r.Context(), req.Address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if check.Status == api.AccountMissing {
		h.writeError(w, r, errors.NotFound.With("Account not found"))
		return
	}
	h.writeJSON(w, r, http.StatusOK, api.CheckTrustlineResponse{
		HasTrustline: check.HasTrustline(),
		Status:       check.Status,
	})
}

func (h *handler) createTrustline(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.CreateTrustlineRequest
	if !h.decode(w, r, &req, "Address is required") {
		return
	}

	env, err := h.faucet.BuildTrustline(r.Context(), req.Address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, api.CreateTrustlineResponse{
		Success:           true,
		XDR:               env.XDR,
		NetworkPassphrase: env.NetworkPassphrase,
		ExpiresAt:         env.ExpiresAt,
		Message:           env.Message,
	})
}

func (h *handler) submitTrustline(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.SubmitTrustlineRequest
	if !h.decode(w, r, &req, "Signed envelope is required") {
		return
	}

	res, err := h.faucet.SubmitTrustline(r.Context(), req.XDR)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, api.SubmitTrustlineResponse{
		Success: true,
		Hash:    res.Hash,
		Ledger:  res.Ledger,
		Message: api.TrustlineCreatedMessage,
	})
}

func (h *handler) distribute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.FaucetRequest
	if !h.decode(w, r, &req, "Address and amount are required") {
		return
	}

	receipt, err := h.faucet.Distribute(r.Context(), req.Address, *req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, api.FaucetResponse{
		Success: true,
		Message: receipt.Message,
		Hash:    receipt.Hash,
		Ledger:  receipt.Ledger,
		Amount:  receipt.Amount.String(),
		Code:    receipt.Code,
	})
}

func (h *handler) token(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	info, err := h.faucet.Token(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, info)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HTTPStatus returns the HTTP status for an error code. Local validation
// failures are the caller's fault, a missing account is not found, and
// everything else, including ledger rejections, is a server error.
func HTTPStatus(code errors.Status) int {
	switch {
	case code.IsLocal():
		return http.StatusBadRequest
	case code == errors.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.Code(err)
	if code == 0 {
		code = errors.UnknownError
	}
	status := HTTPStatus(code)
	if status >= 500 {
		h.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, r, status, api.ErrorResponse{Error: err.Error(), Code: code})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode response", "error", err)
	}
}
