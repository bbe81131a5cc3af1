// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package wallet defines the signing providers a requester can use to
// authorize a trustline.
package wallet

import (
	"context"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
)

//go:generate go run github.com/vektra/mockery/v2
//go:generate go run github.com/rinchsan/gosimports/cmd/gosimports -w .

// Wallet signs envelopes on behalf of the account holder. Implementations
// never submit what they sign.
type Wallet interface {
	// Info returns the wallet's identity.
	Info() Info

	// Available probes whether the wallet can be used in the current
	// environment. Available must not panic or block.
	Available() bool

	// Sign signs a base64 encoded envelope for the given network and returns
	// the signed envelope. Sign fails with UserRejected if the holder
	// declines, Unavailable if the provider is gone, or MalformedInput if the
	// envelope cannot be decoded.
	Sign(ctx context.Context, envelope, networkPassphrase string) (string, error)
}

// Info identifies a wallet.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// NotInstalled is the label given to a wallet whose probe fails.
const NotInstalled = "Not installed"

// Option is an entry in the wallet selector.
type Option struct {
	Info
	Available bool   `json:"available"`
	Label     string `json:"label,omitempty"`
}

// Registry is an ordered set of wallets.
type Registry struct {
	wallets []Wallet
	byID    map[string]Wallet
}

// NewRegistry returns a registry containing the given wallets, in order.
func NewRegistry(wallets ...Wallet) (*Registry, error) {
	r := new(Registry)
	for _, w := range wallets {
		err := r.Register(w)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a wallet. Register fails if the ID is already taken.
func (r *Registry) Register(w Wallet) error {
	id := w.Info().ID
	if id == "" {
		return errors.BadRequest.With("wallet ID is empty")
	}
	if r.byID == nil {
		r.byID = map[string]Wallet{}
	}
	if _, ok := r.byID[id]; ok {
		return errors.Conflict.WithFormat("wallet %q is already registered", id)
	}
	r.byID[id] = w
	r.wallets = append(r.wallets, w)
	return nil
}

// All returns every registered wallet.
func (r *Registry) All() []Wallet {
	return append([]Wallet(nil), r.wallets...)
}

// Available returns the wallets whose probe currently succeeds.
func (r *Registry) Available() []Wallet {
	var ok []Wallet
	for _, w := range r.wallets {
		if probe(w) {
			ok = append(ok, w)
		}
	}
	return ok
}

// Options lists every wallet for a selector, marking those that cannot be
// used.
func (r *Registry) Options() []Option {
	opts := make([]Option, len(r.wallets))
	for i, w := range r.wallets {
		opts[i] = Option{Info: w.Info(), Available: probe(w)}
		if !opts[i].Available {
			opts[i].Label = NotInstalled
		}
	}
	return opts
}

// Get returns the wallet with the given ID.
func (r *Registry) Get(id string) (Wallet, bool) {
	w, ok := r.byID[id]
	return w, ok
}

// Select returns the wallet with the given ID if it is currently available.
func (r *Registry) Select(id string) (Wallet, error) {
	w, ok := r.Get(id)
	if !ok {
		return nil, errors.NotFound.WithFormat("unknown wallet %q", id)
	}
	if !probe(w) {
		return nil, errors.Unavailable.WithFormat("%s is not installed", w.Info().Name)
	}
	return w, nil
}

func probe(w Wallet) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return w.Available()
}

// checkSigned verifies a provider returned something that decodes as a
// signed envelope.
func checkSigned(info Info, signed string) (string, error) {
	env, err := ledger.DecodeEnvelope(signed)
	if err != nil {
		return "", errors.MalformedInput.WithFormat("%s returned an invalid envelope: %w", info.Name, err)
	}
	if !env.Signed() {
		return "", errors.MalformedInput.WithFormat("%s returned an unsigned envelope", info.Name)
	}
	return signed, nil
}

// checkUnsigned verifies the input to a signer.
func checkUnsigned(envelope string) (*ledger.Envelope, error) {
	env, err := ledger.DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// providerError normalizes an error returned by an external provider. Errors
// that already carry a wallet status are kept, anything else means the
// provider failed.
func providerError(info Info, err error) error {
	switch errors.Code(err) {
	case errors.UserRejected, errors.Unavailable, errors.MalformedInput, errors.Canceled:
		return errors.Code(err).WithFormat("%s: %w", info.Name, err)
	}
	return errors.Unavailable.WithFormat("%s: %w", info.Name, err)
}
