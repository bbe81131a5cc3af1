// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package wallet

import (
	"context"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
)

// Provider is a signing provider that is installed into the environment,
// such as a browser extension or a local signing agent.
type Provider interface {
	SignTransaction(ctx context.Context, envelope string, opts SignOptions) (string, error)
}

// SignOptions are passed to a [Provider].
type SignOptions struct {
	NetworkPassphrase string `json:"networkPassphrase"`
	Address           string `json:"address,omitempty"`
}

// Environment resolves installed providers by name.
type Environment interface {
	// Lookup returns the provider installed under the name, or nil.
	Lookup(name string) Provider
}

// EnvironmentFunc adapts a function to [Environment].
type EnvironmentFunc func(name string) Provider

func (f EnvironmentFunc) Lookup(name string) Provider { return f(name) }

// Injected is a wallet that is usable only when its provider has been
// installed into the environment.
type Injected struct {
	Wallet Info

	// Global is the name the provider is installed under.
	Global string

	// Environment is probed for the provider. A nil environment has no
	// providers.
	Environment Environment
}

var _ Wallet = (*Injected)(nil)

func (w *Injected) Info() Info { return w.Wallet }

func (w *Injected) Available() bool {
	return w.provider() != nil
}

func (w *Injected) provider() Provider {
	if w.Environment == nil {
		return nil
	}
	return w.Environment.Lookup(w.Global)
}

func (w *Injected) Sign(ctx context.Context, envelope, networkPassphrase string) (string, error) {
	env, err := checkUnsigned(envelope)
	if err != nil {
		return "", err
	}

	// The provider may have gone away since the selector probed it
	p := w.provider()
	if p == nil {
		return "", errors.Unavailable.WithFormat("%s is not installed", w.Wallet.Name)
	}

	signed, err := p.SignTransaction(ctx, envelope, SignOptions{
		NetworkPassphrase: networkPassphrase,
		Address:           env.Source(),
	})
	if err != nil {
		return "", providerError(w.Wallet, err)
	}
	return checkSigned(w.Wallet, signed)
}
