// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package wallet

import (
	"context"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/stellar/go/keypair"
)

// Keypair is a wallet holding a secret seed locally.
type Keypair struct {
	Wallet Info
	Key    *keypair.Full
}

var _ Wallet = (*Keypair)(nil)

// NewKeypair parses the seed. An empty seed gives a wallet that is not
// available.
func NewKeypair(info Info, seed string) (*Keypair, error) {
	w := &Keypair{Wallet: info}
	if seed == "" {
		return w, nil
	}
	kp, err := keypair.ParseFull(seed)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("parse %s seed: %w", info.Name, err)
	}
	w.Key = kp
	return w, nil
}

func (w *Keypair) Info() Info { return w.Wallet }

func (w *Keypair) Available() bool { return w.Key != nil }

// Address returns the address of the held key.
func (w *Keypair) Address() string {
	if w.Key == nil {
		return ""
	}
	return w.Key.Address()
}

func (w *Keypair) Sign(ctx context.Context, envelope, networkPassphrase string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Canceled.Wrap(err)
	}
	env, err := checkUnsigned(envelope)
	if err != nil {
		return "", err
	}
	if w.Key == nil {
		return "", errors.Unavailable.WithFormat("%s has no key", w.Wallet.Name)
	}
	if env.Source() != w.Key.Address() {
		return "", errors.UserRejected.WithFormat("%s holds %s, not %s", w.Wallet.Name, w.Key.Address(), env.Source())
	}

	tx, err := env.Transaction().Sign(networkPassphrase, w.Key)
	if err != nil {
		return "", errors.MalformedInput.WithFormat("sign: %w", err)
	}
	signed, err := tx.Base64()
	if err != nil {
		return "", errors.EncodingError.WithFormat("encode: %w", err)
	}
	return signed, nil
}
