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

// Signer hands an envelope to an external party and waits for it to come
// back signed.
type Signer func(ctx context.Context, envelope, networkPassphrase string) (string, error)

// Delegate is a wallet that is always offered. Whether signing works is only
// known once it is attempted.
type Delegate struct {
	Wallet Info
	Signer Signer
}

var _ Wallet = (*Delegate)(nil)

func (w *Delegate) Info() Info { return w.Wallet }

func (w *Delegate) Available() bool { return true }

func (w *Delegate) Sign(ctx context.Context, envelope, networkPassphrase string) (string, error) {
	_, err := checkUnsigned(envelope)
	if err != nil {
		return "", err
	}
	if w.Signer == nil {
		return "", errors.Unavailable.WithFormat("%s cannot be reached", w.Wallet.Name)
	}

	signed, err := w.Signer(ctx, envelope, networkPassphrase)
	if err != nil {
		return "", providerError(w.Wallet, err)
	}
	return checkSigned(w.Wallet, signed)
}
