// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package wallet

// Well-known wallets.
var (
	Freighter = Info{ID: "freighter", Name: "Freighter", Icon: "/images/freighter.png"}
	Albedo    = Info{ID: "albedo", Name: "Albedo", Icon: "/images/albedo.png"}
)

// DefaultRegistry returns the standard wallets: Freighter, which must be
// installed into env, followed by Albedo, which hands envelopes to signer.
func DefaultRegistry(env Environment, signer Signer) *Registry {
	r, err := NewRegistry(
		&Injected{Wallet: Freighter, Global: "freighter", Environment: env},
		&Delegate{Wallet: Albedo, Signer: signer},
	)
	if err != nil {
		panic(err)
	}
	return r
}
