// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package wallet

import (
	"context"
	"testing"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/require"
)

const passphrase = network.TestNetworkPassphrase

func unsignedEnvelope(t *testing.T, source string) string {
	t.Helper()
	issuer := keypair.MustRandom().Address()
	line, err := txnbuild.CreditAsset{Code: "TRUST", Issuer: issuer}.ToChangeTrustAsset()
	require.NoError(t, err)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: source, Sequence: 1},
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{&txnbuild.ChangeTrust{Line: line}},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	require.NoError(t, err)
	b64, err := tx.Base64()
	require.NoError(t, err)
	return b64
}

type providerFunc func(ctx context.Context, envelope string, opts SignOptions) (string, error)

func (f providerFunc) SignTransaction(ctx context.Context, envelope string, opts SignOptions) (string, error) {
	return f(ctx, envelope, opts)
}

func keyProvider(kp *keypair.Full) Provider {
	w := &Keypair{Wallet: Info{ID: "key", Name: "Key"}, Key: kp}
	return providerFunc(func(ctx context.Context, envelope string, opts SignOptions) (string, error) {
		return w.Sign(ctx, envelope, opts.NetworkPassphrase)
	})
}

func TestRegistryOptions(t *testing.T) {
	installed := map[string]Provider{}
	env := EnvironmentFunc(func(name string) Provider { return installed[name] })
	r := DefaultRegistry(env, nil)

	// Freighter is listed but not installed, Albedo is always offered
	opts := r.Options()
	require.Len(t, opts, 2)
	require.Equal(t, "freighter", opts[0].ID)
	require.False(t, opts[0].Available)
	require.Equal(t, NotInstalled, opts[0].Label)
	require.Equal(t, "albedo", opts[1].ID)
	require.True(t, opts[1].Available)

	require.Len(t, r.Available(), 1)
	_, err := r.Select("freighter")
	require.Equal(t, errors.Unavailable, errors.Code(err))
	_, err = r.Select("metamask")
	require.Equal(t, errors.NotFound, errors.Code(err))

	installed["freighter"] = keyProvider(keypair.MustRandom())
	require.Len(t, r.Available(), 2)
	w, err := r.Select("freighter")
	require.NoError(t, err)
	require.Equal(t, Freighter, w.Info())
}

func TestRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry(&Delegate{Wallet: Albedo}, &Delegate{Wallet: Albedo})
	require.Equal(t, errors.Conflict, errors.Code(err))
}

type panicky struct{ Delegate }

func (panicky) Available() bool { panic("boom") }

func TestProbeMustNotPanic(t *testing.T) {
	r, err := NewRegistry(&panicky{Delegate{Wallet: Info{ID: "x", Name: "X"}}})
	require.NoError(t, err)
	require.Empty(t, r.Available())
	require.False(t, r.Options()[0].Available)
}

func TestInjectedSign(t *testing.T) {
	user := keypair.MustRandom()
	var installed Provider
	w := &Injected{
		Wallet:      Freighter,
		Global:      "freighter",
		Environment: EnvironmentFunc(func(string) Provider { return installed }),
	}
	env := unsignedEnvelope(t, user.Address())

	// Uninstalled between probe and invocation
	_, err := w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.Unavailable, errors.Code(err))

	installed = keyProvider(user)
	signed, err := w.Sign(context.Background(), env, passphrase)
	require.NoError(t, err)
	decoded, err := ledger.DecodeEnvelope(signed)
	require.NoError(t, err)
	require.True(t, decoded.SignedBy(passphrase, user.Address()))

	// The holder declines
	installed = providerFunc(func(context.Context, string, SignOptions) (string, error) {
		return "", errors.UserRejected.With("user declined access")
	})
	_, err = w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.UserRejected, errors.Code(err))

	// Garbage in and garbage out
	_, err = w.Sign(context.Background(), "garbage", passphrase)
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	installed = providerFunc(func(context.Context, string, SignOptions) (string, error) {
		return "garbage", nil
	})
	_, err = w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	installed = providerFunc(func(_ context.Context, env string, _ SignOptions) (string, error) {
		return env, nil
	})
	_, err = w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.MalformedInput, errors.Code(err), "unsigned result")
}

func TestInjectedPassesSource(t *testing.T) {
	user := keypair.MustRandom()
	var got SignOptions
	w := &Injected{
		Wallet: Freighter,
		Global: "freighter",
		Environment: EnvironmentFunc(func(string) Provider {
			p := keyProvider(user)
			return providerFunc(func(ctx context.Context, env string, opts SignOptions) (string, error) {
				got = opts
				return p.SignTransaction(ctx, env, opts)
			})
		}),
	}
	_, err := w.Sign(context.Background(), unsignedEnvelope(t, user.Address()), passphrase)
	require.NoError(t, err)
	require.Equal(t, user.Address(), got.Address)
	require.Equal(t, passphrase, got.NetworkPassphrase)
}

func TestDelegateSign(t *testing.T) {
	user := keypair.MustRandom()
	env := unsignedEnvelope(t, user.Address())

	w := &Delegate{Wallet: Albedo}
	require.True(t, w.Available())
	_, err := w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.Unavailable, errors.Code(err))

	kp := &Keypair{Key: user}
	w.Signer = kp.Sign
	signed, err := w.Sign(context.Background(), env, passphrase)
	require.NoError(t, err)
	decoded, err := ledger.DecodeEnvelope(signed)
	require.NoError(t, err)
	require.True(t, decoded.SignedBy(passphrase, user.Address()))

	w.Signer = func(context.Context, string, string) (string, error) {
		return "", context.DeadlineExceeded
	}
	_, err = w.Sign(context.Background(), env, passphrase)
	require.Equal(t, errors.Unavailable, errors.Code(err))
}

func TestKeypairSign(t *testing.T) {
	user := keypair.MustRandom()

	w, err := NewKeypair(Info{ID: "secret", Name: "Secret"}, "")
	require.NoError(t, err)
	require.False(t, w.Available())

	_, err = NewKeypair(Info{ID: "secret", Name: "Secret"}, "SNOTASEED")
	require.Error(t, err)

	w, err = NewKeypair(Info{ID: "secret", Name: "Secret"}, user.Seed())
	require.NoError(t, err)
	require.True(t, w.Available())
	require.Equal(t, user.Address(), w.Address())

	// Refuses to sign for an account it does not hold
	_, err = w.Sign(context.Background(), unsignedEnvelope(t, keypair.MustRandom().Address()), passphrase)
	require.Equal(t, errors.UserRejected, errors.Code(err))

	_, err = w.Sign(context.Background(), unsignedEnvelope(t, user.Address()), passphrase)
	require.NoError(t, err)
}
