// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, sim *Simulator, signer *keypair.Full, timeout int64, ops ...txnbuild.Operation) string {
	t.Helper()
	snap, err := sim.LoadAccount(context.Background(), signer.Address())
	require.NoError(t, err)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        snap.Account(),
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(timeout)},
	})
	require.NoError(t, err)
	tx, err = tx.Sign(sim.Passphrase(), signer)
	require.NoError(t, err)
	b64, err := tx.Base64()
	require.NoError(t, err)
	return b64
}

func setup(t *testing.T, opts ...Option) (*Simulator, *keypair.Full, *keypair.Full, ledger.Asset) {
	sim, err := New(opts...)
	require.NoError(t, err)
	issuer, user := keypair.MustRandom(), keypair.MustRandom()
	sim.CreateAccount(issuer.Address(), decimal.NewFromInt(10000))
	sim.CreateAccount(user.Address(), decimal.NewFromInt(10000))
	return sim, issuer, user, ledger.Asset{Code: "TRUST", Issuer: issuer.Address()}
}

func changeTrust(t *testing.T, asset ledger.Asset) *txnbuild.ChangeTrust {
	line, err := asset.Txnbuild().(txnbuild.CreditAsset).ToChangeTrustAsset()
	require.NoError(t, err)
	return &txnbuild.ChangeTrust{Line: line}
}

func TestTrustlineThenPayment(t *testing.T) {
	sim, issuer, user, asset := setup(t)
	ctx := context.Background()

	// Paying before the trustline exists fails but consumes the sequence
	pay := &txnbuild.Payment{Destination: user.Address(), Amount: "25", Asset: asset.Txnbuild()}
	_, err := sim.Submit(ctx, build(t, sim, issuer, 30, pay))
	require.Equal(t, errors.NoTrust, errors.Code(err))
	snap, err := sim.LoadAccount(ctx, issuer.Address())
	require.NoError(t, err)
	require.Equal(t, int64(1)<<32+1, snap.Sequence)

	_, err = sim.Submit(ctx, build(t, sim, user, 300, changeTrust(t, asset)))
	require.NoError(t, err)
	snap, err = sim.LoadAccount(ctx, user.Address())
	require.NoError(t, err)
	require.True(t, snap.Trusts(asset))

	_, err = sim.Submit(ctx, build(t, sim, issuer, 30, pay))
	require.NoError(t, err)
	bal, ok := sim.Balance(user.Address(), asset)
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(25).Equal(bal))
}

func TestResubmitFails(t *testing.T) {
	sim, _, user, asset := setup(t)
	env := build(t, sim, user, 300, changeTrust(t, asset))

	_, err := sim.Submit(context.Background(), env)
	require.NoError(t, err)
	_, err = sim.Submit(context.Background(), env)
	require.Equal(t, errors.BadSequence, errors.Code(err))
}

func TestWrongSigner(t *testing.T) {
	sim, issuer, user, asset := setup(t)
	snap, err := sim.LoadAccount(context.Background(), user.Address())
	require.NoError(t, err)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        snap.Account(),
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{changeTrust(t, asset)},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	require.NoError(t, err)
	tx, err = tx.Sign(sim.Passphrase(), issuer)
	require.NoError(t, err)
	env, err := tx.Base64()
	require.NoError(t, err)

	_, err = sim.Submit(context.Background(), env)
	require.Equal(t, errors.Rejected, errors.Code(err))
	require.ErrorContains(t, err, "tx_bad_auth")
}

func TestExpired(t *testing.T) {
	now := time.Now()
	sim, _, user, asset := setup(t, WithClock(func() time.Time { return now }))
	env := build(t, sim, user, 30, changeTrust(t, asset))

	now = now.Add(time.Minute)
	_, err := sim.Submit(context.Background(), env)
	require.Equal(t, errors.Expired, errors.Code(err))
	require.True(t, errors.Code(err).Retryable())
}

func TestFailedEnvelopeRollsBack(t *testing.T) {
	sim, issuer, user, asset := setup(t)
	require.NoError(t, sim.Trust(user.Address(), asset))
	other := keypair.MustRandom().Address()
	sim.CreateAccount(other, decimal.NewFromInt(1))

	// The first payment succeeds on its own but the second fails, so neither
	// applies
	_, err := sim.Submit(context.Background(), build(t, sim, issuer, 30,
		&txnbuild.Payment{Destination: user.Address(), Amount: "10", Asset: asset.Txnbuild()},
		&txnbuild.Payment{Destination: other, Amount: "10", Asset: asset.Txnbuild()},
	))
	require.Equal(t, errors.NoTrust, errors.Code(err))
	bal, _ := sim.Balance(user.Address(), asset)
	require.True(t, bal.IsZero())
}

func TestUnderfunded(t *testing.T) {
	sim, _, user, asset := setup(t)
	dist := keypair.MustRandom()
	sim.CreateAccount(dist.Address(), decimal.NewFromInt(100))
	require.NoError(t, sim.Trust(dist.Address(), asset))
	require.NoError(t, sim.Trust(user.Address(), asset))
	require.NoError(t, sim.Credit(dist.Address(), asset, decimal.NewFromInt(5)))

	_, err := sim.Submit(context.Background(), build(t, sim, dist, 30,
		&txnbuild.Payment{Destination: user.Address(), Amount: "10", Asset: asset.Txnbuild()}))
	require.Equal(t, errors.Underfunded, errors.Code(err))
}

func TestMissingAccount(t *testing.T) {
	sim, err := New()
	require.NoError(t, err)
	_, err = sim.LoadAccount(context.Background(), keypair.MustRandom().Address())
	require.Equal(t, errors.NotFound, errors.Code(err))

	loads, submits := sim.Calls()
	require.Equal(t, 1, loads)
	require.Zero(t, submits)
}
