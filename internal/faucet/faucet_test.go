// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package faucet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/Trustless-Work/Testnet-Faucet/test/simulator"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/require"
)

type harness struct {
	sim     *simulator.Simulator
	issuer  *keypair.Full
	custody *keypair.Full
	asset   ledger.Asset
}

func newHarness(t *testing.T, opts ...simulator.Option) *harness {
	t.Helper()
	sim, err := simulator.New(opts...)
	require.NoError(t, err)

	h := &harness{sim: sim, issuer: keypair.MustRandom(), custody: keypair.MustRandom()}
	h.asset = ledger.Asset{Code: "TRUST", Issuer: h.issuer.Address()}
	sim.CreateAccount(h.issuer.Address(), decimal.NewFromInt(10000))
	sim.CreateAccount(h.custody.Address(), decimal.NewFromInt(10000))
	require.NoError(t, sim.Trust(h.custody.Address(), h.asset))
	require.NoError(t, sim.Credit(h.custody.Address(), h.asset, decimal.NewFromInt(100000)))
	return h
}

func (h *harness) service(t *testing.T, seq *Sequencer) *Service {
	t.Helper()
	s, err := New(Options{
		Ledger:            h.sim,
		Asset:             h.asset,
		AssetName:         "Trustless Token",
		NetworkPassphrase: h.sim.Passphrase(),
		Custody:           h.custody,
		Amounts:           []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(25), decimal.NewFromInt(50)},
		Sequencer:         seq,
	})
	require.NoError(t, err)
	return s
}

// user creates a funded account without a trustline.
func (h *harness) user() *keypair.Full {
	kp := keypair.MustRandom()
	h.sim.CreateAccount(kp.Address(), decimal.NewFromInt(100))
	return kp
}

func (h *harness) trust(t *testing.T, s *Service, user *keypair.Full) {
	t.Helper()
	env, err := s.BuildTrustline(context.Background(), user.Address())
	require.NoError(t, err)
	_, err = s.SubmitTrustline(context.Background(), sign(t, env.XDR, h.sim.Passphrase(), user))
	require.NoError(t, err)
}

func sign(t *testing.T, xdr, passphrase string, kp *keypair.Full) string {
	t.Helper()
	env, err := ledger.DecodeEnvelope(xdr)
	require.NoError(t, err)
	tx, err := env.Transaction().Sign(passphrase, kp)
	require.NoError(t, err)
	b64, err := tx.Base64()
	require.NoError(t, err)
	return b64
}

func TestInvalidAddressNeverReachesLedger(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	ctx := context.Background()
	loads, submits := h.sim.Calls()

	for _, addr := range []string{"INVALID", "", "S" + h.issuer.Address()[1:], h.issuer.Address() + "X"} {
		_, err := s.CheckTrustline(ctx, addr)
		require.Equal(t, errors.InvalidAddress, errors.Code(err), addr)
		_, err = s.BuildTrustline(ctx, addr)
		require.Equal(t, errors.InvalidAddress, errors.Code(err), addr)
		_, err = s.Distribute(ctx, addr, decimal.NewFromInt(25))
		require.Equal(t, errors.InvalidAddress, errors.Code(err), addr)
	}

	l2, s2 := h.sim.Calls()
	require.Equal(t, loads, l2)
	require.Equal(t, submits, s2)
}

func TestCheckTrustline(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	ctx := context.Background()
	user := h.user()

	check, err := s.CheckTrustline(ctx, user.Address())
	require.NoError(t, err)
	require.Equal(t, api.TrustlineAbsent, check.Status)
	require.False(t, check.HasTrustline())

	// Near matches do not count
	other := keypair.MustRandom()
	h.sim.CreateAccount(other.Address(), decimal.NewFromInt(1))
	require.NoError(t, h.sim.Trust(user.Address(), ledger.Asset{Code: "TRUST", Issuer: other.Address()}))
	require.NoError(t, h.sim.Trust(user.Address(), ledger.Asset{Code: "TRUSTX", Issuer: h.issuer.Address()}))
	check, err = s.CheckTrustline(ctx, user.Address())
	require.NoError(t, err)
	require.False(t, check.HasTrustline())

	h.trust(t, s, user)
	check, err = s.CheckTrustline(ctx, user.Address())
	require.NoError(t, err)
	require.True(t, check.HasTrustline())

	// Missing accounts are distinct from missing trustlines
	check, err = s.CheckTrustline(ctx, keypair.MustRandom().Address())
	require.NoError(t, err)
	require.Equal(t, api.AccountMissing, check.Status)
}

func TestBuildTrustline(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	user := h.user()

	env, err := s.BuildTrustline(context.Background(), user.Address())
	require.NoError(t, err)
	require.Equal(t, api.TrustlinePreparedMessage, env.Message)
	require.Equal(t, h.sim.Passphrase(), env.NetworkPassphrase)
	require.WithinDuration(t, time.Now().Add(300*time.Second), env.ExpiresAt, 5*time.Second)

	decoded, err := ledger.DecodeEnvelope(env.XDR)
	require.NoError(t, err)
	require.False(t, decoded.Signed())
	require.Equal(t, user.Address(), decoded.Source(), "the requester must be the source")
	require.Equal(t, env.ExpiresAt, decoded.ValidUntil())

	snap, err := h.sim.LoadAccount(context.Background(), user.Address())
	require.NoError(t, err)
	require.Equal(t, snap.Sequence+1, decoded.Sequence())

	change, err := decoded.AsTrustlineChange()
	require.NoError(t, err)
	require.Equal(t, h.asset, change.Asset)
	require.Equal(t, user.Address(), change.Account)

	_, err = s.BuildTrustline(context.Background(), keypair.MustRandom().Address())
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestSubmitTrustlineChecksEnvelope(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	ctx := context.Background()
	user := h.user()

	env, err := s.BuildTrustline(ctx, user.Address())
	require.NoError(t, err)

	// Unsigned
	_, err = s.SubmitTrustline(ctx, env.XDR)
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	// Signed by the wrong key
	_, err = s.SubmitTrustline(ctx, sign(t, env.XDR, h.sim.Passphrase(), h.custody))
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	// Signed for the wrong network
	_, err = s.SubmitTrustline(ctx, sign(t, env.XDR, "Some Other Network", user))
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	// Wrong asset
	snap, err := h.sim.LoadAccount(ctx, user.Address())
	require.NoError(t, err)
	line, err := txnbuild.CreditAsset{Code: "OTHER", Issuer: h.issuer.Address()}.ToChangeTrustAsset()
	require.NoError(t, err)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        snap.Account(),
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{&txnbuild.ChangeTrust{Line: line}},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	require.NoError(t, err)
	other, err := ledger.WrapEnvelope(tx).Encode()
	require.NoError(t, err)
	_, err = s.SubmitTrustline(ctx, sign(t, other, h.sim.Passphrase(), user))
	require.Equal(t, errors.MalformedInput, errors.Code(err))

	_, submits := h.sim.Calls()
	require.Zero(t, submits)

	// Resubmitting an accepted envelope fails
	signed := sign(t, env.XDR, h.sim.Passphrase(), user)
	_, err = s.SubmitTrustline(ctx, signed)
	require.NoError(t, err)
	_, err = s.SubmitTrustline(ctx, signed)
	require.Equal(t, errors.BadSequence, errors.Code(err))
	require.True(t, errors.Code(err).IsRejection())
}

func TestDistribute(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	ctx := context.Background()
	user := h.user()
	h.trust(t, s, user)

	receipt, err := s.Distribute(ctx, user.Address(), decimal.NewFromInt(25))
	require.NoError(t, err)
	require.Equal(t, "Successfully sent 25 TRUST tokens", receipt.Message)
	require.Equal(t, "TRUST", receipt.Code)
	require.True(t, decimal.NewFromInt(25).Equal(receipt.Amount))
	require.NotEmpty(t, receipt.Hash)

	bal, ok := h.sim.Balance(user.Address(), h.asset)
	require.True(t, ok)
	require.True(t, decimal.NewFromInt(25).Equal(bal))
}

func TestDistributeAmounts(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	user := h.user()
	loads, _ := h.sim.Calls()

	for _, amt := range []string{"0", "-10", "11", "10.5", "1000"} {
		_, err := s.Distribute(context.Background(), user.Address(), decimal.RequireFromString(amt))
		require.Equal(t, errors.InvalidAmount, errors.Code(err), amt)
	}

	l2, _ := h.sim.Calls()
	require.Equal(t, loads, l2)

	// Equal values with a different representation are allowed
	h.trust(t, s, user)
	_, err := s.Distribute(context.Background(), user.Address(), decimal.RequireFromString("10.000"))
	require.NoError(t, err)
}

func TestDistributeWithoutTrustline(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	user := h.user()

	_, err := s.Distribute(context.Background(), user.Address(), decimal.NewFromInt(25))
	require.Equal(t, errors.NoTrust, errors.Code(err))
}

func TestDistributeUnfunded(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	user := h.user()
	h.trust(t, s, user)

	s.custody = keypair.MustRandom()
	_, err := s.Distribute(context.Background(), user.Address(), decimal.NewFromInt(25))
	require.Equal(t, errors.InternalError, errors.Code(err))

	s.custody = nil
	_, err = s.Distribute(context.Background(), user.Address(), decimal.NewFromInt(25))
	require.Equal(t, errors.Unavailable, errors.Code(err))
}

func TestDistributeUsesCustody(t *testing.T) {
	var sources []string
	var mu sync.Mutex
	h := newHarness(t, simulator.BeforeSubmit(func(env *ledger.Envelope) {
		mu.Lock()
		defer mu.Unlock()
		sources = append(sources, env.Source())
	}))
	s := h.service(t, nil)
	user := h.user()
	h.trust(t, s, user)

	_, err := s.Distribute(context.Background(), user.Address(), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.Equal(t, []string{user.Address(), h.custody.Address()}, sources)
}

func TestConcurrentDistributeSerialized(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	users := make([]*keypair.Full, 8)
	for i := range users {
		users[i] = h.user()
		h.trust(t, s, users[i])
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Distribute(context.Background(), u.Address(), decimal.NewFromInt(50))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Zero(t, s.accounts.Len())
}

func TestConcurrentDistributeUnserialized(t *testing.T) {
	// Two services that do not share a sequencer both load the custody
	// account before either submits
	var loaded sync.WaitGroup
	loaded.Add(2)
	var custody string
	h := newHarness(t,
		simulator.BeforeLoad(func(addr string) {
			if addr == custody {
				loaded.Done()
			}
		}),
		simulator.BeforeSubmit(func(env *ledger.Envelope) {
			if env.Source() == custody {
				loaded.Wait()
			}
		}),
	)
	a, b := h.service(t, nil), h.service(t, nil)
	u1, u2 := h.user(), h.user()
	h.trust(t, a, u1)
	h.trust(t, a, u2)
	custody = h.custody.Address()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = a.Distribute(context.Background(), u1.Address(), decimal.NewFromInt(10))
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = b.Distribute(context.Background(), u2.Address(), decimal.NewFromInt(10))
	}()
	wg.Wait()

	var ok, bad int
	for _, err := range errs {
		switch errors.Code(err) {
		case 0:
			ok++
		case errors.BadSequence:
			bad++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, bad)
}

func TestSequencerCancel(t *testing.T) {
	seq := NewSequencer()
	release, err := seq.Acquire(context.Background(), "A")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = seq.Acquire(ctx, "A")
	require.Equal(t, errors.Canceled, errors.Code(err))

	// Other accounts are independent
	r2, err := seq.Acquire(context.Background(), "B")
	require.NoError(t, err)
	r2()

	release()
	release()
	require.Zero(t, seq.Len())
}

func TestToken(t *testing.T) {
	h := newHarness(t)
	s := h.service(t, nil)
	info, err := s.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "TRUST", info.Code)
	require.Equal(t, "Trustless Token", info.Name)
	require.Equal(t, h.asset, info.Asset())
	require.Len(t, info.Amounts, 3)
}

func TestNewValidates(t *testing.T) {
	h := newHarness(t)
	base := Options{
		Ledger:            h.sim,
		Asset:             h.asset,
		NetworkPassphrase: h.sim.Passphrase(),
		Amounts:           []decimal.Decimal{decimal.NewFromInt(1)},
	}
	_, err := New(base)
	require.NoError(t, err)

	bad := base
	bad.Asset = ledger.Native
	_, err = New(bad)
	require.Error(t, err)

	bad = base
	bad.Amounts = []decimal.Decimal{decimal.Zero}
	_, err = New(bad)
	require.Error(t, err)

	// Not representable on the ledger, so the payment would be rounded
	bad = base
	bad.Amounts = []decimal.Decimal{decimal.RequireFromString("0.00000001")}
	_, err = New(bad)
	require.Error(t, err)

	bad = base
	bad.TrustlineLimit = "lots"
	_, err = New(bad)
	require.Error(t, err)
}
