// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package flow drives a requester through checking an address, opening a
// trustline with a wallet, and receiving tokens.
package flow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/wallet"
	"github.com/shopspring/decimal"
)

// ErrSuperseded is returned by an operation whose result was discarded
// because the address changed while it was in flight.
var ErrSuperseded = errors.Canceled.With("superseded by a newer address")

type Options struct {
	Logger      *slog.Logger
	Trustlines  api.TrustlineService
	Submitter   api.TrustlineSubmitter
	Distributor api.DistributionService
	Wallets     *wallet.Registry

	// NetworkPassphrase is used when a built envelope does not name its
	// network.
	NetworkPassphrase string
}

// Flow is the requester-facing state machine. Methods are safe to call
// concurrently. Operations that wait on the network or a wallet block; their
// results are applied only if the address has not changed in the meantime.
type Flow struct {
	logger      *slog.Logger
	trustlines  api.TrustlineService
	submitter   api.TrustlineSubmitter
	distributor api.DistributionService
	wallets     *wallet.Registry
	passphrase  string

	mu        sync.Mutex
	notifyMu  sync.Mutex
	gen       uint64
	snap      Snapshot
	listeners []func(Snapshot)
}

// New creates a flow in the Idle state.
func New(opts Options) (*Flow, error) {
	if opts.Trustlines == nil {
		return nil, errors.BadRequest.With("missing trustline service")
	}
	if opts.Submitter == nil {
		return nil, errors.BadRequest.With("missing trustline submitter")
	}
	if opts.Distributor == nil {
		return nil, errors.BadRequest.With("missing distribution service")
	}
	if opts.Wallets == nil {
		return nil, errors.BadRequest.With("missing wallet registry")
	}

	f := &Flow{
		logger:      opts.Logger,
		trustlines:  opts.Trustlines,
		submitter:   opts.Submitter,
		distributor: opts.Distributor,
		wallets:     opts.Wallets,
		passphrase:  opts.NetworkPassphrase,
		snap:        Snapshot{State: Idle},
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	f.logger = f.logger.With("module", "flow")
	return f, nil
}

// Snapshot returns a copy of the current state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// OnChange registers a listener that is called with every new state, in
// order. Listeners must not call methods of the flow.
func (f *Flow) OnChange(fn func(Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// AvailableWallets lists every registered wallet and whether it can be
// selected.
func (f *Flow) AvailableWallets() []wallet.Option {
	return f.wallets.Options()
}

// token identifies the address an operation started for.
type token struct {
	gen     uint64
	address string
}

// begin checks that the flow is in one of the given states, applies fn, and
// returns a token for the operation.
func (f *Flow) begin(fn func(*Snapshot), from ...State) (token, Snapshot, error) {
	f.mu.Lock()
	ok := len(from) == 0
	for _, s := range from {
		if f.snap.State == s {
			ok = true
			break
		}
	}
	if !ok {
		snap := f.snap
		f.mu.Unlock()
		return token{}, snap, errors.Conflict.WithFormat("cannot do that while %s", snap.State)
	}

	fn(&f.snap)
	t := token{f.gen, f.snap.Address}
	return t, f.release(), nil
}

// apply applies fn if the token is current.
func (f *Flow) apply(t token, fn func(*Snapshot)) (Snapshot, error) {
	f.mu.Lock()
	if t.gen != f.gen || t.address != f.snap.Address {
		snap := f.snap
		f.mu.Unlock()
		return snap, ErrSuperseded
	}

	fn(&f.snap)
	return f.release(), nil
}

// release unlocks the flow and notifies listeners. The caller must hold mu.
func (f *Flow) release() Snapshot {
	snap := f.snap
	listeners := f.listeners
	f.notifyMu.Lock()
	f.mu.Unlock()
	defer f.notifyMu.Unlock()

	f.logger.Debug("State changed", "state", snap.State, "address", snap.Address)
	for _, fn := range listeners {
		fn(snap)
	}
	return snap
}

func (f *Flow) fail(t token, phase State, err error) (Snapshot, error) {
	snap, err2 := f.apply(t, func(s *Snapshot) {
		s.State = Failed
		s.Phase = phase
		s.Error = err
	})
	if err2 != nil {
		return snap, err2
	}
	return snap, err
}

// SetAddress enters a new address and checks its trustline. Entering an
// address supersedes every operation still in flight for the previous one.
func (f *Flow) SetAddress(ctx context.Context, address string) (Snapshot, error) {
	f.mu.Lock()
	f.gen++
	f.snap = Snapshot{State: CheckingTrustline, Address: address}
	t := token{f.gen, address}
	f.release()

	return f.check(ctx, t)
}

func (f *Flow) check(ctx context.Context, t token) (Snapshot, error) {
	ctx = logging.With(ctx, "address", t.address)

	err := ledger.ValidateAddress(t.address)
	if err != nil {
		return f.invalid(t, err)
	}

	check, err := f.trustlines.CheckTrustline(ctx, t.address)
	switch {
	case err == nil:
	case errors.Code(err) == errors.InvalidAddress:
		return f.invalid(t, err)
	case errors.Code(err) == errors.NotFound:
		check = &api.TrustlineCheck{Address: t.address, Status: api.AccountMissing}
	default:
		f.logger.InfoContext(ctx, "Trustline check failed", "error", err)
		return f.fail(t, CheckingTrustline, err)
	}

	return f.apply(t, func(s *Snapshot) {
		s.Trustline = check.Status
		s.State = s.settled()
	})
}

func (f *Flow) invalid(t token, err error) (Snapshot, error) {
	snap, err2 := f.apply(t, func(s *Snapshot) {
		s.State = AddressInvalid
		s.Error = err
	})
	if err2 != nil {
		return snap, err2
	}
	return snap, err
}

// BeginTrustline opens the wallet choice for an address without a trustline.
// A flow that failed to open the trustline may begin again.
func (f *Flow) BeginTrustline() (Snapshot, error) {
	f.mu.Lock()
	retry := f.snap.State == Failed && f.snap.Trustline == api.TrustlineAbsent
	if f.snap.State != TrustlineMissing && !retry {
		snap := f.snap
		f.mu.Unlock()
		return snap, errors.Conflict.WithFormat("cannot open a trustline while %s", snap.State)
	}

	f.snap.State = AwaitingWalletChoice
	f.snap.Phase = ""
	f.snap.Error = nil
	f.snap.Wallet = ""
	return f.release(), nil
}

// CancelWalletChoice closes the wallet choice. Nothing has been built or
// signed at that point, so there is nothing to undo.
func (f *Flow) CancelWalletChoice() (Snapshot, error) {
	_, snap, err := f.begin(func(s *Snapshot) {
		s.State = TrustlineMissing
	}, AwaitingWalletChoice)
	return snap, err
}

// SelectWallet builds a trustline envelope, has the wallet sign it, submits
// it, and checks the trustline again. The envelope is built only after the
// wallet is chosen so that its validity window starts when signing starts.
func (f *Flow) SelectWallet(ctx context.Context, id string) (Snapshot, error) {
	w, err := f.wallets.Select(id)
	if err != nil {
		return f.Snapshot(), err
	}

	t, _, err := f.begin(func(s *Snapshot) {
		s.State = Signing
		s.Wallet = id
	}, AwaitingWalletChoice)
	if err != nil {
		return f.Snapshot(), err
	}
	ctx = logging.With(ctx, "address", t.address, "wallet", id)

	env, err := f.trustlines.BuildTrustline(ctx, t.address)
	if err != nil {
		return f.fail(t, Signing, err)
	}
	passphrase := env.NetworkPassphrase
	if passphrase == "" {
		passphrase = f.passphrase
	}

	signed, err := w.Sign(ctx, env.XDR, passphrase)
	if err != nil {
		f.logger.InfoContext(ctx, "Wallet did not sign", "error", err)
		return f.fail(t, Signing, err)
	}

	_, err = f.apply(t, func(s *Snapshot) { s.State = Submitting })
	if err != nil {
		return f.Snapshot(), err
	}

	res, err := f.submitter.SubmitTrustline(ctx, signed)
	if err != nil {
		f.logger.InfoContext(ctx, "Trustline submission failed", "error", err)
		return f.fail(t, Submitting, err)
	}
	f.logger.InfoContext(ctx, "Trustline submitted", "hash", res.Hash)

	_, err = f.apply(t, func(s *Snapshot) {
		s.State = CheckingTrustline
		s.Submission = res
	})
	if err != nil {
		return f.Snapshot(), err
	}
	return f.check(ctx, t)
}

// Distribute requests tokens for an address with a confirmed trustline.
func (f *Flow) Distribute(ctx context.Context, amount decimal.Decimal) (Snapshot, error) {
	t, _, err := f.begin(func(s *Snapshot) {
		s.State = Distributing
		s.Receipt = nil
	}, TrustlineConfirmed)
	if err != nil {
		return f.Snapshot(), err
	}
	ctx = logging.With(ctx, "address", t.address)

	receipt, err := f.distributor.Distribute(ctx, t.address, amount)
	if err != nil {
		f.logger.InfoContext(ctx, "Distribution failed", "error", err)
		return f.fail(t, Distributing, err)
	}

	return f.apply(t, func(s *Snapshot) {
		s.State = Done
		s.Receipt = receipt
	})
}

// Dismiss leaves Done, Failed, or AddressInvalid for the state implied by
// what is known about the address.
func (f *Flow) Dismiss() (Snapshot, error) {
	_, snap, err := f.begin(func(s *Snapshot) {
		s.Phase = ""
		s.Error = nil
		if s.State == AddressInvalid {
			*s = Snapshot{State: Idle}
			return
		}
		s.State = s.settled()
	}, Done, Failed, AddressInvalid)
	return snap, err
}
