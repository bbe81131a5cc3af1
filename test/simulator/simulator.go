// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package simulator is an in-memory ledger that checks envelopes the way the
// remote network does. It is used to test the faucet end to end.
package simulator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

// MinBaseFee is the lowest per-operation fee the simulator accepts.
const MinBaseFee = txnbuild.MinBaseFee

// Simulator is an in-memory ledger.
type Simulator struct {
	passphrase string
	now        func() time.Time

	mu       sync.Mutex
	ledger   int32
	accounts map[string]*account

	// Hooks
	beforeLoad   func(address string)
	beforeSubmit func(env *ledger.Envelope)

	loads, submits int
}

type account struct {
	sequence int64
	lines    map[ledger.Asset]*line
	order    []ledger.Asset
}

type line struct {
	balance decimal.Decimal
	limit   decimal.Decimal
}

var _ ledger.Client = (*Simulator)(nil)

// Option configures a simulator.
type Option func(*Simulator) error

// WithPassphrase sets the network passphrase. Defaults to the test network.
func WithPassphrase(passphrase string) Option {
	return func(s *Simulator) error {
		s.passphrase = passphrase
		return nil
	}
}

// WithClock sets the clock used to check validity windows.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) error {
		s.now = now
		return nil
	}
}

// BeforeLoad registers a hook that is called before each account load,
// outside of the simulator's lock.
func BeforeLoad(fn func(address string)) Option {
	return func(s *Simulator) error {
		s.beforeLoad = fn
		return nil
	}
}

// BeforeSubmit registers a hook that is called before each submission is
// checked, outside of the simulator's lock.
func BeforeSubmit(fn func(env *ledger.Envelope)) Option {
	return func(s *Simulator) error {
		s.beforeSubmit = fn
		return nil
	}
}

// New creates an empty simulated ledger.
func New(opts ...Option) (*Simulator, error) {
	s := &Simulator{
		passphrase: network.TestNetworkPassphrase,
		now:        time.Now,
		ledger:     1,
		accounts:   map[string]*account{},
	}
	for _, opt := range opts {
		err := opt(s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Passphrase returns the network passphrase.
func (s *Simulator) Passphrase() string { return s.passphrase }

// Calls returns the number of loads and submissions that reached the
// simulator, successful or not.
func (s *Simulator) Calls() (loads, submits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads, s.submits
}

// CreateAccount creates an account holding the given native balance. The
// sequence number starts at ledger<<32, the way the network assigns it.
func (s *Simulator) CreateAccount(address string, native decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &account{
		sequence: int64(s.ledger) << 32,
		lines:    map[ledger.Asset]*line{},
	}
	a.set(ledger.Native, &line{balance: native})
	s.accounts[address] = a
}

// FriendbotBalance is the native balance of accounts created by [Simulator.Fund].
var FriendbotBalance = decimal.NewFromInt(10000)

// Fund creates an account the way friendbot does. Fund fails with Conflict
// if the account exists.
func (s *Simulator) Fund(ctx context.Context, address string) (*ledger.SubmissionResult, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled.Wrap(err)
	}

	s.mu.Lock()
	_, exists := s.accounts[address]
	s.mu.Unlock()
	if exists {
		return nil, errors.Conflict.WithFormat("fund %s: account already exists", address)
	}

	s.CreateAccount(address, FriendbotBalance)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger++
	return &ledger.SubmissionResult{
		Hash:        fmt.Sprintf("friendbot-%d", s.ledger),
		Ledger:      s.ledger,
		SubmittedAt: s.now(),
	}, nil
}

// Trust opens a trustline outside of any envelope.
func (s *Simulator) Trust(address string, asset ledger.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[address]
	if !ok {
		return errors.NotFound.WithFormat("account %s not found", address)
	}
	if _, ok := a.lines[asset]; !ok {
		a.set(asset, &line{limit: maxLimit()})
	}
	return nil
}

// Credit adds to an account's balance outside of any envelope. The account
// must trust the asset.
func (s *Simulator) Credit(address string, asset ledger.Asset, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[address]
	if !ok {
		return errors.NotFound.WithFormat("account %s not found", address)
	}
	l, ok := a.lines[asset]
	if !ok {
		return errors.NoTrust.WithFormat("%s does not trust %v", address, asset)
	}
	l.balance = l.balance.Add(amount)
	return nil
}

// Balance returns an account's balance of an asset.
func (s *Simulator) Balance(address string, asset ledger.Asset) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[address]
	if !ok {
		return decimal.Zero, false
	}
	l, ok := a.lines[asset]
	if !ok {
		return decimal.Zero, false
	}
	return l.balance, true
}

// LoadAccount implements [ledger.Loader].
func (s *Simulator) LoadAccount(ctx context.Context, address string) (*ledger.AccountSnapshot, error) {
	if s.beforeLoad != nil {
		s.beforeLoad(address)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled.Wrap(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++

	a, ok := s.accounts[address]
	if !ok {
		return nil, errors.NotFound.WithFormat("load %s: account not found", address)
	}

	snap := &ledger.AccountSnapshot{Address: address, Sequence: a.sequence}
	for _, asset := range a.order {
		l := a.lines[asset]
		snap.Balances = append(snap.Balances, ledger.Balance{
			Asset:  asset,
			Amount: l.balance,
			Limit:  l.limit,
		})
	}
	return snap, nil
}

// Submit implements [ledger.Submitter]. Validation failures leave the ledger
// untouched. Once an envelope is valid its sequence number and fee are
// consumed even if an operation fails, and either every operation applies or
// none do.
func (s *Simulator) Submit(ctx context.Context, envelope string) (*ledger.SubmissionResult, error) {
	env, err := ledger.DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}
	if s.beforeSubmit != nil {
		s.beforeSubmit(env)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled.Wrap(err)
	}

	hash, err := env.Hash(s.passphrase)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submits++

	src, err := s.validate(env)
	if err != nil {
		return nil, err
	}

	// Consume the sequence number and charge the fee
	fee := decimal.New(env.Fee()*int64(len(env.Operations())), -7)
	src.sequence = env.Sequence()
	native := src.lines[ledger.Native]
	native.balance = native.balance.Sub(fee)
	s.ledger++

	err = s.apply(env)
	if err != nil {
		return nil, err
	}

	return &ledger.SubmissionResult{
		Hash:        hash,
		Ledger:      s.ledger,
		SubmittedAt: s.now(),
	}, nil
}

func (s *Simulator) validate(env *ledger.Envelope) (*account, error) {
	src, ok := s.accounts[env.Source()]
	if !ok {
		return nil, reject(errors.Rejected, "tx_no_source_account")
	}

	if until := env.ValidUntil(); !until.IsZero() && s.now().After(until) {
		return nil, reject(errors.Expired, "tx_too_late")
	}

	if env.Fee() < MinBaseFee {
		return nil, reject(errors.InsufficientFee, "tx_insufficient_fee")
	}

	if env.Sequence() != src.sequence+1 {
		return nil, reject(errors.BadSequence, "tx_bad_seq")
	}

	signers := map[string]bool{env.Source(): true}
	for _, op := range env.Operations() {
		signers[env.OperationSource(op)] = true
	}
	for addr := range signers {
		if !env.SignedBy(s.passphrase, addr) {
			return nil, reject(errors.Rejected, "tx_bad_auth")
		}
	}

	fee := decimal.New(env.Fee()*int64(len(env.Operations())), -7)
	if src.lines[ledger.Native].balance.LessThan(fee) {
		return nil, reject(errors.Underfunded, "tx_insufficient_balance")
	}
	return src, nil
}

func (s *Simulator) apply(env *ledger.Envelope) error {
	// Stage changes on copies so that a failed operation rolls back the
	// whole envelope
	st := &stage{sim: s, accounts: map[string]*account{}}

	var codes []string
	var failed errors.Status
	for _, op := range env.Operations() {
		code, status := st.apply(env.OperationSource(op), op)
		codes = append(codes, code)
		if status != 0 && failed == 0 {
			failed = status
		}
	}
	if failed != 0 {
		return failed.WithFormat("submit: rejected: tx_failed, %s", strings.Join(codes, ", "))
	}

	for addr, a := range st.accounts {
		s.accounts[addr] = a
	}
	return nil
}

type stage struct {
	sim      *Simulator
	accounts map[string]*account
}

func (st *stage) get(addr string) (*account, bool) {
	if a, ok := st.accounts[addr]; ok {
		return a, true
	}
	a, ok := st.sim.accounts[addr]
	if !ok {
		return nil, false
	}
	a = a.clone()
	st.accounts[addr] = a
	return a, true
}

func (st *stage) apply(source string, op txnbuild.Operation) (string, errors.Status) {
	switch op := op.(type) {
	case *txnbuild.ChangeTrust:
		return st.changeTrust(source, op)
	case *txnbuild.Payment:
		return st.payment(source, op)
	case *txnbuild.CreateAccount:
		return st.createAccount(source, op)
	default:
		return "op_not_supported", errors.Rejected
	}
}

func (st *stage) changeTrust(source string, op *txnbuild.ChangeTrust) (string, errors.Status) {
	asset := ledger.AssetOf(op.Line)
	if asset.IsNative() {
		return "op_malformed", errors.Rejected
	}
	if _, ok := st.get(asset.Issuer); !ok {
		return "op_no_issuer", errors.Rejected
	}

	a, ok := st.get(source)
	if !ok {
		return "op_no_account", errors.Rejected
	}
	limit := maxLimit()
	if op.Limit != "" {
		var err error
		limit, err = decimal.NewFromString(op.Limit)
		if err != nil || limit.IsNegative() {
			return "op_malformed", errors.Rejected
		}
	}

	l, ok := a.lines[asset]
	switch {
	case limit.IsZero() && !ok:
		return "op_success", 0
	case limit.IsZero():
		if !l.balance.IsZero() {
			return "op_invalid_limit", errors.Rejected
		}
		a.remove(asset)
	case !ok:
		a.set(asset, &line{limit: limit})
	default:
		if limit.LessThan(l.balance) {
			return "op_invalid_limit", errors.Rejected
		}
		l.limit = limit
	}
	return "op_success", 0
}

func (st *stage) payment(source string, op *txnbuild.Payment) (string, errors.Status) {
	asset := ledger.AssetOf(op.Asset)
	amount, err := decimal.NewFromString(op.Amount)
	if err != nil || !amount.IsPositive() {
		return "op_malformed", errors.Rejected
	}

	from, ok := st.get(source)
	if !ok {
		return "op_no_account", errors.Rejected
	}
	to, ok := st.get(op.Destination)
	if !ok {
		return "op_no_destination", errors.Rejected
	}

	// The issuer holds an unlimited supply and needs no trustline
	if asset.IsNative() || source != asset.Issuer {
		l, ok := from.lines[asset]
		if !ok {
			return "op_src_no_trust", errors.Underfunded
		}
		if l.balance.LessThan(amount) {
			return "op_underfunded", errors.Underfunded
		}
		l.balance = l.balance.Sub(amount)
	}

	if asset.IsNative() || op.Destination != asset.Issuer {
		l, ok := to.lines[asset]
		if !ok {
			return "op_no_trust", errors.NoTrust
		}
		if !asset.IsNative() && l.balance.Add(amount).GreaterThan(l.limit) {
			return "op_line_full", errors.Rejected
		}
		l.balance = l.balance.Add(amount)
	}
	return "op_success", 0
}

func (st *stage) createAccount(source string, op *txnbuild.CreateAccount) (string, errors.Status) {
	amount, err := decimal.NewFromString(op.Amount)
	if err != nil || amount.IsNegative() {
		return "op_malformed", errors.Rejected
	}
	if _, ok := st.get(op.Destination); ok {
		return "op_already_exists", errors.Rejected
	}
	from, ok := st.get(source)
	if !ok {
		return "op_no_account", errors.Rejected
	}
	native := from.lines[ledger.Native]
	if native.balance.LessThan(amount) {
		return "op_underfunded", errors.Underfunded
	}
	native.balance = native.balance.Sub(amount)

	a := &account{sequence: int64(st.sim.ledger) << 32, lines: map[ledger.Asset]*line{}}
	a.set(ledger.Native, &line{balance: amount})
	st.accounts[op.Destination] = a
	return "op_success", 0
}

func (a *account) set(asset ledger.Asset, l *line) {
	if _, ok := a.lines[asset]; !ok {
		a.order = append(a.order, asset)
	}
	a.lines[asset] = l
}

func (a *account) remove(asset ledger.Asset) {
	delete(a.lines, asset)
	for i, x := range a.order {
		if x == asset {
			a.order = append(a.order[:i:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *account) clone() *account {
	b := &account{
		sequence: a.sequence,
		lines:    make(map[ledger.Asset]*line, len(a.lines)),
		order:    append([]ledger.Asset(nil), a.order...),
	}
	for k, v := range a.lines {
		l := *v
		b.lines[k] = &l
	}
	return b
}

func maxLimit() decimal.Decimal {
	return decimal.RequireFromString(string(txnbuild.MaxTrustlineLimit))
}

func reject(status errors.Status, code string) error {
	return status.WithFormat("submit: rejected: %s", code)
}
