// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package faucet

import (
	"context"
	"sync"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// Sequencer serializes work per account. Every envelope consumes the source
// account's next sequence number, so two envelopes built concurrently from the
// same snapshot would collide. Holding the account's lock from load to submit
// prevents that.
type Sequencer struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewSequencer returns an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{locks: map[string]*accountLock{}}
}

// Acquire waits until the account is free or the context is done. The caller
// must call the returned function when it is done with the account.
func (s *Sequencer) Acquire(ctx context.Context, account string) (release func(), err error) {
	s.mu.Lock()
	l, ok := s.locks[account]
	if !ok {
		l = &accountLock{sem: semaphore.NewWeighted(1)}
		s.locks[account] = l
	}
	l.refs++
	s.mu.Unlock()

	start := time.Now()
	err = l.sem.Acquire(ctx, 1)
	mLockWait.Observe(time.Since(start).Seconds())
	if err != nil {
		s.put(account, l)
		return nil, errors.Canceled.WithFormat("wait for %s: %w", account, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.sem.Release(1)
			s.put(account, l)
		})
	}, nil
}

func (s *Sequencer) put(account string, l *accountLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, account)
	}
}

// Len returns the number of accounts that are held or waited on.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
