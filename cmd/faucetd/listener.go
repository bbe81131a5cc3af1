// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"errors"
	"net"
	"sync"

	"golang.org/x/sync/semaphore"
)

// limitConns caps the number of open faucet connections at n. Accept blocks
// while n connections are open. A limit that is not positive disables the cap.
func limitConns(l net.Listener, n int) net.Listener {
	if n <= 0 {
		return l
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &connLimiter{Listener: l, slots: semaphore.NewWeighted(int64(n)), done: ctx, stop: cancel}
}

type connLimiter struct {
	net.Listener
	slots *semaphore.Weighted
	done  context.Context
	stop  context.CancelFunc
}

func (l *connLimiter) Accept() (net.Conn, error) {
	if err := l.slots.Acquire(l.done, 1); err != nil {
		return nil, net.ErrClosed
	}
	conn, err := l.Listener.Accept()
	if err != nil {
		l.slots.Release(1)
		return nil, err
	}
	return &slotConn{Conn: conn, slots: l.slots}, nil
}

// Close also wakes an Accept that is waiting for a slot.
func (l *connLimiter) Close() error {
	l.stop()
	return l.Listener.Close()
}

// slotConn gives its slot back exactly once, when it is closed or fails.
type slotConn struct {
	net.Conn
	slots *semaphore.Weighted
	once  sync.Once
}

func (c *slotConn) free() {
	c.once.Do(func() { c.slots.Release(1) })
}

// check frees the slot on a failed read or write. Deadlines leave the
// connection open.
func (c *slotConn) check(err error) {
	var ne net.Error
	if err == nil || errors.As(err, &ne) && ne.Timeout() {
		return
	}
	c.free()
}

func (c *slotConn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	c.check(err)
	return n, err
}

func (c *slotConn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	c.check(err)
	return n, err
}

func (c *slotConn) Close() error {
	c.free()
	return c.Conn.Close()
}
