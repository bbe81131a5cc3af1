// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimitConns(t *testing.T) {
	inner, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	l := limitConns(inner, 1)
	defer l.Close()

	accepted := make(chan net.Conn, 2)
	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				return
			}
			accepted <- c
		}
	}()

	for i := 0; i < 2; i++ {
		c, err := net.Dial("tcp", inner.Addr().String())
		require.NoError(t, err)
		defer c.Close()
	}

	first := <-accepted
	select {
	case <-accepted:
		t.Fatal("accepted a connection beyond the limit")
	case <-time.After(100 * time.Millisecond):
	}

	// A second close must not free a second slot
	require.NoError(t, first.Close())
	_ = first.Close()

	select {
	case c := <-accepted:
		require.NoError(t, c.Close())
	case <-time.After(time.Second):
		t.Fatal("connection was not accepted after a slot was freed")
	}
}

func TestLimitConnsCloseWakesAccept(t *testing.T) {
	inner, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	l := limitConns(inner, 1)

	c, err := net.Dial("tcp", inner.Addr().String())
	require.NoError(t, err)
	defer c.Close()
	held, err := l.Accept()
	require.NoError(t, err)
	defer held.Close()

	errc := make(chan error, 1)
	go func() {
		_, err := l.Accept()
		errc <- err
	}()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, l.Close())

	select {
	case err := <-errc:
		require.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Accept did not return after Close")
	}
}

func TestLimitConnsDisabled(t *testing.T) {
	inner, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer inner.Close()
	require.Same(t, inner, limitConns(inner, 0))
}
