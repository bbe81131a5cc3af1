// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfWrappedError(t *testing.T) {
	err := NotFound.WithFormat("load %s", "GABC")
	err2 := UnknownError.WithFormat("check trustline: %w", err)
	require.Equal(t, NotFound, Code(err2))
	require.True(t, Is(err2, NotFound))
	require.EqualError(t, err2, "check trustline: load GABC")
}

func TestWrapKeepsKnownCode(t *testing.T) {
	err := Rejected.Wrap(io.EOF)
	require.Equal(t, Rejected, Code(err))
	require.ErrorIs(t, err, Rejected)

	require.NoError(t, Rejected.Wrap(nil))
}

func TestWrapPlainError(t *testing.T) {
	err := UnknownError.Wrap(fmt.Errorf("boom"))
	require.Equal(t, UnknownError, Code(err))
	require.EqualError(t, err, "boom")
}

func TestStatusClasses(t *testing.T) {
	for _, s := range []Status{Rejected, BadSequence, Expired, InsufficientFee, NoTrust, Underfunded} {
		require.True(t, s.IsRejection(), s.String())
	}
	require.False(t, NotFound.IsRejection())
	require.True(t, BadSequence.Retryable())
	require.True(t, Expired.Retryable())
	require.False(t, NoTrust.Retryable())
	require.True(t, InvalidAddress.IsLocal())
	require.False(t, NetworkError.IsLocal())

	// The envelope may still land, so it must not be rebuilt and resent
	require.False(t, OutcomeUnknown.IsRejection())
	require.False(t, OutcomeUnknown.Retryable())
	require.Equal(t, "outcomeUnknown", OutcomeUnknown.String())
}

func TestErrorJSON(t *testing.T) {
	err := BadSequence.WithCauseAndFormat(Rejected.With("tx_bad_seq"), "submit")
	b, e := json.Marshal(err)
	require.NoError(t, e)

	var v *Error
	require.NoError(t, json.Unmarshal(b, &v))
	require.Equal(t, BadSequence, v.Code)
	require.Equal(t, Rejected, v.Cause.Code)
	require.Equal(t, "submit", v.Error())
}

func TestCallStack(t *testing.T) {
	TrackLocation(true)
	defer TrackLocation(false)

	err := Conflict.With("nope")
	require.Len(t, err.CallStack, 1)
	require.Contains(t, err.CallStack[0].FuncName, "TestCallStack")
	require.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}
