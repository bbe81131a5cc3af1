// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is a request status code.
type Status uint64

const (
	// OK means the request succeeded.
	OK Status = 200

	// BadRequest means the request was malformed.
	BadRequest Status = 400
	// NotFound means the account does not exist on the ledger.
	NotFound Status = 404
	// Conflict means the operation is not valid in the current state.
	Conflict Status = 409
	// InvalidAddress means the address does not have the shape of an account
	// public key.
	InvalidAddress Status = 420
	// InvalidAmount means the amount is not positive or is not permitted.
	InvalidAmount Status = 421
	// MalformedInput means an envelope could not be decoded or has the wrong
	// contents.
	MalformedInput Status = 422
	// UserRejected means the wallet user declined to sign.
	UserRejected Status = 430
	// Canceled means the caller abandoned the operation.
	Canceled Status = 431

	// Rejected means the network rejected the envelope.
	Rejected Status = 450
	// BadSequence means the envelope's sequence number was already consumed
	// or is out of order.
	BadSequence Status = 451
	// Expired means the envelope's validity window has passed.
	Expired Status = 452
	// InsufficientFee means the envelope's fee is too low.
	InsufficientFee Status = 453
	// NoTrust means the destination does not hold a trustline for the asset.
	NoTrust Status = 454
	// Underfunded means the source does not hold enough of the asset.
	Underfunded Status = 455

	// InternalError means something went wrong that should not have.
	InternalError Status = 500
	// NetworkError means the ledger endpoint could not be reached.
	NetworkError Status = 502
	// Unavailable means the signing provider is not available.
	Unavailable Status = 503

	// OutcomeUnknown means a signed envelope was sent but no answer came
	// back. The envelope may still be applied until its validity window
	// closes.
	OutcomeUnknown Status = 504
	// EncodingError means something could not be encoded or decoded.
	EncodingError Status = 510
	// UnknownError means the cause is not known.
	UnknownError Status = 520
)

var statusNames = map[Status]string{
	OK:              "ok",
	BadRequest:      "badRequest",
	NotFound:        "notFound",
	Conflict:        "conflict",
	InvalidAddress:  "invalidAddress",
	InvalidAmount:   "invalidAmount",
	MalformedInput:  "malformedInput",
	UserRejected:    "userRejected",
	Canceled:        "canceled",
	Rejected:        "rejected",
	BadSequence:     "badSequence",
	Expired:         "expired",
	InsufficientFee: "insufficientFee",
	NoTrust:         "noTrust",
	Underfunded:     "underfunded",
	InternalError:   "internalError",
	NetworkError:    "networkError",
	Unavailable:     "unavailable",
	OutcomeUnknown:  "outcomeUnknown",
	EncodingError:   "encodingError",
	UnknownError:    "unknownError",
}

// StatusByName returns the named status.
func StatusByName(name string) (Status, bool) {
	for s, n := range statusNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return 0, false
}

// String returns the name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status:%d", uint64(s))
}

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// IsLocal returns true if the status is produced by local validation, before
// anything is sent to the network.
func (s Status) IsLocal() bool {
	switch s {
	case BadRequest, InvalidAddress, InvalidAmount, MalformedInput:
		return true
	}
	return false
}

// IsRejection returns true if the status means the network refused a signed
// envelope.
func (s Status) IsRejection() bool { return s >= 450 && s < 460 }

// Retryable returns true if the operation can succeed if it is rebuilt with a
// fresh sequence number and validity window. The rejected envelope itself
// must never be resubmitted.
func (s Status) Retryable() bool { return s == BadSequence || s == Expired }

// Error implements error.
func (s Status) Error() string { return s.String() }

// MarshalJSON marshals the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON unmarshals the status from its name or number.
func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if json.Unmarshal(b, &name) == nil {
		v, ok := StatusByName(name)
		if !ok {
			return fmt.Errorf("%q is not a valid status", name)
		}
		*s = v
		return nil
	}

	var n uint64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Status(n)
	return nil
}
