// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

// Envelope is a decoded transaction envelope.
type Envelope struct {
	tx *txnbuild.Transaction
}

// DecodeEnvelope decodes a base64 encoded envelope. Fee-bump envelopes are not
// supported.
func DecodeEnvelope(b64 string) (*Envelope, error) {
	if b64 == "" {
		return nil, errors.MalformedInput.With("empty envelope")
	}
	gtx, err := txnbuild.TransactionFromXDR(b64)
	if err != nil {
		return nil, errors.MalformedInput.WithFormat("decode envelope: %w", err)
	}
	tx, ok := gtx.Transaction()
	if !ok {
		return nil, errors.MalformedInput.With("fee-bump envelopes are not supported")
	}
	return &Envelope{tx: tx}, nil
}

// WrapEnvelope wraps a built transaction.
func WrapEnvelope(tx *txnbuild.Transaction) *Envelope { return &Envelope{tx: tx} }

// Transaction returns the underlying transaction.
func (e *Envelope) Transaction() *txnbuild.Transaction { return e.tx }

// Source returns the address of the source account.
func (e *Envelope) Source() string { return e.tx.SourceAccount().AccountID }

// Sequence returns the envelope's sequence number.
func (e *Envelope) Sequence() int64 { return e.tx.SequenceNumber() }

// Fee returns the envelope's base fee.
func (e *Envelope) Fee() int64 { return e.tx.BaseFee() }

// ValidUntil returns the end of the validity window, or the zero time if the
// envelope does not expire.
func (e *Envelope) ValidUntil() time.Time {
	tb := e.tx.Timebounds()
	if tb.MaxTime == 0 {
		return time.Time{}
	}
	return time.Unix(tb.MaxTime, 0).UTC()
}

// Operations returns the envelope's operations.
func (e *Envelope) Operations() []txnbuild.Operation { return e.tx.Operations() }

// Encode returns the base64 encoded envelope.
func (e *Envelope) Encode() (string, error) {
	s, err := e.tx.Base64()
	if err != nil {
		return "", errors.EncodingError.WithFormat("encode envelope: %w", err)
	}
	return s, nil
}

// Hash returns the hex encoded hash of the envelope for the network.
func (e *Envelope) Hash(passphrase string) (string, error) {
	h, err := e.tx.HashHex(passphrase)
	if err != nil {
		return "", errors.EncodingError.WithFormat("hash envelope: %w", err)
	}
	return h, nil
}

// SignedBy returns true if the envelope carries a valid signature from the
// address for the network.
func (e *Envelope) SignedBy(passphrase, address string) bool {
	kp, err := keypair.ParseAddress(address)
	if err != nil {
		return false
	}
	hash, err := e.tx.Hash(passphrase)
	if err != nil {
		return false
	}
	for _, sig := range e.tx.Signatures() {
		if kp.Verify(hash[:], sig.Signature) == nil {
			return true
		}
	}
	return false
}

// Signed returns true if the envelope carries any signature.
func (e *Envelope) Signed() bool { return len(e.tx.Signatures()) > 0 }

// OperationSource returns the effective source of an operation.
func (e *Envelope) OperationSource(op txnbuild.Operation) string {
	if s := op.GetSourceAccount(); s != "" {
		return s
	}
	return e.Source()
}

// TrustlineChange describes a change-trust operation.
type TrustlineChange struct {
	Account string
	Asset   Asset
	Limit   string
}

// AsTrustlineChange returns the envelope's operation if the envelope contains
// exactly one change-trust operation.
func (e *Envelope) AsTrustlineChange() (*TrustlineChange, error) {
	ops := e.Operations()
	if len(ops) != 1 {
		return nil, errors.MalformedInput.WithFormat("expected 1 operation, got %d", len(ops))
	}
	ct, ok := ops[0].(*txnbuild.ChangeTrust)
	if !ok {
		return nil, errors.MalformedInput.WithFormat("expected a change-trust operation, got %T", ops[0])
	}
	return &TrustlineChange{
		Account: e.OperationSource(ct),
		Asset:   AssetOf(ct.Line),
		Limit:   ct.Limit,
	}, nil
}

// PaymentOp describes a payment operation.
type PaymentOp struct {
	From   string
	To     string
	Asset  Asset
	Amount decimal.Decimal
}

// AsPayment returns the envelope's operation if the envelope contains exactly
// one payment operation.
func (e *Envelope) AsPayment() (*PaymentOp, error) {
	ops := e.Operations()
	if len(ops) != 1 {
		return nil, errors.MalformedInput.WithFormat("expected 1 operation, got %d", len(ops))
	}
	p, ok := ops[0].(*txnbuild.Payment)
	if !ok {
		return nil, errors.MalformedInput.WithFormat("expected a payment operation, got %T", ops[0])
	}
	amt, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return nil, errors.MalformedInput.WithFormat("payment amount: %w", err)
	}
	return &PaymentOp{
		From:   e.OperationSource(p),
		To:     p.Destination,
		Asset:  AssetOf(p.Asset),
		Amount: amt,
	}, nil
}
