// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"strings"

	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
)

// AddressLength is the length of an encoded account public key.
const AddressLength = 56

// AddressPrefix is the leading character of an encoded account public key.
const AddressPrefix = "G"

// ValidateAddress checks that s has the shape of an account public key. It
// never touches the network.
func ValidateAddress(s string) error {
	if len(s) != AddressLength || !strings.HasPrefix(s, AddressPrefix) {
		return errors.InvalidAddress.WithFormat("%q is not a valid account address", s)
	}
	if !strkey.IsValidEd25519PublicKey(s) {
		return errors.InvalidAddress.WithFormat("%q has an invalid checksum", s)
	}
	return nil
}

// AmountDecimals is the number of decimal places the ledger records amounts
// with.
const AmountDecimals = 7

// ValidateAmount checks that d is positive and exactly representable on the
// ledger.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return errors.InvalidAmount.WithFormat("%v is not positive", d)
	}
	if !d.Equal(d.Truncate(AmountDecimals)) {
		return errors.InvalidAmount.WithFormat("%v has more than %d decimal places", d, AmountDecimals)
	}
	return nil
}
