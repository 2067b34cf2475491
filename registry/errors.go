// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"errors"
	"fmt"
)

// Kind classifies a registry failure.
type Kind uint8

const (
	Unauthorized Kind = iota + 1
	AdminOnly
	InvalidAddress
	InvalidConfiguration
	EmptyValidatorSet
	NotFound
	AlreadyValidator
	NotValidator
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case AdminOnly:
		return "admin only"
	case InvalidAddress:
		return "invalid address"
	case InvalidConfiguration:
		return "invalid configuration"
	case EmptyValidatorSet:
		return "empty validator set"
	case NotFound:
		return "not found"
	case AlreadyValidator:
		return "already validator"
	case NotValidator:
		return "not validator"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is returned by registry operations that were rejected. Nothing is changed when an
// operation returns an Error. The message is the revert reason the contract reports.
type Error struct {
	Kind    Kind
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Is reports whether target is an *Error of the same kind, so errors.Is matches
// the sentinels below regardless of the message detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnauthorized         = &Error{Unauthorized, "sender is not a validator"}
	ErrAdminOnly            = &Error{AdminOnly, "sender is not the admin"}
	ErrInvalidAddress       = &Error{InvalidAddress, "invalid address"}
	ErrInvalidConfiguration = &Error{InvalidConfiguration, "invalid configuration"}
	ErrEmptyValidatorSet    = &Error{EmptyValidatorSet, "validator list cannot be empty"}
	ErrNotFound             = &Error{NotFound, "sender has not voted for this account"}
	ErrAlreadyValidator     = &Error{AlreadyValidator, "account is already a validator"}
	ErrNotValidator         = &Error{NotValidator, "account is not a validator"}
)

// KindOf returns the kind of a registry error, or false if err is not one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
