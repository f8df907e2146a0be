// Package address validates caller-supplied identities.
package address

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/juju/errors"
)

// ErrInvalidAddress indicates an address that failed validation.
const ErrInvalidAddress = errors.ConstError("invalid address")

const minLength = 3

// Validator turns a human-supplied string into a normalized identity.
type Validator interface {
	Validate(addr string) (string, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(addr string) (string, error)

// Validate calls f.
func (f ValidatorFunc) Validate(addr string) (string, error) {
	return f(addr)
}

// New returns a Bech32Validator when prefix is set and a BasicValidator otherwise.
func New(prefix string) Validator {
	if prefix == "" {
		return BasicValidator{}
	}
	return Bech32Validator{Prefix: prefix}
}

// BasicValidator accepts lowercase strings of at least three runes with no whitespace.
type BasicValidator struct{}

func (BasicValidator) Validate(addr string) (string, error) {
	if utf8.RuneCountInString(addr) < minLength {
		return "", fmt.Errorf("%w: %q is too short", ErrInvalidAddress, addr)
	}
	if strings.IndexFunc(addr, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrInvalidAddress, addr)
	}
	if strings.ToLower(addr) != addr {
		return "", fmt.Errorf("%w: %q is not normalized", ErrInvalidAddress, addr)
	}
	return addr, nil
}

// Bech32Validator accepts lowercase bech32 strings with the configured prefix.
type Bech32Validator struct {
	Prefix string
}

func (v Bech32Validator) Validate(addr string) (string, error) {
	if strings.ToLower(addr) != addr {
		return "", fmt.Errorf("%w: %q is not normalized", ErrInvalidAddress, addr)
	}
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if hrp != v.Prefix {
		return "", fmt.Errorf("%w: prefix %q, want %q", ErrInvalidAddress, hrp, v.Prefix)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %q has no payload", ErrInvalidAddress, addr)
	}
	return addr, nil
}
