// Package hashdesc parses the 60-character bcrypt target hash format
// $<variant>$<cost>$<22-char salt><31-char digest>.
package hashdesc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ykhdr/hashprobe/internal/errs"
)

const (
	HashLength   = 60
	SaltLength   = 22
	DigestLength = 31
	// SupportedCost is the only accepted work factor.
	SupportedCost = 10

	prefixLength = 7 // "$2b$10$"
	costField    = "10"
	alphabet     = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type Variant string

const (
	Variant2a Variant = "2a"
	Variant2b Variant = "2b"
	Variant2y Variant = "2y"
)

var variants = []Variant{Variant2a, Variant2b, Variant2y}

var (
	ErrEmpty   = errors.New("hash is empty")
	ErrLength  = errors.New("hash must be exactly 60 characters")
	ErrVariant = errors.New("unsupported scheme variant")
	ErrCost    = errors.New("unsupported cost")
	ErrCharset = errors.New("invalid character")
)

type Descriptor struct {
	Variant Variant
	Cost    int
	Salt    string
	Digest  string
	Raw     string
}

func (d *Descriptor) String() string {
	return d.Raw
}

// Parse validates raw and splits it into its fields. Rules are checked in
// order: length, scheme prefix, then the encoded salt and digest.
func Parse(raw string) (*Descriptor, error) {
	if raw == "" {
		return nil, invalid("", 0, ErrEmpty.Error(), ErrEmpty)
	}
	// positions and lengths count characters, not bytes
	chars := []rune(raw)
	if len(chars) != HashLength {
		return nil, invalid("", 0, fmt.Sprintf("hash must be exactly %d characters, got %d", HashLength, len(chars)), ErrLength)
	}

	if chars[0] != '$' || chars[3] != '$' {
		return nil, invalid(string(chars[:4]), 1, "malformed scheme prefix, expected $2a$, $2b$ or $2y$", ErrVariant)
	}
	variant := Variant(chars[1:3])
	if !isKnownVariant(variant) {
		return nil, invalid(string(variant), 2, fmt.Sprintf("%s %q, expected one of 2a, 2b, 2y", ErrVariant, variant), ErrVariant)
	}
	if cost := string(chars[4:6]); cost != costField || chars[6] != '$' {
		return nil, invalid(string(chars[4:7]), 5, fmt.Sprintf("%s %q, only %s is supported", ErrCost, cost, costField), ErrCost)
	}

	for i := prefixLength; i < HashLength; i++ {
		if !strings.ContainsRune(alphabet, chars[i]) {
			return nil, invalid(string(chars[i]), i+1, ErrCharset.Error(), ErrCharset)
		}
	}

	return &Descriptor{
		Variant: variant,
		Cost:    SupportedCost,
		Salt:    raw[prefixLength : prefixLength+SaltLength],
		Digest:  raw[prefixLength+SaltLength:],
		Raw:     raw,
	}, nil
}

func isKnownVariant(v Variant) bool {
	for _, known := range variants {
		if v == known {
			return true
		}
	}
	return false
}

func invalid(value string, position int, reason string, kind error) *errs.ValidationError {
	return &errs.ValidationError{
		Field:    "hash",
		Value:    value,
		Position: position,
		Reason:   reason,
		Err:      kind,
	}
}
