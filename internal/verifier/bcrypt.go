// Package verifier compares candidates against a bcrypt target hash.
package verifier

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hashprobe/internal/errs"
	"github.com/ykhdr/hashprobe/internal/hashdesc"
	"golang.org/x/crypto/bcrypt"
)

type Verifier interface {
	Verify(candidate string, target *hashdesc.Descriptor) bool
}

// CompareFunc is the one-way comparison primitive: nil on match,
// bcrypt.ErrMismatchedHashAndPassword on mismatch, anything else on failure.
type CompareFunc func(hashedPassword, password []byte) error

type BcryptVerifier struct {
	l        zerolog.Logger
	compare  CompareFunc
	failures int64
	onError  func(*errs.VerificationError)
}

func NewBcryptVerifier() *BcryptVerifier {
	return NewVerifier(bcrypt.CompareHashAndPassword)
}

func NewVerifier(compare CompareFunc) *BcryptVerifier {
	return &BcryptVerifier{
		compare: compare,
		onError: func(*errs.VerificationError) {},
		l: log.With().
			Str("domain", "verifier").
			Str("type", "bcrypt").
			Logger(),
	}
}

// OnError registers a hook called for every failed comparison.
func (v *BcryptVerifier) OnError(fn func(*errs.VerificationError)) {
	if fn != nil {
		v.onError = fn
	}
}

// FailureCount returns how many comparisons errored instead of mismatching.
func (v *BcryptVerifier) FailureCount() int64 {
	return v.failures
}

// Verify reports whether candidate hashes to target. A comparison error is a
// non-match: it is logged and counted, never propagated.
func (v *BcryptVerifier) Verify(candidate string, target *hashdesc.Descriptor) bool {
	err := v.compare([]byte(target.Raw), []byte(candidate))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		v.failures++
		vErr := &errs.VerificationError{Candidate: candidate, Err: err}
		v.l.Info().Err(err).Int("candidate-length", len(candidate)).Msg("Candidate comparison failed, treating as non-match")
		v.onError(vErr)
		return false
	}
}

// ErrCostRange is returned for costs bcrypt would silently replace.
var ErrCostRange = errors.Errorf("bcrypt cost must be within %d-%d", bcrypt.MinCost, bcrypt.MaxCost)

// HashPassword produces a 60-character bcrypt hash of password at exactly cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", errors.Wrapf(ErrCostRange, "cost %d", cost)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "generate bcrypt hash")
	}
	return string(h), nil
}
