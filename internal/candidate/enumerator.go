// Package candidate enumerates every string over a fixed alphabet whose
// length lies in a range, in a deterministic order and without holding the
// results in memory.
package candidate

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"unicode/utf8"

	"github.com/ykhdr/hashprobe/internal/errs"
)

var (
	ErrEmptyAlphabet   = errors.New("alphabet is empty")
	ErrDuplicateSymbol = errors.New("alphabet symbols must be distinct")
	ErrMinLength       = errors.New("minimum length must be at least 1")
	ErrLengthRange     = errors.New("maximum length is less than minimum length")
)

type Spec struct {
	MinLength int
	MaxLength int
	// Alphabet symbols in enumeration order.
	Alphabet string
}

func (s Spec) Validate() error {
	if s.Alphabet == "" {
		return &errs.ValidationError{Field: "alphabet", Reason: ErrEmptyAlphabet.Error(), Err: ErrEmptyAlphabet}
	}
	seen := make(map[rune]struct{}, len(s.Alphabet))
	pos := 0
	for _, r := range s.Alphabet {
		pos++
		if _, dup := seen[r]; dup {
			return &errs.ValidationError{
				Field:    "alphabet",
				Value:    string(r),
				Position: pos,
				Reason:   ErrDuplicateSymbol.Error(),
				Err:      ErrDuplicateSymbol,
			}
		}
		seen[r] = struct{}{}
	}
	if s.MinLength < 1 {
		return &errs.ValidationError{
			Field:  "min length",
			Value:  fmt.Sprint(s.MinLength),
			Reason: ErrMinLength.Error(),
			Err:    ErrMinLength,
		}
	}
	if s.MaxLength < s.MinLength {
		return &errs.ValidationError{
			Field:  "length range",
			Value:  fmt.Sprintf("%d-%d", s.MinLength, s.MaxLength),
			Reason: ErrLengthRange.Error(),
			Err:    ErrLengthRange,
		}
	}
	return nil
}

// EstimateCount returns the sum of alphabetSize^k for k in [minLength, maxLength].
func EstimateCount(minLength, maxLength, alphabetSize int) *big.Int {
	total := new(big.Int)
	if minLength > maxLength || alphabetSize <= 0 {
		return total
	}
	if minLength < 0 {
		minLength = 0
	}
	n := big.NewInt(int64(alphabetSize))
	term := new(big.Int).Exp(n, big.NewInt(int64(minLength)), nil)
	for k := minLength; k <= maxLength; k++ {
		total.Add(total, term)
		term.Mul(term, n)
	}
	return total
}

type Enumerator struct {
	spec    Spec
	symbols []rune
}

func NewEnumerator(spec Spec) (*Enumerator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Enumerator{
		spec:    spec,
		symbols: []rune(spec.Alphabet),
	}, nil
}

func (e *Enumerator) Spec() Spec {
	return e.spec
}

func (e *Enumerator) Count() *big.Int {
	return EstimateCount(e.spec.MinLength, e.spec.MaxLength, len(e.symbols))
}

// EstimateSize returns the exact size in bytes of the dictionary the
// enumerator produces, newline terminators included.
func (e *Enumerator) EstimateSize() *big.Int {
	symbolBytes := 0
	for _, r := range e.symbols {
		symbolBytes += utf8.RuneLen(r)
	}
	n := big.NewInt(int64(len(e.symbols)))
	size := new(big.Int)
	// Each position holds every symbol equally often, so a length-k string
	// averages k*symbolBytes/n bytes; over n^k strings that is k*symbolBytes*n^(k-1).
	perLength := new(big.Int)
	for k := e.spec.MinLength; k <= e.spec.MaxLength; k++ {
		count := new(big.Int).Exp(n, big.NewInt(int64(k)), nil)
		perLength.Exp(n, big.NewInt(int64(k-1)), nil)
		perLength.Mul(perLength, big.NewInt(int64(k*symbolBytes)))
		size.Add(size, perLength)
		size.Add(size, count)
	}
	return size
}

// Produce yields every candidate grouped by ascending length; within a length
// candidates come in lexicographic order of alphabet index.
func (e *Enumerator) Produce() iter.Seq[string] {
	return func(yield func(string) bool) {
		for length := e.spec.MinLength; length <= e.spec.MaxLength; length++ {
			if !e.produceLength(length, yield) {
				return
			}
		}
	}
}

func (e *Enumerator) produceLength(length int, yield func(string) bool) bool {
	radix := len(e.symbols)
	digits := make([]int, length)
	buf := make([]rune, length)
	for i := range buf {
		buf[i] = e.symbols[0]
	}
	for {
		if !yield(string(buf)) {
			return false
		}

		i := length - 1
		for ; i >= 0; i-- {
			digits[i]++
			if digits[i] < radix {
				buf[i] = e.symbols[digits[i]]
				break
			}
			digits[i] = 0
			buf[i] = e.symbols[0]
		}
		if i < 0 {
			return true
		}
	}
}
