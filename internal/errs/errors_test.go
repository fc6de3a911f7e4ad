package errs

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("bad symbol")

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "hash", Value: "#", Position: 14, Reason: "invalid character", Err: errSentinel}

	assert.Equal(t, `invalid hash: invalid character at position 14 ("#")`, err.Error())
	assert.ErrorIs(t, err, errSentinel)
}

func TestIOErrorUnwrap(t *testing.T) {
	var err error = NewIOError("open wordlist", "/nope", os.ErrNotExist)

	assert.ErrorIs(t, err, os.ErrNotExist)
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open wordlist /nope: file does not exist", err.Error())
}
