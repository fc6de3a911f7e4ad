package source

import (
	"io"

	"github.com/pkg/errors"
	"github.com/ykhdr/hashprobe/internal/candidate"
)

type Type int

const (
	UnknownSourceType Type = iota
	WordlistSourceType
	ReaderSourceType
	BruteForceSourceType
)

const (
	wordlistSourceName   = "wordlist"
	readerSourceName     = "stdin"
	bruteForceSourceName = "brute-force"
)

var ErrUnknownSource = errors.New("unknown candidate source")

type Params struct {
	Path   string
	Reader io.Reader
	Spec   candidate.Spec
}

func NewSource(sourceType Type, params Params) (Source, error) {
	switch sourceType {
	case WordlistSourceType:
		return Wordlist(params.Path), nil
	case ReaderSourceType:
		return FromReader(params.Reader, readerSourceName), nil
	case BruteForceSourceType:
		return BruteForce(params.Spec)
	default:
		return nil, ErrUnknownSource
	}
}

func ParseSourceName(name string) Type {
	switch name {
	case wordlistSourceName:
		return WordlistSourceType
	case readerSourceName:
		return ReaderSourceType
	case bruteForceSourceName:
		return BruteForceSourceType
	default:
		return UnknownSourceType
	}
}

func (t Type) String() string {
	switch t {
	case WordlistSourceType:
		return wordlistSourceName
	case ReaderSourceType:
		return readerSourceName
	case BruteForceSourceType:
		return bruteForceSourceName
	default:
		return "unknown"
	}
}
