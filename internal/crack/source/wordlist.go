package source

import (
	"os"

	"github.com/ykhdr/hashprobe/internal/errs"
)

type wordlistSource struct {
	path string
}

func Wordlist(path string) Source {
	return &wordlistSource{path: path}
}

func (s *wordlistSource) Open() (Lines, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errs.NewIOError("open wordlist", s.path, err)
	}
	return newLineReader(f, s.path, f), nil
}

func (s *wordlistSource) Name() string {
	return s.path
}
