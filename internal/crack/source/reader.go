package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/ykhdr/hashprobe/internal/errs"
)

// lineReader splits on '\n' without a line length limit and drops a trailing
// '\r'. A final line without terminator is still returned.
type lineReader struct {
	r      *bufio.Reader
	name   string
	closer io.Closer
	err    error
	done   bool
}

func newLineReader(r io.Reader, name string, closer io.Closer) *lineReader {
	return &lineReader{
		r:      bufio.NewReaderSize(r, 64*1024),
		name:   name,
		closer: closer,
	}
}

func (l *lineReader) Next() (string, bool) {
	if l.done {
		return "", false
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if err != io.EOF {
			l.err = errs.NewIOError("read", l.name, err)
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

func (l *lineReader) Err() error {
	return l.err
}

func (l *lineReader) Close() error {
	l.done = true
	if l.closer == nil {
		return nil
	}
	if err := l.closer.Close(); err != nil {
		return errs.NewIOError("close", l.name, err)
	}
	return nil
}

type readerSource struct {
	r    io.Reader
	name string
}

// FromReader streams lines from r. r is not closed by the returned Lines.
func FromReader(r io.Reader, name string) Source {
	return &readerSource{r: r, name: name}
}

func (s *readerSource) Open() (Lines, error) {
	return newLineReader(s.r, s.name, nil), nil
}

func (s *readerSource) Name() string {
	return s.name
}
