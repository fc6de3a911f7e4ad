// Package source opens the forward-only candidate streams a crack session
// consumes.
package source

// Lines is an open, forward-only stream of raw candidate lines.
type Lines interface {
	// Next returns the next line without its terminator. ok is false at the
	// end of the stream or after a read failure; Err tells the two apart.
	Next() (line string, ok bool)
	Err() error
	Close() error
}

type Source interface {
	Open() (Lines, error)
	// Name describes the source for logs and reports.
	Name() string
}
