// Package crack drives a dictionary attack against a single bcrypt target.
package crack

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hashprobe/internal/control"
	"github.com/ykhdr/hashprobe/internal/crack/source"
	"github.com/ykhdr/hashprobe/internal/errs"
	"github.com/ykhdr/hashprobe/internal/hashdesc"
	"github.com/ykhdr/hashprobe/internal/verifier"
)

const (
	DefaultProgressEvery = 250
	DefaultDisplayWidth  = 32
)

var ErrSessionUsed = errors.New("crack session already ran")

// Session is a one-shot search: it runs once, from Idle to exactly one of
// Found, Exhausted, Cancelled or IOError.
type Session struct {
	l             zerolog.Logger
	target        *hashdesc.Descriptor
	verifier      verifier.Verifier
	progressEvery int64
	displayWidth  int
	onProgress    ProgressFunc
	now           func() time.Time

	state        State
	stats        Stats
	failuresBase int64
}

type Option func(*Session)

func WithProgress(every int, fn ProgressFunc) Option {
	return func(s *Session) {
		if every > 0 {
			s.progressEvery = int64(every)
		}
		if fn != nil {
			s.onProgress = fn
		}
	}
}

func WithDisplayWidth(width int) Option {
	return func(s *Session) {
		if width > 0 {
			s.displayWidth = width
		}
	}
}

func WithVerifier(v verifier.Verifier) Option {
	return func(s *Session) {
		if v != nil {
			s.verifier = v
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(target *hashdesc.Descriptor, opts ...Option) *Session {
	s := &Session{
		target:        target,
		progressEvery: DefaultProgressEvery,
		displayWidth:  DefaultDisplayWidth,
		onProgress:    func(Progress) {},
		now:           time.Now,
		state:         StateIdle,
		l: log.With().
			Str("domain", "crack").
			Str("type", "session").
			Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.verifier == nil {
		s.verifier = verifier.NewBcryptVerifier()
	}
	return s
}

func (s *Session) State() State {
	return s.state
}

// Run streams candidates from src until a match, the end of src, a set
// signal or a source failure. The returned stats are a copy; the error is
// non-nil only for source failures and reuse of the session.
func (s *Session) Run(src source.Source, signal control.Signal) (*Stats, error) {
	if s.state != StateIdle {
		return nil, ErrSessionUsed
	}
	if signal == nil {
		signal = control.Never
	}
	s.stats = Stats{
		Source:    src.Name(),
		StartTime: s.now(),
	}
	s.failuresBase = s.verifierFailures()
	s.transition(StateRunning)

	s.l.Info().
		Str("hash", s.target.Raw).
		Str("source", src.Name()).
		Msg("Starting crack session")

	lines, err := src.Open()
	if err != nil {
		return s.fail(err)
	}
	defer func() {
		if cerr := lines.Close(); cerr != nil {
			s.l.Warn().Err(cerr).Str("source", src.Name()).Msg("Error closing candidate source")
		}
	}()

	for !s.state.Terminal() {
		if signal.Cancelled() {
			s.stats.Cancelled = true
			s.transition(StateCancelled)
			break
		}
		line, ok := lines.Next()
		if !ok {
			if err := lines.Err(); err != nil {
				return s.fail(err)
			}
			s.transition(StateExhausted)
			break
		}
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			s.stats.Skipped++
			continue
		}

		s.stats.Attempts++
		if s.verifier.Verify(candidate, s.target) {
			s.stats.Found = true
			s.stats.FoundPassword = candidate
			s.stats.FoundSalt = s.target.Salt
			s.transition(StateFound)
			break
		}
		if s.stats.Attempts%s.progressEvery == 0 {
			s.report(candidate)
		}
	}

	s.finish()
	return s.snapshot(), nil
}

func (s *Session) fail(err error) (*Stats, error) {
	var ioErr *errs.IOError
	if !errors.As(err, &ioErr) {
		err = errs.NewIOError("read candidates", s.stats.Source, err)
	}
	s.stats.Err = err
	s.transition(StateIOError)
	s.finish()
	return s.snapshot(), err
}

func (s *Session) transition(next State) {
	s.l.Debug().
		Str("from", string(s.state)).
		Str("to", string(next)).
		Int64("attempts", s.stats.Attempts).
		Msg("Session state change")
	s.state = next
	s.stats.State = next
}

func (s *Session) finish() {
	s.stats.Elapsed = s.now().Sub(s.stats.StartTime)
	s.stats.Complete = s.state != StateIOError
	s.stats.VerifyErrors = s.verifierFailures() - s.failuresBase

	event := s.l.Info()
	if s.state == StateIOError {
		event = s.l.Error().Err(s.stats.Err)
	}
	event.
		Str("state", string(s.state)).
		Int64("attempts", s.stats.Attempts).
		Int64("skipped", s.stats.Skipped).
		Dur("elapsed", s.stats.Elapsed).
		Msg("Crack session finished")
}

type failureCounter interface {
	FailureCount() int64
}

func (s *Session) verifierFailures() int64 {
	if counter, ok := s.verifier.(failureCounter); ok {
		return counter.FailureCount()
	}
	return 0
}

func (s *Session) report(candidate string) {
	elapsed := s.now().Sub(s.stats.StartTime)
	p := Progress{
		Attempts:  s.stats.Attempts,
		Elapsed:   elapsed,
		Candidate: truncate(candidate, s.displayWidth),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		p.Rate = float64(p.Attempts) / secs
	}
	s.onProgress(p)
}

func (s *Session) snapshot() *Stats {
	st := s.stats
	return &st
}

func truncate(candidate string, width int) string {
	if utf8.RuneCountInString(candidate) <= width {
		return candidate
	}
	if width <= 3 {
		return string([]rune(candidate)[:width])
	}
	return string([]rune(candidate)[:width-3]) + "..."
}
