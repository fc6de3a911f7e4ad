package crack

import "time"

type State string

const (
	StateIdle      State = "IDLE"
	StateRunning   State = "RUNNING"
	StateFound     State = "FOUND"
	StateExhausted State = "EXHAUSTED"
	StateCancelled State = "CANCELLED"
	StateIOError   State = "IO_ERROR"
)

// Terminal reports whether no further lines are processed in s.
func (s State) Terminal() bool {
	switch s {
	case StateFound, StateExhausted, StateCancelled, StateIOError:
		return true
	default:
		return false
	}
}

type Stats struct {
	State     State
	Source    string
	Attempts  int64
	Skipped   int64
	StartTime time.Time
	Elapsed   time.Duration

	Found         bool
	FoundPassword string
	FoundSalt     string
	Cancelled     bool

	// VerifyErrors counts candidates whose comparison failed and were
	// treated as non-matches.
	VerifyErrors int64
	// Complete is false when the run ended on a source failure.
	Complete bool
	Err      error
}

func (s *Stats) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Attempts) / secs
}

type Progress struct {
	Attempts  int64
	Elapsed   time.Duration
	Rate      float64
	Candidate string
}

type ProgressFunc func(Progress)
