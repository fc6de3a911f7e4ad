package source

import (
	"fmt"
	"iter"

	"github.com/ykhdr/hashprobe/internal/candidate"
)

type bruteForceSource struct {
	enum *candidate.Enumerator
}

// BruteForce feeds the enumerator output to a session directly, without
// materialising a dictionary on disk.
func BruteForce(spec candidate.Spec) (Source, error) {
	enum, err := candidate.NewEnumerator(spec)
	if err != nil {
		return nil, err
	}
	return &bruteForceSource{enum: enum}, nil
}

func (s *bruteForceSource) Open() (Lines, error) {
	next, stop := iter.Pull(s.enum.Produce())
	return &pulledLines{next: next, stop: stop}, nil
}

func (s *bruteForceSource) Name() string {
	spec := s.enum.Spec()
	return fmt.Sprintf("brute-force[%d-%d]%q", spec.MinLength, spec.MaxLength, spec.Alphabet)
}

type pulledLines struct {
	next func() (string, bool)
	stop func()
}

func (p *pulledLines) Next() (string, bool) {
	return p.next()
}

func (p *pulledLines) Err() error {
	return nil
}

func (p *pulledLines) Close() error {
	p.stop()
	return nil
}
