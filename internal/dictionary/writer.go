// Package dictionary drains a candidate enumerator into a line-oriented file.
package dictionary

import (
	"bufio"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hashprobe/internal/candidate"
	"github.com/ykhdr/hashprobe/internal/control"
	"github.com/ykhdr/hashprobe/internal/errs"
)

const (
	DefaultProgressEvery = 10000

	dirPerm  = 0o755
	filePerm = 0o644
)

type Stats struct {
	Path      string
	Total     *big.Int
	Current   *big.Int
	StartTime time.Time
	Elapsed   time.Duration
	Cancelled bool
}

// Rate is the throughput in candidates per second.
func (s *Stats) Rate() float64 {
	return rate(s.Current, s.Elapsed)
}

type Progress struct {
	Current *big.Int
	Total   *big.Int
	Elapsed time.Duration
	Rate    float64
	Done    bool
}

// Percent returns completion in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == nil || p.Total.Sign() == 0 {
		return 100
	}
	ratio, _ := new(big.Rat).SetFrac(p.Current, p.Total).Float64()
	return ratio * 100
}

type ProgressFunc func(Progress)

type Writer struct {
	l             zerolog.Logger
	progressEvery int
	onProgress    ProgressFunc
	signal        control.Signal
	now           func() time.Time
}

type Option func(*Writer)

// WithProgress reports progress every n candidates and once on completion.
func WithProgress(every int, fn ProgressFunc) Option {
	return func(w *Writer) {
		if every > 0 {
			w.progressEvery = every
		}
		w.onProgress = fn
	}
}

func WithSignal(signal control.Signal) Option {
	return func(w *Writer) {
		if signal != nil {
			w.signal = signal
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		progressEvery: DefaultProgressEvery,
		onProgress:    func(Progress) {},
		signal:        control.Never,
		now:           time.Now,
		l: log.With().
			Str("domain", "dictionary").
			Logger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.onProgress == nil {
		w.onProgress = func(Progress) {}
	}
	return w
}

// Generate writes every candidate of spec to path, one per line, creating
// missing parent directories. On failure the partially written file is kept.
func (w *Writer) Generate(spec candidate.Spec, path string) (stats *Stats, err error) {
	enum, err := candidate.NewEnumerator(spec)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errs.NewIOError("create directory", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, errs.NewIOError("create dictionary", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errs.NewIOError("close dictionary", path, cerr)
		}
	}()

	w.l.Info().
		Str("path", path).
		Int("min-length", spec.MinLength).
		Int("max-length", spec.MaxLength).
		Str("total", enum.Count().String()).
		Msg("Generating dictionary")

	stats, err = w.write(f, enum, path)
	if stats != nil {
		stats.Path = path
	}
	return stats, err
}

// WriteTo writes every candidate of spec to out.
func (w *Writer) WriteTo(out io.Writer, spec candidate.Spec) (*Stats, error) {
	enum, err := candidate.NewEnumerator(spec)
	if err != nil {
		return nil, err
	}
	return w.write(out, enum, "")
}

func (w *Writer) write(out io.Writer, enum *candidate.Enumerator, path string) (*Stats, error) {
	stats := &Stats{
		Total:     enum.Count(),
		Current:   new(big.Int),
		StartTime: w.now(),
	}
	bw := bufio.NewWriter(out)
	one := big.NewInt(1)
	sinceReport := 0

	for s := range enum.Produce() {
		if w.signal.Cancelled() {
			stats.Cancelled = true
			break
		}
		if _, err := bw.WriteString(s); err != nil {
			return w.abort(stats, path, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return w.abort(stats, path, err)
		}
		stats.Current.Add(stats.Current, one)
		sinceReport++
		if sinceReport == w.progressEvery {
			sinceReport = 0
			w.report(stats, false)
		}
	}
	if err := bw.Flush(); err != nil {
		return w.abort(stats, path, err)
	}

	w.report(stats, true)
	w.l.Info().
		Str("written", stats.Current.String()).
		Dur("elapsed", stats.Elapsed).
		Bool("cancelled", stats.Cancelled).
		Msg("Dictionary generation finished")
	return stats, nil
}

func (w *Writer) abort(stats *Stats, path string, err error) (*Stats, error) {
	stats.Elapsed = w.now().Sub(stats.StartTime)
	w.l.Error().Err(err).Str("path", path).Str("written", stats.Current.String()).Msg("Dictionary write failed")
	return stats, errs.NewIOError("write dictionary", path, err)
}

func (w *Writer) report(stats *Stats, done bool) {
	stats.Elapsed = w.now().Sub(stats.StartTime)
	w.onProgress(Progress{
		Current: new(big.Int).Set(stats.Current),
		Total:   stats.Total,
		Elapsed: stats.Elapsed,
		Rate:    stats.Rate(),
		Done:    done,
	})
}

func rate(n *big.Int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f / secs
}
