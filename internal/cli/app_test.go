package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/hashprobe/config"
	"github.com/ykhdr/hashprobe/internal/hashdesc"
	"github.com/ykhdr/hashprobe/internal/messages/report"
	"github.com/ykhdr/hashprobe/internal/store/reportstore"
	"github.com/ykhdr/hashprobe/internal/verifier"
)

func TestMain(m *testing.M) {
	pterm.DisableOutput()
	os.Exit(m.Run())
}

func newTestApp(t *testing.T, stdin string) *App {
	t.Helper()
	app, err := NewApp(context.Background(), config.DefaultConfig(), strings.NewReader(stdin))
	require.NoError(t, err)
	app.interactive = false
	return app
}

func TestGenerateCommand(t *testing.T) {
	app := newTestApp(t, "")
	out := filepath.Join(t.TempDir(), "dicts", "ab.txt")

	err := app.Run(context.Background(), "generate", []string{"-range", "1-2", "-chars", "abba", "-o", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\naa\nab\nba\nbb\n", string(data))

	reports, err := app.reports.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.KindGenerate, reports[0].Kind)
	assert.Equal(t, "DONE", reports[0].State)
	assert.Equal(t, "6", reports[0].Attempts)
}

func TestGenerateCommandNeedsConfirmation(t *testing.T) {
	app := newTestApp(t, "")
	app.cfg.Generate.ConfirmThreshold = 5
	out := filepath.Join(t.TempDir(), "big.txt")

	err := app.Run(context.Background(), "generate", []string{"-range", "1-3", "-chars", "ab", "-o", out})

	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestGenerateCommandRejectsBadRange(t *testing.T) {
	app := newTestApp(t, "")

	err := app.Run(context.Background(), "generate", []string{"-range", "3-1", "-chars", "ab", "-o", filepath.Join(t.TempDir(), "x")})

	assert.Error(t, err)
}

func TestCrackCommandWordlist(t *testing.T) {
	raw, err := verifier.HashPassword("ba", hashdesc.SupportedCost)
	require.NoError(t, err)
	wordlist := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(wordlist, []byte("aa\n\nab\nba\nbb\n"), 0o644))
	app := newTestApp(t, "")

	err = app.Run(context.Background(), "crack", []string{"-hash", raw, "-w", wordlist})
	require.NoError(t, err)

	reports, err := app.reports.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "FOUND", reports[0].State)
	assert.Equal(t, "ba", reports[0].Password)
	assert.Equal(t, "3", reports[0].Attempts)
	assert.Equal(t, raw[7:29], reports[0].Salt)
}

func TestCrackCommandStdin(t *testing.T) {
	raw, err := verifier.HashPassword("zz", hashdesc.SupportedCost)
	require.NoError(t, err)
	app := newTestApp(t, "x\ny\n")

	err = app.Run(context.Background(), "crack", []string{"-hash", raw, "-stdin"})
	require.NoError(t, err)

	reports, err := app.reports.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "EXHAUSTED", reports[0].State)
	assert.Equal(t, "2", reports[0].Attempts)
}

func TestCrackCommandCancelled(t *testing.T) {
	raw, err := verifier.HashPassword("zz", hashdesc.SupportedCost)
	require.NoError(t, err)
	app := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = app.Run(ctx, "crack", []string{"-hash", raw, "-brute", "-range", "1-3", "-chars", "xyz"})
	require.NoError(t, err)

	reports, err := app.reports.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "CANCELLED", reports[0].State)
	assert.Equal(t, "0", reports[0].Attempts)
}

func TestCrackCommandMissingWordlist(t *testing.T) {
	raw, err := verifier.HashPassword("zz", hashdesc.SupportedCost)
	require.NoError(t, err)
	app := newTestApp(t, "")

	err = app.Run(context.Background(), "crack", []string{"-hash", raw, "-w", filepath.Join(t.TempDir(), "nope.txt")})

	assert.ErrorIs(t, err, os.ErrNotExist)
	reports, listErr := app.reports.List(context.Background())
	require.NoError(t, listErr)
	require.Len(t, reports, 1)
	assert.Equal(t, "IO_ERROR", reports[0].State)
	assert.NotEmpty(t, reports[0].ErrorReason)
}

func TestCrackCommandUsage(t *testing.T) {
	raw, err := verifier.HashPassword("zz", hashdesc.SupportedCost)
	require.NoError(t, err)
	app := newTestApp(t, "")

	err = app.Run(context.Background(), "crack", []string{"-hash", raw, "-w", "a.txt", "-stdin"})
	assert.ErrorIs(t, err, errUsage)

	err = app.Run(context.Background(), "crack", []string{"-hash", "$2b$10$short", "-stdin"})
	assert.ErrorIs(t, err, hashdesc.ErrLength)
}

func TestUnknownCommand(t *testing.T) {
	err := newTestApp(t, "").Run(context.Background(), "rainbow", nil)
	assert.ErrorIs(t, err, errUsage)
}

func TestEstimateAndHashCommands(t *testing.T) {
	app := newTestApp(t, "")

	assert.NoError(t, app.Run(context.Background(), "estimate", []string{"-range", "1-3", "-chars", "abc"}))
	assert.NoError(t, app.Run(context.Background(), "hash", []string{"-p", "secret"}))
	assert.ErrorIs(t, app.Run(context.Background(), "hash", nil), errUsage)
	assert.NoError(t, app.Run(context.Background(), "history", nil))
}

// ctxBoundStore refuses writes once the caller's context is done, like a
// database client would.
type ctxBoundStore struct {
	reportstore.ReportStore
}

func (s *ctxBoundStore) Save(ctx context.Context, r *report.Info) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.ReportStore.Save(ctx, r)
}

func TestCancelledRunsAreStillReported(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    func(t *testing.T) []string
	}{
		{
			name:    "crack",
			command: "crack",
			args: func(t *testing.T) []string {
				raw, err := verifier.HashPassword("zz", hashdesc.SupportedCost)
				require.NoError(t, err)
				return []string{"-hash", raw, "-brute", "-range", "1-2", "-chars", "xyz"}
			},
		},
		{
			name:    "generate",
			command: "generate",
			args: func(t *testing.T) []string {
				return []string{"-range", "1-2", "-chars", "ab", "-o", filepath.Join(t.TempDir(), "d.txt")}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, "")
			app.reports = &ctxBoundStore{ReportStore: reportstore.NewReportStore(nil)}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			require.NoError(t, app.Run(ctx, tt.command, tt.args(t)))

			reports, err := app.reports.List(context.Background())
			require.NoError(t, err)
			require.Len(t, reports, 1)
			assert.Equal(t, "CANCELLED", reports[0].State)
		})
	}
}

func TestCloseOutlivesCancelledContext(t *testing.T) {
	app := newTestApp(t, "")
	var (
		closeErr    error
		hasDeadline bool
	)
	app.closers = append(app.closers, func(ctx context.Context) error {
		closeErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
		return closeErr
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app.Close(ctx)

	assert.NoError(t, closeErr)
	assert.True(t, hasDeadline)
}

func TestHistoryNotice(t *testing.T) {
	app := newTestApp(t, "")
	assert.Equal(t, memoryOnlyNotice, app.historyNotice())

	app.persistent = true
	assert.Empty(t, app.historyNotice())
}

func TestHashCommandRejectsUnsupportedCost(t *testing.T) {
	err := newTestApp(t, "").Run(context.Background(), "hash", []string{"-p", "secret", "-cost", "2"})

	assert.ErrorIs(t, err, verifier.ErrCostRange)
}
