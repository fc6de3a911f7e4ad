// Package cli is the command-line front end: it validates raw input, runs the
// generation or crack core and renders the results.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hashprobe/config"
	"github.com/ykhdr/hashprobe/internal/store/mongo"
	"github.com/ykhdr/hashprobe/internal/store/reportstore"
)

const usageText = `USAGE: hashprobe [-config path] <command> [OPTION]...

Commands:
  generate   write every candidate of a length range and alphabet to a dictionary file
  estimate   count the candidates (and dictionary size) of a length range and alphabet
  crack      search a bcrypt hash with a wordlist, stdin or brute-force candidates
  hash       produce a bcrypt hash for testing
  history    list reports of previous runs
`

// persistTimeout bounds report writes and client shutdown, which still run
// after the command context was cancelled.
const persistTimeout = 5 * time.Second

var errUsage = errors.New("invalid usage")

type App struct {
	l       zerolog.Logger
	cfg     *config.ProbeConfig
	reports reportstore.ReportStore
	// persistent is set when reports outlive the process.
	persistent bool
	stdin      io.Reader
	// interactive enables confirmation prompts.
	interactive bool
	closers     []func(context.Context) error
}

// Main parses args and runs the selected command. It returns the process exit
// code.
func Main(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("hashprobe", flag.ContinueOnError)
	configPath := global.String("config", "", "Path to the KDL config file (default ./config/config.kdl)")
	global.Usage = func() {
		fmt.Fprint(global.Output(), usageText)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.InitializeConfig([]string{*configPath})
	if err != nil {
		pterm.Error.Printfln("failed to load config: %s", err)
		return 1
	}

	app, err := NewApp(ctx, cfg, os.Stdin)
	if err != nil {
		pterm.Error.Printfln("%s", err)
		return 1
	}
	defer app.Close(ctx)

	if err := app.Run(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case err == errUsage:
			return 2
		case errors.Is(err, errUsage):
			pterm.Error.Printfln("%s", err)
			return 2
		}
		pterm.Error.Printfln("%s", err)
		return 1
	}
	return 0
}

func NewApp(ctx context.Context, cfg *config.ProbeConfig, stdin io.Reader) (*App, error) {
	app := &App{
		cfg:         cfg,
		stdin:       stdin,
		interactive: true,
		l: log.With().
			Str("domain", "cli").
			Logger(),
	}
	if cfg.MongoDB.Enabled() {
		client, err := mongo.NewClient(ctx, &cfg.MongoDB.ClientConfig)
		if err != nil {
			return nil, errors.Wrap(err, "error initializing mongo client")
		}
		app.closers = append(app.closers, client.Disconnect)
		app.reports = reportstore.NewReportStore(client.Database(cfg.MongoDB.DatabaseName()))
		app.persistent = true
	} else {
		app.reports = reportstore.NewReportStore(nil)
	}
	return app, nil
}

func (a *App) Close(ctx context.Context) {
	ctx, cancel := detached(ctx)
	defer cancel()
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil {
			a.l.Warn().Err(err).Msg("Error releasing resource")
		}
	}
}

func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "generate":
		return a.runGenerate(ctx, args)
	case "estimate":
		return a.runEstimate(args)
	case "crack":
		return a.runCrack(ctx, args)
	case "hash":
		return a.runHash(args)
	case "history":
		return a.runHistory(ctx)
	default:
		pterm.Error.Printfln("unknown command %q", command)
		fmt.Fprint(os.Stderr, usageText)
		return errUsage
	}
}

// detached keeps ctx values but not its cancellation, so a run stopped by a
// signal can still be recorded.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "USAGE: hashprobe %s [OPTION]...\n", name)
		fs.PrintDefaults()
	}
	return fs
}
