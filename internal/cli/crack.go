package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/ykhdr/hashprobe/internal/candidate"
	"github.com/ykhdr/hashprobe/internal/control"
	"github.com/ykhdr/hashprobe/internal/crack"
	"github.com/ykhdr/hashprobe/internal/crack/source"
	"github.com/ykhdr/hashprobe/internal/hashdesc"
	"github.com/ykhdr/hashprobe/internal/messages/report"
	"github.com/ykhdr/hashprobe/internal/verifier"
)

func (a *App) runCrack(ctx context.Context, args []string) error {
	fs := newFlagSet("crack")
	rawHash := fs.String("hash", "", "Target bcrypt hash ($2a$, $2b$ or $2y$, cost 10)")
	wordlist := fs.String("w", "", "Wordlist file, one candidate per line")
	useStdin := fs.Bool("stdin", false, "Read candidates from standard input")
	brute := fs.Bool("brute", false, "Enumerate candidates from -range and -chars instead of reading a wordlist")
	rangeStr, chars := a.specFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	target, err := hashdesc.Parse(*rawHash)
	if err != nil {
		pterm.Info.Println("Expected format: $2a$10$..., $2b$10$... or $2y$10$... (60 characters)")
		return err
	}
	pterm.Success.Println("Hash is valid")

	sourceType, params, err := a.crackSource(*wordlist, *useStdin, *brute, *rangeStr, *chars)
	if err != nil {
		fs.Usage()
		return err
	}
	src, err := source.NewSource(sourceType, params)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("Target: %s", target.Raw)
	pterm.Info.Printfln("Candidates: %s (%s)", src.Name(), sourceType)

	spinner, _ := pterm.DefaultSpinner.Start("Cracking...")
	bcryptVerifier := verifier.NewBcryptVerifier()
	session := crack.NewSession(target,
		crack.WithVerifier(bcryptVerifier),
		crack.WithDisplayWidth(a.cfg.Crack.DisplayWidth),
		crack.WithProgress(a.cfg.Crack.ProgressEvery, func(p crack.Progress) {
			spinner.UpdateText(fmt.Sprintf("Attempts: %s | %s | %s | last: %s",
				groupInt(p.Attempts), formatDuration(p.Elapsed), formatRate(p.Rate), p.Candidate))
		}),
	)
	stats, runErr := session.Run(src, control.FromContext(ctx))

	switch stats.State {
	case crack.StateFound:
		spinner.Success("Password found!")
	case crack.StateExhausted:
		spinner.Warning("Password not found")
	case crack.StateCancelled:
		spinner.Warning("Search cancelled")
	default:
		spinner.Fail(fmt.Sprintf("Search aborted: %s", runErr))
	}
	renderCrackStats(stats)

	a.saveReport(ctx, &report.Info{
		ID:          report.Id(uuid.NewString()),
		Kind:        report.KindCrack,
		State:       string(stats.State),
		Target:      target.Raw,
		Source:      stats.Source,
		Attempts:    strconv.FormatInt(stats.Attempts, 10),
		Found:       stats.Found,
		Password:    stats.FoundPassword,
		Salt:        stats.FoundSalt,
		CreatedAt:   time.Now(),
		Duration:    stats.Elapsed,
		ErrorReason: errorReason(stats.Err),
	})
	return runErr
}

func (a *App) crackSource(wordlist string, useStdin, brute bool, rangeStr, chars string) (source.Type, source.Params, error) {
	selected := 0
	for _, set := range []bool{wordlist != "", useStdin, brute} {
		if set {
			selected++
		}
	}
	if selected != 1 {
		return source.UnknownSourceType, source.Params{}, fmt.Errorf("%w: choose exactly one of -w, -stdin or -brute", errUsage)
	}
	switch {
	case wordlist != "":
		return source.WordlistSourceType, source.Params{Path: wordlist}, nil
	case useStdin:
		return source.ReaderSourceType, source.Params{Reader: a.stdin}, nil
	default:
		minLen, maxLen, err := parseLengthRange(rangeStr)
		if err != nil {
			return source.UnknownSourceType, source.Params{}, err
		}
		spec := candidate.Spec{MinLength: minLen, MaxLength: maxLen, Alphabet: uniqueSymbols(chars)}
		return source.BruteForceSourceType, source.Params{Spec: spec}, nil
	}
}

func renderCrackStats(stats *crack.Stats) {
	data := pterm.TableData{
		{"State", string(stats.State)},
		{"Attempts", groupInt(stats.Attempts)},
		{"Elapsed", formatDuration(stats.Elapsed)},
		{"Rate", formatRate(stats.Rate())},
	}
	if stats.Found {
		data = append(data,
			[]string{"Password", stats.FoundPassword},
			[]string{"Salt", stats.FoundSalt},
		)
	}
	if stats.VerifyErrors > 0 {
		data = append(data, []string{"Comparison errors", groupInt(stats.VerifyErrors)})
	}
	if !stats.Complete {
		data = append(data, []string{"Note", "source failed, statistics are incomplete"})
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

func errorReason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
