package cli

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/ykhdr/hashprobe/internal/candidate"
	"github.com/ykhdr/hashprobe/internal/control"
	"github.com/ykhdr/hashprobe/internal/dictionary"
	"github.com/ykhdr/hashprobe/internal/messages/report"
)

func (a *App) specFlags(fs *flag.FlagSet) (rangeStr, chars *string) {
	rangeStr = fs.String("range", a.cfg.BruteForce.Range, "Min/max candidate length, either a single number or \"min-max\"")
	chars = fs.String("chars", a.cfg.BruteForce.Chars, "Alphabet, in enumeration order; repeated symbols are ignored")
	return rangeStr, chars
}

func buildSpec(rangeStr, chars string) (*candidate.Enumerator, error) {
	minLen, maxLen, err := parseLengthRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return candidate.NewEnumerator(candidate.Spec{
		MinLength: minLen,
		MaxLength: maxLen,
		Alphabet:  uniqueSymbols(chars),
	})
}

func (a *App) runGenerate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	rangeStr, chars := a.specFlags(fs)
	output := fs.String("o", "", "Output dictionary file; missing directories are created")
	yes := fs.Bool("yes", false, "Do not ask for confirmation on large dictionaries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		pterm.Error.Println("output file (-o) is required")
		fs.Usage()
		return errUsage
	}

	enum, err := buildSpec(*rangeStr, *chars)
	if err != nil {
		return err
	}
	spec := enum.Spec()
	total := enum.Count()
	renderSpec(spec, *output)
	pterm.Info.Printfln("Candidates to generate: %s (%s)", groupDigits(total), formatBytes(enum.EstimateSize()))

	if !*yes && total.Cmp(big.NewInt(a.cfg.Generate.ConfirmThreshold)) > 0 {
		if !a.interactive {
			return errors.New("large dictionary needs confirmation, pass -yes")
		}
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show("This generates a very large number of candidates. Continue?")
		if err != nil {
			return errors.Wrap(err, "read confirmation")
		}
		if !ok {
			pterm.Warning.Println("Generation cancelled")
			return nil
		}
	}

	spinner, _ := pterm.DefaultSpinner.Start("Generating dictionary...")
	writer := dictionary.NewWriter(
		dictionary.WithProgress(a.cfg.Generate.ProgressEvery, func(p dictionary.Progress) {
			spinner.UpdateText(fmt.Sprintf("%.2f%% | %s / %s | %s | %s",
				p.Percent(), groupDigits(p.Current), groupDigits(p.Total), formatDuration(p.Elapsed), formatRate(p.Rate)))
		}),
		dictionary.WithSignal(control.FromContext(ctx)),
	)
	stats, err := writer.Generate(spec, *output)

	info := &report.Info{
		ID:        report.Id(uuid.NewString()),
		Kind:      report.KindGenerate,
		Target:    *output,
		Source:    fmt.Sprintf("%d-%d %q", spec.MinLength, spec.MaxLength, spec.Alphabet),
		Total:     total.String(),
		CreatedAt: time.Now(),
	}
	switch {
	case err != nil:
		spinner.Fail(fmt.Sprintf("Generation failed: %s", err))
		info.State = "IO_ERROR"
		info.ErrorReason = err.Error()
	case stats.Cancelled:
		spinner.Warning("Generation cancelled, partial dictionary kept")
		info.State = "CANCELLED"
	default:
		spinner.Success("Dictionary generated")
		info.State = "DONE"
	}
	if stats != nil {
		info.Attempts = stats.Current.String()
		info.Duration = stats.Elapsed
		renderGenerationStats(stats)
	}
	a.saveReport(ctx, info)
	return err
}

func (a *App) runEstimate(args []string) error {
	fs := newFlagSet("estimate")
	rangeStr, chars := a.specFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	enum, err := buildSpec(*rangeStr, *chars)
	if err != nil {
		return err
	}
	spec := enum.Spec()
	renderSpec(spec, "")
	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Candidates", groupDigits(enum.Count())},
		{"Dictionary size", formatBytes(enum.EstimateSize())},
	}).Render()
}

func renderSpec(spec candidate.Spec, output string) {
	items := []pterm.BulletListItem{
		{Level: 0, Text: fmt.Sprintf("Min length: %d", spec.MinLength), BulletStyle: pterm.NewStyle(pterm.FgCyan)},
		{Level: 0, Text: fmt.Sprintf("Max length: %d", spec.MaxLength), BulletStyle: pterm.NewStyle(pterm.FgCyan)},
		{Level: 0, Text: fmt.Sprintf("Alphabet: %s", spec.Alphabet), BulletStyle: pterm.NewStyle(pterm.FgCyan)},
	}
	if output != "" {
		items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("Output: %s", output), BulletStyle: pterm.NewStyle(pterm.FgCyan)})
	}
	_ = pterm.DefaultBulletList.WithItems(items).Render()
}

func renderGenerationStats(stats *dictionary.Stats) {
	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"Written", fmt.Sprintf("%s / %s", groupDigits(stats.Current), groupDigits(stats.Total))},
		{"Elapsed", formatDuration(stats.Elapsed)},
		{"Rate", formatRate(stats.Rate())},
	}).Render()
}

func (a *App) saveReport(ctx context.Context, info *report.Info) {
	ctx, cancel := detached(ctx)
	defer cancel()
	if err := a.reports.Save(ctx, info); err != nil {
		a.l.Warn().Err(err).Str("report-id", string(info.ID)).Msg("Error saving run report")
	}
}
