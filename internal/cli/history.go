package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

const memoryOnlyNotice = "Reports are kept in memory for this process only; set a mongodb uri in the config to keep them across runs"

func (a *App) runHistory(ctx context.Context) error {
	if notice := a.historyNotice(); notice != "" {
		pterm.Warning.Println(notice)
	}
	reports, err := a.reports.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list reports")
	}
	if len(reports) == 0 {
		pterm.Info.Println("No reports recorded")
		return nil
	}
	data := pterm.TableData{{"Created", "Kind", "State", "Target", "Attempts", "Password", "Duration"}}
	for _, r := range reports {
		data = append(data, []string{
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			string(r.Kind),
			r.State,
			r.Target,
			r.Attempts,
			r.Password,
			formatDuration(r.Duration),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (a *App) historyNotice() string {
	if a.persistent {
		return ""
	}
	return memoryOnlyNotice
}
