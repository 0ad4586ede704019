package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gnomegl/mcavail/internal/core"
)

type RunFunc func(ctx context.Context, obs core.Observer) (core.RunSummary, error)

// RunWithProgressBar drives run under a bubbletea progress display. Quitting
// the display cancels the run and returns context.Canceled.
func RunWithProgressBar(ctx context.Context, total int, showDetails bool, out io.Writer, run RunFunc) (core.RunSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(total, cancel), tea.WithOutput(out))

	type outcome struct {
		summary core.RunSummary
		err     error
	}
	resCh := make(chan outcome, 1)

	go func() {
		summary, err := run(ctx, NewTeaObserver(p, showDetails))
		if err != nil {
			// OnDone is not emitted for an interrupted run
			p.Send(DoneMsg{})
		}
		resCh <- outcome{summary: summary, err: err}
	}()

	final, err := p.Run()
	if err != nil {
		return core.RunSummary{}, fmt.Errorf("progress display failed: %w", err)
	}
	if m, ok := final.(ProgressModel); ok && m.quitting {
		return core.RunSummary{}, context.Canceled
	}

	res := <-resCh
	return res.summary, res.err
}
