package core

import (
	"context"
	"time"
)

// Observer receives progress events from a run. The runner only emits
// events; rendering them is up to the implementation.
type Observer interface {
	OnStart(total int)
	OnResult(ev ProgressEvent)
	OnETA(ev ETAEvent)
	OnDone(summary RunSummary)
}

type Runner struct {
	checker  NameChecker
	observer Observer
	sleep    Sleeper
	now      func() time.Time
}

type RunnerOption func(*Runner)

func WithSleeper(s Sleeper) RunnerOption {
	return func(r *Runner) { r.sleep = s }
}

func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func NewRunner(checker NameChecker, observer Observer, opts ...RunnerOption) *Runner {
	r := &Runner{
		checker:  checker,
		observer: observer,
		sleep:    SleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks every name once, in order, pausing DelayFor(i) after the i-th
// check. It returns early only when ctx is cancelled, in which case the
// partial summary must not be reported.
func (r *Runner) Run(ctx context.Context, names []string) (RunSummary, error) {
	summary := RunSummary{
		Total:     len(names),
		Results:   make([]CheckResult, 0, len(names)),
		Available: make([]string, 0),
		StartedAt: r.now(),
	}

	if r.observer != nil {
		r.observer.OnStart(summary.Total)
	}

	for i, name := range names {
		idx := i + 1

		result := r.checker.Check(ctx, name)
		if err := ctx.Err(); err != nil {
			summary.Elapsed = r.now().Sub(summary.StartedAt)
			return summary, err
		}

		summary.Results = append(summary.Results, result)
		if result.Available() {
			summary.Available = append(summary.Available, name)
		}

		if r.observer != nil {
			r.observer.OnResult(ProgressEvent{
				Name:   name,
				Result: result,
				Index:  idx,
				Total:  summary.Total,
			})
		}

		if err := r.sleep(ctx, DelayFor(idx)); err != nil {
			summary.Elapsed = r.now().Sub(summary.StartedAt)
			return summary, err
		}

		if idx%ETAEvery == 0 && r.observer != nil {
			elapsed := r.now().Sub(summary.StartedAt)
			r.observer.OnETA(ETAEvent{
				Processed: idx,
				Total:     summary.Total,
				Elapsed:   elapsed,
				Remaining: EstimateRemaining(elapsed, idx, summary.Total),
			})
		}
	}

	summary.Elapsed = r.now().Sub(summary.StartedAt)
	if r.observer != nil {
		r.observer.OnDone(summary)
	}
	return summary, nil
}
