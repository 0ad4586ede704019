package core

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
)

type stubChecker struct {
	statuses map[string]CheckStatus
	calls    []string
	onCheck  func(name string)
}

func (s *stubChecker) Check(ctx context.Context, name string) CheckResult {
	s.calls = append(s.calls, name)
	if s.onCheck != nil {
		s.onCheck(name)
	}
	status, ok := s.statuses[name]
	if !ok {
		status = CheckStatusTaken
	}
	res := CheckResult{Name: name, Status: status}
	if status == CheckStatusError {
		res.Error = "Network error checking " + name + ": dial tcp: connection refused"
	}
	return res
}

type recordObserver struct {
	startTotal int
	results    []ProgressEvent
	etas       []ETAEvent
	done       *RunSummary
}

func (o *recordObserver) OnStart(total int)         { o.startTotal = total }
func (o *recordObserver) OnResult(ev ProgressEvent) { o.results = append(o.results, ev) }
func (o *recordObserver) OnETA(ev ETAEvent)         { o.etas = append(o.etas, ev) }
func (o *recordObserver) OnDone(summary RunSummary) { o.done = &summary }

// fakeClock advances only when the runner sleeps.
type fakeClock struct {
	now    time.Time
	delays []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.delays = append(c.delays, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestRunner(ch NameChecker, obs Observer) (*Runner, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewRunner(ch, obs, WithSleeper(clock.Sleep), WithClock(clock.Now)), clock
}

func TestRunner_EndToEndClassification(t *testing.T) {
	ch := &stubChecker{statuses: map[string]CheckStatus{
		"Steve": CheckStatusTaken,
		"Alex":  CheckStatusAvailable,
		"Notch": CheckStatusTaken,
	}}
	obs := &recordObserver{}
	r, _ := newTestRunner(ch, obs)

	summary, err := r.Run(context.Background(), []string{"Steve", "Alex", "Notch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 {
		t.Fatalf("total: got %d want 3", summary.Total)
	}
	if !reflect.DeepEqual(summary.Available, []string{"Alex"}) {
		t.Fatalf("available: got %v", summary.Available)
	}
	if !reflect.DeepEqual(ch.calls, []string{"Steve", "Alex", "Notch"}) {
		t.Fatalf("each name must be checked once, in order: %v", ch.calls)
	}
	if obs.startTotal != 3 || obs.done == nil {
		t.Fatalf("expected start and done events")
	}
	for i, ev := range obs.results {
		if ev.Index != i+1 || ev.Total != 3 {
			t.Fatalf("event %d: index=%d total=%d", i, ev.Index, ev.Total)
		}
	}

	report := FormatReport(summary.Total, summary.Available, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	want := "# Minecraft name availability check (2024-01-01 00:00:00)\n# Checked 3 names, found 1 available\n\nAlex"
	if report != want {
		t.Fatalf("report mismatch: %q", report)
	}
}

func TestRunner_NetworkErrorContinues(t *testing.T) {
	ch := &stubChecker{statuses: map[string]CheckStatus{
		"a": CheckStatusAvailable,
		"b": CheckStatusError,
		"c": CheckStatusAvailable,
	}}
	obs := &recordObserver{}
	r, _ := newTestRunner(ch, obs)

	summary, err := r.Run(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(summary.Available, []string{"a", "c"}) {
		t.Fatalf("available: got %v", summary.Available)
	}
	if len(obs.results) != 3 {
		t.Fatalf("run should continue after a network error, got %d results", len(obs.results))
	}
	if summary.CountByStatus(CheckStatusError) != 1 {
		t.Fatalf("expected one error result")
	}
}

func TestRunner_PacingAcross51Checks(t *testing.T) {
	names := make([]string, 51)
	for i := range names {
		names[i] = fmt.Sprintf("name%02d", i+1)
	}
	r, clock := newTestRunner(&stubChecker{}, nil)

	if _, err := r.Run(context.Background(), names); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clock.delays) != 51 {
		t.Fatalf("expected a pause after every check, got %d", len(clock.delays))
	}
	long, short := 0, 0
	for i, d := range clock.delays {
		switch d {
		case CooldownDelay:
			long++
			if i != 49 {
				t.Fatalf("cool-down after check %d, want after check 50", i+1)
			}
		case BaseDelay:
			short++
		default:
			t.Fatalf("unexpected delay %v", d)
		}
	}
	if long != 1 || short != 50 {
		t.Fatalf("got %d long and %d short pauses", long, short)
	}
}

func TestRunner_ETAEveryTenth(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("n%d", i)
	}
	obs := &recordObserver{}
	r, _ := newTestRunner(&stubChecker{}, obs)

	if _, err := r.Run(context.Background(), names); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(obs.etas) != 2 {
		t.Fatalf("expected 2 ETA events, got %d", len(obs.etas))
	}
	first := obs.etas[0]
	if first.Processed != 10 || first.Elapsed != 8*time.Second {
		t.Fatalf("first ETA: %+v", first)
	}
	// 8s over 10 names, 15 names left
	if first.Remaining != 12*time.Second {
		t.Fatalf("remaining: got %v want 12s", first.Remaining)
	}
	if obs.etas[1].Processed != 20 {
		t.Fatalf("second ETA at %d", obs.etas[1].Processed)
	}
}

func TestRunner_EmptyInput(t *testing.T) {
	ch := &stubChecker{}
	obs := &recordObserver{}
	r, clock := newTestRunner(ch, obs)

	summary, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 0 || len(ch.calls) != 0 || len(clock.delays) != 0 {
		t.Fatalf("empty input should perform zero iterations")
	}
}

func TestRunner_CancelStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := &stubChecker{onCheck: func(name string) {
		if name == "b" {
			cancel()
		}
	}}
	obs := &recordObserver{}
	r, _ := newTestRunner(ch, obs)

	_, err := r.Run(ctx, []string{"a", "b", "c"})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if len(ch.calls) != 2 {
		t.Fatalf("no names should be checked after cancellation, calls=%v", ch.calls)
	}
	if obs.done != nil {
		t.Fatalf("done must not be reported for an interrupted run")
	}
}
