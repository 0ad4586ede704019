package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/gnomegl/mcavail/internal/core"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// DisableColor switches every style to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func FormatResult(ev core.ProgressEvent, showDetails bool) string {
	var b strings.Builder

	if ev.Result.Available() {
		b.WriteString(successStyle.Render("[AVAILABLE]"))
	} else {
		b.WriteString(errorStyle.Render("[TAKEN]"))
	}

	b.WriteString(fmt.Sprintf(" %s (%d/%d)", ev.Name, ev.Index, ev.Total))

	if showDetails {
		if ev.Result.ResponseCode > 0 {
			b.WriteString(subtleStyle.Render(fmt.Sprintf(" | HTTP %d", ev.Result.ResponseCode)))
		}
		if ev.Result.Elapsed > 0 {
			b.WriteString(subtleStyle.Render(fmt.Sprintf(" | %.2fs", ev.Result.Elapsed)))
		}
		if ev.Result.ProfileID != "" {
			b.WriteString(" | " + infoStyle.Render(ev.Result.ProfileID))
		}
	}

	return b.String()
}

// FormatNetworkError returns the diagnostic for a failed lookup, or "" when
// the lookup completed.
func FormatNetworkError(res core.CheckResult) string {
	if res.Status != core.CheckStatusError || res.Error == "" {
		return ""
	}
	return errorStyle.Render(res.Error)
}

func FormatETA(ev core.ETAEvent) string {
	return fmt.Sprintf("Estimated time remaining: %.1f minutes", ev.Remaining.Minutes())
}

func formatEventLines(ev core.ProgressEvent, showDetails bool) []string {
	var lines []string
	if diag := FormatNetworkError(ev.Result); diag != "" {
		lines = append(lines, diag)
	}
	return append(lines, FormatResult(ev, showDetails))
}

// LineObserver prints one line per event. Used when stdout is not a
// terminal or the progress bar is disabled.
type LineObserver struct {
	w           io.Writer
	showDetails bool
}

func NewLineObserver(w io.Writer, showDetails bool) *LineObserver {
	return &LineObserver{w: w, showDetails: showDetails}
}

func (o *LineObserver) OnStart(total int) {}

func (o *LineObserver) OnResult(ev core.ProgressEvent) {
	for _, line := range formatEventLines(ev, o.showDetails) {
		fmt.Fprintln(o.w, line)
	}
}

func (o *LineObserver) OnETA(ev core.ETAEvent) {
	fmt.Fprintln(o.w, FormatETA(ev))
}

func (o *LineObserver) OnDone(summary core.RunSummary) {}

type ResultTracker struct {
	Total     int
	Available int
	Taken     int
	Errors    int
	Processed int
}

type ProgressModel struct {
	spinner     spinner.Model
	progress    progress.Model
	tracker     *ResultTracker
	currentName string
	remaining   time.Duration
	hasETA      bool
	done        bool
	quitting    bool
	onQuit      func()
}

func NewProgressModel(total int, onQuit func()) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	p := progress.New(
		progress.WithSolidFill("240"),
		progress.WithoutPercentage(),
	)
	p.Width = 40

	return ProgressModel{
		spinner:  s,
		progress: p,
		onQuit:   onQuit,
		tracker: &ResultTracker{
			Total: total,
		},
	}
}

type ResultMsg struct {
	Event core.ProgressEvent
}

type ETAMsg struct {
	Event core.ETAEvent
}

type DoneMsg struct{}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResultMsg:
		m.tracker.Processed++
		switch msg.Event.Result.Status {
		case core.CheckStatusAvailable:
			m.tracker.Available++
		case core.CheckStatusError:
			m.tracker.Errors++
		default:
			m.tracker.Taken++
		}
		m.currentName = msg.Event.Name
		return m, nil

	case ETAMsg:
		m.remaining = msg.Event.Remaining
		m.hasETA = true
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")

	if m.tracker.Total > 0 {
		percent := float64(m.tracker.Processed) / float64(m.tracker.Total)
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString(fmt.Sprintf("  %d/%d  ", m.tracker.Processed, m.tracker.Total))
	}

	b.WriteString(fmt.Sprintf("%s %d  ", successStyle.Render("✓"), m.tracker.Available))
	b.WriteString(fmt.Sprintf("%s %d", subtleStyle.Render("✗"), m.tracker.Taken))

	if m.tracker.Errors > 0 {
		b.WriteString(fmt.Sprintf("  %s %d", warningStyle.Render("!"), m.tracker.Errors))
	}
	if m.hasETA {
		b.WriteString(fmt.Sprintf("  ~%.1f min", m.remaining.Minutes()))
	}
	if m.currentName != "" {
		b.WriteString(fmt.Sprintf("  %s", subtleStyle.Render(m.currentName)))
	}

	b.WriteString(fmt.Sprintf("  %s", subtleStyle.Render("(q: quit)")))

	return b.String()
}

// teaProgram is the part of *tea.Program the observer drives.
type teaProgram interface {
	Send(msg tea.Msg)
	Println(args ...interface{})
}

// TeaObserver forwards run events to a bubbletea program. Lines are printed
// above the progress bar in the order the events were produced.
type TeaObserver struct {
	program     teaProgram
	showDetails bool
}

func NewTeaObserver(program teaProgram, showDetails bool) *TeaObserver {
	return &TeaObserver{program: program, showDetails: showDetails}
}

func (o *TeaObserver) OnStart(total int) {}

func (o *TeaObserver) OnResult(ev core.ProgressEvent) {
	o.program.Println(strings.Join(formatEventLines(ev, o.showDetails), "\n"))
	o.program.Send(ResultMsg{Event: ev})
}

func (o *TeaObserver) OnETA(ev core.ETAEvent) {
	o.program.Println(FormatETA(ev))
	o.program.Send(ETAMsg{Event: ev})
}

func (o *TeaObserver) OnDone(summary core.RunSummary) {
	o.program.Send(DoneMsg{})
}
