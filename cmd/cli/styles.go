package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/datemath"
)

var (
	colorAccent = lipgloss.Color("#8BC34A")
	colorMuted  = lipgloss.Color("#7C8796")
	colorWarn   = lipgloss.Color("#FFC107")
	colorError  = lipgloss.Color("#E53935")
)

type styles struct {
	title  lipgloss.Style
	prompt lipgloss.Style
	reply  lipgloss.Style
	task   lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

// newStyles binds the styles to w, so colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(colorAccent),
		prompt: r.NewStyle().Foreground(colorAccent),
		reply:  r.NewStyle(),
		task:   r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(colorMuted),
		warn:   r.NewStyle().Foreground(colorWarn),
		err:    r.NewStyle().Foreground(colorError),
	}
}

func (s styles) status(out tracker.StatusOutput) string {
	if len(out.Tasks) == 0 {
		return s.muted.Render("No tasks are running.")
	}

	var b strings.Builder
	b.WriteString(s.title.Render("Running tasks") + s.muted.Render(" as of "+datemath.FormatClock(out.Now)))
	for _, t := range out.Tasks {
		fmt.Fprintf(&b, "\n  %s since %s %s", s.task.Render(t.Description), t.Started, s.muted.Render("("+t.Elapsed+")"))
	}
	return b.String()
}

func (s styles) history(out tracker.HistoryOutput) string {
	span := "day"
	if out.Days != 1 {
		span = fmt.Sprintf("%d days", out.Days)
	}
	if len(out.Entries) == 0 {
		return s.muted.Render("No completed tasks in the last " + span + ".")
	}

	var b strings.Builder
	b.WriteString(s.title.Render("Completed in the last " + span))
	for _, e := range out.Entries {
		fmt.Fprintf(&b, "\n  %s  %-8s %s",
			s.muted.Render(e.StartTime.Format("01/02 03:04 PM")),
			datemath.FormatStopwatch(e.Duration()),
			e.Description,
		)
	}
	return b.String()
}

func (s styles) stats(out tracker.StatsOutput) string {
	if len(out.Totals) == 0 {
		return s.muted.Render("Nothing tracked today yet.")
	}

	var b strings.Builder
	b.WriteString(s.title.Render("Today") + s.muted.Render(" "+out.Day.Format("Mon, Jan 2")))
	for _, t := range out.Totals {
		fmt.Fprintf(&b, "\n  %-8s %s", datemath.FormatHoursMinutes(t.Total), t.Description)
	}
	fmt.Fprintf(&b, "\n  %-8s %s", datemath.FormatHoursMinutes(out.Total), s.task.Render("Total"))
	return b.String()
}
