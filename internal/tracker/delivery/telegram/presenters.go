package telegram

import (
	"fmt"
	"strings"

	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/datemath"
)

const (
	historyTimeLayout = "01/02 03:04 PM"
	statsDayLayout    = "Mon, Jan 2"
)

const welcomeText = "👋 Welcome to the *Time Tracking Assistant*!\n\n" +
	"Just tell me what you're doing and I'll keep the clock:\n" +
	"• _starting on the quarterly report_\n" +
	"• _done with the report, switching to email_\n\n" +
	"Send /help for all commands."

const helpText = "*How to use:*\n\n" +
	"Write naturally in this chat, or use /track in groups:\n" +
	"`/track starting on code review`\n\n" +
	"/status - running tasks\n" +
	"/history N - completed tasks of the last N days (default 1)\n" +
	"/stats - time per task today\n" +
	"/help - this message"

const trackUsage = "Tell me what you're working on, e.g. `/track starting on code review`"

func presentTrack(out tracker.TrackOutput) string {
	reply := toMarkdown(out.Reply)
	if out.Result == tracker.ResultNoMatch {
		reply += fmt.Sprintf("\n\n_No running task named_ *%s* _was found, so nothing was stopped._", escapeMarkdown(out.Command.Task))
	}
	return reply
}

func presentStatus(out tracker.StatusOutput) string {
	if len(out.Tasks) == 0 {
		return "No tasks are running. Tell me when you start one!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏱ *Running tasks* (as of %s)\n", datemath.FormatClock(out.Now))
	for _, t := range out.Tasks {
		fmt.Fprintf(&b, "\n• *%s* since %s (%s)", escapeMarkdown(t.Description), t.Started, t.Elapsed)
	}
	return b.String()
}

func presentHistory(out tracker.HistoryOutput) string {
	if len(out.Entries) == 0 {
		return fmt.Sprintf("No completed tasks in the last %s.", pluralDays(out.Days))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 *Completed in the last %s*\n", pluralDays(out.Days))
	for _, e := range out.Entries {
		fmt.Fprintf(&b, "\n`%s` %s - %s",
			e.StartTime.Format(historyTimeLayout),
			escapeMarkdown(e.Description),
			datemath.FormatStopwatch(e.Duration()),
		)
	}
	return b.String()
}

func presentStats(out tracker.StatsOutput) string {
	if len(out.Totals) == 0 {
		return "Nothing tracked today yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Today* (%s)\n", out.Day.Format(statsDayLayout))
	for _, t := range out.Totals {
		fmt.Fprintf(&b, "\n• %s: %s", escapeMarkdown(t.Description), datemath.FormatHoursMinutes(t.Total))
	}
	fmt.Fprintf(&b, "\n\n*Total:* %s", datemath.FormatHoursMinutes(out.Total))
	return b.String()
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", n)
}

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// escapeMarkdown escapes user text for Telegram's legacy Markdown.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// toMarkdown converts the model's **bold** into Telegram's *bold*.
func toMarkdown(s string) string {
	return strings.ReplaceAll(s, "**", "*")
}

var markdownStripper = strings.NewReplacer(`\_`, "_", `\*`, "*", "\\`", "`", `\[`, "[", "*", "", "_", "", "`", "")

// stripMarkdown removes entities for the plain text fallback.
func stripMarkdown(s string) string {
	return markdownStripper.Replace(s)
}
