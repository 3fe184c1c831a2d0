package telegram

import (
	"errors"

	"time-tracking-assistant/internal/tracker"
)

// errorMessage returns a user-facing error string for the given error.
// A reply the model already produced is kept when only storage failed.
func errorMessage(err error, reply string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, tracker.ErrEmptyMessage):
		return trackUsage
	case errors.Is(err, tracker.ErrInvalidDays):
		return "Days must be a whole number between 1 and 365, e.g. /history 7"
	case errors.Is(err, tracker.ErrModelUnavailable):
		return "⚠️ I couldn't reach the language model. Please try again in a moment."
	case errors.Is(err, tracker.ErrStorage):
		if reply != "" {
			return toMarkdown(reply) + "\n\n⚠️ I couldn't save that change. Please try again."
		}
		return "⚠️ The time log is unavailable right now. Please try again later."
	default:
		return "Something went wrong while processing your request. Please try again."
	}
}
