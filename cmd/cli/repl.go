package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
)

const (
	exitCommand = "exit"
	promptText  = "> "
)

// localScope is the single CLI user; its entries have no owner.
var localScope = model.Scope{}

type repl struct {
	uc  tracker.UseCase
	in  io.Reader
	out io.Writer
	st  styles
}

func newREPL(uc tracker.UseCase, in io.Reader, out io.Writer) *repl {
	return &repl{uc: uc, in: in, out: out, st: newStyles(out)}
}

// Run reads one utterance per line until "exit", end of input or ctx is done.
// A failed turn is reported and the loop continues.
func (r *repl) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, r.st.title.Render("Time Tracking Assistant")+r.st.muted.Render(` (type "exit" to quit)`))

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, r.st.prompt.Render(promptText))

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(r.out)
			select {
			case err := <-errc:
				return err
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, exitCommand) {
			return nil
		}

		out, err := r.uc.Track(ctx, localScope, tracker.TrackInput{Message: line})
		fmt.Fprintln(r.out, r.st.turn(out, err))
	}
}

func (s styles) turn(out tracker.TrackOutput, err error) string {
	switch {
	case err == nil:
		reply := s.reply.Render(out.Reply)
		if out.Result == tracker.ResultNoMatch {
			reply += "\n" + s.warn.Render(fmt.Sprintf("No running task named %q, nothing was stopped.", out.Command.Task))
		}
		return reply
	case errors.Is(err, tracker.ErrModelUnavailable):
		return s.err.Render("The language model is unavailable right now. Please try again.")
	case errors.Is(err, tracker.ErrStorage) && out.Reply != "":
		return s.reply.Render(out.Reply) + "\n" + s.err.Render("The change could not be saved. Please try again.")
	case errors.Is(err, tracker.ErrStorage):
		return s.err.Render("The time log is unavailable right now.")
	default:
		return s.err.Render("Error: " + err.Error())
	}
}
