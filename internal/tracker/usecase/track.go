package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"time-tracking-assistant/internal/assistant"
	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/datemath"
	"time-tracking-assistant/pkg/llmprovider"
)

const localOwnerKey = "local"

// Track interprets one user message and applies the resulting command.
// The owner's lock is held from reading the context until the command is
// applied, so concurrent messages of one owner see each other's effects.
// The calendar mirror of a stopped entry runs after the lock is released.
func (uc *implUseCase) Track(ctx context.Context, scope model.Scope, input tracker.TrackInput) (tracker.TrackOutput, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return tracker.TrackOutput{}, tracker.ErrEmptyMessage
	}

	unlock, err := uc.locks.Lock(ctx, ownerKey(scope))
	if err != nil {
		return tracker.TrackOutput{}, err
	}
	defer unlock()

	now := uc.now()
	tasks, err := uc.activeTasks(ctx, scope, now)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Track activeTasks: %v", err)
		return tracker.TrackOutput{}, fmt.Errorf("%w: %v", tracker.ErrStorage, err)
	}

	prompt := assistant.Compile(assistant.PromptData{
		CurrentTime: datemath.FormatClock(now),
		Tasks:       promptTasks(tasks),
		UserInput:   msg,
		Structured:  uc.cfg.StructuredOutput,
	})

	req := llmprovider.UserPrompt(prompt)
	req.Temperature = uc.cfg.Temperature
	if uc.cfg.StructuredOutput {
		req.ResponseSchema = assistant.ResponseSchema()
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Track GenerateContent: %v", err)
		return tracker.TrackOutput{}, fmt.Errorf("%w: %v", tracker.ErrModelUnavailable, err)
	}

	ext := uc.interpret(ctx, resp.Text())
	uc.l.Infof(ctx, "uc.Track: owner=%q command=%q provider=%s", scope.UserID, ext.Command.String(), resp.ProviderName)

	result, entry, err := uc.execute(ctx, scope, ext.Command, now)
	out := tracker.TrackOutput{
		Reply:   ext.Reply,
		Command: ext.Command,
		Result:  result,
		Entry:   entry,
	}
	if err != nil {
		return out, fmt.Errorf("%w: %v", tracker.ErrStorage, err)
	}

	if result == tracker.ResultStopped {
		unlock()
		uc.mirror(ctx, entry)
	}
	return out, nil
}

// interpret splits the model text into reply and command. A structured reply
// that fails to decode falls back to the "Command:" line format; a decoded
// reply with an unusable command and a missing command both fall back to
// idle. Every fallback is logged.
func (uc *implUseCase) interpret(ctx context.Context, raw string) assistant.Extraction {
	if uc.cfg.StructuredOutput {
		ext, err := assistant.DecodeStructured(raw)
		switch {
		case err == nil:
			return ext
		case errors.Is(err, assistant.ErrRejectedCommand):
			uc.l.Warnf(ctx, "uc.interpret: %v, treating as idle", err)
			return ext
		}
		uc.l.Warnf(ctx, "uc.interpret: structured reply rejected, parsing text: %v", err)
	}

	ext := assistant.ExtractCommand(raw)
	if !ext.Found {
		uc.l.Warnf(ctx, "uc.interpret: no command in model reply, treating as idle")
	}
	return ext
}

func ownerKey(scope model.Scope) string {
	if scope.IsLocal() {
		return localOwnerKey
	}
	return scope.UserID
}
