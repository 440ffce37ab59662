package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Task message discriminators. These are the only payload fields the host
// ever looks at, and only inside RunTask, which acts as a front-end
// endpoint on the CLI's behalf. The relay itself stays schema-free.
const (
	messageTypeNewTask       = "newTask"
	messageTypeTaskCompleted = "taskCompleted"
	messageTypeTaskAborted   = "taskAborted"
)

type taskEnvelope struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// NewTaskMessage builds the task-start payload a front-end sends.
func NewTaskMessage(prompt string) json.RawMessage {
	data, _ := json.Marshal(taskEnvelope{Type: messageTypeNewTask, Text: prompt})
	return data
}

// messageType peeks at the type discriminator of an opaque payload.
func messageType(message json.RawMessage) string {
	var env taskEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return ""
	}
	return env.Type
}

// RunTask drives one task through the extension: it waits for webview
// readiness, sends the task-start message, and resolves when the extension
// signals completion on its message stream. The caller's context bounds
// the readiness wait so the operation never hangs when no front-end
// attaches; it fails if the host is disposed first.
func (h *Host) RunTask(ctx context.Context, prompt string) error {
	select {
	case <-h.disposedCh:
		return ErrDisposed
	default:
	}

	select {
	case <-h.readyCh:
	case <-h.disposedCh:
		return fmt.Errorf("waiting for webview: %w", ErrDisposed)
	case <-ctx.Done():
		return fmt.Errorf("waiting for webview: %w", ctx.Err())
	}

	taskID := uuid.NewString()
	if h.opts.Recorder != nil {
		if err := h.opts.Recorder.TaskStarted(taskID, prompt); err != nil {
			slog.Warn("record task start failed", "task", taskID, "error", err)
		}
	}

	outcomeCh := make(chan string, 1)
	sub := h.On(ChannelExtensionWebviewMessage, func(message json.RawMessage) {
		switch messageType(message) {
		case messageTypeTaskCompleted, messageTypeTaskAborted:
			select {
			case outcomeCh <- messageType(message):
			default:
			}
		}
	})
	defer sub.Dispose()

	h.Emit(ChannelWebviewMessage, NewTaskMessage(prompt))
	slog.Debug("task started", "task", taskID)

	var outcome string
	var err error
	select {
	case outcome = <-outcomeCh:
		if outcome == messageTypeTaskAborted {
			err = fmt.Errorf("task %s aborted", taskID)
		}
	case <-h.disposedCh:
		outcome = "disposed"
		err = ErrDisposed
	case <-ctx.Done():
		outcome = "cancelled"
		err = fmt.Errorf("task %s: %w", taskID, ctx.Err())
	}

	if h.opts.Recorder != nil {
		if recErr := h.opts.Recorder.TaskFinished(taskID, outcome); recErr != nil {
			slog.Warn("record task finish failed", "task", taskID, "error", recErr)
		}
	}
	return err
}
