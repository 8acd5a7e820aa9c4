// Package plugin adapts the action router to the automation host's tool
// protocol: parameters arrive as a flat mapping and every result is returned
// as a text message carrying the JSON envelope.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// Message is one tool output message.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Invocation is the request the host sends to the tool.
type Invocation struct {
	UserID         string                 `json:"user_id"`
	ToolParameters map[string]interface{} `json:"tool_parameters"`
}

// Tool is the plugin entry point.
type Tool struct {
	actions ports.ActionService
	logger  *logger.Logger
}

// NewTool creates a plugin tool backed by actions
func NewTool(actions ports.ActionService, log *logger.Logger) *Tool {
	return &Tool{
		actions: actions,
		logger:  log.WithComponent("plugin"),
	}
}

// Invoke runs the action named by the "action" parameter.
func (t *Tool) Invoke(ctx context.Context, userID string, toolParameters map[string]interface{}) []Message {
	params := make(ports.ActionParams, len(toolParameters))
	for k, v := range toolParameters {
		params[k] = v
	}
	action := params.String("action")
	delete(params, "action")

	t.logger.Debugw("Tool invoked",
		"invocation_id", uuid.NewString(),
		"user_id", userID,
		"action", action,
	)

	return []Message{textMessage(t.actions.Execute(ctx, action, params))}
}

// Serve reads one Invocation from r and writes the resulting messages to w.
func (t *Tool) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var inv Invocation
	var messages []Message
	if err := dec.Decode(&inv); err != nil {
		t.logger.Warnw("Invalid invocation", "error", err)
		messages = []Message{textMessage(entities.Failed(entities.FailureValidation, fmt.Sprintf("invalid tool invocation: %v", err)))}
	} else {
		messages = t.Invoke(ctx, inv.UserID, inv.ToolParameters)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(messages); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}
	return nil
}

func textMessage(result entities.Result) Message {
	data, err := json.Marshal(result)
	if err != nil {
		// Result holds only strings and contacts; this cannot happen.
		data = []byte(`{"success":false,"message":"failed to encode result"}`)
	}
	return Message{Type: "text", Message: string(data)}
}
