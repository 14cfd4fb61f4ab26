package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// fetch executes req and decodes a successful payload into T. An absent
// outcome, or a payload that does not decode into T, yields fallback().
func fetch[T any](ctx context.Context, backend driven.Backend, logger *slog.Logger, req model.RequestDescriptor, fallback func() T) T {
	out := backend.Execute(ctx, req)
	if !out.OK() {
		return fallback()
	}

	var v T
	if err := json.Unmarshal(out.Payload, &v); err != nil {
		logger.Warn("decoding backend payload failed, using fallback",
			"path", req.Path,
			"error", err,
		)
		return fallback()
	}
	return v
}

// actionPayload is the loose shape of a mutation response. The remote
// service usually answers with a message only.
type actionPayload struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// action executes a mutating request and reports it as an ActionResult.
// A 2xx response counts as success unless the payload says otherwise.
func action(ctx context.Context, backend driven.Backend, req model.RequestDescriptor, done, offline string) model.ActionResult {
	out := backend.Execute(ctx, req)
	if !out.OK() {
		msg := offline
		if out.Message != "" {
			msg = out.Message
		}
		return model.ActionResult{Success: false, Message: msg}
	}

	var p actionPayload
	_ = json.Unmarshal(out.Payload, &p)

	result := model.ActionResult{Success: true, Message: done}
	if p.Success != nil {
		result.Success = *p.Success
	}
	if p.Message != "" {
		result.Message = p.Message
	}
	return result
}

// authRequired is the result of a gated operation attempted anonymously.
func authRequired() model.ActionResult {
	return model.ActionResult{Success: false, Message: model.AuthRequiredMessage}
}
