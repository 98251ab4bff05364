package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldVideo is the standardized structured logging key for the video being processed.
	FieldVideo = "video"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldEventType tags notable lifecycle events (stage_start, stage_complete, stage_failure).
	FieldEventType = "event_type"
)

type contextKey string

const (
	videoKey contextKey = "video"
	stageKey contextKey = "stage"
)

// WithVideo annotates context with the display name of the video being processed.
func WithVideo(ctx context.Context, video string) context.Context {
	if video == "" {
		return ctx
	}
	return context.WithValue(ctx, videoKey, video)
}

// VideoFromContext returns the video name if present.
func VideoFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(videoKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if video, ok := VideoFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldVideo, video))
	}
	if stage, ok := StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
