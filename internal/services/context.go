package services

import "context"

type contextKey string

const (
	albumKey     contextKey = "album"
	stageKey     contextKey = "stage"
	requestIDKey contextKey = "request_id"
)

// WithAlbum annotates context with the album a batch operates on.
func WithAlbum(ctx context.Context, album string) context.Context {
	if album == "" {
		return ctx
	}
	return context.WithValue(ctx, albumKey, album)
}

// AlbumFromContext returns the album name if present.
func AlbumFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(albumKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the library operation name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
