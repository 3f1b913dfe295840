package gallery

import (
	"context"
	"log/slog"
	"time"
)

// Failure describes a post whose status lookup did not succeed.
type Failure struct {
	PostID     string    `firestore:"postId"`
	Link       string    `firestore:"link"`
	StatusCode int       `firestore:"statusCode,omitempty"`
	Reason     string    `firestore:"reason"`
	RequestID  string    `firestore:"requestId,omitempty"`
	Time       time.Time `firestore:"time"`
}

// Recorder keeps failed lookups for later inspection. Implementations must
// not fail the request; they log their own errors.
type Recorder interface {
	RecordFailure(ctx context.Context, f Failure)
}

type LogRecorder struct {
	log *slog.Logger
}

func NewLogRecorder(log *slog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) RecordFailure(ctx context.Context, f Failure) {
	r.log.Warn("Status lookup failed",
		slog.String("component", "resolver"),
		slog.String("post_id", f.PostID),
		slog.Int("status", f.StatusCode),
		slog.String("error", f.Reason),
	)
}
