package kv

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"

	"github.com/xover0/gallery/netlify/gallery"
)

// FailureStore writes every failed status lookup as a new document of a
// Firestore collection. Documents are never read back by the function.
type FailureStore struct {
	col *firestore.CollectionRef
	log *slog.Logger
}

func NewFailureStore(client *firestore.Client, collection string, log *slog.Logger) *FailureStore {
	return &FailureStore{
		col: client.Collection(collection),
		log: log,
	}
}

func (s *FailureStore) RecordFailure(ctx context.Context, f gallery.Failure) {
	log := s.log.With(
		slog.String("component", "kv"),
		slog.String("post_id", f.PostID),
	)
	log.Warn("Status lookup failed",
		slog.Int("status", f.StatusCode),
		slog.String("error", f.Reason),
	)
	doc, _, err := s.col.Add(ctx, f)
	if err != nil {
		log.Error("could not record failure", slog.Any("error", err))
		return
	}
	log.Debug("Recorded failure", slog.String("doc", doc.ID))
}
