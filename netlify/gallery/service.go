package gallery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xover0/gallery/netlify/feed"
	"github.com/xover0/gallery/netlify/pixelfed"
)

type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

type FeedParser interface {
	Parse(ctx context.Context, r io.Reader) ([]feed.Item, error)
}

type StatusGetter interface {
	GetStatus(ctx context.Context, id string) (*pixelfed.Status, error)
}

type Options struct {
	FeedURL     string
	TitlePrefix string
	// Concurrency above 1 resolves posts through a bounded pool. Output
	// order is feed order either way.
	Concurrency int
	RequestID   string
}

// Service runs the fetch, parse, resolve and aggregate pipeline for one
// request.
type Service struct {
	fetcher  FeedFetcher
	parser   FeedParser
	statuses StatusGetter
	recorder Recorder
	opts     Options
	log      *slog.Logger
}

func NewService(
	fetcher FeedFetcher,
	parser FeedParser,
	statuses StatusGetter,
	recorder Recorder,
	opts Options,
	log *slog.Logger,
) *Service {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if recorder == nil {
		recorder = NewLogRecorder(log)
	}
	return &Service{
		fetcher:  fetcher,
		parser:   parser,
		statuses: statuses,
		recorder: recorder,
		opts:     opts,
		log:      log,
	}
}

// Build returns the gallery for the configured feed. Only feed fetch and
// parse errors are returned; a post that cannot be resolved is left out.
func (s *Service) Build(ctx context.Context) (*Response, error) {
	const op = "gallery.Build"
	start := time.Now()
	log := s.log.With(
		slog.String("op", op),
		slog.String("url", s.opts.FeedURL),
	)

	reader, err := s.fetcher.Fetch(ctx, s.opts.FeedURL)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	entries, err := s.parser.Parse(ctx, reader)
	if err != nil {
		return nil, err
	}
	log.Info("Found RSS items", slog.Int("items_found", len(entries)))

	mediaURLs := s.resolveAll(ctx, entries)

	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		if mediaURLs[i] == "" {
			continue
		}
		items = append(items, NewItem(entry, mediaURLs[i], s.opts.TitlePrefix))
	}

	log.Info("Processed items with images",
		slog.Int("count", len(items)),
		slog.Duration("duration", time.Since(start)),
	)
	return NewResponse(items), nil
}

// resolveAll returns one media URL per entry, index aligned with entries.
func (s *Service) resolveAll(ctx context.Context, entries []feed.Item) []string {
	mediaURLs := make([]string, len(entries))
	if s.opts.Concurrency == 1 {
		for i, entry := range entries {
			mediaURLs[i] = s.resolve(ctx, entry)
		}
		return mediaURLs
	}

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			mediaURLs[i] = s.resolve(ctx, entry)
			return nil
		})
	}
	g.Wait()
	return mediaURLs
}

// resolve returns the first media URL of the entry's post, or "" when the
// post has no media or the lookup failed.
func (s *Service) resolve(ctx context.Context, entry feed.Item) string {
	postID := entry.PostID()
	log := s.log.With(slog.String("component", "resolver"), slog.String("post_id", postID))
	log.Debug("Fetching images for post")

	status, err := s.statuses.GetStatus(ctx, postID)
	if err != nil {
		failure := Failure{
			PostID:    postID,
			Link:      entry.Link,
			Reason:    err.Error(),
			RequestID: s.opts.RequestID,
			Time:      time.Now().UTC(),
		}
		var apiErr *pixelfed.APIError
		if errors.As(err, &apiErr) {
			failure.StatusCode = apiErr.StatusCode
		}
		s.recorder.RecordFailure(ctx, failure)
		return ""
	}

	mediaURL := status.FirstMediaURL()
	if mediaURL == "" {
		log.Info("No media attachments found")
		log.Debug("Status without media",
			slog.String("status_id", status.ID),
			slog.String("status_url", status.URL),
			slog.Int("attachments", len(status.MediaAttachments)),
			slog.Int("content_length", len(status.Content)),
		)
		return ""
	}
	log.Debug("Added post", slog.String("image", mediaURL))
	return mediaURL
}
