package proxy

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/xover0/gallery/netlify/config"
	"github.com/xover0/gallery/netlify/feed"
	"github.com/xover0/gallery/netlify/gallery"
	"github.com/xover0/gallery/netlify/kv"
	"github.com/xover0/gallery/netlify/pixelfed"
	. "github.com/xover0/gallery/netlify/util"
)

// Proxy serves the gallery endpoint. One Proxy is built per cold start and
// shared read-only by every invocation.
type Proxy struct {
	cfg      *config.Config
	cfgErr   error
	client   *http.Client
	recorder gallery.Recorder
	log      *slog.Logger
}

// New builds the handler. A non-nil cfgErr is reported by every
// non-preflight request instead of running the pipeline.
func New(cfg *config.Config, cfgErr error, client *http.Client, recorder gallery.Recorder, log *slog.Logger) *Proxy {
	if client == nil {
		client = http.DefaultClient
	}
	if recorder == nil {
		recorder = gallery.NewLogRecorder(log)
	}
	return &Proxy{
		cfg:      cfg,
		cfgErr:   cfgErr,
		client:   client,
		recorder: recorder,
		log:      log,
	}
}

// NewRecorder returns the Firestore failure store when a service account is
// configured, and the log recorder otherwise or when Firestore is
// unreachable.
func NewRecorder(ctx context.Context, cfg *config.Config, log *slog.Logger) gallery.Recorder {
	if cfg == nil || !cfg.Firestore.Enabled() {
		return gallery.NewLogRecorder(log)
	}
	client, err := kv.GetFirestoreClient(ctx, cfg.Firestore)
	if err != nil {
		log.Warn("Firestore diagnostics disabled", slog.Any("error", err))
		return gallery.NewLogRecorder(log)
	}
	return kv.NewFailureStore(client, cfg.Firestore.Collection, log)
}

func (p *Proxy) Handle(ctx context.Context, request LambdaRequest) (*LambdaResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return PreflightResp(), nil
	}

	requestID := GetRequestID(ctx)
	log := p.log.With(
		slog.String("component", "proxy"),
		slog.String("request_id", requestID),
		slog.String("site", GetHostSite(ctx)),
	)
	log.Info("Fetching RSS feed")

	resp, err := p.buildGallery(ctx, requestID, log)
	if err != nil {
		log.Error("Error processing RSS feed", slog.Any("error", err))
		return GetErrorResp(err)
	}
	return JSONResp(http.StatusOK, resp)
}

func (p *Proxy) buildGallery(ctx context.Context, requestID string, log *slog.Logger) (*gallery.Response, error) {
	if p.cfgErr != nil {
		return nil, p.cfgErr
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	svc := gallery.NewService(
		feed.NewHTTPFetcher(p.client, log),
		feed.NewXMLParser(log),
		pixelfed.NewClient(p.cfg.APIURL, p.cfg.AccessToken, p.client),
		p.recorder,
		gallery.Options{
			FeedURL:     p.cfg.RSSURL,
			TitlePrefix: p.cfg.TitlePrefix,
			Concurrency: p.cfg.Concurrency,
			RequestID:   requestID,
		},
		log,
	)
	return svc.Build(ctx)
}
