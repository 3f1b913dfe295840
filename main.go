package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/xover0/gallery/netlify/config"
	"github.com/xover0/gallery/netlify/logger"
	"github.com/xover0/gallery/netlify/proxy"
	. "github.com/xover0/gallery/netlify/util"
)

// Local development server: serves the pixelfed-proxy function the way
// Netlify would invoke it.
func main() {
	cfg, err := config.Load()
	level := "debug"
	if cfg != nil {
		level = cfg.LogLevel
	}
	appLogger := logger.New(os.Stdout, level)
	slog.SetDefault(appLogger)
	if err != nil {
		appLogger.Error("invalid configuration", slog.Any("error", err))
	}

	p := proxy.New(cfg, err, nil, proxy.NewRecorder(context.Background(), cfg, appLogger), appLogger)

	mux := http.NewServeMux()
	mux.Handle("/.netlify/functions/pixelfed-proxy", lambdaHandler(p))

	log.Fatal(http.ListenAndServe(":9000", logHandler(mux)))
}

func logHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("request", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		h.ServeHTTP(w, r)
	})
}

// lambdaHandler converts between net/http and the API Gateway event shapes.
func lambdaHandler(p *proxy.Proxy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(buf))

		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}
		resp, err := p.Handle(r.Context(), LambdaRequest{
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Headers:    headers,
			Body:       string(buf),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body))
	})
}
