package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/xover0/gallery/netlify/config"
	"github.com/xover0/gallery/netlify/logger"
	"github.com/xover0/gallery/netlify/proxy"
)

func main() {
	cfg, err := config.Load()
	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	log := logger.New(os.Stdout, level)
	slog.SetDefault(log)
	if err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
	}

	recorder := proxy.NewRecorder(context.Background(), cfg, log)
	lambda.Start(proxy.New(cfg, err, nil, recorder, log).Handle)
}
