package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/docbridge-io/docbridge/internal/conf"
	"github.com/docbridge-io/docbridge/internal/mcpserver"
	"github.com/docbridge-io/docbridge/internal/pkg/logger"
	"github.com/docbridge-io/docbridge/internal/search/biz"
	"github.com/docbridge-io/docbridge/internal/search/service"
	"github.com/docbridge-io/docbridge/internal/server"
	"github.com/docbridge-io/docbridge/internal/upstream"
)

const version = "1.0.0"

var configFile = flag.String("config", "config.yaml", "config file path")

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	upstreamClient, err := upstream.New(&upstream.Config{
		BaseURL:      config.Upstream.BaseURL,
		Library:      config.Upstream.Library,
		Username:     config.Upstream.Username,
		Password:     config.Upstream.Password,
		ClientID:     config.Upstream.ClientID,
		ClientSecret: config.Upstream.ClientSecret,
		VerifySSL:    config.Upstream.VerifySSL,
		Timeout:      config.Upstream.Timeout,
	}, log.Named("upstream"))
	if err != nil {
		log.Fatal("failed to initialize upstream client", zap.Error(err))
	}

	searchUseCase := biz.NewSearchUseCase(upstreamClient, log.Named("search"))
	searchService := service.NewSearchService(searchUseCase, upstreamClient, log.Named("service"))

	var mcpSrv *mcpserver.Server
	if config.MCP.Enabled {
		mcpSrv = mcpserver.New(searchUseCase, upstreamClient, config.MCP.Endpoint, version, log.Named("mcp"))
	}

	httpServer := server.NewHTTPServer(config, log, searchService, mcpSrv)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
