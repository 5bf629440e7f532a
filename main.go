package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dromorongit/Richtymluxe/config"
	"github.com/dromorongit/Richtymluxe/internal/adminapi"
	"github.com/dromorongit/Richtymluxe/internal/app"
	"github.com/dromorongit/Richtymluxe/internal/storage"
	"github.com/dromorongit/Richtymluxe/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "richtymluxe.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate database tables")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	store, err := storage.NewDiskStore(cfg.Storefront.UploadDir, cfg.Storefront.UploadPrefix)
	if err != nil {
		zap.S().Fatalf("upload storage init failed: %v", err)
	}

	ws := webserver.Init(application)
	adminapi.RegisterRoutes(store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ws.Start(ctx); err != nil {
		zap.S().Fatalf("webserver error: %v", err)
	}
}
