package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesdash/salesdash/config"
	"github.com/salesdash/salesdash/internal/api"
	"github.com/salesdash/salesdash/internal/app"
	"github.com/salesdash/salesdash/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("salesdash", flag.ContinueOnError)
	conffile := fs.String("c", "", "config yaml file")
	initdb := fs.Bool("initdb", false, "drop and recreate the database schema, then exit")
	seed := fs.Bool("seed", false, "load the seed document before serving")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		return 1
	}
	defer application.Release()

	if *initdb {
		if err := application.InitDb(); err != nil {
			zap.S().Errorf("init database: %v", err)
			return 1
		}
		zap.S().Info("database schema recreated")
		return 0
	}

	if *seed {
		n, err := application.InitializeDatabase(context.Background())
		if err != nil {
			zap.S().Errorf("load seed: %v", err)
			return 1
		}
		zap.S().Infof("loaded %d transactions", n)
	}

	if err := application.StartJobs(); err != nil {
		zap.S().Errorf("start jobs: %v", err)
		return 1
	}

	server := webserver.NewWebServer(application)
	api.Register(server)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-serveErr:
		if err != nil {
			zap.S().Errorf("web server: %v", err)
			return 1
		}
		return 0
	case sig := <-sigChan:
		zap.S().Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown: %v", err)
		return 1
	}
	return 0
}
