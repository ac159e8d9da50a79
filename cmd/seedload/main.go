// Command seedload replaces the transaction store with a seed document read
// from a local file or fetched over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/salesdash/salesdash/config"
	"github.com/salesdash/salesdash/internal/app"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("seedload", flag.ContinueOnError)
	conffile := fs.String("c", "", "config yaml file")
	file := fs.String("f", "", "seed json file, takes precedence over -url")
	url := fs.String("url", "", "seed document url, defaults to seed.url from the config")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if *url != "" {
		cfg.Seed.URL = *url
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		return 1
	}
	defer application.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var n int
	if *file != "" {
		data, rerr := os.ReadFile(*file)
		if rerr != nil {
			zap.S().Errorf("read %s: %v", *file, rerr)
			return 1
		}
		n, err = application.LoadSeed(ctx, data)
	} else {
		n, err = application.InitializeDatabase(ctx)
	}
	if err != nil {
		zap.S().Errorf("load seed: %v", err)
		return 1
	}
	fmt.Printf("loaded %d transactions\n", n)
	return 0
}
