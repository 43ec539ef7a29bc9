package main

import (
	"context"
	"fmt"
	"os"

	"tsn-scraper/internal/config"
	"tsn-scraper/internal/pipeline"
	"tsn-scraper/pkg/logger"
)

// No flags: settings come from configs/scraper.yaml (or $SCRAPER_CONFIG),
// .env and SCRAPER_* variables.
func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	l := logger.New(cfg.LogLevel)
	l.Infof("starting: %s", cfg)

	if _, err := pipeline.New(cfg, l).Run(context.Background()); err != nil {
		l.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}
