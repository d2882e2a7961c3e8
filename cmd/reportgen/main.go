package main

import (
	"context"
	"encoding/json"
	"flag"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/salesintel/sales_radar/internal/render"
	"github.com/salesintel/sales_radar/pkg/config"
	"github.com/salesintel/sales_radar/pkg/engine"
	"github.com/salesintel/sales_radar/pkg/logger"
)

// reportgen generates one report from the command line, without the web
// service: useful for batch runs and for inspecting raw model output.
func main() {
	var (
		confPath   = flag.String("conf", "configs/reportgen.yaml", "config file path")
		targetURL  = flag.String("url", "", "solution URL to analyze")
		marketSize = flag.String("market", "", "target market size, e.g. Enterprise")
		outDir     = flag.String("out", "output", "output directory")
		htmlOut    = flag.Bool("html", false, "also write the print-ready HTML document")
	)
	flag.Parse()

	if *targetURL == "" {
		stdlog.Fatal("missing required -url flag")
	}

	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		stdlog.Fatal("config error: llm.api_key is not set")
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}
	logger.Log.Info("starting report generation...")

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		logger.Log.Fatalf("engine init failed: %v", err)
	}

	report, err := eng.Generate(context.Background(), *targetURL, *marketSize)
	if err != nil {
		logger.Log.Fatalf("generation failed for %s: %v", *targetURL, err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Log.Fatalf("failed to create output dir: %v", err)
	}

	jsonPath := filepath.Join(*outDir, report.ID+".json")
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Log.Fatalf("failed to marshal report: %v", err)
	}
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		logger.Log.Fatalf("failed to write %s: %v", jsonPath, err)
	}
	logger.Log.Infof("report written: %s", jsonPath)

	if *htmlOut {
		rnd, err := render.New()
		if err != nil {
			logger.Log.Fatalf("renderer init failed: %v", err)
		}
		doc, err := rnd.FullReport(report)
		if err != nil {
			logger.Log.Fatalf("failed to render document: %v", err)
		}
		htmlPath := filepath.Join(*outDir, report.ID+".html")
		if err := os.WriteFile(htmlPath, doc, 0o644); err != nil {
			logger.Log.Fatalf("failed to write %s: %v", htmlPath, err)
		}
		logger.Log.Infof("document written: %s", htmlPath)
	}

	logger.Log.Infof("done: %s (%s)", report.CompanyProfile.Name, report.URL)
}
