package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/internal/conf"
	"github.com/salesintel/sales_radar/internal/data"
	"github.com/salesintel/sales_radar/internal/export"
	"github.com/salesintel/sales_radar/internal/render"
	"github.com/salesintel/sales_radar/internal/server"
	"github.com/salesintel/sales_radar/internal/service"
	"github.com/salesintel/sales_radar/pkg/config"
	"github.com/salesintel/sales_radar/pkg/engine"
	"github.com/salesintel/sales_radar/pkg/research"
)

// initApp assembles the application by hand, bottom up: data layer, use
// cases, rendering, then the HTTP surface.
func initApp(bc *conf.Bootstrap, logger log.Logger) (*kratos.App, func(), error) {
	d, cleanup, err := data.NewData(bc.Data, logger)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.NewEngine(engineConfig(bc.Intel))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	session := biz.NewReportSession()
	ucReport := biz.NewReportUseCase(session,
		data.NewReportCache(d, logger),
		data.NewReportArchive(d, logger),
		eng, logger)
	ucUser := biz.NewUserUseCase(data.NewUserRepo(d, logger), bc.Auth, logger)
	ucContent := biz.NewContentUseCase(data.NewAssetRepo(d, logger), logger)

	rnd, err := render.New()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	exporter := export.NewExporter(bc.Export, rnd, logger)
	agent := research.NewAgent(eng.ChatModel(), eng.Searcher())

	svc := service.NewIntelService(ucReport, ucUser, ucContent, rnd, exporter, agent, eng.ChatModel(), logger)
	hs := server.NewHTTPServer(bc.Server, svc, logger)

	return newApp(logger, hs), cleanup, nil
}

// engineConfig maps the service bootstrap onto the engine's standalone
// configuration so both entry points drive the same engine code.
func engineConfig(in *conf.Intel) *config.Config {
	cfg := &config.Config{}
	if in == nil {
		return cfg
	}
	if in.Llm != nil {
		cfg.LLM = config.LLMConfig{
			BaseURL: in.Llm.BaseUrl,
			APIKey:  in.Llm.ApiKey,
			Model:   in.Llm.Model,
		}
	}
	if in.Search != nil {
		cfg.Search.Provider = in.Search.Provider
		if in.Search.Tavily != nil {
			cfg.Search.Tavily.APIKey = in.Search.Tavily.ApiKey
		}
		if in.Search.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{
				BaseURL: in.Search.Searxng.BaseUrl,
				Timeout: int(in.Search.Searxng.Timeout),
			}
		}
	}
	if in.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(in.Concurrency.Qps),
			RPM: int(in.Concurrency.Rpm),
		}
	}
	if in.Log != nil {
		cfg.Log = config.LogConfig{Level: in.Log.Level, File: in.Log.File}
	}
	return cfg
}
