package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lanhtutoicao123/TSL-CLIENT/internal/config"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/handler"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/router"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/service"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/upstream"
	"github.com/lanhtutoicao123/TSL-CLIENT/pkg/logger"
)

func main() {
	cfg := config.Load()
	logg := logger.New("report", cfg.LogLevel)
	for _, w := range cfg.Warnings {
		logg.Warnf("config: %s", w)
	}

	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, logger.New("upstream", cfg.LogLevel))
	reportSvc := service.NewReportService(client, logg, cfg.SymbolRate)
	reportH := handler.NewReportHandler(reportSvc)

	r := gin.Default()
	router.Register(r, router.Dependencies{
		ReportHandler: reportH,
	})

	addr := ":" + cfg.Port
	logg.Infof("starting server at %s (upstream %s)", addr, cfg.UpstreamURL)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
