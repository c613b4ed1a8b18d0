package router

import (
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/handler"
	"github.com/lanhtutoicao123/TSL-CLIENT/internal/model"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	ReportHandler *handler.ReportHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		reports := v1.Group("/reports")
		{
			reports.POST("/encode", d.ReportHandler.Upload(model.ModeEncode))
			reports.POST("/decode", d.ReportHandler.Upload(model.ModeDecode))
			reports.POST("/normalize", d.ReportHandler.Normalize)
		}
	}
}
