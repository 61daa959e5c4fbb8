package web

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"crackInsightBackend/internal/config"
)

func SetupRoutes(r *gin.Engine, handler *WebHandler, cfg config.ServerConfig) {
	submissions := RateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := r.Group("/api/v1")
	{
		api.POST("/analysis", submissions, handler.StartAnalysis)
		api.GET("/analysis/:jobId", handler.GetJob)
		api.GET("/current", handler.Current)
		api.POST("/snapshots", handler.SaveSnapshot)
		api.POST("/snapshots/:snapshotId/view", handler.ViewSnapshot)
		api.POST("/masks/select", handler.SelectMasks)
		api.GET("/rules", handler.RuleFile)
		api.GET("/hashrate/:algorithmId", handler.SuggestHashrate)
		api.GET("/wordlist", handler.ExportWordlist)
	}
}
