package api

import (
	"fmt"
	"net/http"

	config "github.com/blobscan/indexer/configs"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Start serves the operational surface of the indexer: a liveness probe and
// the prometheus metrics registry.
func Start() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	host := config.Cfg.API.Host
	port := config.Cfg.API.Port
	if port == 0 {
		port = 3030
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	log.Info().Msgf("API server listening on %s", addr)
	return router.Run(addr)
}
