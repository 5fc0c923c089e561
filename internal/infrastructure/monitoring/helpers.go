package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the Prometheus exposition endpoint as a Gin handler
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
