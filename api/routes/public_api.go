package routes

import (
	"shopfeed/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	feedEndpoints := router.Group("/api/")
	{
		feedEndpoints.GET("feed", handlers.GetFeed)
		feedEndpoints.POST("feed", handlers.PostFeedAction)
		feedEndpoints.GET("feed/ws", handlers.WSFeedSession)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return feedEndpoints
}
