package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"shopfeed/api/middleware"
	"shopfeed/api/routes"
	"shopfeed/config"
	"shopfeed/db"
	"shopfeed/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "etc/app.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting feed server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := db.SeedCatalog(config.AppConfig.Feed.SeedPosts); err != nil {
		panic("Failed to seed catalog: " + err.Error())
	}

	// Redis опционален: без него страницы просто не кешируются
	if config.AppConfig.Redis.Enabled {
		if err := services.InitRedis(); err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
		}
		defer services.CloseRedis()
	}

	// RabbitMQ опционален: без него события действий не публикуются
	if config.AppConfig.RabbitMQ.Enabled {
		if err := services.InitRabbitMQ(); err != nil {
			log.Printf("Warning: RabbitMQ initialization failed: %v", err)
		} else {
			defer services.CloseRabbitMQ()
			err := services.StartActionConsumer(context.Background(), "feed_actions_metrics", func(event services.ActionEvent) {
				middleware.RecordFeedAction(event.Action, "consumer")
				log.Printf("DEBUG: action event consumed: %s post=%s product=%s", event.Action, event.PostID, event.ProductID)
			})
			if err != nil {
				log.Printf("Warning: failed to start action consumer: %v", err)
			}
		}
	}

	router := gin.Default()

	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("shopfeed"))

	routes.PublicApi(router)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
