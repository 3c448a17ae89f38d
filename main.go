package main

import (
	"events-backend/config"
	"events-backend/database"
	"events-backend/handlers"
	"events-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		logrus.WithError(err).Fatal("database init failed")
	}
	if cfg.SeedFile != "" {
		if err := database.LoadEventData(cfg, cfg.SeedFile); err != nil {
			logrus.WithError(err).Fatal("seed load failed")
		}
	}

	eventService := services.NewEventService(cfg)
	homeService := services.NewHomeService(cfg, eventService)
	searchService := services.NewSearchService(cfg, eventService)
	duplicateService := services.NewDuplicateService(cfg, eventService)

	eventHandler := handlers.NewEventHandler(eventService, homeService, duplicateService)
	searchHandler := handlers.NewSearchHandler(searchService)

	r := gin.Default()
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", eventHandler.HealthCheck)

		v1.GET("/events/home", eventHandler.HomePage)
		v1.GET("/events/search", searchHandler.Search)
		v1.GET("/events/search/more", searchHandler.LoadMore)
		v1.GET("/events/moderation", eventHandler.ModerationList)
		v1.GET("/events/stats", eventHandler.GetStats)
		v1.GET("/events/:id", eventHandler.GetEventByID)

		v1.POST("/events", eventHandler.SubmitEvent)
		v1.POST("/events/check-duplicates", eventHandler.CheckDuplicates)
		v1.PUT("/events/:id", eventHandler.UpdateEvent)
		v1.PATCH("/events/:id/state", eventHandler.Moderate)
	}

	logrus.WithField("port", cfg.ServerPort).Info("starting events-backend")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
