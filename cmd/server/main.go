package main

import (
	"log"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/config"
	"github.com/mjkoder/Invoice-Application/internal/models"
	"github.com/mjkoder/Invoice-Application/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()
	db := config.InitDB(cfg)

	db.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.AutomatedRecipient{},
		&models.WebhookDelivery{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("invoice_session", store))

	automationService := routes.RegisterRoutes(r, db, cfg)

	// Hourly reminder sweep; a tick is skipped while the previous sweep runs.
	scheduler := cron.New()
	_, err := scheduler.AddJob(cfg.AutomationSchedule,
		cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(automationService))
	if err != nil {
		log.Fatal("invalid automation schedule: ", err)
	}
	scheduler.Start()

	r.Run(":" + cfg.Port)
}
