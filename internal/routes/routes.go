package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mjkoder/Invoice-Application/internal/auth"
	"github.com/mjkoder/Invoice-Application/internal/config"
	handler "github.com/mjkoder/Invoice-Application/internal/handlers"
	"github.com/mjkoder/Invoice-Application/internal/middleware"
	"github.com/mjkoder/Invoice-Application/internal/repository"
	"github.com/mjkoder/Invoice-Application/internal/services/automation"
	invoicesvc "github.com/mjkoder/Invoice-Application/internal/services/invoice"
	"github.com/mjkoder/Invoice-Application/internal/zapier"
)

// RegisterRoutes wires repositories, services and handlers onto the router
// and returns the automation service so main can schedule its sweep.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) *automation.Service {
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	automationRepo := repository.NewAutomationRepository(db)

	sender := zapier.NewClient(cfg.ZapierWebhookURL)

	invoiceService := invoicesvc.NewService(invoiceRepo, userRepo)
	automationService := automation.NewService(automationRepo, invoiceRepo, sender)

	authHandler := handler.NewAuthHandler(userRepo, auth.NewOAuthConfig(cfg), cfg.FrontendURL)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	automationHandler := handler.NewAutomationHandler(automationService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.GET("/google", authHandler.Login)
		authRoutes.GET("/google/callback", authHandler.Callback)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/current", authHandler.Current)
	}

	invoices := r.Group("/invoices", middleware.RequireAuth())
	{
		invoices.GET("", invoiceHandler.List)
		invoices.POST("", invoiceHandler.Create)
		invoices.PATCH("/:invoiceId", invoiceHandler.Update)
		invoices.PATCH("/:invoiceId/markPaid", invoiceHandler.MarkPaid)
		// legacy alias for the one-shot trigger
		invoices.POST("/trigger-zap", automationHandler.TriggerZap)
	}

	automate := r.Group("/automate", middleware.RequireAuth())
	{
		automate.GET("", automationHandler.List)
		automate.POST("/trigger-zap", automationHandler.TriggerZap)
		automate.POST("/add", automationHandler.Add)
		automate.POST("/remove", automationHandler.Remove)
	}

	return automationService
}
