package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/mjkoder/Invoice-Application/internal/middleware"
	"github.com/mjkoder/Invoice-Application/internal/services/automation"
	invoicesvc "github.com/mjkoder/Invoice-Application/internal/services/invoice"
	"github.com/mjkoder/Invoice-Application/internal/zapier"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AutomationHandler struct {
	service *automation.Service
}

func NewAutomationHandler(s *automation.Service) *AutomationHandler {
	return &AutomationHandler{service: s}
}

func bindInvoiceID(c *gin.Context) (uuid.UUID, bool) {
	var payload struct {
		InvoiceID string `json:"invoiceId"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.InvoiceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invoice ID is required."})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return uuid.Nil, false
	}
	return id, true
}

// TriggerZap fires a single webhook for the live invoice. A missing webhook
// URL and a transport failure are reported as different errors.
func (h *AutomationHandler) TriggerZap(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	invoiceID, ok := bindInvoiceID(c)
	if !ok {
		return
	}

	err := h.service.Trigger(c.Request.Context(), creatorID, invoiceID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Zap successfully triggered."})
	case errors.Is(err, invoicesvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
	case errors.Is(err, invoicesvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, zapier.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Zapier webhook URL not configured."})
	default:
		log.Println("triggering zap:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to trigger Zap."})
	}
}

func (h *AutomationHandler) Add(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	invoiceID, ok := bindInvoiceID(c)
	if !ok {
		return
	}

	_, err := h.service.Enroll(creatorID, invoiceID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Recipient added to automation."})
	case errors.Is(err, invoicesvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found."})
	case errors.Is(err, invoicesvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, automation.ErrAlreadyAutomated):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recipient is already automated."})
	default:
		log.Println("adding recipient to automation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}

func (h *AutomationHandler) Remove(c *gin.Context) {
	invoiceID, ok := bindInvoiceID(c)
	if !ok {
		return
	}

	err := h.service.Unenroll(invoiceID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Recipient removed from automation."})
	case errors.Is(err, automation.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found in automation."})
	default:
		log.Println("removing recipient from automation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}

func (h *AutomationHandler) List(c *gin.Context) {
	recipients, err := h.service.ListRecipients()
	if err != nil {
		log.Println("listing automated recipients:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, recipients)
}
