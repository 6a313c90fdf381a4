package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/middleware"
	"github.com/mjkoder/Invoice-Application/internal/models"
	invoicesvc "github.com/mjkoder/Invoice-Application/internal/services/invoice"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	service *invoicesvc.Service
}

func NewInvoiceHandler(s *invoicesvc.Service) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

// respondInvoiceError maps lifecycle errors to the HTTP surface.
func respondInvoiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, invoicesvc.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
	case errors.Is(err, invoicesvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, invoicesvc.ErrAlreadyPaid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invoice is already paid and cannot be modified."})
	case errors.Is(err, invoicesvc.ErrRecipientMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recipient email mismatch."})
	case errors.Is(err, invoicesvc.ErrDuplicateInvoiceNumber):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invoice number already exists for this user. Please use a different invoice number.",
		})
	default:
		log.Println("invoice handler error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// parseDueDate accepts RFC3339 timestamps and bare dates.
func parseDueDate(raw string) (time.Time, error) {
	dueDate, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		dueDate, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		dueDate, err = time.Parse("02-01-2006", raw)
	}
	return dueDate, err
}

func (h *InvoiceHandler) List(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	ascending := c.Query("sort") == "asc"
	invoices, err := h.service.List(creatorID, c.Query("status"), ascending)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	var payload struct {
		InvoiceNumber    int     `json:"invoiceNumber"`
		Amount           float64 `json:"amount"`
		DueDate          string  `json:"dueDate"`
		Status           string  `json:"status"` // optional, defaults to Due
		RecipientName    string  `json:"recipientName"`
		RecipientPhone   string  `json:"recipientPhone"`
		RecipientEmail   string  `json:"recipientEmail"`
		RecipientAddress string  `json:"recipientAddress"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.InvoiceNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice number"})
		return
	}
	if payload.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	if payload.RecipientName == "" || payload.RecipientPhone == "" ||
		payload.RecipientEmail == "" || payload.RecipientAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient name, phone, email and address are required"})
		return
	}

	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date format"})
		return
	}

	invoice, err := h.service.Create(creatorID, invoicesvc.CreateInput{
		InvoiceNumber: payload.InvoiceNumber,
		Amount:        payload.Amount,
		DueDate:       dueDate,
		Status:        payload.Status,
		Recipient: models.Recipient{
			Name:    payload.RecipientName,
			Phone:   payload.RecipientPhone,
			Email:   payload.RecipientEmail,
			Address: payload.RecipientAddress,
		},
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	var payload struct {
		MarkPaid bool   `json:"markPaid"`
		DueDate  string `json:"dueDate"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, err := parseDueDate(payload.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date format"})
			return
		}
		dueDate = &parsed
	}

	invoice, err := h.service.Update(creatorID, invoiceID, payload.MarkPaid, dueDate)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	creatorID, _ := middleware.Principal(c)

	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	var payload struct {
		EnteredEmail string `json:"enteredEmail"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	invoice, err := h.service.MarkPaidByRecipient(creatorID, invoiceID, payload.EnteredEmail)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice marked as paid.", "invoice": invoice})
}
