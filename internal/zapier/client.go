// Package zapier posts invoice payloads to a configured Zapier webhook.
package zapier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/models"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when no webhook URL was configured. Callers
// surface this to users instead of silently skipping the send.
var ErrNotConfigured = errors.New("zapier webhook URL not configured")

// Payload is the JSON body a Zap receives. InvoiceNumber is untyped because
// the two dispatch paths historically disagree: the one-shot trigger sends
// the live invoice's numeric invoice number, while the recurring sweep sends
// the snapshot's invoice id. Downstream Zaps key on that, so both are kept.
type Payload struct {
	InvoiceNumber  any        `json:"invoiceNumber"`
	RecipientName  string     `json:"recipientName"`
	RecipientEmail string     `json:"recipientEmail"`
	Amount         float64    `json:"amount"`
	DueDate        time.Time  `json:"dueDate"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// PayloadFromInvoice builds a payload from a live invoice (one-shot trigger).
func PayloadFromInvoice(invoice *models.Invoice) Payload {
	createdAt := invoice.CreatedAt
	return Payload{
		InvoiceNumber:  invoice.InvoiceNumber,
		RecipientName:  invoice.Recipient.Name,
		RecipientEmail: invoice.Recipient.Email,
		Amount:         invoice.Amount,
		DueDate:        invoice.DueDate,
		Status:         invoice.Status,
		CreatedAt:      &createdAt,
	}
}

// PayloadFromSnapshot builds a payload from an enrollment snapshot
// (recurring sweep). Fields are as captured at enroll time, not live.
func PayloadFromSnapshot(recipient *models.AutomatedRecipient) Payload {
	return Payload{
		InvoiceNumber:  recipient.InvoiceID.String(),
		RecipientName:  recipient.RecipientName,
		RecipientEmail: recipient.RecipientEmail,
		Amount:         recipient.Amount,
		DueDate:        recipient.DueDate,
		Status:         recipient.Status,
	}
}

// Sender is the webhook transport consumed by the automation service.
type Sender interface {
	Send(ctx context.Context, payload Payload) error
}

type Client struct {
	webhookURL string
	http       *resty.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       resty.New().SetTimeout(10 * time.Second),
	}
}

func (c *Client) Send(ctx context.Context, payload Payload) error {
	if c.webhookURL == "" {
		return ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("posting to zapier: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("unexpected zapier response: %s", resp.Status())
	}
	return nil
}
