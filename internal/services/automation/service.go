// Package automation manages the reminder registry and the webhook
// dispatcher. Enrollment captures a snapshot of the invoice; the recurring
// sweep sends those snapshots, while the manual trigger always reads the
// live invoice. That asymmetry is long-standing downstream behavior and is
// preserved on purpose.
package automation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/models"
	"github.com/mjkoder/Invoice-Application/internal/repository"
	invoicesvc "github.com/mjkoder/Invoice-Application/internal/services/invoice"
	"github.com/mjkoder/Invoice-Application/internal/zapier"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadyAutomated  = errors.New("recipient is already automated")
	ErrRecipientNotFound = errors.New("recipient not found in automation")
)

type Service struct {
	automationRepo *repository.AutomationRepository
	invoiceRepo    *repository.InvoiceRepository
	sender         zapier.Sender

	sweeping atomic.Bool
}

func NewService(automationRepo *repository.AutomationRepository, invoiceRepo *repository.InvoiceRepository, sender zapier.Sender) *Service {
	return &Service{
		automationRepo: automationRepo,
		invoiceRepo:    invoiceRepo,
		sender:         sender,
	}
}

// getOwnedInvoice mirrors the lifecycle engine's ordering: existence first,
// then ownership.
func (s *Service) getOwnedInvoice(creatorID, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicesvc.ErrNotFound
		}
		return nil, err
	}
	if invoice.CreatorID != creatorID {
		return nil, invoicesvc.ErrForbidden
	}
	return invoice, nil
}

// Enroll copies the invoice's current fields into a reminder snapshot.
func (s *Service) Enroll(creatorID, invoiceID uuid.UUID) (*models.AutomatedRecipient, error) {
	invoice, err := s.getOwnedInvoice(creatorID, invoiceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.automationRepo.GetByInvoiceID(invoiceID); err == nil {
		return nil, ErrAlreadyAutomated
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recipient := &models.AutomatedRecipient{
		ID:             uuid.New(),
		InvoiceID:      invoice.ID,
		RecipientName:  invoice.Recipient.Name,
		RecipientEmail: invoice.Recipient.Email,
		Amount:         invoice.Amount,
		DueDate:        invoice.DueDate,
		Status:         invoice.Status,
		CreatedAt:      time.Now(),
	}

	if err := s.automationRepo.Create(recipient); err != nil {
		return nil, err
	}
	return recipient, nil
}

// Unenroll drops the snapshot for invoiceID.
func (s *Service) Unenroll(invoiceID uuid.UUID) error {
	removed, err := s.automationRepo.DeleteByInvoiceID(invoiceID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrRecipientNotFound
	}
	return nil
}

func (s *Service) ListRecipients() ([]models.AutomatedRecipient, error) {
	return s.automationRepo.ListAll()
}

// Trigger sends one webhook for the live invoice, recomputing and
// persisting its status first. Paid is never downgraded.
func (s *Service) Trigger(ctx context.Context, creatorID, invoiceID uuid.UUID) error {
	invoice, err := s.getOwnedInvoice(creatorID, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != models.StatusPaid {
		derived := models.DeriveStatus(invoice.Status, invoice.DueDate, time.Now())
		if derived != invoice.Status {
			invoice.Status = derived
			if err := s.invoiceRepo.Save(invoice); err != nil {
				return err
			}
		}
	}

	payload := zapier.PayloadFromInvoice(invoice)
	err = s.sender.Send(ctx, payload)
	s.logDelivery(invoice.ID, "trigger", payload, err)
	return err
}

// Sweep makes one best-effort send per enrolled snapshot. A failing
// recipient is logged and skipped; it never aborts the rest of the sweep.
// Overlapping sweeps are refused: if the previous one is still running the
// new invocation returns immediately.
func (s *Service) Sweep(ctx context.Context) {
	if !s.sweeping.CompareAndSwap(false, true) {
		log.Println("automation sweep still running, skipping this tick")
		return
	}
	defer s.sweeping.Store(false)

	recipients, err := s.automationRepo.ListAll()
	if err != nil {
		log.Println("automation sweep: listing recipients:", err)
		return
	}
	if len(recipients) == 0 {
		log.Println("automation sweep: no automated recipients found")
		return
	}

	for i := range recipients {
		recipient := &recipients[i]
		payload := zapier.PayloadFromSnapshot(recipient)

		err := s.sender.Send(ctx, payload)
		s.logDelivery(recipient.InvoiceID, "sweep", payload, err)
		if err != nil {
			log.Printf("automation sweep: sending reminder to %s: %v", recipient.RecipientEmail, err)
			continue
		}
		log.Printf("automation sweep: reminder sent to %s", recipient.RecipientEmail)
	}
}

// Run lets the service be scheduled directly as a cron job.
func (s *Service) Run() {
	s.Sweep(context.Background())
}

func (s *Service) logDelivery(invoiceID uuid.UUID, kind string, payload zapier.Payload, sendErr error) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Println("marshaling delivery payload:", err)
		return
	}

	delivery := &models.WebhookDelivery{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Kind:      kind,
		Payload:   body,
		Success:   sendErr == nil,
		CreatedAt: time.Now(),
	}
	if sendErr != nil {
		delivery.Error = sendErr.Error()
	}

	if err := s.automationRepo.LogDelivery(delivery); err != nil {
		log.Println("recording webhook delivery:", err)
	}
}
