// Package invoice holds the invoice lifecycle rules: creation with per-user
// invoice numbers, the Due/Overdue/Paid status model, and the owner-only
// mutation paths.
package invoice

import (
	"errors"
	"time"

	"github.com/mjkoder/Invoice-Application/internal/models"
	"github.com/mjkoder/Invoice-Application/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound               = errors.New("invoice not found")
	ErrForbidden              = errors.New("forbidden")
	ErrAlreadyPaid            = errors.New("invoice is already paid and cannot be modified")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists for this user")
	ErrRecipientMismatch      = errors.New("recipient email mismatch")
)

type Service struct {
	invoiceRepo *repository.InvoiceRepository
	userRepo    *repository.UserRepository
}

func NewService(invoiceRepo *repository.InvoiceRepository, userRepo *repository.UserRepository) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
	}
}

type CreateInput struct {
	InvoiceNumber int
	Amount        float64
	DueDate       time.Time
	Status        string
	Recipient     models.Recipient
}

// Create stores a new invoice for creatorID. Status defaults to Due and is
// derived once before the first write, so an invoice created with a past
// due date starts out Overdue.
func (s *Service) Create(creatorID uuid.UUID, in CreateInput) (*models.Invoice, error) {
	// The owner's invoice list is the has-many on User; creating the row
	// appends the reference. The creator itself must exist.
	if _, err := s.userRepo.GetByID(creatorID); err != nil {
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsByCreatorAndNumber(creatorID, in.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateInvoiceNumber
	}

	status := in.Status
	if status == "" {
		status = models.StatusDue
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		InvoiceNumber: in.InvoiceNumber,
		Amount:        in.Amount,
		DueDate:       in.DueDate,
		Status:        models.DeriveStatus(status, in.DueDate, time.Now()),
		Recipient:     in.Recipient,
		CreatedAt:     time.Now(),
	}

	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// List returns creatorID's invoices. Any returned non-Paid invoice whose due
// date has passed is promoted to Overdue and persisted, so a second read
// yields the same status.
func (s *Service) List(creatorID uuid.UUID, status string, ascending bool) ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.ListByCreator(creatorID, status, ascending)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range invoices {
		derived := models.DeriveStatus(invoices[i].Status, invoices[i].DueDate, now)
		if derived == invoices[i].Status {
			continue
		}
		invoices[i].Status = derived
		if err := s.invoiceRepo.Save(&invoices[i]); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

// GetOwned loads an invoice and enforces ownership. Existence is checked
// before ownership, so probing another user's invoice id yields Forbidden,
// never NotFound.
func (s *Service) GetOwned(creatorID, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if invoice.CreatorID != creatorID {
		return nil, ErrForbidden
	}
	return invoice, nil
}

// Update applies a due-date change and/or marks the invoice paid. A Paid
// invoice rejects both mutations.
func (s *Service) Update(creatorID, invoiceID uuid.UUID, markPaid bool, dueDate *time.Time) (*models.Invoice, error) {
	invoice, err := s.GetOwned(creatorID, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == models.StatusPaid && (markPaid || dueDate != nil) {
		return nil, ErrAlreadyPaid
	}

	if markPaid {
		invoice.Status = models.StatusPaid
	}
	if dueDate != nil {
		invoice.DueDate = *dueDate
	}

	if err := s.invoiceRepo.Save(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// MarkPaidByRecipient is the recipient-confirmed payment path. The caller
// must supply the stored recipient email exactly (case-sensitive, no
// trimming) as a lightweight shared-secret check.
func (s *Service) MarkPaidByRecipient(creatorID, invoiceID uuid.UUID, enteredEmail string) (*models.Invoice, error) {
	invoice, err := s.GetOwned(creatorID, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == models.StatusPaid {
		return nil, ErrAlreadyPaid
	}

	if invoice.Recipient.Email != enteredEmail {
		return nil, ErrRecipientMismatch
	}

	invoice.Status = models.StatusPaid
	if err := s.invoiceRepo.Save(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
