package repository

import (
	"time"

	"github.com/mjkoder/Invoice-Application/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// ExistsByCreatorAndNumber backs the per-user uniqueness check. The
// composite unique index on (creator_id, invoice_number) is the backstop.
func (r *InvoiceRepository) ExistsByCreatorAndNumber(creatorID uuid.UUID, invoiceNumber int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).
		Where("creator_id = ? AND invoice_number = ?", creatorID, invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListByCreator returns the creator's invoices, optionally filtered by
// status ("" and "all" mean no filter), ordered by creation time.
func (r *InvoiceRepository) ListByCreator(creatorID uuid.UUID, status string, ascending bool) ([]models.Invoice, error) {
	var invoices []models.Invoice

	query := r.db.Where("creator_id = ?", creatorID)

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	order := "created_at DESC"
	if ascending {
		order = "created_at ASC"
	}

	err := query.Order(order).Find(&invoices).Error
	return invoices, err
}

// Save persists a mutated invoice, re-applying the status rule first so an
// invoice can never be written with a stale Due/Overdue status.
func (r *InvoiceRepository) Save(invoice *models.Invoice) error {
	invoice.Status = models.DeriveStatus(invoice.Status, invoice.DueDate, time.Now())
	return r.db.Save(invoice).Error
}
