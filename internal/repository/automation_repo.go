package repository

import (
	"github.com/mjkoder/Invoice-Application/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AutomationRepository struct {
	db *gorm.DB
}

func NewAutomationRepository(db *gorm.DB) *AutomationRepository {
	return &AutomationRepository{db: db}
}

// Expose DB if needed
func (r *AutomationRepository) DB() *gorm.DB {
	return r.db
}

func (r *AutomationRepository) GetByInvoiceID(invoiceID uuid.UUID) (*models.AutomatedRecipient, error) {
	var recipient models.AutomatedRecipient
	if err := r.db.First(&recipient, "invoice_id = ?", invoiceID).Error; err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *AutomationRepository) Create(recipient *models.AutomatedRecipient) error {
	return r.db.Create(recipient).Error
}

// DeleteByInvoiceID removes the snapshot and reports how many rows matched.
func (r *AutomationRepository) DeleteByInvoiceID(invoiceID uuid.UUID) (int64, error) {
	result := r.db.Where("invoice_id = ?", invoiceID).Delete(&models.AutomatedRecipient{})
	return result.RowsAffected, result.Error
}

func (r *AutomationRepository) ListAll() ([]models.AutomatedRecipient, error) {
	var recipients []models.AutomatedRecipient
	err := r.db.Order("created_at ASC").Find(&recipients).Error
	return recipients, err
}

func (r *AutomationRepository) LogDelivery(delivery *models.WebhookDelivery) error {
	return r.db.Create(delivery).Error
}
