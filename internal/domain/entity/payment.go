package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents a partial or full payment recorded against an order.
// Payments are append-only; the only mutation is administrative deletion,
// which re-derives the order's remaining amount in the same transaction.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	PaymentNumber string             `gorm:"size:100;unique;not null" json:"payment_number"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method        enum.PaymentMethod `gorm:"default:0" json:"method"`
	TransactionID *string            `gorm:"size:255" json:"transaction_id,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
