package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a tailoring order and its running balance. TotalAmount is
// fixed at creation time from the committed line items; RemainingAmount is
// always TotalAmount minus the sum of recorded payments and never negative.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber     string           `gorm:"size:100;unique;not null" json:"order_number"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	TotalAmount     int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	RemainingAmount int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Status          enum.OrderStatus `gorm:"default:0;index" json:"status"`
	DeliveryDate    *time.Time       `gorm:"type:date" json:"delivery_date,omitempty"`
	StartedAt       *time.Time       `json:"started_at,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		RemainingAmount float64 `json:"remaining_amount"`
	}{
		Alias:           Alias(o),
		TotalAmount:     float64(o.TotalAmount) / 100,
		RemainingAmount: float64(o.RemainingAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// AmountPaid returns the amount already paid against the order, in cents
func (o *Order) AmountPaid() int64 {
	return o.TotalAmount - o.RemainingAmount
}

// OrderItem represents a line item in an order. Line items are created
// atomically with their parent order and never updated afterwards.
type OrderItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	InventoryItemID *uuid.UUID `gorm:"type:uuid;index" json:"inventory_item_id,omitempty"`
	ItemName        string     `gorm:"size:255;not null" json:"item_name"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	UnitPrice       int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Subtotal        int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time  `json:"created_at"`

	// Relationships
	Order         Order          `gorm:"foreignKey:OrderID" json:"-"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Subtotal:  float64(oi.Subtotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
