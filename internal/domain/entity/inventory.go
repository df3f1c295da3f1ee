package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// InventoryItem represents a stocked material (fabric, thread, buttons...).
// Quantity is mutated only through stock reservation and restoration so it
// can never go negative. Crossing the low-stock threshold flags the item for
// restocking but does not change its status; only quantity reaching zero
// flips it to out_of_stock.
type InventoryItem struct {
	ID                uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string               `gorm:"size:255;not null" json:"name"`
	Type              string               `gorm:"size:100" json:"type"`
	Quantity          int                  `gorm:"not null;default:0" json:"quantity"`
	Unit              string               `gorm:"size:50" json:"unit"`
	Price             int64                `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	LowStockThreshold int                  `gorm:"not null;default:0" json:"low_stock_threshold"`
	Status            enum.InventoryStatus `gorm:"default:0;index" json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal and expose the
// low-stock display flag
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type Alias InventoryItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		LowStock bool    `json:"low_stock"`
	}{
		Alias:    Alias(i),
		Price:    float64(i.Price) / 100,
		LowStock: i.IsLowStock(),
	})
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the item needs restocking. This is a display
// signal, independent of the availability status.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
