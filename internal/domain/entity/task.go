package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StaffTask represents work assigned to a tailor for an order
type StaffTask struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	AssignedTo  uuid.UUID       `gorm:"type:uuid;not null;index" json:"assigned_to"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Status      enum.TaskStatus `gorm:"default:0" json:"status"`
	DueDate     *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Order    Order `gorm:"foreignKey:OrderID" json:"-"`
	Assignee User  `gorm:"foreignKey:AssignedTo" json:"-"`
}

// BeforeCreate generates a UUID before creating a new task
func (t *StaffTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StaffTask model
func (StaffTask) TableName() string {
	return "staff_tasks"
}
