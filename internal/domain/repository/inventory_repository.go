package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
)

// InventoryFilterParams holds filters for listing inventory items
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       string
	Status     *enum.InventoryStatus
	LowStock   bool
}

// InventoryRepository defines data access for inventory items
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	// GetByIDForUpdate loads the item under a row lock; must be called
	// inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	GetLowStock(ctx context.Context) ([]entity.InventoryItem, error)
	// DecrementQuantity atomically decrements stock only if sufficient
	// quantity exists; returns false when no row matched.
	DecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// IncrementQuantity restores stock (cancellations).
	IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InventoryStatus) error
}
