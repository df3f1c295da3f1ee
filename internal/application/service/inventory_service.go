package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
)

// InventoryService handles inventory item management. Stock quantities are
// mutated here only through Restock; consumption happens exclusively in the
// order ledger's reservation path.
type InventoryService struct {
	tx            repository.TxManager
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(tx repository.TxManager, inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{tx: tx, inventoryRepo: inventoryRepo}
}

// CreateInventoryInput represents the create inventory item input
type CreateInventoryInput struct {
	UserID            uuid.UUID
	Name              string
	Type              string
	Quantity          int
	Unit              string
	Price             float64
	LowStockThreshold int
}

// Create adds a new inventory item
func (s *InventoryService) Create(ctx context.Context, input *CreateInventoryInput) (*entity.InventoryItem, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Item name is required")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewValidationError("Quantity cannot be negative")
	}
	if input.Price < 0 {
		return nil, apperror.NewValidationError("Price cannot be negative")
	}

	status := enum.InventoryStatusAvailable
	if input.Quantity <= 0 {
		status = enum.InventoryStatusOutOfStock
	}

	item := &entity.InventoryItem{
		UserID:            input.UserID,
		Name:              input.Name,
		Type:              input.Type,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		Price:             int64(math.Round(input.Price * 100)),
		LowStockThreshold: input.LowStockThreshold,
		Status:            status,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateInventoryInput represents the update inventory item input
type UpdateInventoryInput struct {
	Name              *string
	Type              *string
	Unit              *string
	Price             *float64
	LowStockThreshold *int
	Discontinued      *bool
}

// Update modifies an inventory item's descriptive fields. Quantity is
// deliberately not updatable here.
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, input *UpdateInventoryInput) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Type != nil {
		item.Type = *input.Type
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError("Price cannot be negative")
		}
		item.Price = int64(math.Round(*input.Price * 100))
	}
	if input.LowStockThreshold != nil {
		item.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Discontinued != nil {
		if *input.Discontinued {
			item.Status = enum.InventoryStatusDiscontinued
		} else if item.Quantity > 0 {
			item.Status = enum.InventoryStatusAvailable
		} else {
			item.Status = enum.InventoryStatusOutOfStock
		}
	}

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Restock adds quantity to an item, flipping exhausted stock back to
// available
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, amount int) (*entity.InventoryItem, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationError("Restock amount must be greater than zero")
	}

	err := runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		item, err := s.inventoryRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Inventory item")
		}
		if item.Status == enum.InventoryStatusDiscontinued {
			return apperror.NewValidationError("Cannot restock a discontinued item")
		}

		if err := s.inventoryRepo.IncrementQuantity(ctx, id, amount); err != nil {
			return err
		}
		if item.Status == enum.InventoryStatusOutOfStock && item.Quantity+amount > 0 {
			return s.inventoryRepo.UpdateStatus(ctx, id, enum.InventoryStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.inventoryRepo.GetByID(ctx, id)
}

// Get retrieves an inventory item by ID
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Inventory item")
	}
	return item, nil
}

// Delete removes an inventory item
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Inventory item")
	}
	return s.inventoryRepo.Delete(ctx, id)
}

// List lists inventory items with filtering
func (s *InventoryService) List(ctx context.Context, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.inventoryRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetLowStock returns items at or below their restocking threshold
func (s *InventoryService) GetLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.GetLowStock(ctx)
}
