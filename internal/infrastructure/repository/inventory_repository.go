package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	domainRepo "github.com/stitchline/tailorflow-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := dbFrom(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDForUpdate locks the inventory row so a concurrent order cannot pass
// a stale quantity check before this transaction commits.
func (r *inventoryRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryRepository) List(ctx context.Context, params *domainRepo.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.InventoryItem{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.LowStock {
		query = query.Where("quantity <= low_stock_threshold")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *inventoryRepository) GetLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := dbFrom(ctx, r.db).
		Where("quantity <= low_stock_threshold AND status <> ?", enum.InventoryStatusDiscontinued).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

// DecrementQuantity performs the conditional decrement:
// UPDATE inventory_items SET quantity = quantity - ? WHERE id = ? AND quantity >= ?
// Zero rows affected means insufficient stock.
func (r *inventoryRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *inventoryRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error {
	return dbFrom(ctx, r.db).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error
}

func (r *inventoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InventoryStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}
