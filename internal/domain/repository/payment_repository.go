package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
)

// PaymentRepository defines data access for payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SumByOrderID returns the total amount paid against the order, in
	// cents. This is the single source for reconciling remaining_amount.
	SumByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
}
