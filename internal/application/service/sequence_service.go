package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchline/tailorflow-api/internal/domain/repository"
)

// Counter scopes and number prefixes
const (
	orderSequenceScope   = "order"
	paymentSequenceScope = "payment"
	orderNumberPrefix    = "ORD"
	paymentNumberPrefix  = "PAY"
)

// SequenceService produces human-readable, per-day unique identifiers of the
// form PREFIX-YYYYMMDD-NNNN. It must be called inside the transaction that
// consumes the number so that the counter advance commits or rolls back with
// the owning operation.
type SequenceService struct {
	seqRepo repository.SequenceRepository
	now     func() time.Time
}

// NewSequenceService creates a new sequence service
func NewSequenceService(seqRepo repository.SequenceRepository) *SequenceService {
	return &SequenceService{
		seqRepo: seqRepo,
		now:     time.Now,
	}
}

// NextOrderNumber returns the next order number for the current day
func (s *SequenceService) NextOrderNumber(ctx context.Context) (string, error) {
	return s.next(ctx, orderSequenceScope, orderNumberPrefix)
}

// NextPaymentNumber returns the next payment number for the current day
func (s *SequenceService) NextPaymentNumber(ctx context.Context) (string, error) {
	return s.next(ctx, paymentSequenceScope, paymentNumberPrefix)
}

func (s *SequenceService) next(ctx context.Context, scope, prefix string) (string, error) {
	day := s.now()
	n, err := s.seqRepo.Next(ctx, scope, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), n), nil
}
