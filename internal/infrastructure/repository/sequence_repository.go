package repository

import (
	"context"
	"time"

	domainRepo "github.com/stitchline/tailorflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next advances the per-day counter with a single upsert. The row lock taken
// by DO UPDATE serializes concurrent callers, so two transactions on the
// same day can never observe the same value. Counting existing rows instead
// would race between the read and the insert.
func (r *sequenceRepository) Next(ctx context.Context, scope string, day time.Time) (int64, error) {
	var value int64
	err := dbFrom(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (scope, day, value)
		VALUES (?, ?, 1)
		ON CONFLICT (scope, day)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`,
		scope, day.Format("2006-01-02"),
	).Scan(&value).Error
	return value, err
}
