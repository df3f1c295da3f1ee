package repository

import (
	"context"
	"time"
)

// SequenceRepository advances per-day counters used for order and payment
// numbers. Next must be a single atomic upsert-and-return statement joining
// the caller's transaction: an aborted operation may leave a gap in the
// sequence but can never produce a duplicate.
type SequenceRepository interface {
	Next(ctx context.Context, scope string, day time.Time) (int64, error)
}
