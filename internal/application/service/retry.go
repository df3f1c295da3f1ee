package service

import (
	"context"
	"time"

	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
)

const (
	maxTxAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// runWithRetry executes fn inside a transaction, retrying a bounded number
// of times with linear backoff when the transaction fails on a lock-wait
// timeout or serialization conflict. Any other error surfaces immediately.
func runWithRetry(ctx context.Context, tx repository.TxManager, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = tx.Do(ctx, fn)
		if !apperror.IsKind(err, apperror.KindConcurrencyConflict) {
			return err
		}
		if attempt < maxTxAttempts {
			select {
			case <-ctx.Done():
				return err
			case <-time.After(time.Duration(attempt) * retryBaseDelay):
			}
		}
	}
	return err
}
