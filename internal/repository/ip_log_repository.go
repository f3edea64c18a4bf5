package repository

import (
	"context"
	"database/sql"
	"fmt"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type ipLogRepository struct {
	db *sql.DB
}

func NewIPLogRepository(db *sql.DB) interfaces.IPLogRepository {
	return &ipLogRepository{db: db}
}

func (r *ipLogRepository) Get(ctx context.Context, ip string) (*models.IPLog, error) {
	var l models.IPLog
	err := r.db.QueryRowContext(ctx,
		`SELECT ip_address, request_count, last_request_at FROM ip_logs WHERE ip_address = $1`, ip,
	).Scan(&l.IPAddress, &l.RequestCount, &l.LastRequestAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}

func (r *ipLogRepository) Insert(ctx context.Context, l *models.IPLog) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO ip_logs (ip_address, request_count, last_request_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ip_address) DO NOTHING
	`, l.IPAddress, l.RequestCount, l.LastRequestAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert ip log: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CompareAndSwap matches on the previous counter and timestamp, so of two
// writers that read the same row only the first one lands.
func (r *ipLogRepository) CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE ip_logs
		SET request_count = $1, last_request_at = $2
		WHERE ip_address = $3 AND request_count = $4 AND last_request_at = $5
	`, next.RequestCount, next.LastRequestAt, prev.IPAddress, prev.RequestCount, prev.LastRequestAt)
	if err != nil {
		return false, fmt.Errorf("failed to update ip log: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
