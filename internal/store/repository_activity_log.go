package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
)

// activityLogRepository is the PostgreSQL-backed implementation of
// [ActivityLogRepository]. The table is append-only; the application never
// updates or deletes audit rows.
type activityLogRepository struct {
	logger *logger.Logger
	db     dbtx
}

// NewActivityLogRepository constructs an [ActivityLogRepository] backed by
// the provided querying surface.
func NewActivityLogRepository(db dbtx, logger *logger.Logger) ActivityLogRepository {
	logger.Debug().Msg("creating activity log repository")
	return &activityLogRepository{
		db:     db,
		logger: logger,
	}
}

func scanActivityLog(row rowScanner) (models.ActivityLog, error) {
	var (
		entry       models.ActivityLog
		metadataRaw []byte
	)
	err := row.Scan(&entry.ID, &entry.UserID, &entry.UserName, &entry.Action, &entry.Description,
		&metadataRaw, &entry.IPAddress, &entry.CreatedAt)
	if err != nil {
		return models.ActivityLog{}, err
	}
	if len(metadataRaw) > 0 {
		if err = json.Unmarshal(metadataRaw, &entry.Metadata); err != nil {
			return models.ActivityLog{}, fmt.Errorf("error decoding log metadata: %w", err)
		}
	}
	return entry, nil
}

func (r *activityLogRepository) Append(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	metadataRaw := []byte("{}")
	if entry.Metadata != nil {
		var err error
		if metadataRaw, err = json.Marshal(entry.Metadata); err != nil {
			return models.ActivityLog{}, fmt.Errorf("error encoding log metadata: %w", err)
		}
	}

	row := r.db.QueryRowContext(ctx, appendActivityLog,
		entry.ID, entry.UserID, entry.UserName, entry.Action, entry.Description,
		metadataRaw, entry.IPAddress, entry.CreatedAt)

	saved, err := scanActivityLog(row)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.Append").Msg("error appending activity log")
		return models.ActivityLog{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// List returns the most recent entries, newest first.
func (r *activityLogRepository) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, listActivityLogs, limit)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.List").Msg("error listing activity logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.ActivityLog
	for rows.Next() {
		entry, err := scanActivityLog(rows)
		if err != nil {
			log.Err(err).Str("func", "*activityLogRepository.List").Msg("error scanning activity log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}
