package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
	"github.com/jackc/pgerrcode"
)

// claimRepository is the PostgreSQL-backed implementation of
// [ClaimRepository]. Claims are append-only; there is no update or
// standalone delete.
type claimRepository struct {
	logger *logger.Logger
	db     dbtx
}

// NewClaimRepository constructs a [ClaimRepository] backed by the provided
// querying surface.
func NewClaimRepository(db dbtx, logger *logger.Logger) ClaimRepository {
	logger.Debug().Msg("creating claim repository")
	return &claimRepository{
		db:     db,
		logger: logger,
	}
}

func scanClaim(row rowScanner) (models.CertificateClaim, error) {
	var c models.CertificateClaim
	err := row.Scan(&c.ID, &c.EventID, &c.UserID, &c.RecipientName, &c.CallSign,
		&c.CertificateNumber, &c.QRPayload, &c.ClaimedAt)
	return c, err
}

func (r *claimRepository) Create(ctx context.Context, claim models.CertificateClaim) (models.CertificateClaim, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createClaim,
		claim.ID, claim.EventID, claim.UserID, claim.RecipientName, claim.CallSign,
		claim.CertificateNumber, claim.QRPayload, claim.ClaimedAt)

	saved, err := scanClaim(row)
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.Create").Msg("error saving claim")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.CertificateClaim{}, ErrEventNotFound
		default:
			return models.CertificateClaim{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (models.CertificateClaim, error) {
	log := logger.FromContext(ctx)

	claim, err := scanClaim(r.db.QueryRowContext(ctx, getClaimByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CertificateClaim{}, ErrClaimNotFound
		}
		log.Err(err).Str("func", "*claimRepository.GetByID").Msg("error scanning claim")
		return models.CertificateClaim{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return claim, nil
}

func (r *claimRepository) ListByEventID(ctx context.Context, eventID string) ([]models.CertificateClaim, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listClaimsByEventID, eventID)
	if err != nil {
		log.Err(err).Str("func", "*claimRepository.ListByEventID").Msg("error listing claims")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var claims []models.CertificateClaim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			log.Err(err).Str("func", "*claimRepository.ListByEventID").Msg("error scanning claim row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		claims = append(claims, claim)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return claims, nil
}
