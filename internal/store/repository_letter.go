package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
	"github.com/jackc/pgerrcode"
)

// letterRepository is the PostgreSQL-backed implementation of
// [LetterRepository]. It owns the draft guard: every mutation carries a
// `status = 'draft'` predicate so signed letters stay immutable at the
// database level, not just in service code.
type letterRepository struct {
	logger *logger.Logger
	db     dbtx
}

// NewLetterRepository constructs a [LetterRepository] backed by the provided
// querying surface (a connection pool or an open transaction).
func NewLetterRepository(db dbtx, logger *logger.Logger) LetterRepository {
	logger.Debug().Msg("creating letter repository")
	return &letterRepository{
		db:     db,
		logger: logger,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (models.Letter, error) {
	var l models.Letter
	err := row.Scan(&l.ID, &l.LetterNumber, &l.LetterDate, &l.Subject, &l.Attachment, &l.Content,
		&l.Status, &l.ContentHash, &l.QRPayload, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create persists a new draft letter.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLetterNumberExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *letterRepository) Create(ctx context.Context, letter models.Letter) (models.Letter, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createLetter,
		letter.ID, letter.LetterNumber, letter.LetterDate, letter.Subject, letter.Attachment,
		letter.Content, letter.Status, letter.CreatedBy, letter.CreatedAt, letter.UpdatedAt)

	saved, err := scanLetter(row)
	if err != nil {
		log.Err(err).Str("func", "*letterRepository.Create").Msg("error saving letter")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Letter{}, ErrLetterNumberExists
		default:
			return models.Letter{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

func (r *letterRepository) GetByID(ctx context.Context, id string) (models.Letter, error) {
	log := logger.FromContext(ctx)

	letter, err := scanLetter(r.db.QueryRowContext(ctx, getLetterByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Letter{}, ErrLetterNotFound
		}
		log.Err(err).Str("func", "*letterRepository.GetByID").Msg("error scanning letter")
		return models.Letter{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return letter, nil
}

// GetForUpdate reads a letter with SELECT ... FOR UPDATE. Only meaningful
// inside a transaction; on a bare pool the lock is released immediately.
func (r *letterRepository) GetForUpdate(ctx context.Context, id string) (models.Letter, error) {
	log := logger.FromContext(ctx)

	letter, err := scanLetter(r.db.QueryRowContext(ctx, getLetterForUpdate, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Letter{}, ErrLetterNotFound
		}
		log.Err(err).Str("func", "*letterRepository.GetForUpdate").Msg("error scanning letter")
		return models.Letter{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return letter, nil
}

// List returns letters matching the filter, newest first.
func (r *letterRepository) List(ctx context.Context, filter LetterFilter) ([]models.Letter, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select("id", "letter_number", "letter_date", "subject", "attachment", "content",
		"status", "content_hash", "qr_payload", "created_by", "created_at", "updated_at").
		From(models.Letter{}.TableName()).
		OrderBy("created_at DESC")
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.CreatedBy != "" {
		builder = builder.Where(sq.Eq{"created_by": filter.CreatedBy})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*letterRepository.List").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*letterRepository.List").Msg("error listing letters")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var letters []models.Letter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			log.Err(err).Str("func", "*letterRepository.List").Msg("error scanning letter row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		letters = append(letters, letter)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return letters, nil
}

// Update applies a partial update to a draft letter. The WHERE clause keeps
// the draft guard, so an update hitting a signed letter matches no rows and
// is reported as [ErrLetterAlreadySigned].
func (r *letterRepository) Update(ctx context.Context, id string, update models.LetterUpdate) (models.Letter, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return r.GetByID(ctx, id)
	}

	builder := psql.Update(models.Letter{}.TableName()).
		Set("updated_at", time.Now().UTC())
	if update.LetterNumber != nil {
		builder = builder.Set("letter_number", *update.LetterNumber)
	}
	if update.LetterDate != nil {
		builder = builder.Set("letter_date", *update.LetterDate)
	}
	if update.Subject != nil {
		builder = builder.Set("subject", *update.Subject)
	}
	if update.Attachment != nil {
		builder = builder.Set("attachment", *update.Attachment)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}
	builder = builder.
		Where(sq.Eq{"id": id, "status": models.StatusDraft}).
		Suffix("RETURNING " + letterColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*letterRepository.Update").Msg("error building update query")
		return models.Letter{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	letter, err := scanLetter(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Letter{}, r.classifyMissingDraft(ctx, id)
		}

		log.Err(err).Str("func", "*letterRepository.Update").Msg("error updating letter")
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Letter{}, ErrLetterNumberExists
		default:
			return models.Letter{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return letter, nil
}

// MarkSigned performs the guarded draft → signed transition. No matched row
// means another request already signed the letter, or it does not exist.
func (r *letterRepository) MarkSigned(ctx context.Context, id string, contentHash string, qrPayload string, signedAt time.Time) (models.Letter, error) {
	log := logger.FromContext(ctx)

	letter, err := scanLetter(r.db.QueryRowContext(ctx, markLetterSigned, id, contentHash, qrPayload, signedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Letter{}, r.classifyMissingDraft(ctx, id)
		}
		log.Err(err).Str("func", "*letterRepository.MarkSigned").Msg("error marking letter signed")
		return models.Letter{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return letter, nil
}

func (r *letterRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteDraftLetter, id)
	if err != nil {
		log.Err(err).Str("func", "*letterRepository.Delete").Msg("error deleting letter")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return r.classifyMissingDraft(ctx, id)
	}

	return nil
}

// classifyMissingDraft tells a vanished letter apart from a signed one after
// a draft-guarded mutation matched no rows.
func (r *letterRepository) classifyMissingDraft(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	return ErrLetterAlreadySigned
}
