package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/models"
)

// eventRepository is the PostgreSQL-backed implementation of
// [EventRepository]. The template overlay configuration is stored as a
// jsonb column and (un)marshalled at this boundary.
type eventRepository struct {
	logger *logger.Logger
	db     dbtx
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// querying surface.
func NewEventRepository(db dbtx, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e         models.Event
		configRaw []byte
	)
	err := row.Scan(&e.ID, &e.Name, &e.Date, &e.ClaimDeadline, &e.TemplateRef, &configRaw,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Event{}, err
	}
	if len(configRaw) > 0 {
		if err = json.Unmarshal(configRaw, &e.TemplateConfig); err != nil {
			return models.Event{}, fmt.Errorf("error decoding template config: %w", err)
		}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	configRaw, err := json.Marshal(event.TemplateConfig)
	if err != nil {
		return models.Event{}, fmt.Errorf("error encoding template config: %w", err)
	}

	row := r.db.QueryRowContext(ctx, createEvent,
		event.ID, event.Name, event.Date, event.ClaimDeadline, event.TemplateRef, configRaw,
		event.CreatedBy, event.CreatedAt, event.UpdatedAt)

	saved, err := scanEvent(row)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Create").Msg("error saving event")
		return models.Event{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (models.Event, error) {
	log := logger.FromContext(ctx)

	event, err := scanEvent(r.db.QueryRowContext(ctx, getEventByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*eventRepository.GetByID").Msg("error scanning event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listEvents)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.List").Msg("error listing events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Err(err).Str("func", "*eventRepository.List").Msg("error scanning event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, update models.EventUpdate) (models.Event, error) {
	log := logger.FromContext(ctx)

	builder := psql.Update(models.Event{}.TableName()).
		Set("updated_at", time.Now().UTC())
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Date != nil {
		builder = builder.Set("event_date", *update.Date)
	}
	if update.ClaimDeadline != nil {
		builder = builder.Set("claim_deadline", *update.ClaimDeadline)
	}
	if update.TemplateRef != nil {
		builder = builder.Set("template_ref", *update.TemplateRef)
	}
	if update.TemplateConfig != nil {
		configRaw, err := json.Marshal(*update.TemplateConfig)
		if err != nil {
			return models.Event{}, fmt.Errorf("error encoding template config: %w", err)
		}
		builder = builder.Set("template_config", configRaw)
	}
	builder = builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + eventColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Update").Msg("error building update query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		log.Err(err).Str("func", "*eventRepository.Update").Msg("error updating event")
		return models.Event{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return event, nil
}

// Delete removes the event; its claims go with it via ON DELETE CASCADE.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteEvent, id)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Delete").Msg("error deleting event")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}
