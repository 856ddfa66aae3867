package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/qr"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/utils"
	"github.com/apratama/letter-seal/models"
)

// eventService is the concrete implementation of EventService.
type eventService struct {
	events  store.EventRepository
	claims  store.ClaimRepository
	users   store.UserRepository
	logs    store.ActivityLogRepository
	payload *qr.PayloadBuilder
	encoder qr.Encoder
	uuid    *utils.UUIDGenerator
	now     func() time.Time
	logger  *logger.Logger
}

// NewEventService constructs an EventService over the given repositories.
func NewEventService(events store.EventRepository, claims store.ClaimRepository,
	users store.UserRepository, logs store.ActivityLogRepository,
	payload *qr.PayloadBuilder, encoder qr.Encoder, logger *logger.Logger) EventService {
	return &eventService{
		events:  events,
		claims:  claims,
		users:   users,
		logs:    logs,
		payload: payload,
		encoder: encoder,
		uuid:    utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *eventService) Create(ctx context.Context, req models.CreateEventRequest, actorID string) (models.Event, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Date.IsZero() || req.ClaimDeadline.IsZero() {
		return models.Event{}, ErrInvalidDataProvided
	}

	now := s.now().UTC()
	event := models.Event{
		ID:             s.uuid.Generate(),
		Name:           req.Name,
		Date:           req.Date,
		ClaimDeadline:  req.ClaimDeadline,
		TemplateRef:    req.TemplateRef,
		TemplateConfig: req.TemplateConfig,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("event creation ended with error")
		return models.Event{}, fmt.Errorf("event creation ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionCreateEvent,
		fmt.Sprintf("created event %s", created.Name),
		map[string]any{"event_id": created.ID})

	return created, nil
}

func (s *eventService) Get(ctx context.Context, id string) (models.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) Update(ctx context.Context, id string, update models.EventUpdate, actorID string) (models.Event, error) {
	log := logger.FromContext(ctx)

	updated, err := s.events.Update(ctx, id, update)
	if err != nil {
		log.Err(err).Str("eventID", id).Msg("event update ended with error")
		return models.Event{}, fmt.Errorf("event update ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionUpdateEvent,
		fmt.Sprintf("updated event %s", updated.Name),
		map[string]any{"event_id": id})

	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id string, actorID string) error {
	log := logger.FromContext(ctx)

	if err := s.events.Delete(ctx, id); err != nil {
		log.Err(err).Str("eventID", id).Msg("event deletion ended with error")
		return fmt.Errorf("event deletion ended with error: %w", err)
	}

	s.record(ctx, actorID, models.ActionDeleteEvent,
		"deleted event and its claims",
		map[string]any{"event_id": id})

	return nil
}

// Claim records a certificate claim for an event whose deadline has not
// passed. Claims are not deduplicated: the same name may claim again and
// receives a new claim with its own ID.
func (s *eventService) Claim(ctx context.Context, eventID string, req models.ClaimCertificateRequest, ip string) (models.CertificateClaim, error) {
	log := logger.FromContext(ctx)

	if req.RecipientName == "" {
		return models.CertificateClaim{}, ErrInvalidDataProvided
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return models.CertificateClaim{}, err
	}

	if s.now().After(event.ClaimDeadline) {
		return models.CertificateClaim{}, ErrDeadlinePassed
	}

	claimID := s.uuid.Generate()
	payload, err := s.payload.CertificatePayload(eventID, claimID, req.RecipientName, req.CallSign)
	if err != nil {
		log.Err(err).Str("eventID", eventID).Msg("certificate payload build failed")
		return models.CertificateClaim{}, fmt.Errorf("certificate payload build failed: %w", err)
	}

	claim := models.CertificateClaim{
		ID:                claimID,
		EventID:           eventID,
		UserID:            req.UserID,
		RecipientName:     req.RecipientName,
		CallSign:          req.CallSign,
		CertificateNumber: certificateNumber(eventID, claimID),
		QRPayload:         payload,
		ClaimedAt:         s.now().UTC(),
	}

	created, err := s.claims.Create(ctx, claim)
	if err != nil {
		log.Err(err).Str("eventID", eventID).Msg("claim creation ended with error")
		return models.CertificateClaim{}, fmt.Errorf("claim creation ended with error: %w", err)
	}

	s.record(ctx, req.UserID, models.ActionClaimCertificate,
		fmt.Sprintf("%s claimed a certificate for %s", req.RecipientName, event.Name),
		map[string]any{"event_id": eventID, "claim_id": claimID})

	return created, nil
}

func (s *eventService) ListClaims(ctx context.Context, eventID string) ([]models.CertificateClaim, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	return s.claims.ListByEventID(ctx, eventID)
}

// ClaimQRCode renders the certificate QR image for a claim.
func (s *eventService) ClaimQRCode(ctx context.Context, claimID string) ([]byte, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	return s.encoder.EncodePNG(claim.QRPayload, qr.EncodeOptions{})
}

// certificateNumber builds the human-scannable display label. Truncated
// IDs make it readable, not unique; the claim ID stays the real key.
func certificateNumber(eventID, claimID string) string {
	return strings.ToUpper(fmt.Sprintf("CERT/%s/%s", head(eventID, 4), head(claimID, 4)))
}

func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func (s *eventService) record(ctx context.Context, actorID string, action models.ActivityAction, description string, metadata map[string]any) {
	entry := models.ActivityLog{
		ID:          s.uuid.Generate(),
		UserID:      actorID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   s.now().UTC(),
	}
	if actorID != "" {
		if actor, err := s.users.GetByID(ctx, actorID); err == nil {
			entry.UserName = actor.Name
		}
	}
	if _, err := s.logs.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("action", string(action)).Msg("activity log write failed")
	}
}
