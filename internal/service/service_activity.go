package service

import (
	"context"
	"fmt"

	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/models"
)

// activityService exposes the audit trail and computes dashboard counters
// from the repositories it can already reach.
type activityService struct {
	storages store.Storages
	logger   *logger.Logger
}

// NewActivityService constructs an ActivityService over the given storages.
func NewActivityService(storages store.Storages, logger *logger.Logger) ActivityService {
	return &activityService{
		storages: storages,
		logger:   logger,
	}
}

func (s *activityService) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.storages.ActivityLogs.List(ctx, limit)
}

// Stats aggregates counters across letters, users, events and claims. The
// counts come from plain listings; the dashboard is not on a hot path.
func (s *activityService) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats

	letters, err := s.storages.Letters.List(ctx, store.LetterFilter{})
	if err != nil {
		return models.Stats{}, fmt.Errorf("letter listing failed: %w", err)
	}
	stats.TotalLetters = len(letters)
	for _, letter := range letters {
		switch letter.Status {
		case models.StatusSigned:
			stats.SignedLetters++
		case models.StatusDraft:
			stats.DraftLetters++
		case models.StatusInvalid:
			stats.InvalidLetters++
		}
	}

	users, err := s.storages.Users.List(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("user listing failed: %w", err)
	}
	stats.TotalUsers = len(users)
	for _, user := range users {
		if user.IsActive {
			stats.ActiveUsers++
		}
	}

	events, err := s.storages.Events.List(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("event listing failed: %w", err)
	}
	stats.TotalEvents = len(events)
	for _, event := range events {
		claims, err := s.storages.Claims.ListByEventID(ctx, event.ID)
		if err != nil {
			return models.Stats{}, fmt.Errorf("claim listing failed: %w", err)
		}
		stats.TotalClaims += len(claims)
	}

	return stats, nil
}
