package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

type EventService struct {
	store store.Store
}

func NewEventService(s store.Store) *EventService {
	return &EventService{store: s}
}

func (s *EventService) CreateEvent(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error) {
	if strings.TrimSpace(e.Title) == "" {
		return nil, fmt.Errorf("%w: event title is required", model.ErrValidation)
	}
	if e.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if e.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: event start time is required", model.ErrValidation)
	}
	// Events without an explicit end run for one hour.
	if e.EndTime.IsZero() {
		e.EndTime = e.StartTime.Add(time.Hour)
	}
	if !e.EndTime.After(e.StartTime) {
		return nil, fmt.Errorf("%w: event end time must be after start time", model.ErrValidation)
	}
	return s.store.Events().Create(ctx, e)
}

func (s *EventService) GetEvent(ctx context.Context, userID, eventID string) (*model.CalendarEvent, error) {
	return s.store.Events().GetByID(ctx, userID, eventID)
}

func (s *EventService) ListEvents(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	return s.store.Events().List(ctx, userID)
}

func (s *EventService) UpdateEvent(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error) {
	if strings.TrimSpace(e.Title) == "" {
		return nil, fmt.Errorf("%w: event title is required", model.ErrValidation)
	}
	if !e.EndTime.After(e.StartTime) {
		return nil, fmt.Errorf("%w: event end time must be after start time", model.ErrValidation)
	}
	return s.store.Events().Update(ctx, e)
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	return s.store.Events().Delete(ctx, userID, eventID)
}
