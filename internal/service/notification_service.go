package service

import (
	"context"
	"errors"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// NotificationService reads and settles notification records. It never
// creates them; that is the mutation engine's job.
type NotificationService struct {
	notifications *repository.NotificationRepository
}

func NewNotificationService(notifications *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) SetRead(ctx context.Context, id uuid.UUID, read bool) (*model.Notification, error) {
	if err := s.notifications.SetRead(ctx, id, read); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, apperr.NotFoundf("Notification not found")
		}
		return nil, err
	}
	return s.notifications.GetByID(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.notifications.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return apperr.NotFoundf("Notification not found")
	}
	return err
}
