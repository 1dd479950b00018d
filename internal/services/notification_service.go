package services

import (
	"database/sql"
	"errors"
	"fmt"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
)

var ErrNotificationNotFound = errors.New("notification not found")

// --- NotificationService Interface ---
type NotificationService interface {
	GetNotifications(userID string) ([]models.Notification, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) error
}

// --- notificationService Implementation ---
type notificationService struct {
	notificationRepo repositories.NotificationRepository
	db               *sql.DB
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository, db *sql.DB) NotificationService {
	return &notificationService{notificationRepo: nr, db: db}
}

func (s *notificationService) GetNotifications(userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetNotificationsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkRead marks a single notification as read. The user ID scopes the
// update so one user cannot touch another's notifications.
func (s *notificationService) MarkRead(notificationID, userID string) error {
	if err := s.notificationRepo.MarkRead(s.db, notificationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(userID string) error {
	if err := s.notificationRepo.MarkAllRead(s.db, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
