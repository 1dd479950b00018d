package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"cleanstride_backend/internal/models"
)

// NotificationRepository defines the interface for notification database
// operations.
type NotificationRepository interface {
	CreateNotification(executor SQLExecutor, notification *models.Notification) (string, error)
	GetNotificationsByUser(userID string) ([]models.Notification, error)
	MarkRead(executor SQLExecutor, notificationID, userID string) error
	MarkAllRead(executor SQLExecutor, userID string) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(executor SQLExecutor, notification *models.Notification) (string, error) {
	query := `INSERT INTO notifications (user_id, order_id, title, message, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		notification.UserID, notification.OrderID, notification.Title,
		notification.Message, notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID)
	if err != nil {
		return "", fmt.Errorf("%w: creating notification for user %s: %v", ErrDatabaseError, notification.UserID, err)
	}
	return notification.ID, nil
}

func (r *notificationRepository) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `SELECT id, user_id, order_id, title, message, is_read, created_at
	          FROM notifications
	          WHERE user_id = $1
	          ORDER BY created_at DESC
	          LIMIT 100`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notifications for user %s: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notification rows: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, notificationID, userID string) error {
	result, err := executor.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("%w: marking notification %s read: %v", ErrDatabaseError, notificationID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for notification %s: %v", ErrDatabaseError, notificationID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(executor SQLExecutor, userID string) error {
	_, err := executor.Exec(`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("%w: marking notifications read for user %s: %v", ErrDatabaseError, userID, err)
	}
	return nil
}
