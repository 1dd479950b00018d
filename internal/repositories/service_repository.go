package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cleanstride_backend/internal/models"
)

// ServiceRepository defines the interface for service-catalog database
// operations.
type ServiceRepository interface {
	CreateService(executor SQLExecutor, service *models.Service) (string, error)
	GetServiceByID(serviceID string) (*models.Service, error)
	GetServices(activeOnly bool) ([]models.Service, error)
	UpdateService(executor SQLExecutor, service *models.Service) error
	DeleteService(executor SQLExecutor, serviceID string) error
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) CreateService(executor SQLExecutor, service *models.Service) (string, error) {
	query := `INSERT INTO services (name, description, price, duration_days, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		service.Name, service.Description, service.Price, service.DurationDays,
		service.IsActive, now, now,
	).Scan(&service.ID)
	if err != nil {
		return "", fmt.Errorf("%w: creating service: %v", ErrDatabaseError, err)
	}
	return service.ID, nil
}

func (r *serviceRepository) GetServiceByID(serviceID string) (*models.Service, error) {
	service := &models.Service{}
	query := `SELECT id, name, description, price, duration_days, is_active, created_at, updated_at
	          FROM services
	          WHERE id = $1`
	err := r.db.QueryRow(query, serviceID).Scan(
		&service.ID, &service.Name, &service.Description, &service.Price,
		&service.DurationDays, &service.IsActive, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting service by ID %s: %v", ErrDatabaseError, serviceID, err)
	}
	return service, nil
}

func (r *serviceRepository) GetServices(activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	query := `SELECT id, name, description, price, duration_days, is_active, created_at, updated_at
	          FROM services`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Service
		err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Price,
			&s.DurationDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
		}
		services = append(services, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

func (r *serviceRepository) UpdateService(executor SQLExecutor, service *models.Service) error {
	query := `UPDATE services
	          SET name = $1, description = $2, price = $3, duration_days = $4, is_active = $5, updated_at = $6
	          WHERE id = $7`
	result, err := executor.Exec(query,
		service.Name, service.Description, service.Price, service.DurationDays,
		service.IsActive, time.Now(), service.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating service %s: %v", ErrDatabaseError, service.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for service update %s: %v", ErrDatabaseError, service.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *serviceRepository) DeleteService(executor SQLExecutor, serviceID string) error {
	query := `DELETE FROM services WHERE id = $1`
	result, err := executor.Exec(query, serviceID)
	if err != nil {
		return fmt.Errorf("%w: deleting service %s: %v", ErrDatabaseError, serviceID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for service delete %s: %v", ErrDatabaseError, serviceID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
