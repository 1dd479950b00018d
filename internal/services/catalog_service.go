package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
)

var ErrServiceInUse = errors.New("service is referenced by existing orders")

// --- DTOs ---

// CreateServiceRequest is used for adding a catalog entry.
type CreateServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Price        float64 `json:"price" binding:"required,gte=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateServiceRequest is used for editing a catalog entry.
type UpdateServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Price        float64 `json:"price" binding:"required,gte=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
	IsActive     bool    `json:"is_active"`
}

// --- CatalogService Interface ---
type CatalogService interface {
	CreateService(req CreateServiceRequest) (*models.Service, error)
	GetServices(activeOnly bool) ([]models.Service, error)
	GetServiceByID(serviceID string) (*models.Service, error)
	UpdateService(serviceID string, req UpdateServiceRequest) (*models.Service, error)
	DeleteService(serviceID string) error
}

// --- catalogService Implementation ---
type catalogService struct {
	serviceRepo repositories.ServiceRepository
	db          *sql.DB
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(sr repositories.ServiceRepository, db *sql.DB) CatalogService {
	return &catalogService{serviceRepo: sr, db: db}
}

func (s *catalogService) CreateService(req CreateServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	service := models.Service{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     isActive,
	}
	if _, err := s.serviceRepo.CreateService(s.db, &service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return s.serviceRepo.GetServiceByID(service.ID)
}

func (s *catalogService) GetServices(activeOnly bool) ([]models.Service, error) {
	services, err := s.serviceRepo.GetServices(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	return services, nil
}

func (s *catalogService) GetServiceByID(serviceID string) (*models.Service, error) {
	service, err := s.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service by ID: %w", err)
	}
	return service, nil
}

func (s *catalogService) UpdateService(serviceID string, req UpdateServiceRequest) (*models.Service, error) {
	service, err := s.GetServiceByID(serviceID)
	if err != nil {
		return nil, err
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DurationDays = req.DurationDays
	service.IsActive = req.IsActive

	if err := s.serviceRepo.UpdateService(s.db, service); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return s.serviceRepo.GetServiceByID(serviceID)
}

// DeleteService removes a catalog entry outright. Entries referenced by
// orders cannot be deleted (foreign key); deactivate those instead so order
// history keeps resolving.
func (s *catalogService) DeleteService(serviceID string) error {
	if err := s.serviceRepo.DeleteService(s.db, serviceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrServiceNotFound
		}
		if strings.Contains(err.Error(), "foreign key") || strings.Contains(err.Error(), "violates") {
			return fmt.Errorf("%w: %s", ErrServiceInUse, serviceID)
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
