package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
	"cleanstride_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrTokenGeneration    = errors.New("failed to generate token")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest DTO. Self-registration always produces a customer; staff
// and courier accounts are provisioned by an admin.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// CreateProfileRequest DTO for admin-side account provisioning.
type CreateProfileRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     string  `json:"role" binding:"required"`
}

// UpdateProfileRequest DTO. Email and role are not editable through this
// path; role changes go through SetProfileRole.
type UpdateProfileRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// RefreshRequest DTO
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.Profile `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	Refresh(req RefreshRequest) (*AuthResponse, error)
	GetProfile(profileID string) (*models.Profile, error)
	UpdateProfile(profileID string, req UpdateProfileRequest) (*models.Profile, error)
	CreateProfile(req CreateProfileRequest) (*models.Profile, error)
	GetProfiles(filters models.ProfileFilters) ([]models.Profile, int, error)
	SetProfileActive(profileID string, active bool) (*models.Profile, error)
	SetProfileRole(profileID string, role string) (*models.Profile, error)
}

// --- authService Implementation ---
type authService struct {
	profileRepo repositories.ProfileRepository
	db          *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(pr repositories.ProfileRepository, db *sql.DB) AuthService {
	return &authService{profileRepo: pr, db: db}
}

func (s *authService) issueTokens(profile *models.Profile) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		User:         profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) createAccount(email, password, fullName string, phone, address *string, role models.UserRole) (*models.Profile, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := models.Profile{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		FullName: fullName,
		Phone:    phone,
		Address:  address,
		Role:     role,
		IsActive: true,
	}

	createdID, err := s.profileRepo.CreateProfile(s.db, &profile, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	created, err := s.profileRepo.FindProfileByID(createdID)
	if err != nil {
		return nil, fmt.Errorf("profile created but failed to retrieve details: %w", err)
	}
	return created, nil
}

// Register creates a customer account and logs it in.
func (s *authService) Register(req RegisterRequest) (*AuthResponse, error) {
	profile, err := s.createAccount(req.Email, req.Password, req.FullName, req.Phone, req.Address, models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(profile)
}

// Login verifies credentials and returns fresh tokens.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	profile, storedHash, err := s.profileRepo.FindProfileByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !profile.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(profile)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *authService) Refresh(req RefreshRequest) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	profile, err := s.profileRepo.FindProfileByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	if !profile.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(profile)
}

// GetProfile retrieves a profile by ID.
func (s *authService) GetProfile(profileID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile edits the mutable contact fields of a profile.
func (s *authService) UpdateProfile(profileID string, req UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	profile.Address = req.Address

	if err := s.profileRepo.UpdateProfile(s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(profileID)
}

// CreateProfile provisions an account with an explicit role (admin only,
// enforced at the router).
func (s *authService) CreateProfile(req CreateProfileRequest) (*models.Profile, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role '%s'", ErrValidation, req.Role)
	}
	return s.createAccount(req.Email, req.Password, req.FullName, req.Phone, req.Address, role)
}

// GetProfiles lists profiles with filters and pagination.
func (s *authService) GetProfiles(filters models.ProfileFilters) ([]models.Profile, int, error) {
	if filters.Role != nil && !models.UserRole(*filters.Role).Valid() {
		return nil, 0, fmt.Errorf("%w: unknown role '%s'", ErrValidation, *filters.Role)
	}
	profiles, total, err := s.profileRepo.GetProfiles(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}

// SetProfileActive toggles an account on or off. Deactivated accounts fail
// login and token refresh.
func (s *authService) SetProfileActive(profileID string, active bool) (*models.Profile, error) {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	profile.IsActive = active
	if err := s.profileRepo.UpdateProfile(s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// SetProfileRole reassigns an account's role.
func (s *authService) SetProfileRole(profileID string, role string) (*models.Profile, error) {
	newRole := models.UserRole(role)
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role '%s'", ErrValidation, role)
	}

	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	profile.Role = newRole
	if err := s.profileRepo.UpdateProfile(s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
