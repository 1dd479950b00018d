package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanstride_backend/internal/models"

	"github.com/lib/pq"
)

// ProfileRepository defines the interface for profile-related database
// operations.
type ProfileRepository interface {
	CreateProfile(executor SQLExecutor, profile *models.Profile, passwordHash string) (string, error)
	FindProfileByEmail(email string) (*models.Profile, string, error) // profile, password hash, error
	FindProfileByID(profileID string) (*models.Profile, error)
	UpdateProfile(executor SQLExecutor, profile *models.Profile) error
	GetProfiles(filters models.ProfileFilters) ([]models.Profile, int, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, full_name, phone, address, role, is_active, created_at, updated_at`

func (r *profileRepository) CreateProfile(executor SQLExecutor, profile *models.Profile, passwordHash string) (string, error) {
	query := `INSERT INTO profiles (email, password_hash, full_name, phone, address, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRow(query,
		profile.Email, passwordHash, profile.FullName, profile.Phone, profile.Address,
		profile.Role, true, now, now,
	).Scan(&profile.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return "", fmt.Errorf("%w: creating profile: %v", ErrDatabaseError, err)
	}
	return profile.ID, nil
}

func (r *profileRepository) FindProfileByEmail(email string) (*models.Profile, string, error) {
	profile := &models.Profile{}
	var passwordHash string
	query := `SELECT id, email, password_hash, full_name, phone, address, role, is_active, created_at, updated_at
	          FROM profiles
	          WHERE email = $1`

	err := r.db.QueryRow(query, email).Scan(
		&profile.ID, &profile.Email, &passwordHash, &profile.FullName, &profile.Phone,
		&profile.Address, &profile.Role, &profile.IsActive, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding profile by email %s: %v", ErrDatabaseError, email, err)
	}
	return profile, passwordHash, nil
}

func (r *profileRepository) FindProfileByID(profileID string) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	err := r.db.QueryRow(query, profileID).Scan(
		&profile.ID, &profile.Email, &profile.FullName, &profile.Phone, &profile.Address,
		&profile.Role, &profile.IsActive, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding profile by ID %s: %v", ErrDatabaseError, profileID, err)
	}
	return profile, nil
}

func (r *profileRepository) UpdateProfile(executor SQLExecutor, profile *models.Profile) error {
	query := `UPDATE profiles
	          SET full_name = $1, phone = $2, address = $3, role = $4, is_active = $5, updated_at = $6
	          WHERE id = $7`
	result, err := executor.Exec(query,
		profile.FullName, profile.Phone, profile.Address, profile.Role, profile.IsActive,
		time.Now(), profile.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating profile %s: %v", ErrDatabaseError, profile.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for profile update %s: %v", ErrDatabaseError, profile.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepository) GetProfiles(filters models.ProfileFilters) ([]models.Profile, int, error) {
	profiles := []models.Profile{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + profileColumns + `, COUNT(*) OVER() AS total_count FROM profiles`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Role != nil && *filters.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argCounter))
		args = append(args, *filters.Role)
		argCounter++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argCounter))
		args = append(args, *filters.IsActive)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying profiles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Profile
		err := rows.Scan(
			&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address,
			&p.Role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning profile: %v", ErrDatabaseError, err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating profile rows: %v", ErrDatabaseError, err)
	}
	return profiles, totalCount, nil
}
