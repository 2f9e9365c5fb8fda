package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const authUserColumns = `id, email, password_hash, email_confirmed`

// AuthRepository handles remote identity-provider credential rows. Each
// auth user is linked 1:1 to a profiles row by id.
type AuthRepository struct {
	db DB
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// GetAuthUserByEmail retrieves a credential row by email, case-insensitive,
// returning nil without error when absent
func (r *AuthRepository) GetAuthUserByEmail(email string) (*models.AuthUser, error) {
	var row authUserRow

	query := fmt.Sprintf(`SELECT %s FROM auth_users WHERE LOWER(email) = LOWER($1)`, authUserColumns)

	if err := r.db.Get(&row, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch auth user: %w", err)
	}

	user := authUserFromRow(row)
	return &user, nil
}

// CreateAuthUser creates a credential row and returns it. New accounts start
// unconfirmed; the identity provider flips email_confirmed out of band.
func (r *AuthRepository) CreateAuthUser(email, passwordHash string) (*models.AuthUser, error) {
	id := uuid.New().String()

	query := fmt.Sprintf(`
		INSERT INTO auth_users (id, email, password_hash, email_confirmed)
		VALUES ($1, $2, $3, false)
		RETURNING %s
	`, authUserColumns)

	var row authUserRow
	if err := r.db.Get(&row, query, id, email, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to create auth user: %w", err)
	}

	user := authUserFromRow(row)
	return &user, nil
}

// DeleteAuthUser removes a credential row
func (r *AuthRepository) DeleteAuthUser(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM auth_users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete auth user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
