package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const profileColumns = `id, name, role, phone, email, color, avatar, can_delete`

// ProfileRepository handles user profile rows in the remote backend
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FetchProfiles retrieves all profiles ordered by name
func (r *ProfileRepository) FetchProfiles() ([]models.User, error) {
	var rows []profileRow

	query := fmt.Sprintf(`SELECT %s FROM profiles ORDER BY name`, profileColumns)

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// FetchProfileByID retrieves one profile, returning nil without error when
// no row is linked to the id
func (r *ProfileRepository) FetchProfileByID(id string) (*models.User, error) {
	var row profileRow

	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)

	if err := r.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	user := userFromRow(row)
	return &user, nil
}

// InsertProfile creates a profile row. The id is normally the linked auth
// user id; a fresh one is generated only when none is supplied.
func (r *ProfileRepository) InsertProfile(u models.User) (*models.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO profiles (id, name, role, phone, email, color, avatar, can_delete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, profileColumns)

	var row profileRow
	err := r.db.Get(&row, query,
		u.ID, u.Name, string(u.Role), u.Phone, u.Email, u.Color, u.Avatar.Value, u.CanDelete)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	user := userFromRow(row)
	return &user, nil
}

// UpdateProfile applies a partial update and returns the updated record, or
// nil when the profile does not exist
func (r *ProfileRepository) UpdateProfile(id string, patch models.UserPatch) (*models.User, error) {
	assigns := userAssignments(patch)
	if len(assigns) == 0 {
		return r.FetchProfileByID(id)
	}

	set, args := setClause(assigns)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), profileColumns)

	var row profileRow
	if err := r.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user := userFromRow(row)
	return &user, nil
}

// DeleteProfile removes a profile row
func (r *ProfileRepository) DeleteProfile(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
