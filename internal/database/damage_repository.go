package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const damageColumns = `id, hotel_id, room_number, category, description, status,
	priority, reported_date, completed_date, cost, hours_spent, materials,
	items_used, notes, reported_by, assigned_to, images, last_edited_at`

// DamageRepository handles repair ticket rows in the remote backend
type DamageRepository struct {
	db DB
}

// NewDamageRepository creates a new damage repository
func NewDamageRepository(db DB) *DamageRepository {
	return &DamageRepository{db: db}
}

// FetchDamages retrieves all damages for one hotel, newest first
func (r *DamageRepository) FetchDamages(hotelID string) ([]models.Damage, error) {
	var rows []damageRow

	query := fmt.Sprintf(`
		SELECT %s FROM damages
		WHERE hotel_id = $1
		ORDER BY reported_date DESC
	`, damageColumns)

	if err := r.db.Select(&rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("failed to fetch damages: %w", err)
	}

	damages := make([]models.Damage, 0, len(rows))
	for _, row := range rows {
		damages = append(damages, damageFromRow(row))
	}
	return damages, nil
}

// InsertDamage creates a damage row and returns the authoritative record
func (r *DamageRepository) InsertDamage(d models.Damage) (*models.Damage, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	itemsUsed, err := json.Marshal(d.ItemsUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items used: %w", err)
	}
	images, err := json.Marshal(d.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO damages (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING %s
	`, damageColumns, damageColumns)

	var row damageRow
	err = r.db.Get(&row, query,
		d.ID, d.HotelID, d.RoomNumber, string(d.Category), d.Description,
		string(d.Status), string(d.Priority), d.ReportedDate, d.CompletedDate,
		d.Cost, d.HoursSpent, pq.Array(d.Materials), itemsUsed, d.Notes,
		d.ReportedBy, d.AssignedTo, images, d.LastEditedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert damage: %w", err)
	}

	damage := damageFromRow(row)
	return &damage, nil
}

// UpdateDamage applies a partial update and returns the updated record, or
// nil when the damage does not exist
func (r *DamageRepository) UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error) {
	assigns := damageAssignments(patch)
	if len(assigns) == 0 {
		return r.fetchDamageByID(id)
	}

	set, args := setClause(assigns)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE damages SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), damageColumns)

	var row damageRow
	if err := r.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update damage: %w", err)
	}

	damage := damageFromRow(row)
	return &damage, nil
}

func (r *DamageRepository) fetchDamageByID(id string) (*models.Damage, error) {
	var row damageRow

	query := fmt.Sprintf(`SELECT %s FROM damages WHERE id = $1`, damageColumns)

	if err := r.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch damage: %w", err)
	}

	damage := damageFromRow(row)
	return &damage, nil
}

// DeleteDamage removes a damage row
func (r *DamageRepository) DeleteDamage(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM damages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete damage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteDamagesByHotel removes all damages of a hotel (cascade on hotel delete)
func (r *DamageRepository) DeleteDamagesByHotel(hotelID string) error {
	if _, err := r.db.Exec(`DELETE FROM damages WHERE hotel_id = $1`, hotelID); err != nil {
		return fmt.Errorf("failed to delete damages for hotel: %w", err)
	}
	return nil
}
