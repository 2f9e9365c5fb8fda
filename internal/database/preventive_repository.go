package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const preventiveColumns = `id, hotel_id, room_number, category, title, description,
	frequency, next_due_date, last_completed_date, assigned_to, status`

// PreventiveRepository handles preventive maintenance rows in the remote backend
type PreventiveRepository struct {
	db DB
}

// NewPreventiveRepository creates a new preventive maintenance repository
func NewPreventiveRepository(db DB) *PreventiveRepository {
	return &PreventiveRepository{db: db}
}

// FetchPreventive retrieves all preventive tasks for one hotel ordered by due date
func (r *PreventiveRepository) FetchPreventive(hotelID string) ([]models.PreventiveMaintenance, error) {
	var rows []preventiveRow

	query := fmt.Sprintf(`
		SELECT %s FROM preventive_maintenance
		WHERE hotel_id = $1
		ORDER BY next_due_date
	`, preventiveColumns)

	if err := r.db.Select(&rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("failed to fetch preventive maintenance: %w", err)
	}

	tasks := make([]models.PreventiveMaintenance, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, preventiveFromRow(row))
	}
	return tasks, nil
}

// InsertPreventive creates a preventive task row and returns the authoritative record
func (r *PreventiveRepository) InsertPreventive(p models.PreventiveMaintenance) (*models.PreventiveMaintenance, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO preventive_maintenance (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, preventiveColumns, preventiveColumns)

	var row preventiveRow
	err := r.db.Get(&row, query,
		p.ID, p.HotelID, p.RoomNumber, string(p.Category), p.Title, p.Description,
		string(p.Frequency), p.NextDueDate, p.LastCompletedDate, p.AssignedTo,
		string(p.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to insert preventive maintenance: %w", err)
	}

	task := preventiveFromRow(row)
	return &task, nil
}

// UpdatePreventive applies a partial update and returns the updated record,
// or nil when the task does not exist
func (r *PreventiveRepository) UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error) {
	assigns := preventiveAssignments(patch)
	if len(assigns) == 0 {
		return r.fetchPreventiveByID(id)
	}

	set, args := setClause(assigns)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE preventive_maintenance SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), preventiveColumns)

	var row preventiveRow
	if err := r.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update preventive maintenance: %w", err)
	}

	task := preventiveFromRow(row)
	return &task, nil
}

func (r *PreventiveRepository) fetchPreventiveByID(id string) (*models.PreventiveMaintenance, error) {
	var row preventiveRow

	query := fmt.Sprintf(`SELECT %s FROM preventive_maintenance WHERE id = $1`, preventiveColumns)

	if err := r.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch preventive maintenance: %w", err)
	}

	task := preventiveFromRow(row)
	return &task, nil
}

// DeletePreventive removes a preventive task row
func (r *PreventiveRepository) DeletePreventive(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM preventive_maintenance WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete preventive maintenance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeletePreventiveByHotel removes all preventive tasks of a hotel (cascade
// on hotel delete)
func (r *PreventiveRepository) DeletePreventiveByHotel(hotelID string) error {
	if _, err := r.db.Exec(`DELETE FROM preventive_maintenance WHERE hotel_id = $1`, hotelID); err != nil {
		return fmt.Errorf("failed to delete preventive maintenance for hotel: %w", err)
	}
	return nil
}
