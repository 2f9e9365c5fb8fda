package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const hotelColumns = `id, name, address, total_rooms, color, image`

// HotelRepository handles hotel rows in the remote backend
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// FetchHotels retrieves all hotels ordered by name
func (r *HotelRepository) FetchHotels() ([]models.Hotel, error) {
	var rows []hotelRow

	query := fmt.Sprintf(`SELECT %s FROM hotels ORDER BY name`, hotelColumns)

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch hotels: %w", err)
	}

	hotels := make([]models.Hotel, 0, len(rows))
	for _, row := range rows {
		hotels = append(hotels, hotelFromRow(row))
	}
	return hotels, nil
}

// FetchHotelByID retrieves one hotel, returning nil without error when absent
func (r *HotelRepository) FetchHotelByID(id string) (*models.Hotel, error) {
	var row hotelRow

	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE id = $1`, hotelColumns)

	if err := r.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}

	hotel := hotelFromRow(row)
	return &hotel, nil
}

// InsertHotel creates a hotel row and returns the authoritative record
func (r *HotelRepository) InsertHotel(h models.Hotel) (*models.Hotel, error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO hotels (id, name, address, total_rooms, color, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, hotelColumns)

	var row hotelRow
	err := r.db.Get(&row, query, h.ID, h.Name, h.Address, h.TotalRooms, h.Color, h.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %w", err)
	}

	hotel := hotelFromRow(row)
	return &hotel, nil
}

// UpdateHotel applies a partial update and returns the updated record, or
// nil when the hotel does not exist
func (r *HotelRepository) UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error) {
	assigns := hotelAssignments(patch)
	if len(assigns) == 0 {
		return r.FetchHotelByID(id)
	}

	set, args := setClause(assigns)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE hotels SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), hotelColumns)

	var row hotelRow
	if err := r.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	hotel := hotelFromRow(row)
	return &hotel, nil
}

// DeleteHotel removes a hotel row. The caller is responsible for cascading
// to the hotel's damages, rooms and preventive tasks; the remote schema has
// no foreign-key cascade.
func (r *HotelRepository) DeleteHotel(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete hotel: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
