package database

import (
	"database/sql"
	"fmt"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

const roomColumns = `hotel_id, number, floor, type, status`

// RoomRepository handles room rows in the remote backend. Rooms are fixed
// inventory keyed by (hotel_id, number); there is no single-room insert.
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FetchRooms retrieves all rooms for one hotel ordered by room number
func (r *RoomRepository) FetchRooms(hotelID string) ([]models.Room, error) {
	var rows []roomRow

	query := fmt.Sprintf(`
		SELECT %s FROM rooms
		WHERE hotel_id = $1
		ORDER BY number
	`, roomColumns)

	if err := r.db.Select(&rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	rooms := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, roomFromRow(row))
	}
	return rooms, nil
}

// UpdateRoom applies a partial update to one room and returns the updated
// record, or nil when the room does not exist
func (r *RoomRepository) UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error) {
	assigns := roomAssignments(patch)
	if len(assigns) == 0 {
		return r.fetchRoom(hotelID, number)
	}

	set, args := setClause(assigns)
	args = append(args, hotelID, number)
	query := fmt.Sprintf(`
		UPDATE rooms SET %s
		WHERE hotel_id = $%d AND number = $%d
		RETURNING %s
	`, set, len(args)-1, len(args), roomColumns)

	var row roomRow
	if err := r.db.Get(&row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	room := roomFromRow(row)
	return &room, nil
}

func (r *RoomRepository) fetchRoom(hotelID, number string) (*models.Room, error) {
	var row roomRow

	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE hotel_id = $1 AND number = $2`, roomColumns)

	if err := r.db.Get(&row, query, hotelID, number); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}

	room := roomFromRow(row)
	return &room, nil
}

// DeleteRoomsByHotel removes all rooms of a hotel (cascade on hotel delete)
func (r *RoomRepository) DeleteRoomsByHotel(hotelID string) error {
	if _, err := r.db.Exec(`DELETE FROM rooms WHERE hotel_id = $1`, hotelID); err != nil {
		return fmt.Errorf("failed to delete rooms for hotel: %w", err)
	}
	return nil
}
