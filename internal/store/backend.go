package store

import (
	"errors"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

var (
	// ErrNotFound is returned when an operation targets a record that does
	// not exist in the active backend.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the acting user's role does not permit
	// the operation.
	ErrForbidden = errors.New("operation not permitted for role")

	// ErrNoHotelSelected is returned by operations that require a selected
	// hotel when none is.
	ErrNoHotelSelected = errors.New("no hotel selected")
)

// RemoteAPI is the surface the remote backend needs from the database layer.
// database.Remote implements it; tests substitute fakes.
type RemoteAPI interface {
	FetchHotels() ([]models.Hotel, error)
	FetchHotelByID(id string) (*models.Hotel, error)
	InsertHotel(h models.Hotel) (*models.Hotel, error)
	UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error)
	DeleteHotel(id string) (bool, error)

	FetchProfiles() ([]models.User, error)
	InsertProfile(u models.User) (*models.User, error)
	UpdateProfile(id string, patch models.UserPatch) (*models.User, error)
	DeleteProfile(id string) (bool, error)

	FetchDamages(hotelID string) ([]models.Damage, error)
	InsertDamage(d models.Damage) (*models.Damage, error)
	UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error)
	DeleteDamage(id string) (bool, error)
	DeleteDamagesByHotel(hotelID string) error

	FetchRooms(hotelID string) ([]models.Room, error)
	UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error)
	DeleteRoomsByHotel(hotelID string) error

	FetchPreventive(hotelID string) ([]models.PreventiveMaintenance, error)
	InsertPreventive(p models.PreventiveMaintenance) (*models.PreventiveMaintenance, error)
	UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error)
	DeletePreventive(id string) (bool, error)
	DeletePreventiveByHotel(hotelID string) error
}

// backend is the mode-specific half of the store. The local backend is fully
// synchronous; the remote backend applies writes optimistically and
// reconciles against the database in the background. Update methods return
// nil when the target record does not exist; Delete methods report whether
// anything was removed.
type backend interface {
	Initialize() error

	Hotels() ([]models.Hotel, error)
	AddHotel(h models.Hotel) (models.Hotel, error)
	UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error)
	DeleteHotel(id string) (bool, error)

	Users() ([]models.User, error)
	AddUser(u models.User) (models.User, error)
	UpdateUser(id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(id string) (bool, error)

	Damages(hotelID string) ([]models.Damage, error)
	AddDamage(d models.Damage) (models.Damage, error)
	UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error)
	DeleteDamage(id string) (bool, error)

	Rooms(hotelID string) ([]models.Room, error)
	UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error)

	Preventive(hotelID string) ([]models.PreventiveMaintenance, error)
	PreventiveByID(id string) (*models.PreventiveMaintenance, error)
	AddPreventive(p models.PreventiveMaintenance) (models.PreventiveMaintenance, error)
	UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error)
	DeletePreventive(id string) (bool, error)

	CurrentUser() (*models.User, error)
	SetCurrentUser(u *models.User) error
	CurrentHotel() (*models.Hotel, error)
	SetCurrentHotel(h *models.Hotel) error

	Reset() error
}
