package database

import "github.com/hotelmaintpro/maintenance-backend/internal/models"

// Remote bundles the per-entity repositories into the single surface the
// store's remote backend consumes.
type Remote struct {
	hotels     *HotelRepository
	profiles   *ProfileRepository
	damages    *DamageRepository
	rooms      *RoomRepository
	preventive *PreventiveRepository
}

// NewRemote creates the remote repository aggregate
func NewRemote(db DB) *Remote {
	return &Remote{
		hotels:     NewHotelRepository(db),
		profiles:   NewProfileRepository(db),
		damages:    NewDamageRepository(db),
		rooms:      NewRoomRepository(db),
		preventive: NewPreventiveRepository(db),
	}
}

func (r *Remote) FetchHotels() ([]models.Hotel, error) { return r.hotels.FetchHotels() }

func (r *Remote) FetchHotelByID(id string) (*models.Hotel, error) {
	return r.hotels.FetchHotelByID(id)
}

func (r *Remote) InsertHotel(h models.Hotel) (*models.Hotel, error) { return r.hotels.InsertHotel(h) }

func (r *Remote) UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error) {
	return r.hotels.UpdateHotel(id, patch)
}

func (r *Remote) DeleteHotel(id string) (bool, error) { return r.hotels.DeleteHotel(id) }

func (r *Remote) FetchProfiles() ([]models.User, error) { return r.profiles.FetchProfiles() }

func (r *Remote) InsertProfile(u models.User) (*models.User, error) {
	return r.profiles.InsertProfile(u)
}

func (r *Remote) UpdateProfile(id string, patch models.UserPatch) (*models.User, error) {
	return r.profiles.UpdateProfile(id, patch)
}

func (r *Remote) DeleteProfile(id string) (bool, error) { return r.profiles.DeleteProfile(id) }

func (r *Remote) FetchDamages(hotelID string) ([]models.Damage, error) {
	return r.damages.FetchDamages(hotelID)
}

func (r *Remote) InsertDamage(d models.Damage) (*models.Damage, error) {
	return r.damages.InsertDamage(d)
}

func (r *Remote) UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error) {
	return r.damages.UpdateDamage(id, patch)
}

func (r *Remote) DeleteDamage(id string) (bool, error) { return r.damages.DeleteDamage(id) }

func (r *Remote) DeleteDamagesByHotel(hotelID string) error {
	return r.damages.DeleteDamagesByHotel(hotelID)
}

func (r *Remote) FetchRooms(hotelID string) ([]models.Room, error) {
	return r.rooms.FetchRooms(hotelID)
}

func (r *Remote) UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error) {
	return r.rooms.UpdateRoom(hotelID, number, patch)
}

func (r *Remote) DeleteRoomsByHotel(hotelID string) error {
	return r.rooms.DeleteRoomsByHotel(hotelID)
}

func (r *Remote) FetchPreventive(hotelID string) ([]models.PreventiveMaintenance, error) {
	return r.preventive.FetchPreventive(hotelID)
}

func (r *Remote) InsertPreventive(p models.PreventiveMaintenance) (*models.PreventiveMaintenance, error) {
	return r.preventive.InsertPreventive(p)
}

func (r *Remote) UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error) {
	return r.preventive.UpdatePreventive(id, patch)
}

func (r *Remote) DeletePreventive(id string) (bool, error) {
	return r.preventive.DeletePreventive(id)
}

func (r *Remote) DeletePreventiveByHotel(hotelID string) error {
	return r.preventive.DeletePreventiveByHotel(hotelID)
}
