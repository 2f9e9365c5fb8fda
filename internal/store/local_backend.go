package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/database"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// Slot names in the local key-value store. Each entity family lives in one
// JSON blob; session state gets its own slots.
const (
	slotDamages      = "damages"
	slotRooms        = "rooms"
	slotUsers        = "users"
	slotHotels       = "hotels"
	slotPreventive   = "preventive"
	slotCurrentUser  = "current_user"
	slotCurrentHotel = "current_hotel"
)

// localBackend persists everything in the embedded key-value store. All
// operations are synchronous: a returned record is already durable.
type localBackend struct {
	kv     database.KVStore
	logger *logrus.Logger
}

func newLocalBackend(kv database.KVStore, logger *logrus.Logger) *localBackend {
	return &localBackend{kv: kv, logger: logger}
}

// readSlot decodes a slot into out, leaving out untouched when the slot is
// absent. A malformed slot is logged, dropped, and treated as absent so one
// corrupt blob cannot wedge the application.
func (b *localBackend) readSlot(key string, out interface{}) error {
	data, err := b.kv.ReadSlot(key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		b.logger.WithError(err).WithField("slot", key).Warn("Discarding malformed slot")
		if delErr := b.kv.DeleteSlot(key); delErr != nil {
			return delErr
		}
	}
	return nil
}

func (b *localBackend) writeSlot(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}
	return b.kv.WriteSlot(key, data)
}

func (b *localBackend) slotAbsent(key string) (bool, error) {
	data, err := b.kv.ReadSlot(key)
	if err != nil {
		return false, err
	}
	return len(data) == 0, nil
}

// Initialize seeds every data slot that has never been written. Existing
// slots, including deliberately emptied ones, are left alone.
func (b *localBackend) Initialize() error {
	seeds := []struct {
		slot  string
		value interface{}
	}{
		{slotHotels, seedHotels()},
		{slotUsers, userRecords(seedUsers())},
		{slotRooms, seedRooms()},
		{slotDamages, seedDamages(time.Now())},
		{slotPreventive, seedPreventive()},
	}
	for _, s := range seeds {
		absent, err := b.slotAbsent(s.slot)
		if err != nil {
			return err
		}
		if !absent {
			continue
		}
		if err := b.writeSlot(s.slot, s.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *localBackend) readHotels() ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := b.readSlot(slotHotels, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (b *localBackend) Hotels() ([]models.Hotel, error) {
	return b.readHotels()
}

func (b *localBackend) AddHotel(h models.Hotel) (models.Hotel, error) {
	hotels, err := b.readHotels()
	if err != nil {
		return models.Hotel{}, err
	}
	if h.ID == "" {
		h.ID = "hotel-" + uuid.New().String()
	}
	if h.Color == "" {
		h.Color = models.DefaultColor
	}
	hotels = append(hotels, h)
	if err := b.writeSlot(slotHotels, hotels); err != nil {
		return models.Hotel{}, err
	}
	return h, nil
}

func (b *localBackend) UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error) {
	hotels, err := b.readHotels()
	if err != nil {
		return nil, err
	}
	for i := range hotels {
		if hotels[i].ID != id {
			continue
		}
		hotels[i] = patch.Apply(hotels[i])
		if err := b.writeSlot(slotHotels, hotels); err != nil {
			return nil, err
		}
		updated := hotels[i]
		return &updated, nil
	}
	return nil, nil
}

// DeleteHotel removes the hotel and every record scoped to it.
func (b *localBackend) DeleteHotel(id string) (bool, error) {
	hotels, err := b.readHotels()
	if err != nil {
		return false, err
	}
	kept := hotels[:0]
	for _, h := range hotels {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(hotels) {
		return false, nil
	}
	if err := b.writeSlot(slotHotels, kept); err != nil {
		return false, err
	}

	if err := b.pruneDamages(id); err != nil {
		return false, err
	}
	if err := b.pruneRooms(id); err != nil {
		return false, err
	}
	if err := b.prunePreventive(id); err != nil {
		return false, err
	}

	current, err := b.CurrentHotel()
	if err != nil {
		return false, err
	}
	if current != nil && current.ID == id {
		if err := b.kv.DeleteSlot(slotCurrentHotel); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (b *localBackend) pruneDamages(hotelID string) error {
	var damages []models.Damage
	if err := b.readSlot(slotDamages, &damages); err != nil {
		return err
	}
	kept := damages[:0]
	for _, d := range damages {
		if d.HotelID != hotelID {
			kept = append(kept, d)
		}
	}
	return b.writeSlot(slotDamages, kept)
}

func (b *localBackend) pruneRooms(hotelID string) error {
	var rooms []models.Room
	if err := b.readSlot(slotRooms, &rooms); err != nil {
		return err
	}
	kept := rooms[:0]
	for _, r := range rooms {
		if r.HotelID != hotelID {
			kept = append(kept, r)
		}
	}
	return b.writeSlot(slotRooms, kept)
}

func (b *localBackend) prunePreventive(hotelID string) error {
	var tasks []models.PreventiveMaintenance
	if err := b.readSlot(slotPreventive, &tasks); err != nil {
		return err
	}
	kept := tasks[:0]
	for _, p := range tasks {
		if p.HotelID != hotelID {
			kept = append(kept, p)
		}
	}
	return b.writeSlot(slotPreventive, kept)
}

// userRecord is the stored form of a user. The API model never serializes
// the password hash, so the users slot carries it in an explicit field.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

func userRecords(users []models.User) []userRecord {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = userRecord{User: u, PasswordHash: u.PasswordHash}
	}
	return records
}

func usersFromRecords(records []userRecord) []models.User {
	if records == nil {
		return nil
	}
	users := make([]models.User, len(records))
	for i, r := range records {
		users[i] = r.User
		users[i].PasswordHash = r.PasswordHash
	}
	return users
}

func (b *localBackend) readUsers() ([]models.User, error) {
	var records []userRecord
	if err := b.readSlot(slotUsers, &records); err != nil {
		return nil, err
	}
	return usersFromRecords(records), nil
}

func (b *localBackend) writeUsers(users []models.User) error {
	return b.writeSlot(slotUsers, userRecords(users))
}

func (b *localBackend) Users() ([]models.User, error) {
	return b.readUsers()
}

func (b *localBackend) AddUser(u models.User) (models.User, error) {
	users, err := b.readUsers()
	if err != nil {
		return models.User{}, err
	}
	if u.ID == "" {
		u.ID = "user-" + uuid.New().String()
	}
	if u.Color == "" {
		u.Color = models.DefaultColor
	}
	users = append(users, u)
	if err := b.writeUsers(users); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (b *localBackend) UpdateUser(id string, patch models.UserPatch) (*models.User, error) {
	users, err := b.readUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		users[i] = patch.Apply(users[i])
		if err := b.writeUsers(users); err != nil {
			return nil, err
		}
		updated := users[i]
		return &updated, nil
	}
	return nil, nil
}

func (b *localBackend) DeleteUser(id string) (bool, error) {
	users, err := b.readUsers()
	if err != nil {
		return false, err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return false, nil
	}
	if err := b.writeUsers(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (b *localBackend) readDamages() ([]models.Damage, error) {
	var damages []models.Damage
	if err := b.readSlot(slotDamages, &damages); err != nil {
		return nil, err
	}
	return damages, nil
}

func (b *localBackend) Damages(hotelID string) ([]models.Damage, error) {
	damages, err := b.readDamages()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Damage, 0, len(damages))
	for _, d := range damages {
		if d.HotelID == hotelID {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (b *localBackend) AddDamage(d models.Damage) (models.Damage, error) {
	damages, err := b.readDamages()
	if err != nil {
		return models.Damage{}, err
	}
	if d.ID == "" {
		d.ID = "damage-" + uuid.New().String()
	}
	if d.Materials == nil {
		d.Materials = []string{}
	}
	if d.Images == nil {
		d.Images = models.RepairImages{}
	}
	damages = append(damages, d)
	if err := b.writeSlot(slotDamages, damages); err != nil {
		return models.Damage{}, err
	}
	return d, nil
}

func (b *localBackend) UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error) {
	damages, err := b.readDamages()
	if err != nil {
		return nil, err
	}
	for i := range damages {
		if damages[i].ID != id {
			continue
		}
		damages[i] = patch.Apply(damages[i])
		if err := b.writeSlot(slotDamages, damages); err != nil {
			return nil, err
		}
		updated := damages[i]
		return &updated, nil
	}
	return nil, nil
}

func (b *localBackend) DeleteDamage(id string) (bool, error) {
	damages, err := b.readDamages()
	if err != nil {
		return false, err
	}
	kept := damages[:0]
	for _, d := range damages {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(damages) {
		return false, nil
	}
	if err := b.writeSlot(slotDamages, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (b *localBackend) Rooms(hotelID string) ([]models.Room, error) {
	var rooms []models.Room
	if err := b.readSlot(slotRooms, &rooms); err != nil {
		return nil, err
	}
	filtered := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.HotelID == hotelID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (b *localBackend) UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error) {
	var rooms []models.Room
	if err := b.readSlot(slotRooms, &rooms); err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].HotelID != hotelID || rooms[i].Number != number {
			continue
		}
		rooms[i] = patch.Apply(rooms[i])
		if err := b.writeSlot(slotRooms, rooms); err != nil {
			return nil, err
		}
		updated := rooms[i]
		return &updated, nil
	}
	return nil, nil
}

func (b *localBackend) readPreventive() ([]models.PreventiveMaintenance, error) {
	var tasks []models.PreventiveMaintenance
	if err := b.readSlot(slotPreventive, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Preventive returns the hotel's tasks with due-date-derived statuses. Any
// status that changed is written back so the stored state converges.
func (b *localBackend) Preventive(hotelID string) ([]models.PreventiveMaintenance, error) {
	tasks, err := b.readPreventive()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	changed := false
	filtered := make([]models.PreventiveMaintenance, 0, len(tasks))
	for i := range tasks {
		if status := EffectiveStatus(tasks[i], now); status != tasks[i].Status {
			tasks[i].Status = status
			changed = true
		}
		if tasks[i].HotelID == hotelID {
			filtered = append(filtered, tasks[i])
		}
	}
	if changed {
		if err := b.writeSlot(slotPreventive, tasks); err != nil {
			return nil, err
		}
	}
	return filtered, nil
}

func (b *localBackend) PreventiveByID(id string) (*models.PreventiveMaintenance, error) {
	tasks, err := b.readPreventive()
	if err != nil {
		return nil, err
	}
	for _, p := range tasks {
		if p.ID == id {
			task := p
			return &task, nil
		}
	}
	return nil, nil
}

func (b *localBackend) AddPreventive(p models.PreventiveMaintenance) (models.PreventiveMaintenance, error) {
	tasks, err := b.readPreventive()
	if err != nil {
		return models.PreventiveMaintenance{}, err
	}
	if p.ID == "" {
		p.ID = "preventive-" + uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.PreventivePending
	}
	tasks = append(tasks, p)
	if err := b.writeSlot(slotPreventive, tasks); err != nil {
		return models.PreventiveMaintenance{}, err
	}
	return p, nil
}

func (b *localBackend) UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error) {
	tasks, err := b.readPreventive()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i] = patch.Apply(tasks[i])
		if err := b.writeSlot(slotPreventive, tasks); err != nil {
			return nil, err
		}
		updated := tasks[i]
		return &updated, nil
	}
	return nil, nil
}

func (b *localBackend) DeletePreventive(id string) (bool, error) {
	tasks, err := b.readPreventive()
	if err != nil {
		return false, err
	}
	kept := tasks[:0]
	for _, p := range tasks {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := b.writeSlot(slotPreventive, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (b *localBackend) CurrentUser() (*models.User, error) {
	var user models.User
	data, err := b.kv.ReadSlot(slotCurrentUser)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &user); err != nil {
		b.logger.WithError(err).Warn("Discarding malformed current user slot")
		if delErr := b.kv.DeleteSlot(slotCurrentUser); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}
	return &user, nil
}

func (b *localBackend) SetCurrentUser(u *models.User) error {
	if u == nil {
		return b.kv.DeleteSlot(slotCurrentUser)
	}
	return b.writeSlot(slotCurrentUser, u)
}

func (b *localBackend) CurrentHotel() (*models.Hotel, error) {
	var hotel models.Hotel
	data, err := b.kv.ReadSlot(slotCurrentHotel)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &hotel); err != nil {
		b.logger.WithError(err).Warn("Discarding malformed current hotel slot")
		if delErr := b.kv.DeleteSlot(slotCurrentHotel); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}
	return &hotel, nil
}

func (b *localBackend) SetCurrentHotel(h *models.Hotel) error {
	if h == nil {
		return b.kv.DeleteSlot(slotCurrentHotel)
	}
	return b.writeSlot(slotCurrentHotel, h)
}

// Reset restores the seed data, overwriting current contents. Session slots
// are left alone.
func (b *localBackend) Reset() error {
	seeds := []struct {
		slot  string
		value interface{}
	}{
		{slotHotels, seedHotels()},
		{slotUsers, userRecords(seedUsers())},
		{slotRooms, seedRooms()},
		{slotDamages, seedDamages(time.Now())},
		{slotPreventive, seedPreventive()},
	}
	for _, s := range seeds {
		if err := b.writeSlot(s.slot, s.value); err != nil {
			return err
		}
	}
	return nil
}
