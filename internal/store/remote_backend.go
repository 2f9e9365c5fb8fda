package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// remoteBackend serves reads from in-memory caches and applies writes
// optimistically: the mutation lands in the cache immediately and a
// background goroutine reconciles it against the database. On success the
// provisional record is replaced by the authoritative row; on failure the
// cache is rolled back to its pre-mutation state. Subscribers are notified
// either way so views re-read the settled state.
type remoteBackend struct {
	api    RemoteAPI
	logger *logrus.Logger
	notify func()

	mu           sync.Mutex
	hotels       []models.Hotel
	users        []models.User
	damages      map[string][]models.Damage
	rooms        map[string][]models.Room
	preventive   map[string][]models.PreventiveMaintenance
	currentUser  *models.User
	currentHotel *models.Hotel
}

func newRemoteBackend(api RemoteAPI, logger *logrus.Logger, notify func()) *remoteBackend {
	return &remoteBackend{
		api:        api,
		logger:     logger,
		notify:     notify,
		damages:    make(map[string][]models.Damage),
		rooms:      make(map[string][]models.Room),
		preventive: make(map[string][]models.PreventiveMaintenance),
	}
}

func provisionalID(kind string) string {
	return kind + "-temp-" + uuid.New().String()
}

// Initialize loads the hotel and user caches. Per-hotel buckets load lazily
// when a hotel is selected.
func (b *remoteBackend) Initialize() error {
	hotels, err := b.api.FetchHotels()
	if err != nil {
		return fmt.Errorf("failed to initialize hotels: %w", err)
	}
	users, err := b.api.FetchProfiles()
	if err != nil {
		return fmt.Errorf("failed to initialize users: %w", err)
	}

	b.mu.Lock()
	b.hotels = hotels
	b.users = users
	b.mu.Unlock()
	return nil
}

func (b *remoteBackend) Hotels() ([]models.Hotel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Hotel(nil), b.hotels...), nil
}

func (b *remoteBackend) AddHotel(h models.Hotel) (models.Hotel, error) {
	provisional := h
	provisional.ID = provisionalID("hotel")
	if provisional.Color == "" {
		provisional.Color = models.DefaultColor
	}

	b.mu.Lock()
	b.hotels = append(b.hotels, provisional)
	b.mu.Unlock()

	go func() {
		h.ID = ""
		inserted, err := b.api.InsertHotel(h)

		b.mu.Lock()
		idx := -1
		for i := range b.hotels {
			if b.hotels[i].ID == provisional.ID {
				idx = i
				break
			}
		}
		if err != nil || inserted == nil {
			if idx >= 0 {
				b.hotels = append(b.hotels[:idx], b.hotels[idx+1:]...)
			}
			b.mu.Unlock()
			b.logger.WithError(err).WithField("hotel", h.Name).Error("Hotel insert failed, rolling back")
			b.notify()
			return
		}
		if idx >= 0 {
			b.hotels[idx] = *inserted
		} else {
			b.hotels = append(b.hotels, *inserted)
		}
		b.mu.Unlock()
		b.notify()
	}()

	return provisional, nil
}

func (b *remoteBackend) UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error) {
	b.mu.Lock()
	idx := -1
	for i := range b.hotels {
		if b.hotels[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return nil, nil
	}
	previous := b.hotels[idx]
	optimistic := patch.Apply(previous)
	b.hotels[idx] = optimistic
	if b.currentHotel != nil && b.currentHotel.ID == id {
		b.currentHotel = &optimistic
	}
	b.mu.Unlock()

	go func() {
		updated, err := b.api.UpdateHotel(id, patch)

		b.mu.Lock()
		settled := previous
		if err == nil && updated != nil {
			settled = *updated
		}
		for i := range b.hotels {
			if b.hotels[i].ID == id {
				b.hotels[i] = settled
				break
			}
		}
		if b.currentHotel != nil && b.currentHotel.ID == id {
			b.currentHotel = &settled
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithField("hotel_id", id).Error("Hotel update failed, rolling back")
		}
		b.notify()
	}()

	return &optimistic, nil
}

// DeleteHotel evicts the hotel and its buckets immediately, then removes the
// child rows and the hotel remotely. A failed remote delete restores the
// whole snapshot.
func (b *remoteBackend) DeleteHotel(id string) (bool, error) {
	b.mu.Lock()
	idx := -1
	for i := range b.hotels {
		if b.hotels[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}

	snapshot := b.hotels[idx]
	damages, rooms, preventive := b.damages[id], b.rooms[id], b.preventive[id]

	b.hotels = append(b.hotels[:idx], b.hotels[idx+1:]...)
	delete(b.damages, id)
	delete(b.rooms, id)
	delete(b.preventive, id)
	if b.currentHotel != nil && b.currentHotel.ID == id {
		b.currentHotel = nil
	}
	b.mu.Unlock()

	go func() {
		err := b.api.DeleteDamagesByHotel(id)
		if err == nil {
			err = b.api.DeleteRoomsByHotel(id)
		}
		if err == nil {
			err = b.api.DeletePreventiveByHotel(id)
		}
		if err == nil {
			_, err = b.api.DeleteHotel(id)
		}
		if err == nil {
			b.notify()
			return
		}

		b.mu.Lock()
		b.hotels = append(b.hotels, snapshot)
		if damages != nil {
			b.damages[id] = damages
		}
		if rooms != nil {
			b.rooms[id] = rooms
		}
		if preventive != nil {
			b.preventive[id] = preventive
		}
		b.mu.Unlock()
		b.logger.WithError(err).WithField("hotel_id", id).Error("Hotel delete failed, rolling back")
		b.notify()
	}()

	return true, nil
}

func (b *remoteBackend) Users() ([]models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.User(nil), b.users...), nil
}

func (b *remoteBackend) AddUser(u models.User) (models.User, error) {
	provisional := u
	provisional.ID = provisionalID("user")
	if provisional.Color == "" {
		provisional.Color = models.DefaultColor
	}

	b.mu.Lock()
	b.users = append(b.users, provisional)
	b.mu.Unlock()

	go func() {
		u.ID = ""
		inserted, err := b.api.InsertProfile(u)

		b.mu.Lock()
		idx := -1
		for i := range b.users {
			if b.users[i].ID == provisional.ID {
				idx = i
				break
			}
		}
		if err != nil || inserted == nil {
			if idx >= 0 {
				b.users = append(b.users[:idx], b.users[idx+1:]...)
			}
			b.mu.Unlock()
			b.logger.WithError(err).WithField("user", u.Name).Error("User insert failed, rolling back")
			b.notify()
			return
		}
		if idx >= 0 {
			b.users[idx] = *inserted
		} else {
			b.users = append(b.users, *inserted)
		}
		b.mu.Unlock()
		b.notify()
	}()

	return provisional, nil
}

func (b *remoteBackend) UpdateUser(id string, patch models.UserPatch) (*models.User, error) {
	b.mu.Lock()
	idx := -1
	for i := range b.users {
		if b.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return nil, nil
	}
	previous := b.users[idx]
	optimistic := patch.Apply(previous)
	b.users[idx] = optimistic
	if b.currentUser != nil && b.currentUser.ID == id {
		b.currentUser = &optimistic
	}
	b.mu.Unlock()

	go func() {
		updated, err := b.api.UpdateProfile(id, patch)

		b.mu.Lock()
		settled := previous
		if err == nil && updated != nil {
			settled = *updated
		}
		for i := range b.users {
			if b.users[i].ID == id {
				b.users[i] = settled
				break
			}
		}
		if b.currentUser != nil && b.currentUser.ID == id {
			b.currentUser = &settled
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithField("user_id", id).Error("User update failed, rolling back")
		}
		b.notify()
	}()

	return &optimistic, nil
}

func (b *remoteBackend) DeleteUser(id string) (bool, error) {
	b.mu.Lock()
	idx := -1
	for i := range b.users {
		if b.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	snapshot := b.users[idx]
	b.users = append(b.users[:idx], b.users[idx+1:]...)
	if b.currentUser != nil && b.currentUser.ID == id {
		b.currentUser = nil
	}
	b.mu.Unlock()

	go func() {
		_, err := b.api.DeleteProfile(id)
		if err == nil {
			b.notify()
			return
		}
		b.mu.Lock()
		b.users = append(b.users, snapshot)
		b.mu.Unlock()
		b.logger.WithError(err).WithField("user_id", id).Error("User delete failed, rolling back")
		b.notify()
	}()

	return true, nil
}

func (b *remoteBackend) Damages(hotelID string) ([]models.Damage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Damage(nil), b.damages[hotelID]...), nil
}

func (b *remoteBackend) AddDamage(d models.Damage) (models.Damage, error) {
	provisional := d
	provisional.ID = provisionalID("damage")
	if provisional.Materials == nil {
		provisional.Materials = []string{}
	}
	if provisional.Images == nil {
		provisional.Images = models.RepairImages{}
	}

	b.mu.Lock()
	// newest first, matching the fetch ordering
	b.damages[d.HotelID] = append([]models.Damage{provisional}, b.damages[d.HotelID]...)
	b.mu.Unlock()

	go func() {
		d.ID = ""
		inserted, err := b.api.InsertDamage(d)

		b.mu.Lock()
		bucket := b.damages[d.HotelID]
		idx := -1
		for i := range bucket {
			if bucket[i].ID == provisional.ID {
				idx = i
				break
			}
		}
		if err != nil || inserted == nil {
			if idx >= 0 {
				b.damages[d.HotelID] = append(bucket[:idx], bucket[idx+1:]...)
			}
			b.mu.Unlock()
			b.logger.WithError(err).WithFields(logrus.Fields{
				"hotel_id": d.HotelID,
				"room":     d.RoomNumber,
			}).Error("Damage insert failed, rolling back")
			b.notify()
			return
		}
		if idx >= 0 {
			bucket[idx] = *inserted
		} else {
			b.damages[d.HotelID] = append([]models.Damage{*inserted}, bucket...)
		}
		b.mu.Unlock()
		b.notify()
	}()

	return provisional, nil
}

// findDamage locates a cached damage across hotel buckets.
func (b *remoteBackend) findDamage(id string) (string, int) {
	for hotelID, bucket := range b.damages {
		for i := range bucket {
			if bucket[i].ID == id {
				return hotelID, i
			}
		}
	}
	return "", -1
}

func (b *remoteBackend) UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error) {
	b.mu.Lock()
	hotelID, idx := b.findDamage(id)
	if idx < 0 {
		b.mu.Unlock()
		return nil, nil
	}
	previous := b.damages[hotelID][idx]
	optimistic := patch.Apply(previous)
	b.damages[hotelID][idx] = optimistic
	b.mu.Unlock()

	go func() {
		updated, err := b.api.UpdateDamage(id, patch)

		b.mu.Lock()
		settled := previous
		if err == nil && updated != nil {
			settled = *updated
		}
		if hid, i := b.findDamage(id); i >= 0 {
			b.damages[hid][i] = settled
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithField("damage_id", id).Error("Damage update failed, rolling back")
		}
		b.notify()
	}()

	return &optimistic, nil
}

func (b *remoteBackend) DeleteDamage(id string) (bool, error) {
	b.mu.Lock()
	hotelID, idx := b.findDamage(id)
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	snapshot := b.damages[hotelID][idx]
	b.damages[hotelID] = append(b.damages[hotelID][:idx], b.damages[hotelID][idx+1:]...)
	b.mu.Unlock()

	go func() {
		_, err := b.api.DeleteDamage(id)
		if err == nil {
			b.notify()
			return
		}
		b.mu.Lock()
		b.damages[hotelID] = append(b.damages[hotelID], snapshot)
		b.mu.Unlock()
		b.logger.WithError(err).WithField("damage_id", id).Error("Damage delete failed, rolling back")
		b.notify()
	}()

	return true, nil
}

func (b *remoteBackend) Rooms(hotelID string) ([]models.Room, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Room(nil), b.rooms[hotelID]...), nil
}

func (b *remoteBackend) UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error) {
	b.mu.Lock()
	bucket := b.rooms[hotelID]
	idx := -1
	for i := range bucket {
		if bucket[i].Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return nil, nil
	}
	previous := bucket[idx]
	optimistic := patch.Apply(previous)
	bucket[idx] = optimistic
	b.mu.Unlock()

	go func() {
		updated, err := b.api.UpdateRoom(hotelID, number, patch)

		b.mu.Lock()
		settled := previous
		if err == nil && updated != nil {
			settled = *updated
		}
		for i := range b.rooms[hotelID] {
			if b.rooms[hotelID][i].Number == number {
				b.rooms[hotelID][i] = settled
				break
			}
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithFields(logrus.Fields{
				"hotel_id": hotelID,
				"room":     number,
			}).Error("Room update failed, rolling back")
		}
		b.notify()
	}()

	return &optimistic, nil
}

// Preventive returns the hotel's tasks with due-date-derived statuses. The
// cache keeps the stored statuses; recomputation happens on every read.
func (b *remoteBackend) Preventive(hotelID string) ([]models.PreventiveMaintenance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	bucket := b.preventive[hotelID]
	tasks := make([]models.PreventiveMaintenance, 0, len(bucket))
	for _, p := range bucket {
		p.Status = EffectiveStatus(p, now)
		tasks = append(tasks, p)
	}
	return tasks, nil
}

func (b *remoteBackend) PreventiveByID(id string) (*models.PreventiveMaintenance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if hotelID, idx := b.findPreventive(id); idx >= 0 {
		task := b.preventive[hotelID][idx]
		return &task, nil
	}
	return nil, nil
}

func (b *remoteBackend) AddPreventive(p models.PreventiveMaintenance) (models.PreventiveMaintenance, error) {
	provisional := p
	provisional.ID = provisionalID("preventive")
	if provisional.Status == "" {
		provisional.Status = models.PreventivePending
	}

	b.mu.Lock()
	b.preventive[p.HotelID] = append(b.preventive[p.HotelID], provisional)
	b.mu.Unlock()

	go func() {
		p.ID = ""
		inserted, err := b.api.InsertPreventive(p)

		b.mu.Lock()
		bucket := b.preventive[p.HotelID]
		idx := -1
		for i := range bucket {
			if bucket[i].ID == provisional.ID {
				idx = i
				break
			}
		}
		if err != nil || inserted == nil {
			if idx >= 0 {
				b.preventive[p.HotelID] = append(bucket[:idx], bucket[idx+1:]...)
			}
			b.mu.Unlock()
			b.logger.WithError(err).WithField("hotel_id", p.HotelID).Error("Preventive insert failed, rolling back")
			b.notify()
			return
		}
		if idx >= 0 {
			bucket[idx] = *inserted
		} else {
			b.preventive[p.HotelID] = append(bucket, *inserted)
		}
		b.mu.Unlock()
		b.notify()
	}()

	return provisional, nil
}

func (b *remoteBackend) findPreventive(id string) (string, int) {
	for hotelID, bucket := range b.preventive {
		for i := range bucket {
			if bucket[i].ID == id {
				return hotelID, i
			}
		}
	}
	return "", -1
}

func (b *remoteBackend) UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error) {
	b.mu.Lock()
	hotelID, idx := b.findPreventive(id)
	if idx < 0 {
		b.mu.Unlock()
		return nil, nil
	}
	previous := b.preventive[hotelID][idx]
	optimistic := patch.Apply(previous)
	b.preventive[hotelID][idx] = optimistic
	b.mu.Unlock()

	go func() {
		updated, err := b.api.UpdatePreventive(id, patch)

		b.mu.Lock()
		settled := previous
		if err == nil && updated != nil {
			settled = *updated
		}
		if hid, i := b.findPreventive(id); i >= 0 {
			b.preventive[hid][i] = settled
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.WithError(err).WithField("preventive_id", id).Error("Preventive update failed, rolling back")
		}
		b.notify()
	}()

	return &optimistic, nil
}

func (b *remoteBackend) DeletePreventive(id string) (bool, error) {
	b.mu.Lock()
	hotelID, idx := b.findPreventive(id)
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	snapshot := b.preventive[hotelID][idx]
	b.preventive[hotelID] = append(b.preventive[hotelID][:idx], b.preventive[hotelID][idx+1:]...)
	b.mu.Unlock()

	go func() {
		_, err := b.api.DeletePreventive(id)
		if err == nil {
			b.notify()
			return
		}
		b.mu.Lock()
		b.preventive[hotelID] = append(b.preventive[hotelID], snapshot)
		b.mu.Unlock()
		b.logger.WithError(err).WithField("preventive_id", id).Error("Preventive delete failed, rolling back")
		b.notify()
	}()

	return true, nil
}

func (b *remoteBackend) CurrentUser() (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentUser == nil {
		return nil, nil
	}
	user := *b.currentUser
	return &user, nil
}

func (b *remoteBackend) SetCurrentUser(u *models.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u == nil {
		b.currentUser = nil
		return nil
	}
	user := *u
	b.currentUser = &user
	return nil
}

func (b *remoteBackend) CurrentHotel() (*models.Hotel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentHotel == nil {
		return nil, nil
	}
	hotel := *b.currentHotel
	return &hotel, nil
}

// SetCurrentHotel selects a hotel and loads its damages, rooms and
// preventive tasks synchronously, so views read a fully populated snapshot.
// Clearing the selection also drops every hotel-scoped cache bucket so a
// later selection cannot serve another session's stale data.
func (b *remoteBackend) SetCurrentHotel(h *models.Hotel) error {
	if h == nil {
		b.mu.Lock()
		b.currentHotel = nil
		b.damages = make(map[string][]models.Damage)
		b.rooms = make(map[string][]models.Room)
		b.preventive = make(map[string][]models.PreventiveMaintenance)
		b.mu.Unlock()
		return nil
	}

	damages, err := b.api.FetchDamages(h.ID)
	if err != nil {
		return fmt.Errorf("failed to load hotel data: %w", err)
	}
	rooms, err := b.api.FetchRooms(h.ID)
	if err != nil {
		return fmt.Errorf("failed to load hotel data: %w", err)
	}
	preventive, err := b.api.FetchPreventive(h.ID)
	if err != nil {
		return fmt.Errorf("failed to load hotel data: %w", err)
	}

	b.mu.Lock()
	hotel := *h
	b.currentHotel = &hotel
	b.damages[h.ID] = damages
	b.rooms[h.ID] = rooms
	b.preventive[h.ID] = preventive
	b.mu.Unlock()
	return nil
}

// Reset drops the caches and the selection. Remote data is untouched.
func (b *remoteBackend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.damages = make(map[string][]models.Damage)
	b.rooms = make(map[string][]models.Room)
	b.preventive = make(map[string][]models.PreventiveMaintenance)
	b.currentUser = nil
	b.currentHotel = nil
	return nil
}
