package store

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/database"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// Store is the single data facade of the application. It hides which backend
// is active: against the embedded local store every operation is synchronous,
// against the remote database writes are optimistic and reconcile in the
// background. Either way callers get an immediately usable record back and a
// change notification when the state settles.
type Store struct {
	backend  backend
	notifier *Notifier
	logger   *logrus.Logger
	remote   bool
}

// NewLocal creates a store over the embedded key-value backend.
func NewLocal(kv database.KVStore, logger *logrus.Logger) *Store {
	return &Store{
		backend:  newLocalBackend(kv, logger),
		notifier: NewNotifier(),
		logger:   logger,
	}
}

// NewRemote creates a store over the remote database backend.
func NewRemote(api RemoteAPI, logger *logrus.Logger) *Store {
	s := &Store{
		notifier: NewNotifier(),
		logger:   logger,
		remote:   true,
	}
	s.backend = newRemoteBackend(api, logger, s.notifier.Notify)
	return s
}

// RemoteEnabled reports which backend the store runs on.
func (s *Store) RemoteEnabled() bool {
	return s.remote
}

// Subscribe registers a change callback and returns its unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// InitializeData prepares the backend: seeding on first local run, cache
// warming in remote mode.
func (s *Store) InitializeData() error {
	if err := s.backend.Initialize(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// ==================== HOTELS ====================

func (s *Store) GetHotels() ([]models.Hotel, error) {
	return s.backend.Hotels()
}

func (s *Store) GetHotelByID(id string) (*models.Hotel, error) {
	hotels, err := s.backend.Hotels()
	if err != nil {
		return nil, err
	}
	for _, h := range hotels {
		if h.ID == id {
			hotel := h
			return &hotel, nil
		}
	}
	return nil, nil
}

func (s *Store) AddHotel(h models.Hotel) (models.Hotel, error) {
	added, err := s.backend.AddHotel(h)
	if err != nil {
		return models.Hotel{}, err
	}
	s.notifier.Notify()
	return added, nil
}

func (s *Store) UpdateHotel(id string, patch models.HotelPatch) (*models.Hotel, error) {
	updated, err := s.backend.UpdateHotel(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.notifier.Notify()
	return updated, nil
}

// DeleteHotel removes a hotel and everything scoped to it. Only superadmins
// and admins may delete hotels.
func (s *Store) DeleteHotel(id string, actor models.User) error {
	if actor.Role != models.RoleSuperadmin && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	deleted, err := s.backend.DeleteHotel(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.notifier.Notify()
	return nil
}

// ==================== USERS ====================

func (s *Store) GetUsers() ([]models.User, error) {
	return s.backend.Users()
}

func (s *Store) GetUserByID(id string) (*models.User, error) {
	users, err := s.backend.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) AddUser(u models.User) (models.User, error) {
	added, err := s.backend.AddUser(u)
	if err != nil {
		return models.User{}, err
	}
	s.notifier.Notify()
	return added, nil
}

func (s *Store) UpdateUser(id string, patch models.UserPatch) (*models.User, error) {
	updated, err := s.backend.UpdateUser(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.notifier.Notify()
	return updated, nil
}

// DeleteUser removes a user. Only superadmins may delete users.
func (s *Store) DeleteUser(id string, actor models.User) error {
	if actor.Role != models.RoleSuperadmin {
		return ErrForbidden
	}
	deleted, err := s.backend.DeleteUser(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.notifier.Notify()
	return nil
}

// CanManageUsers reports whether the user may reach user administration.
func CanManageUsers(u models.User) bool {
	return u.Role == models.RoleSuperadmin || u.Role == models.RoleAdmin
}

// CanDeleteUsers reports whether the user may delete other users.
func CanDeleteUsers(u models.User) bool {
	return u.Role == models.RoleSuperadmin
}

// ==================== SESSION ====================

func (s *Store) GetCurrentUser() (*models.User, error) {
	return s.backend.CurrentUser()
}

func (s *Store) SetCurrentUser(u *models.User) error {
	if err := s.backend.SetCurrentUser(u); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

func (s *Store) GetCurrentHotel() (*models.Hotel, error) {
	return s.backend.CurrentHotel()
}

// SelectHotel makes the hotel current and, in remote mode, loads its data.
// An empty id clears the selection.
func (s *Store) SelectHotel(id string) error {
	if id == "" {
		if err := s.backend.SetCurrentHotel(nil); err != nil {
			return err
		}
		s.notifier.Notify()
		return nil
	}

	hotel, err := s.GetHotelByID(id)
	if err != nil {
		return err
	}
	if hotel == nil {
		return ErrNotFound
	}
	if err := s.backend.SetCurrentHotel(hotel); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// Logout clears the session state: current user, hotel selection and, in
// remote mode, the hotel-scoped caches. Persisted data is untouched.
func (s *Store) Logout() error {
	if err := s.backend.SetCurrentUser(nil); err != nil {
		return err
	}
	if err := s.backend.SetCurrentHotel(nil); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// ==================== DAMAGES ====================

// GetDamages returns the hotel's damages, optionally narrowed to those
// reported inside the range (endpoints included).
func (s *Store) GetDamages(hotelID string, rng *models.DateRange) ([]models.Damage, error) {
	damages, err := s.backend.Damages(hotelID)
	if err != nil {
		return nil, err
	}
	return filterByRange(damages, rng), nil
}

func (s *Store) AddDamage(d models.Damage) (models.Damage, error) {
	added, err := s.backend.AddDamage(d)
	if err != nil {
		return models.Damage{}, err
	}
	s.notifier.Notify()
	return added, nil
}

func (s *Store) UpdateDamage(id string, patch models.DamagePatch) (*models.Damage, error) {
	updated, err := s.backend.UpdateDamage(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.notifier.Notify()
	return updated, nil
}

func (s *Store) DeleteDamage(id string) error {
	deleted, err := s.backend.DeleteDamage(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.notifier.Notify()
	return nil
}

// ==================== ROOMS ====================

func (s *Store) GetRooms(hotelID string) ([]models.Room, error) {
	return s.backend.Rooms(hotelID)
}

func (s *Store) UpdateRoom(hotelID, number string, patch models.RoomPatch) (*models.Room, error) {
	updated, err := s.backend.UpdateRoom(hotelID, number, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.notifier.Notify()
	return updated, nil
}

// ==================== PREVENTIVE MAINTENANCE ====================

// GetPreventive returns the hotel's preventive tasks with statuses
// recomputed against the clock, optionally narrowed to one room.
func (s *Store) GetPreventive(hotelID, roomNumber string) ([]models.PreventiveMaintenance, error) {
	tasks, err := s.backend.Preventive(hotelID)
	if err != nil {
		return nil, err
	}
	if roomNumber == "" {
		return tasks, nil
	}
	filtered := make([]models.PreventiveMaintenance, 0, len(tasks))
	for _, p := range tasks {
		if p.RoomNumber == roomNumber {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *Store) AddPreventive(p models.PreventiveMaintenance) (models.PreventiveMaintenance, error) {
	added, err := s.backend.AddPreventive(p)
	if err != nil {
		return models.PreventiveMaintenance{}, err
	}
	s.notifier.Notify()
	return added, nil
}

// UpdatePreventive applies a partial update. Marking a task completed
// schedules its next occurrence: the completion is recorded, the due date
// advances one frequency interval and the task returns to pending.
func (s *Store) UpdatePreventive(id string, patch models.PreventivePatch) (*models.PreventiveMaintenance, error) {
	current, err := s.backend.PreventiveByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	patch = applyRecurrence(*current, patch, time.Now())

	updated, err := s.backend.UpdatePreventive(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.notifier.Notify()
	return updated, nil
}

func (s *Store) DeletePreventive(id string) error {
	deleted, err := s.backend.DeletePreventive(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.notifier.Notify()
	return nil
}

// ==================== STATISTICS ====================

func (s *Store) GetMaintenanceStats(hotelID string, rng *models.DateRange) (models.MaintenanceStats, error) {
	damages, err := s.GetDamages(hotelID, rng)
	if err != nil {
		return models.MaintenanceStats{}, err
	}
	return ComputeMaintenanceStats(damages, time.Now()), nil
}

func (s *Store) GetCategoryStats(hotelID string, rng *models.DateRange) ([]models.CategoryStats, error) {
	damages, err := s.GetDamages(hotelID, rng)
	if err != nil {
		return nil, err
	}
	return ComputeCategoryStats(damages), nil
}

func (s *Store) GetMonthlyStats(hotelID string, rng *models.DateRange) ([]models.MonthlyStats, error) {
	damages, err := s.GetDamages(hotelID, rng)
	if err != nil {
		return nil, err
	}
	return ComputeMonthlyStats(damages, rng, time.Now()), nil
}

// ==================== EXPORT & RESET ====================

// ExportBundle is a point-in-time report of one hotel.
type ExportBundle struct {
	Damages       []models.Damage         `json:"damages"`
	Rooms         []models.Room           `json:"rooms"`
	Stats         models.MaintenanceStats `json:"stats"`
	CategoryStats []models.CategoryStats  `json:"categoryStats"`
	MonthlyStats  []models.MonthlyStats   `json:"monthlyStats"`
}

// ExportData assembles the hotel's full report bundle.
func (s *Store) ExportData(hotelID string) (*ExportBundle, error) {
	damages, err := s.GetDamages(hotelID, nil)
	if err != nil {
		return nil, err
	}
	rooms, err := s.GetRooms(hotelID)
	if err != nil {
		return nil, err
	}
	return &ExportBundle{
		Damages:       damages,
		Rooms:         rooms,
		Stats:         ComputeMaintenanceStats(damages, time.Now()),
		CategoryStats: ComputeCategoryStats(damages),
		MonthlyStats:  ComputeMonthlyStats(damages, nil, time.Now()),
	}, nil
}

// ResetData restores the backend to its initial state: seed data locally, an
// empty cache remotely.
func (s *Store) ResetData() error {
	if err := s.backend.Reset(); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}
