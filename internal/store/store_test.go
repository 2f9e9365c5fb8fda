package store

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// memoryKV is an in-memory slot store for tests.
type memoryKV struct {
	slots map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{slots: make(map[string][]byte)}
}

func (m *memoryKV) ReadSlot(key string) ([]byte, error) {
	return m.slots[key], nil
}

func (m *memoryKV) WriteSlot(key string, value []byte) error {
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) DeleteSlot(key string) error {
	delete(m.slots, key)
	return nil
}

func (m *memoryKV) Close() error { return nil }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestLocalStore(t *testing.T) (*Store, *memoryKV) {
	t.Helper()
	kv := newMemoryKV()
	st := NewLocal(kv, testLogger())
	require.NoError(t, st.InitializeData())
	return st, kv
}

func TestLocalStoreInitialize(t *testing.T) {
	t.Run("Fresh Store Is Seeded", func(t *testing.T) {
		st, _ := newTestLocalStore(t)

		hotels, err := st.GetHotels()
		require.NoError(t, err)
		require.Len(t, hotels, 4)
		assert.Equal(t, "skye", hotels[0].ID)

		users, err := st.GetUsers()
		require.NoError(t, err)
		require.Len(t, users, 4)
		assert.Equal(t, models.RoleSuperadmin, users[0].Role)
		assert.NotEmpty(t, users[0].PasswordHash)

		damages, err := st.GetDamages("skye", nil)
		require.NoError(t, err)
		assert.Len(t, damages, 7)
	})

	t.Run("Existing Slots Are Left Alone", func(t *testing.T) {
		st, kv := newTestLocalStore(t)

		// Empty the hotels slot, then re-run initialization.
		require.NoError(t, kv.WriteSlot("hotels", []byte(`[]`)))
		require.NoError(t, st.InitializeData())

		hotels, err := st.GetHotels()
		require.NoError(t, err)
		assert.Empty(t, hotels, "a deliberately emptied slot must not be re-seeded")
	})

	t.Run("Password Hashes Survive Reload", func(t *testing.T) {
		_, kv := newTestLocalStore(t)

		// A second store over the same slots models an app restart.
		reopened := NewLocal(kv, testLogger())
		users, err := reopened.GetUsers()
		require.NoError(t, err)
		require.Len(t, users, 4)
		require.NotEmpty(t, users[0].PasswordHash, "the stored form keeps the hash the API model hides")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("admin123")))
	})

	t.Run("Malformed Slot Is Discarded", func(t *testing.T) {
		st, kv := newTestLocalStore(t)

		require.NoError(t, kv.WriteSlot("hotels", []byte(`{not json`)))

		hotels, err := st.GetHotels()
		require.NoError(t, err)
		assert.Empty(t, hotels)

		_, present := kv.slots["hotels"]
		assert.False(t, present, "the corrupt slot is deleted on read")
	})
}

func TestLocalStoreHotels(t *testing.T) {
	st, _ := newTestLocalStore(t)

	t.Run("Add Assigns ID And Default Color", func(t *testing.T) {
		hotel, err := st.AddHotel(models.Hotel{Name: "Harbourview"})
		require.NoError(t, err)
		assert.NotEmpty(t, hotel.ID)
		assert.Equal(t, models.DefaultColor, hotel.Color)

		fetched, err := st.GetHotelByID(hotel.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "Harbourview", fetched.Name)
	})

	t.Run("Update Applies Only Set Fields", func(t *testing.T) {
		name := "Skye Tower"
		updated, err := st.UpdateHotel("skye", models.HotelPatch{Name: &name})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Skye Tower", updated.Name)
		assert.Equal(t, "123 Skyline Drive", updated.Address, "unset fields stay put")
	})

	t.Run("Update Unknown Hotel", func(t *testing.T) {
		name := "Ghost"
		_, err := st.UpdateHotel("no-such-hotel", models.HotelPatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete Cascades To Scoped Records", func(t *testing.T) {
		admin := models.User{ID: "user2", Role: models.RoleAdmin}

		require.NoError(t, st.SelectHotel("skye"))
		require.NoError(t, st.DeleteHotel("skye", admin))

		hotel, err := st.GetHotelByID("skye")
		require.NoError(t, err)
		assert.Nil(t, hotel)

		damages, err := st.GetDamages("skye", nil)
		require.NoError(t, err)
		assert.Empty(t, damages)

		rooms, err := st.GetRooms("skye")
		require.NoError(t, err)
		assert.Empty(t, rooms)

		tasks, err := st.GetPreventive("skye", "")
		require.NoError(t, err)
		assert.Empty(t, tasks)

		current, err := st.GetCurrentHotel()
		require.NoError(t, err)
		assert.Nil(t, current, "deleting the selected hotel clears the selection")

		// Other hotels keep their data.
		others, err := st.GetDamages("one-global", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, others)
	})

	t.Run("Delete Requires Admin Role", func(t *testing.T) {
		handyman := models.User{ID: "h1", Role: models.RoleHandyman}
		err := st.DeleteHotel("clarence", handyman)
		assert.ErrorIs(t, err, ErrForbidden)

		hotel, err := st.GetHotelByID("clarence")
		require.NoError(t, err)
		assert.NotNil(t, hotel)
	})

	t.Run("Delete Unknown Hotel", func(t *testing.T) {
		admin := models.User{ID: "user2", Role: models.RoleAdmin}
		err := st.DeleteHotel("no-such-hotel", admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocalStoreUsers(t *testing.T) {
	st, _ := newTestLocalStore(t)

	t.Run("Only Superadmins Delete Users", func(t *testing.T) {
		admin := models.User{ID: "user2", Role: models.RoleAdmin}
		err := st.DeleteUser("user4", admin)
		assert.ErrorIs(t, err, ErrForbidden)

		superadmin := models.User{ID: "user1", Role: models.RoleSuperadmin}
		require.NoError(t, st.DeleteUser("user4", superadmin))

		user, err := st.GetUserByID("user4")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Role Predicates", func(t *testing.T) {
		assert.True(t, CanManageUsers(models.User{Role: models.RoleSuperadmin}))
		assert.True(t, CanManageUsers(models.User{Role: models.RoleAdmin}))
		assert.False(t, CanManageUsers(models.User{Role: models.RoleHandyman}))

		assert.True(t, CanDeleteUsers(models.User{Role: models.RoleSuperadmin}))
		assert.False(t, CanDeleteUsers(models.User{Role: models.RoleAdmin}))
	})

	t.Run("Update Reclassifies Avatar", func(t *testing.T) {
		avatar := models.ClassifyAvatar("https://example.com/photo.png")
		updated, err := st.UpdateUser("user2", models.UserPatch{Avatar: &avatar})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, models.AvatarImage, updated.Avatar.Kind)
	})
}

func TestLocalStoreSession(t *testing.T) {
	st, _ := newTestLocalStore(t)

	t.Run("Select And Clear Hotel", func(t *testing.T) {
		require.NoError(t, st.SelectHotel("clarence"))
		hotel, err := st.GetCurrentHotel()
		require.NoError(t, err)
		require.NotNil(t, hotel)
		assert.Equal(t, "clarence", hotel.ID)

		require.NoError(t, st.SelectHotel(""))
		hotel, err = st.GetCurrentHotel()
		require.NoError(t, err)
		assert.Nil(t, hotel)
	})

	t.Run("Select Unknown Hotel", func(t *testing.T) {
		assert.ErrorIs(t, st.SelectHotel("no-such-hotel"), ErrNotFound)
	})

	t.Run("Logout Clears Session But Keeps Local Data", func(t *testing.T) {
		user, err := st.GetUserByID("user1")
		require.NoError(t, err)
		require.NoError(t, st.SetCurrentUser(user))
		require.NoError(t, st.SelectHotel("woolstore"))

		require.NoError(t, st.Logout())

		current, err := st.GetCurrentUser()
		require.NoError(t, err)
		assert.Nil(t, current)

		hotel, err := st.GetCurrentHotel()
		require.NoError(t, err)
		assert.Nil(t, hotel)

		hotels, err := st.GetHotels()
		require.NoError(t, err)
		assert.Len(t, hotels, 4)
	})
}

func TestLocalStoreDamages(t *testing.T) {
	st, _ := newTestLocalStore(t)

	t.Run("Add Assigns ID And Normalizes Slices", func(t *testing.T) {
		damage, err := st.AddDamage(models.Damage{
			HotelID:      "skye",
			RoomNumber:   "101",
			Category:     models.CategoryCleaning,
			Description:  "Carpet stain",
			Status:       models.DamagePending,
			Priority:     models.PriorityLow,
			ReportedDate: time.Now(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, damage.ID)
		assert.NotNil(t, damage.Materials)
		assert.NotNil(t, damage.Images)
	})

	t.Run("Update Marks Completion", func(t *testing.T) {
		completed := models.DamageCompleted
		when := time.Now()
		cost := 120.0
		updated, err := st.UpdateDamage("s7", models.DamagePatch{
			Status:        &completed,
			CompletedDate: &when,
			Cost:          &cost,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, models.DamageCompleted, updated.Status)
		require.NotNil(t, updated.CompletedDate)
		assert.Equal(t, 120.0, updated.Cost)
	})

	t.Run("Date Range Filters On Reported Date", func(t *testing.T) {
		now := time.Now()
		rng := &models.DateRange{Start: now.AddDate(0, 0, -7), End: now}
		damages, err := st.GetDamages("skye", rng)
		require.NoError(t, err)
		for _, d := range damages {
			assert.True(t, rng.Contains(d.ReportedDate))
		}
	})

	t.Run("Delete Unknown Damage", func(t *testing.T) {
		assert.ErrorIs(t, st.DeleteDamage("no-such-damage"), ErrNotFound)
	})
}

func TestLocalStoreRooms(t *testing.T) {
	st, _ := newTestLocalStore(t)

	t.Run("Update Room Status", func(t *testing.T) {
		status := models.RoomOutOfOrder
		updated, err := st.UpdateRoom("skye", "101", models.RoomPatch{Status: &status})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, models.RoomOutOfOrder, updated.Status)
		assert.Equal(t, 1, updated.Floor)
	})

	t.Run("Update Unknown Room", func(t *testing.T) {
		status := models.RoomAvailable
		_, err := st.UpdateRoom("skye", "999", models.RoomPatch{Status: &status})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocalStorePreventive(t *testing.T) {
	st, _ := newTestLocalStore(t)

	addTask := func(t *testing.T, due time.Time, room string) models.PreventiveMaintenance {
		t.Helper()
		task, err := st.AddPreventive(models.PreventiveMaintenance{
			HotelID:     "skye",
			RoomNumber:  room,
			Category:    models.CategoryHVAC,
			Title:       "Filter check",
			Frequency:   models.FrequencyWeekly,
			NextDueDate: due,
			Status:      models.PreventivePending,
		})
		require.NoError(t, err)
		return task
	}

	t.Run("Reads Recompute Overdue Status", func(t *testing.T) {
		task := addTask(t, time.Now().AddDate(0, 0, -2), "101")

		tasks, err := st.GetPreventive("skye", "")
		require.NoError(t, err)
		require.NotEmpty(t, tasks)

		var found *models.PreventiveMaintenance
		for i := range tasks {
			if tasks[i].ID == task.ID {
				found = &tasks[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, models.PreventiveOverdue, found.Status)

		// The recompute is written back.
		stored, err := st.UpdatePreventive(task.ID, models.PreventivePatch{})
		require.NoError(t, err)
		assert.Equal(t, models.PreventiveOverdue, stored.Status)
	})

	t.Run("Room Filter", func(t *testing.T) {
		addTask(t, time.Now().AddDate(0, 0, 7), "205")

		tasks, err := st.GetPreventive("skye", "205")
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "205", tasks[0].RoomNumber)
	})

	t.Run("Completion Schedules Next Occurrence", func(t *testing.T) {
		task := addTask(t, time.Now().AddDate(0, 0, 1), "305")

		completed := models.PreventiveCompleted
		updated, err := st.UpdatePreventive(task.ID, models.PreventivePatch{Status: &completed})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, models.PreventivePending, updated.Status, "the task rolls over instead of staying completed")
		require.NotNil(t, updated.LastCompletedDate)
		expectedDue := updated.LastCompletedDate.AddDate(0, 0, 7)
		assert.WithinDuration(t, expectedDue, updated.NextDueDate, time.Second)
	})

	t.Run("Update Unknown Task", func(t *testing.T) {
		_, err := st.UpdatePreventive("no-such-task", models.PreventivePatch{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocalStoreReset(t *testing.T) {
	st, _ := newTestLocalStore(t)

	admin := models.User{ID: "user1", Role: models.RoleSuperadmin}
	require.NoError(t, st.DeleteHotel("skye", admin))
	require.NoError(t, st.SelectHotel("clarence"))

	require.NoError(t, st.ResetData())

	hotels, err := st.GetHotels()
	require.NoError(t, err)
	assert.Len(t, hotels, 4, "reset restores the seed data")

	hotel, err := st.GetCurrentHotel()
	require.NoError(t, err)
	require.NotNil(t, hotel)
	assert.Equal(t, "clarence", hotel.ID, "reset leaves the session alone")
}

func TestStoreNotifications(t *testing.T) {
	st, _ := newTestLocalStore(t)

	count := 0
	unsubscribe := st.Subscribe(func() { count++ })
	defer unsubscribe()

	_, err := st.AddHotel(models.Hotel{Name: "Notify Me"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Reads do not notify.
	_, err = st.GetHotels()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, st.SelectHotel("skye"))
	assert.Equal(t, 2, count)
}
