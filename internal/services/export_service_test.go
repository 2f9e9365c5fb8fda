package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

func newExportFixture(t *testing.T) (*ExportService, *store.Store) {
	t.Helper()
	st := store.NewLocal(newMemoryKV(), testLogger())
	require.NoError(t, st.InitializeData())
	return NewExportService(st), st
}

func TestDamagesCSV(t *testing.T) {
	svc, st := newExportFixture(t)

	hotel, err := st.AddHotel(models.Hotel{Name: "Export Test"})
	require.NoError(t, err)

	reported := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 5, 3, 16, 30, 0, 0, time.UTC)
	_, err = st.AddDamage(models.Damage{
		HotelID:       hotel.ID,
		RoomNumber:    "101",
		Category:      models.CategoryPlumbing,
		Description:   "Leaking faucet",
		Status:        models.DamageCompleted,
		Priority:      models.PriorityMedium,
		ReportedDate:  reported,
		CompletedDate: &completed,
		Cost:          45.5,
		HoursSpent:    1.25,
		Materials:     []string{"Washer", "Tape"},
		Notes:         "Replaced washer",
		ReportedBy:    "Ana",
		AssignedTo:    "Ben",
	})
	require.NoError(t, err)

	data, err := svc.DamagesCSV(hotel.ID, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"id,room,category,description,status,priority,reported_date,completed_date,cost,hours_spent,materials,notes,reported_by,assigned_to",
		lines[0])

	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 14)
	assert.Equal(t, "101", fields[1])
	assert.Equal(t, "plumbing", fields[2])
	assert.Equal(t, "2024-05-01", fields[6], "dates render as plain calendar days")
	assert.Equal(t, "2024-05-03", fields[7])
	assert.Equal(t, "45.50", fields[8], "costs carry two decimals")
	assert.Equal(t, "1.25", fields[9])
	assert.Equal(t, "Washer; Tape", fields[10])

	t.Run("Open Ticket Has Empty Completion Date", func(t *testing.T) {
		_, err := st.AddDamage(models.Damage{
			HotelID:      hotel.ID,
			RoomNumber:   "102",
			Category:     models.CategoryElectrical,
			Description:  "Flickering light",
			Status:       models.DamagePending,
			Priority:     models.PriorityLow,
			ReportedDate: reported,
		})
		require.NoError(t, err)

		data, err := svc.DamagesCSV(hotel.ID, nil)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[2], "pending")
		fields := strings.Split(lines[2], ",")
		assert.Empty(t, fields[7])
	})

	t.Run("Range Narrows The Export", func(t *testing.T) {
		rng := &models.DateRange{
			Start: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		}
		data, err := svc.DamagesCSV(hotel.ID, rng)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 1, "only the header remains")
	})
}

func TestReportBundle(t *testing.T) {
	svc, _ := newExportFixture(t)

	bundle, err := svc.ReportBundle("skye")
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.Len(t, bundle.Damages, 7)
	assert.Len(t, bundle.Rooms, 12)
	assert.Equal(t, len(bundle.Damages), bundle.Stats.TotalRepairs)
	assert.NotEmpty(t, bundle.CategoryStats)
	assert.Len(t, bundle.MonthlyStats, 6)

	var total float64
	for _, d := range bundle.Damages {
		if d.Status == models.DamageCompleted {
			total += d.Cost
		}
	}
	assert.Equal(t, total, bundle.Stats.TotalExpenses)
}
