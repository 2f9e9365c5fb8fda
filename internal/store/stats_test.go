package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

func damageAt(status models.DamageStatus, category models.DamageCategory, cost float64, reported time.Time, completed *time.Time) models.Damage {
	return models.Damage{
		ID:            "d-" + string(status) + "-" + string(category),
		HotelID:       "hotel-skye",
		Category:      category,
		Status:        status,
		Cost:          cost,
		ReportedDate:  reported,
		CompletedDate: completed,
	}
}

func TestComputeMaintenanceStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	damages := []models.Damage{
		damageAt(models.DamagePending, models.CategoryPlumbing, 100, now, nil),
		damageAt(models.DamageInProgress, models.CategoryElectrical, 50, now, nil),
		damageAt(models.DamageCompleted, models.CategoryPlumbing, 200, lastMonth, &thisMonth),
		damageAt(models.DamageCompleted, models.CategoryHVAC, 400, lastMonth, &lastMonth),
		damageAt(models.DamageCancelled, models.CategoryOther, 75, now, nil),
	}

	stats := ComputeMaintenanceStats(damages, now)

	assert.Equal(t, 5, stats.TotalRepairs)
	assert.Equal(t, 1, stats.PendingRepairs, "only pending tickets count, not in-progress")
	assert.Equal(t, 1, stats.CompletedThisMonth)
	assert.Equal(t, 600.0, stats.TotalExpenses, "cost of open tickets is excluded")
	assert.Equal(t, 300.0, stats.AverageRepairCost)

	t.Run("No Completed Repairs Means Zero Average", func(t *testing.T) {
		open := []models.Damage{
			damageAt(models.DamagePending, models.CategoryPlumbing, 100, now, nil),
		}
		stats := ComputeMaintenanceStats(open, now)
		assert.Zero(t, stats.AverageRepairCost)
		assert.Zero(t, stats.TotalExpenses)
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Equal(t, models.MaintenanceStats{}, ComputeMaintenanceStats(nil, now))
	})
}

func TestComputeCategoryStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	damages := []models.Damage{
		damageAt(models.DamagePending, models.CategoryPlumbing, 100, now, nil),
		damageAt(models.DamageCompleted, models.CategoryPlumbing, 250, now, &now),
		damageAt(models.DamageCompleted, models.CategoryPlumbing, 150, now, &now),
		damageAt(models.DamagePending, models.CategoryElectrical, 500, now, nil),
	}

	stats := ComputeCategoryStats(damages)
	require.Len(t, stats, 2)

	assert.Equal(t, models.CategoryPlumbing, stats[0].Category, "largest category first")
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, 400.0, stats[0].TotalCost, "pending cost not accumulated")

	assert.Equal(t, models.CategoryElectrical, stats[1].Category)
	assert.Equal(t, 1, stats[1].Count)
	assert.Zero(t, stats[1].TotalCost)
}

func TestComputeMonthlyStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Default Six Month Window", func(t *testing.T) {
		april := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
		december := time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)

		damages := []models.Damage{
			damageAt(models.DamageCompleted, models.CategoryPlumbing, 120, april, &april),
			damageAt(models.DamageCompleted, models.CategoryHVAC, 80, april, &april),
			// Outside the window; dropped silently.
			damageAt(models.DamageCompleted, models.CategoryOther, 999, december, &december),
			// Not completed; never bucketed.
			damageAt(models.DamagePending, models.CategoryPlumbing, 50, april, nil),
		}

		stats := ComputeMonthlyStats(damages, nil, now)
		require.Len(t, stats, 6)

		assert.Equal(t, "Jan 2024", stats[0].Month)
		assert.Equal(t, "Jun 2024", stats[5].Month)

		assert.Equal(t, "Apr 2024", stats[3].Month)
		assert.Equal(t, 2, stats[3].Repairs)
		assert.Equal(t, 200.0, stats[3].Expenses)

		assert.Zero(t, stats[0].Repairs)
		assert.Zero(t, stats[5].Repairs)
	})

	t.Run("Explicit Range Spans Every Touched Month", func(t *testing.T) {
		rng := &models.DateRange{
			Start: time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		}
		stats := ComputeMonthlyStats(nil, rng, now)
		require.Len(t, stats, 4)
		assert.Equal(t, "Nov 2023", stats[0].Month)
		assert.Equal(t, "Feb 2024", stats[3].Month)
	})
}

func TestFilterByRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rng := &models.DateRange{Start: start, End: end}

	damages := []models.Damage{
		damageAt(models.DamagePending, models.CategoryPlumbing, 0, start.AddDate(0, 0, -1), nil),
		damageAt(models.DamagePending, models.CategoryElectrical, 0, start, nil),
		damageAt(models.DamagePending, models.CategoryHVAC, 0, start.AddDate(0, 0, 10), nil),
		damageAt(models.DamagePending, models.CategoryFurniture, 0, end, nil),
		damageAt(models.DamagePending, models.CategoryOther, 0, end.AddDate(0, 0, 1), nil),
	}

	filtered := filterByRange(damages, rng)
	require.Len(t, filtered, 3, "both endpoints are inclusive")
	assert.Equal(t, models.CategoryElectrical, filtered[0].Category)
	assert.Equal(t, models.CategoryFurniture, filtered[2].Category)

	t.Run("Nil Range Keeps Everything", func(t *testing.T) {
		assert.Len(t, filterByRange(damages, nil), len(damages))
	})
}
