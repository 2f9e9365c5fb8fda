package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Pending Past Due Shows Overdue", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventivePending,
			NextDueDate: now.AddDate(0, 0, -3),
		}
		assert.Equal(t, models.PreventiveOverdue, EffectiveStatus(task, now))
	})

	t.Run("In Progress Past Due Shows Overdue", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventiveInProgress,
			NextDueDate: now.AddDate(0, 0, -1),
		}
		assert.Equal(t, models.PreventiveOverdue, EffectiveStatus(task, now))
	})

	t.Run("Completed Never Becomes Overdue", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventiveCompleted,
			NextDueDate: now.AddDate(0, 0, -30),
		}
		assert.Equal(t, models.PreventiveCompleted, EffectiveStatus(task, now))
	})

	t.Run("Stored Overdue With Future Due Date Reverts To Pending", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventiveOverdue,
			NextDueDate: now.AddDate(0, 0, 5),
		}
		assert.Equal(t, models.PreventivePending, EffectiveStatus(task, now))
	})

	t.Run("Pending With Future Due Date Stays Pending", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventivePending,
			NextDueDate: now.AddDate(0, 0, 5),
		}
		assert.Equal(t, models.PreventivePending, EffectiveStatus(task, now))
	})

	t.Run("Input Is Not Mutated", func(t *testing.T) {
		task := models.PreventiveMaintenance{
			Status:      models.PreventivePending,
			NextDueDate: now.AddDate(0, 0, -3),
		}
		_ = EffectiveStatus(task, now)
		assert.Equal(t, models.PreventivePending, task.Status)
	})
}

func TestNextDueAfter(t *testing.T) {
	completed := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency models.PreventiveFrequency
		expected  time.Time
	}{
		{models.FrequencyDaily, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyWeekly, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyMonthly, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyQuarterly, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyYearly, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			assert.Equal(t, tt.expected, nextDueAfter(tt.frequency, completed))
		})
	}
}

func TestApplyRecurrence(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	task := models.PreventiveMaintenance{
		ID:          "p1",
		Frequency:   models.FrequencyWeekly,
		NextDueDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Status:      models.PreventivePending,
	}

	t.Run("Completion Schedules Next Occurrence", func(t *testing.T) {
		completed := models.PreventiveCompleted
		patch := applyRecurrence(task, models.PreventivePatch{Status: &completed}, now)

		assert.Equal(t, models.PreventivePending, *patch.Status)
		assert.Equal(t, now, *patch.LastCompletedDate)
		assert.Equal(t, now.AddDate(0, 0, 7), *patch.NextDueDate)
	})

	t.Run("Explicit Completion Date Passes Through", func(t *testing.T) {
		completed := models.PreventiveCompleted
		explicit := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
		patch := applyRecurrence(task, models.PreventivePatch{
			Status:            &completed,
			LastCompletedDate: &explicit,
		}, now)

		assert.Equal(t, models.PreventiveCompleted, *patch.Status)
		assert.Equal(t, explicit, *patch.LastCompletedDate)
		assert.Nil(t, patch.NextDueDate)
	})

	t.Run("Non Completion Updates Pass Through", func(t *testing.T) {
		inProgress := models.PreventiveInProgress
		patch := applyRecurrence(task, models.PreventivePatch{Status: &inProgress}, now)

		assert.Equal(t, models.PreventiveInProgress, *patch.Status)
		assert.Nil(t, patch.LastCompletedDate)
		assert.Nil(t, patch.NextDueDate)
	})
}
