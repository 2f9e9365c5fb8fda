package store

import (
	"time"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// EffectiveStatus recomputes the display status of a preventive task against
// the clock. A task past its due date that is not completed shows as overdue;
// a task stored as overdue whose due date moved into the future reverts to
// pending. The input is never mutated.
func EffectiveStatus(p models.PreventiveMaintenance, now time.Time) models.PreventiveStatus {
	if p.Status != models.PreventiveCompleted && p.NextDueDate.Before(now) {
		return models.PreventiveOverdue
	}
	if p.Status == models.PreventiveOverdue && !p.NextDueDate.Before(now) {
		return models.PreventivePending
	}
	return p.Status
}

// nextDueAfter computes the due date following a completion, stepping one
// interval of the task's frequency from the completion date.
func nextDueAfter(freq models.PreventiveFrequency, completed time.Time) time.Time {
	switch freq {
	case models.FrequencyDaily:
		return completed.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return completed.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return completed.AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		return completed.AddDate(0, 3, 0)
	case models.FrequencyYearly:
		return completed.AddDate(1, 0, 0)
	}
	return completed
}

// applyRecurrence rewrites a patch that marks a task completed into the next
// occurrence: the completion date is recorded, the due date advances one
// interval from it, and the stored status resets to pending. Patches that
// already carry an explicit completion date are passed through untouched.
func applyRecurrence(current models.PreventiveMaintenance, patch models.PreventivePatch, now time.Time) models.PreventivePatch {
	if patch.Status == nil || *patch.Status != models.PreventiveCompleted || patch.LastCompletedDate != nil {
		return patch
	}

	completed := now
	next := nextDueAfter(current.Frequency, completed)
	pending := models.PreventivePending

	patch.LastCompletedDate = &completed
	patch.NextDueDate = &next
	patch.Status = &pending
	return patch
}
