package store

import (
	"sort"
	"time"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// ComputeMaintenanceStats derives the headline numbers from a damage list.
// Expenses and the average only count completed repairs; completedThisMonth
// is judged against the calendar month of now.
func ComputeMaintenanceStats(damages []models.Damage, now time.Time) models.MaintenanceStats {
	var stats models.MaintenanceStats
	stats.TotalRepairs = len(damages)

	completed := 0
	for _, d := range damages {
		if d.Status == models.DamagePending {
			stats.PendingRepairs++
		}
		if d.CompletedDate != nil &&
			d.CompletedDate.Month() == now.Month() &&
			d.CompletedDate.Year() == now.Year() {
			stats.CompletedThisMonth++
		}
		if d.Status == models.DamageCompleted {
			completed++
			stats.TotalExpenses += d.Cost
		}
	}

	if completed > 0 {
		stats.AverageRepairCost = stats.TotalExpenses / float64(completed)
	}
	return stats
}

// ComputeCategoryStats groups damages per category, sorted by count
// descending. Cost only accumulates for completed repairs, so a category full
// of open tickets shows activity without phantom spend.
func ComputeCategoryStats(damages []models.Damage) []models.CategoryStats {
	byCategory := make(map[models.DamageCategory]*models.CategoryStats)
	order := make([]models.DamageCategory, 0)

	for _, d := range damages {
		entry, ok := byCategory[d.Category]
		if !ok {
			entry = &models.CategoryStats{Category: d.Category}
			byCategory[d.Category] = entry
			order = append(order, d.Category)
		}
		entry.Count++
		if d.Status == models.DamageCompleted {
			entry.TotalCost += d.Cost
		}
	}

	result := make([]models.CategoryStats, 0, len(order))
	for _, c := range order {
		result = append(result, *byCategory[c])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// monthKey renders the bucket label for a month, e.g. "Jan 2024".
func monthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// ComputeMonthlyStats buckets completed repairs by completion month. Without
// a range it covers the six calendar months ending at now; with a range it
// covers every month the range touches. Completions outside the window are
// dropped silently.
func ComputeMonthlyStats(damages []models.Damage, rng *models.DateRange, now time.Time) []models.MonthlyStats {
	var first time.Time
	var months int

	if rng != nil {
		first = time.Date(rng.Start.Year(), rng.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(rng.End.Year(), rng.End.Month(), 1, 0, 0, 0, 0, time.UTC)
		months = (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
	} else {
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
		months = 6
	}

	buckets := make(map[string]*models.MonthlyStats, months)
	ordered := make([]string, 0, months)
	for i := 0; i < months; i++ {
		key := monthKey(first.AddDate(0, i, 0))
		buckets[key] = &models.MonthlyStats{Month: key}
		ordered = append(ordered, key)
	}

	for _, d := range damages {
		if d.Status != models.DamageCompleted || d.CompletedDate == nil {
			continue
		}
		if bucket, ok := buckets[monthKey(*d.CompletedDate)]; ok {
			bucket.Repairs++
			bucket.Expenses += d.Cost
		}
	}

	result := make([]models.MonthlyStats, 0, months)
	for _, key := range ordered {
		result = append(result, *buckets[key])
	}
	return result
}

// filterByRange keeps damages whose reported date falls inside the range,
// endpoints included.
func filterByRange(damages []models.Damage, rng *models.DateRange) []models.Damage {
	if rng == nil {
		return damages
	}
	filtered := make([]models.Damage, 0, len(damages))
	for _, d := range damages {
		if rng.Contains(d.ReportedDate) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
