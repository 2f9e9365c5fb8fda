package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// ExportService renders hotel data for download.
type ExportService struct {
	store *store.Store
}

// NewExportService creates a new export service
func NewExportService(st *store.Store) *ExportService {
	return &ExportService{store: st}
}

// ReportBundle assembles the hotel's full report: damages, rooms and all
// derived statistics.
func (s *ExportService) ReportBundle(hotelID string) (*store.ExportBundle, error) {
	return s.store.ExportData(hotelID)
}

var damageCSVHeader = []string{
	"id", "room", "category", "description", "status", "priority",
	"reported_date", "completed_date", "cost", "hours_spent",
	"materials", "notes", "reported_by", "assigned_to",
}

// DamagesCSV renders the hotel's damages as CSV, optionally narrowed to a
// reported-date range.
func (s *ExportService) DamagesCSV(hotelID string, rng *models.DateRange) ([]byte, error) {
	damages, err := s.store.GetDamages(hotelID, rng)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(damageCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, d := range damages {
		completed := ""
		if d.CompletedDate != nil {
			completed = d.CompletedDate.Format(time.DateOnly)
		}
		record := []string{
			d.ID,
			d.RoomNumber,
			string(d.Category),
			d.Description,
			string(d.Status),
			string(d.Priority),
			d.ReportedDate.Format(time.DateOnly),
			completed,
			strconv.FormatFloat(d.Cost, 'f', 2, 64),
			strconv.FormatFloat(d.HoursSpent, 'f', 2, 64),
			strings.Join(d.Materials, "; "),
			d.Notes,
			d.ReportedBy,
			d.AssignedTo,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
