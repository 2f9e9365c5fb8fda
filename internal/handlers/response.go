package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hotelmaintpro/maintenance-backend/internal/middleware"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// calendarToday returns the current date at midnight UTC, the same instant
// a plain calendar date parses to. Defaulted damage dates use it so a
// same-day range still includes the record.
func calendarToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate accepts the two date encodings clients send: plain calendar
// dates and full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// dateRangeFromQuery reads the optional from/to query parameters into a
// range. Both must be present or both absent.
func dateRangeFromQuery(c *gin.Context) (*models.DateRange, error) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("from and to must be provided together")
	}
	start, err := parseDate(from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", err)
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", err)
	}
	return &models.DateRange{Start: start, End: end}, nil
}

// currentActor resolves the authenticated request to its full user record.
func currentActor(c *gin.Context, st *store.Store) (*models.User, bool) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User context not found",
		})
		return nil, false
	}
	actor, err := st.GetUserByID(userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load user",
		})
		return nil, false
	}
	if actor == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User no longer exists",
		})
		return nil, false
	}
	return actor, true
}
