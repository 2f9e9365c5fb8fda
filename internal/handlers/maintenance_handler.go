package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// MaintenanceHandler handles damage, room and preventive maintenance requests
type MaintenanceHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(st *store.Store, logger *logrus.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{store: st, logger: logger}
}

// CreateDamageRequest represents the request to report a damage
type CreateDamageRequest struct {
	HotelID      string                `json:"hotelId" binding:"required"`
	RoomNumber   string                `json:"roomNumber" binding:"required"`
	Category     models.DamageCategory `json:"category" binding:"required"`
	Description  string                `json:"description" binding:"required"`
	Status       models.DamageStatus   `json:"status"`
	Priority     models.DamagePriority `json:"priority"`
	ReportedDate string                `json:"reportedDate"`
	Cost         float64               `json:"cost"`
	HoursSpent   float64               `json:"hoursSpent"`
	Materials    []string              `json:"materials"`
	ItemsUsed    []models.ItemUsed     `json:"itemsUsed"`
	Notes        string                `json:"notes"`
	ReportedBy   string                `json:"reportedBy"`
	AssignedTo   string                `json:"assignedTo"`
	Images       models.RepairImages   `json:"images"`
}

// UpdateDamageRequest represents a partial damage update
type UpdateDamageRequest struct {
	RoomNumber    *string                `json:"roomNumber"`
	Category      *models.DamageCategory `json:"category"`
	Description   *string                `json:"description"`
	Status        *models.DamageStatus   `json:"status"`
	Priority      *models.DamagePriority `json:"priority"`
	CompletedDate *string                `json:"completedDate"`
	Cost          *float64               `json:"cost"`
	HoursSpent    *float64               `json:"hoursSpent"`
	Materials     *[]string              `json:"materials"`
	ItemsUsed     *[]models.ItemUsed     `json:"itemsUsed"`
	Notes         *string                `json:"notes"`
	AssignedTo    *string                `json:"assignedTo"`
	Images        *models.RepairImages   `json:"images"`
}

// CreatePreventiveRequest represents the request to schedule a preventive task
type CreatePreventiveRequest struct {
	HotelID     string                     `json:"hotelId" binding:"required"`
	RoomNumber  string                     `json:"roomNumber"`
	Category    models.DamageCategory      `json:"category" binding:"required"`
	Title       string                     `json:"title" binding:"required"`
	Description string                     `json:"description"`
	Frequency   models.PreventiveFrequency `json:"frequency" binding:"required"`
	NextDueDate string                     `json:"nextDueDate" binding:"required"`
	AssignedTo  string                     `json:"assignedTo"`
}

// UpdatePreventiveRequest represents a partial preventive-task update
type UpdatePreventiveRequest struct {
	RoomNumber  *string                     `json:"roomNumber"`
	Category    *models.DamageCategory      `json:"category"`
	Title       *string                     `json:"title"`
	Description *string                     `json:"description"`
	Frequency   *models.PreventiveFrequency `json:"frequency"`
	NextDueDate *string                     `json:"nextDueDate"`
	AssignedTo  *string                     `json:"assignedTo"`
	Status      *models.PreventiveStatus    `json:"status"`
}

// ListDamages handles GET /api/v1/hotels/:id/damages
func (h *MaintenanceHandler) ListDamages(c *gin.Context) {
	rng, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	damages, err := h.store.GetDamages(c.Param("id"), rng)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list damages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list damages",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"damages": damages})
}

// CreateDamage handles POST /api/v1/damages
func (h *MaintenanceHandler) CreateDamage(c *gin.Context) {
	var req CreateDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	reported := calendarToday()
	if req.ReportedDate != "" {
		var err error
		if reported, err = parseDate(req.ReportedDate); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "Invalid reported date",
			})
			return
		}
	}

	damage := models.Damage{
		HotelID:      req.HotelID,
		RoomNumber:   req.RoomNumber,
		Category:     req.Category,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		ReportedDate: reported,
		Cost:         req.Cost,
		HoursSpent:   req.HoursSpent,
		Materials:    req.Materials,
		ItemsUsed:    req.ItemsUsed,
		Notes:        req.Notes,
		ReportedBy:   req.ReportedBy,
		AssignedTo:   req.AssignedTo,
		Images:       req.Images,
	}
	if damage.Status == "" {
		damage.Status = models.DamagePending
	}
	if damage.Priority == "" {
		damage.Priority = models.PriorityMedium
	}

	added, err := h.store.AddDamage(damage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to add damage")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to add damage",
		})
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateDamage handles PUT /api/v1/damages/:id
func (h *MaintenanceHandler) UpdateDamage(c *gin.Context) {
	var req UpdateDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	patch := models.DamagePatch{
		RoomNumber:  req.RoomNumber,
		Category:    req.Category,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Cost:        req.Cost,
		HoursSpent:  req.HoursSpent,
		Materials:   req.Materials,
		ItemsUsed:   req.ItemsUsed,
		Notes:       req.Notes,
		AssignedTo:  req.AssignedTo,
		Images:      req.Images,
	}
	if req.CompletedDate != nil {
		completed, err := parseDate(*req.CompletedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "Invalid completed date",
			})
			return
		}
		patch.CompletedDate = &completed
	}
	// a completed status without an explicit completion date stamps today
	if req.Status != nil && *req.Status == models.DamageCompleted && patch.CompletedDate == nil {
		completed := calendarToday()
		patch.CompletedDate = &completed
	}
	edited := time.Now()
	patch.LastEditedAt = &edited

	damage, err := h.store.UpdateDamage(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Damage not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update damage")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update damage",
		})
		return
	}
	c.JSON(http.StatusOK, damage)
}

// DeleteDamage handles DELETE /api/v1/damages/:id
func (h *MaintenanceHandler) DeleteDamage(c *gin.Context) {
	if err := h.store.DeleteDamage(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Damage not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to delete damage")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete damage",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Damage deleted"})
}

// ListRooms handles GET /api/v1/hotels/:id/rooms
func (h *MaintenanceHandler) ListRooms(c *gin.Context) {
	rooms, err := h.store.GetRooms(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list rooms",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// UpdateRoom handles PUT /api/v1/hotels/:id/rooms/:number
func (h *MaintenanceHandler) UpdateRoom(c *gin.Context) {
	var patch models.RoomPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	room, err := h.store.UpdateRoom(c.Param("id"), c.Param("number"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Room not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update room",
		})
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListPreventive handles GET /api/v1/hotels/:id/preventive
func (h *MaintenanceHandler) ListPreventive(c *gin.Context) {
	tasks, err := h.store.GetPreventive(c.Param("id"), c.Query("room"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list preventive maintenance")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list preventive maintenance",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preventive": tasks})
}

// CreatePreventive handles POST /api/v1/preventive
func (h *MaintenanceHandler) CreatePreventive(c *gin.Context) {
	var req CreatePreventiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	due, err := parseDate(req.NextDueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid due date",
		})
		return
	}

	task, err := h.store.AddPreventive(models.PreventiveMaintenance{
		HotelID:     req.HotelID,
		RoomNumber:  req.RoomNumber,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		NextDueDate: due,
		AssignedTo:  req.AssignedTo,
		Status:      models.PreventivePending,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to add preventive maintenance")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to add preventive maintenance",
		})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdatePreventive handles PUT /api/v1/preventive/:id
func (h *MaintenanceHandler) UpdatePreventive(c *gin.Context) {
	var req UpdatePreventiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	patch := models.PreventivePatch{
		RoomNumber:  req.RoomNumber,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
	}
	if req.NextDueDate != nil {
		due, err := parseDate(*req.NextDueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: "Invalid due date",
			})
			return
		}
		patch.NextDueDate = &due
	}

	task, err := h.store.UpdatePreventive(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Preventive task not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update preventive maintenance")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update preventive maintenance",
		})
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeletePreventive handles DELETE /api/v1/preventive/:id
func (h *MaintenanceHandler) DeletePreventive(c *gin.Context) {
	if err := h.store.DeletePreventive(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Preventive task not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to delete preventive maintenance")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to delete preventive maintenance",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preventive task deleted"})
}
