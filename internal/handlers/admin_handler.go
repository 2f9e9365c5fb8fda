package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// AdminHandler handles hotel and user administration requests
type AdminHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(st *store.Store, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{store: st, logger: logger}
}

// CreateHotelRequest represents the request to add a hotel
type CreateHotelRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	TotalRooms int    `json:"totalRooms"`
	Color      string `json:"color"`
	Image      string `json:"image"`
}

// UpdateUserRequest represents a partial user update. The avatar arrives as
// a raw string and is classified here, at the boundary.
type UpdateUserRequest struct {
	Name      *string          `json:"name"`
	Role      *models.UserRole `json:"role"`
	Phone     *string          `json:"phone"`
	Email     *string          `json:"email"`
	Color     *string          `json:"color"`
	Avatar    *string          `json:"avatar"`
	CanDelete *bool            `json:"canDelete"`
}

func (r UpdateUserRequest) toPatch() models.UserPatch {
	patch := models.UserPatch{
		Name:      r.Name,
		Role:      r.Role,
		Phone:     r.Phone,
		Email:     r.Email,
		Color:     r.Color,
		CanDelete: r.CanDelete,
	}
	if r.Avatar != nil {
		avatar := models.ClassifyAvatar(*r.Avatar)
		patch.Avatar = &avatar
	}
	return patch
}

// ListHotels handles GET /api/v1/hotels
func (h *AdminHandler) ListHotels(c *gin.Context) {
	hotels, err := h.store.GetHotels()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list hotels")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list hotels",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels})
}

// GetHotel handles GET /api/v1/hotels/:id
func (h *AdminHandler) GetHotel(c *gin.Context) {
	hotel, err := h.store.GetHotelByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load hotel",
		})
		return
	}
	if hotel == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Hotel not found",
		})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// CreateHotel handles POST /api/v1/hotels
func (h *AdminHandler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Hotel name is required",
		})
		return
	}

	hotel, err := h.store.AddHotel(models.Hotel{
		Name:       req.Name,
		Address:    req.Address,
		TotalRooms: req.TotalRooms,
		Color:      req.Color,
		Image:      req.Image,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to add hotel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to add hotel",
		})
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /api/v1/hotels/:id
func (h *AdminHandler) UpdateHotel(c *gin.Context) {
	var patch models.HotelPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	hotel, err := h.store.UpdateHotel(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Hotel not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update hotel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update hotel",
		})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// DeleteHotel handles DELETE /api/v1/hotels/:id
func (h *AdminHandler) DeleteHotel(c *gin.Context) {
	actor, ok := currentActor(c, h.store)
	if !ok {
		return
	}

	err := h.store.DeleteHotel(c.Param("id"), *actor)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Only admins can delete hotels",
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Hotel not found",
			})
		default:
			h.logger.WithError(err).Error("Failed to delete hotel")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to delete hotel",
			})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted"})
}

// SelectHotel handles POST /api/v1/hotels/:id/select
func (h *AdminHandler) SelectHotel(c *gin.Context) {
	if err := h.store.SelectHotel(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Hotel not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to select hotel")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to select hotel",
		})
		return
	}

	hotel, err := h.store.GetCurrentHotel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load selected hotel",
		})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// CurrentHotel handles GET /api/v1/hotels/current
func (h *AdminHandler) CurrentHotel(c *gin.Context) {
	hotel, err := h.store.GetCurrentHotel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load current hotel",
		})
		return
	}
	if hotel == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "No hotel selected",
		})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// ListUsers handles GET /api/v1/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.store.GetUsers()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list users",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser handles PUT /api/v1/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.store.UpdateUser(c.Param("id"), req.toPatch())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to update user",
		})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := currentActor(c, h.store)
	if !ok {
		return
	}

	err := h.store.DeleteUser(c.Param("id"), *actor)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Only superadmins can delete users",
			})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "User not found",
			})
		default:
			h.logger.WithError(err).Error("Failed to delete user")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to delete user",
			})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ResetData handles POST /api/v1/admin/reset
func (h *AdminHandler) ResetData(c *gin.Context) {
	if err := h.store.ResetData(); err != nil {
		h.logger.WithError(err).Error("Failed to reset data")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to reset data",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data reset"})
}
