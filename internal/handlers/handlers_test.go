package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelmaintpro/maintenance-backend/internal/config"
	"github.com/hotelmaintpro/maintenance-backend/internal/middleware"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/services"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
	"github.com/hotelmaintpro/maintenance-backend/pkg/jwt"
)

type memoryKV struct {
	slots map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{slots: make(map[string][]byte)}
}

func (m *memoryKV) ReadSlot(key string) ([]byte, error) { return m.slots[key], nil }

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

// asUser injects an authenticated user context, standing in for the session
// token middleware.
func asUser(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{
			UserID: userID,
			Role:   role,
		})
		c.Next()
	}
}

type fixture struct {
	store  *store.Store
	router *gin.Engine
}

func newFixture(t *testing.T, userID string, role models.UserRole) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := newMemoryKV()
	st := store.NewLocal(kv, testLogger())
	require.NoError(t, st.InitializeData())

	logger := testLogger()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.SessionExpiry = time.Hour
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionExpiry)
	authService := services.NewLocalAuthService(st, kv, jwtService, logger, bcrypt.MinCost, time.Hour)

	authHandler := NewAuthHandler(authService, st, cfg, logger)
	adminHandler := NewAdminHandler(st, logger)
	maintenanceHandler := NewMaintenanceHandler(st, logger)
	reportHandler := NewReportHandler(st, services.NewExportService(st), logger)

	router := gin.New()
	router.POST("/auth/login", authHandler.Login)

	authed := router.Group("")
	authed.Use(asUser(userID, role))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.GET("/hotels", adminHandler.ListHotels)
		authed.GET("/hotels/current", adminHandler.CurrentHotel)
		authed.GET("/hotels/:id", adminHandler.GetHotel)
		authed.POST("/hotels", adminHandler.CreateHotel)
		authed.DELETE("/hotels/:id", adminHandler.DeleteHotel)
		authed.POST("/hotels/:id/select", adminHandler.SelectHotel)
		authed.GET("/hotels/:id/damages", maintenanceHandler.ListDamages)
		authed.GET("/hotels/:id/stats", reportHandler.Stats)
		authed.GET("/hotels/:id/export/csv", reportHandler.ExportCSV)
		authed.POST("/damages", maintenanceHandler.CreateDamage)
		authed.PUT("/damages/:id", maintenanceHandler.UpdateDamage)
		authed.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	return &fixture{store: st, router: router}
}

func (f *fixture) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t, "user1", models.RoleSuperadmin)

	t.Run("Valid Credentials", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/auth/login", gin.H{
			"email":    "alejandro@hotel.com",
			"password": "admin123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user1", resp.User.ID)
		assert.Equal(t, int(time.Hour.Seconds()), resp.ExpiresIn)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/auth/login", gin.H{
			"email":    "alejandro@hotel.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_credentials")
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/auth/login", gin.H{"email": "x@y.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHotelEndpoints(t *testing.T) {
	t.Run("List Hotels", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/hotels", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Skye")
	})

	t.Run("Get Unknown Hotel", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/hotels/no-such-hotel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Create Hotel Requires Name", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPost, "/hotels", gin.H{"address": "nameless"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Select And Read Current Hotel", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)

		w := f.request(t, http.MethodGet, "/hotels/current", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "nothing selected yet")

		w = f.request(t, http.MethodPost, "/hotels/skye/select", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodGet, "/hotels/current", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Skye")
	})

	t.Run("Handyman Cannot Delete Hotels", func(t *testing.T) {
		f := newFixture(t, "handy1", models.RoleHandyman)
		_, err := f.store.AddUser(models.User{ID: "handy1", Name: "Handy", Role: models.RoleHandyman})
		require.NoError(t, err)

		w := f.request(t, http.MethodDelete, "/hotels/skye", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin Cannot Delete Users", func(t *testing.T) {
		f := newFixture(t, "user2", models.RoleAdmin)
		w := f.request(t, http.MethodDelete, "/users/user4", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Only superadmins can delete users")
	})
}

func TestDamageEndpoints(t *testing.T) {
	t.Run("Create Applies Defaults", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPost, "/damages", gin.H{
			"hotelId":     "skye",
			"roomNumber":  "101",
			"category":    "plumbing",
			"description": "Leaking pipe",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var damage models.Damage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &damage))
		assert.Equal(t, models.DamagePending, damage.Status)
		assert.Equal(t, models.PriorityMedium, damage.Priority)
		assert.NotEmpty(t, damage.ID)
	})

	t.Run("Create Rejects Missing Fields", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPost, "/damages", gin.H{"hotelId": "skye"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Completing Without A Date Stamps Today", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPut, "/damages/s7", gin.H{"status": "completed"})
		require.Equal(t, http.StatusOK, w.Code)

		var damage models.Damage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &damage))
		require.NotNil(t, damage.CompletedDate)
		// The default stamp is the calendar date, the same instant a plain
		// date query parses to.
		assert.True(t, damage.CompletedDate.Equal(calendarToday()),
			"completed date %v is not today's calendar date", damage.CompletedDate)
		assert.NotNil(t, damage.LastEditedAt)
	})

	t.Run("Defaulted Report Date Lands In A Same-Day Range", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPost, "/damages", gin.H{
			"hotelId":     "skye",
			"roomNumber":  "115",
			"category":    "electrical",
			"description": "Dead socket",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var damage models.Damage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &damage))

		today := calendarToday().Format(time.DateOnly)
		w = f.request(t, http.MethodGet, "/hotels/skye/damages?from="+today+"&to="+today, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), damage.ID,
			"a damage reported today must match a range ending today")
	})

	t.Run("Update Unknown Damage", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodPut, "/damages/no-such-id", gin.H{"notes": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("List With Bad Range", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/hotels/skye/damages?from=2024-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "from and to must be provided together")
	})
}

func TestReportEndpoints(t *testing.T) {
	t.Run("Stats", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/hotels/skye/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats models.MaintenanceStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 7, stats.TotalRepairs)
		assert.Equal(t, 1, stats.PendingRepairs)
	})

	t.Run("CSV Export Sets Download Headers", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/hotels/skye/export/csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `damages-skye.csv`)
		assert.Contains(t, w.Body.String(), "id,room,category")
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Run("Resolves The Acting User", func(t *testing.T) {
		f := newFixture(t, "user1", models.RoleSuperadmin)
		w := f.request(t, http.MethodGet, "/auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alejandro Saldarriaga")
	})

	t.Run("Deleted User Is Unauthorized", func(t *testing.T) {
		f := newFixture(t, "no-such-user", models.RoleAdmin)
		w := f.request(t, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "User no longer exists")
	})
}
