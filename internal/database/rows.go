package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// Row types mirror the remote relational schema (snake_case, nullable
// columns). Mapping applies defaults on the way in (missing color, empty
// arrays, zero numerics) and never fabricates columns on the way out.

type hotelRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Address    sql.NullString `db:"address"`
	TotalRooms sql.NullInt64  `db:"total_rooms"`
	Color      sql.NullString `db:"color"`
	Image      sql.NullString `db:"image"`
}

func hotelFromRow(r hotelRow) models.Hotel {
	color := models.DefaultColor
	if r.Color.Valid && r.Color.String != "" {
		color = r.Color.String
	}
	return models.Hotel{
		ID:         r.ID,
		Name:       r.Name,
		Address:    r.Address.String,
		TotalRooms: int(r.TotalRooms.Int64),
		Color:      color,
		Image:      r.Image.String,
	}
}

type profileRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Role      string         `db:"role"`
	Phone     sql.NullString `db:"phone"`
	Email     sql.NullString `db:"email"`
	Color     sql.NullString `db:"color"`
	Avatar    sql.NullString `db:"avatar"`
	CanDelete sql.NullBool   `db:"can_delete"`
}

func userFromRow(r profileRow) models.User {
	color := models.DefaultColor
	if r.Color.Valid && r.Color.String != "" {
		color = r.Color.String
	}
	return models.User{
		ID:        r.ID,
		Name:      r.Name,
		Role:      models.UserRole(r.Role),
		Phone:     r.Phone.String,
		Email:     r.Email.String,
		Color:     color,
		Avatar:    models.ClassifyAvatar(r.Avatar.String),
		CanDelete: r.CanDelete.Bool,
	}
}

type roomRow struct {
	HotelID string         `db:"hotel_id"`
	Number  string         `db:"number"`
	Floor   sql.NullInt64  `db:"floor"`
	Type    sql.NullString `db:"type"`
	Status  string         `db:"status"`
}

func roomFromRow(r roomRow) models.Room {
	floor := 1
	if r.Floor.Valid {
		floor = int(r.Floor.Int64)
	}
	roomType := "Standard"
	if r.Type.Valid && r.Type.String != "" {
		roomType = r.Type.String
	}
	return models.Room{
		HotelID: r.HotelID,
		Number:  r.Number,
		Floor:   floor,
		Type:    roomType,
		Status:  models.RoomStatus(r.Status),
	}
}

type damageRow struct {
	ID            string          `db:"id"`
	HotelID       string          `db:"hotel_id"`
	RoomNumber    string          `db:"room_number"`
	Category      string          `db:"category"`
	Description   sql.NullString  `db:"description"`
	Status        string          `db:"status"`
	Priority      string          `db:"priority"`
	ReportedDate  time.Time       `db:"reported_date"`
	CompletedDate sql.NullTime    `db:"completed_date"`
	Cost          sql.NullFloat64 `db:"cost"`
	HoursSpent    sql.NullFloat64 `db:"hours_spent"`
	Materials     pq.StringArray  `db:"materials"`
	ItemsUsed     []byte          `db:"items_used"`
	Notes         sql.NullString  `db:"notes"`
	ReportedBy    sql.NullString  `db:"reported_by"`
	AssignedTo    sql.NullString  `db:"assigned_to"`
	Images        []byte          `db:"images"`
	LastEditedAt  sql.NullTime    `db:"last_edited_at"`
}

func damageFromRow(r damageRow) models.Damage {
	d := models.Damage{
		ID:           r.ID,
		HotelID:      r.HotelID,
		RoomNumber:   r.RoomNumber,
		Category:     models.DamageCategory(r.Category),
		Description:  r.Description.String,
		Status:       models.DamageStatus(r.Status),
		Priority:     models.DamagePriority(r.Priority),
		ReportedDate: r.ReportedDate,
		Cost:         r.Cost.Float64,
		HoursSpent:   r.HoursSpent.Float64,
		Materials:    []string(r.Materials),
		Notes:        r.Notes.String,
		ReportedBy:   r.ReportedBy.String,
		AssignedTo:   r.AssignedTo.String,
		Images:       models.RepairImages{},
	}
	if d.Materials == nil {
		d.Materials = []string{}
	}
	if r.CompletedDate.Valid {
		t := r.CompletedDate.Time
		d.CompletedDate = &t
	}
	if r.LastEditedAt.Valid {
		t := r.LastEditedAt.Time
		d.LastEditedAt = &t
	}
	if len(r.ItemsUsed) > 0 {
		// Malformed JSON in the column is treated as no items
		var items []models.ItemUsed
		if err := json.Unmarshal(r.ItemsUsed, &items); err == nil {
			d.ItemsUsed = items
		}
	}
	if len(r.Images) > 0 {
		var images models.RepairImages
		if err := json.Unmarshal(r.Images, &images); err == nil {
			d.Images = images
		}
	}
	return d
}

type preventiveRow struct {
	ID                string         `db:"id"`
	HotelID           string         `db:"hotel_id"`
	RoomNumber        sql.NullString `db:"room_number"`
	Category          string         `db:"category"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	Frequency         string         `db:"frequency"`
	NextDueDate       time.Time      `db:"next_due_date"`
	LastCompletedDate sql.NullTime   `db:"last_completed_date"`
	AssignedTo        sql.NullString `db:"assigned_to"`
	Status            string         `db:"status"`
}

func preventiveFromRow(r preventiveRow) models.PreventiveMaintenance {
	p := models.PreventiveMaintenance{
		ID:          r.ID,
		HotelID:     r.HotelID,
		RoomNumber:  r.RoomNumber.String,
		Category:    models.DamageCategory(r.Category),
		Title:       r.Title,
		Description: r.Description.String,
		Frequency:   models.PreventiveFrequency(r.Frequency),
		NextDueDate: r.NextDueDate,
		AssignedTo:  r.AssignedTo.String,
		Status:      models.PreventiveStatus(r.Status),
	}
	if r.LastCompletedDate.Valid {
		t := r.LastCompletedDate.Time
		p.LastCompletedDate = &t
	}
	return p
}

type authUserRow struct {
	ID             string `db:"id"`
	Email          string `db:"email"`
	PasswordHash   string `db:"password_hash"`
	EmailConfirmed bool   `db:"email_confirmed"`
}

func authUserFromRow(r authUserRow) models.AuthUser {
	return models.AuthUser{
		ID:             r.ID,
		Email:          r.Email,
		PasswordHash:   r.PasswordHash,
		EmailConfirmed: r.EmailConfirmed,
	}
}

// assignment is one SET clause of a partial update. Builders below emit
// assignments only for fields present in the patch, so a partial update
// never nulls out unrelated columns.
type assignment struct {
	column string
	value  interface{}
}

// setClause renders assignments as "col = $1, col2 = $2, ..." with matching
// args, leaving $len+1 onward free for WHERE placeholders.
func setClause(assigns []assignment) (string, []interface{}) {
	clauses := make([]string, 0, len(assigns))
	args := make([]interface{}, 0, len(assigns))
	for i, a := range assigns {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	return strings.Join(clauses, ", "), args
}

func hotelAssignments(p models.HotelPatch) []assignment {
	var out []assignment
	if p.Name != nil {
		out = append(out, assignment{"name", *p.Name})
	}
	if p.Address != nil {
		out = append(out, assignment{"address", *p.Address})
	}
	if p.TotalRooms != nil {
		out = append(out, assignment{"total_rooms", *p.TotalRooms})
	}
	if p.Color != nil {
		out = append(out, assignment{"color", *p.Color})
	}
	if p.Image != nil {
		out = append(out, assignment{"image", *p.Image})
	}
	return out
}

func userAssignments(p models.UserPatch) []assignment {
	var out []assignment
	if p.Name != nil {
		out = append(out, assignment{"name", *p.Name})
	}
	if p.Role != nil {
		out = append(out, assignment{"role", string(*p.Role)})
	}
	if p.Phone != nil {
		out = append(out, assignment{"phone", *p.Phone})
	}
	if p.Email != nil {
		out = append(out, assignment{"email", *p.Email})
	}
	if p.Color != nil {
		out = append(out, assignment{"color", *p.Color})
	}
	if p.Avatar != nil {
		out = append(out, assignment{"avatar", p.Avatar.Value})
	}
	if p.CanDelete != nil {
		out = append(out, assignment{"can_delete", *p.CanDelete})
	}
	return out
}

func roomAssignments(p models.RoomPatch) []assignment {
	var out []assignment
	if p.Floor != nil {
		out = append(out, assignment{"floor", *p.Floor})
	}
	if p.Type != nil {
		out = append(out, assignment{"type", *p.Type})
	}
	if p.Status != nil {
		out = append(out, assignment{"status", string(*p.Status)})
	}
	return out
}

func damageAssignments(p models.DamagePatch) []assignment {
	var out []assignment
	if p.RoomNumber != nil {
		out = append(out, assignment{"room_number", *p.RoomNumber})
	}
	if p.Category != nil {
		out = append(out, assignment{"category", string(*p.Category)})
	}
	if p.Description != nil {
		out = append(out, assignment{"description", *p.Description})
	}
	if p.Status != nil {
		out = append(out, assignment{"status", string(*p.Status)})
	}
	if p.Priority != nil {
		out = append(out, assignment{"priority", string(*p.Priority)})
	}
	if p.ReportedDate != nil {
		out = append(out, assignment{"reported_date", *p.ReportedDate})
	}
	if p.CompletedDate != nil {
		out = append(out, assignment{"completed_date", *p.CompletedDate})
	}
	if p.Cost != nil {
		out = append(out, assignment{"cost", *p.Cost})
	}
	if p.HoursSpent != nil {
		out = append(out, assignment{"hours_spent", *p.HoursSpent})
	}
	if p.Materials != nil {
		out = append(out, assignment{"materials", pq.Array(*p.Materials)})
	}
	if p.ItemsUsed != nil {
		items, _ := json.Marshal(*p.ItemsUsed)
		out = append(out, assignment{"items_used", items})
	}
	if p.Notes != nil {
		out = append(out, assignment{"notes", *p.Notes})
	}
	if p.AssignedTo != nil {
		out = append(out, assignment{"assigned_to", *p.AssignedTo})
	}
	if p.Images != nil {
		images, _ := json.Marshal(*p.Images)
		out = append(out, assignment{"images", images})
	}
	if p.LastEditedAt != nil {
		out = append(out, assignment{"last_edited_at", *p.LastEditedAt})
	}
	return out
}

func preventiveAssignments(p models.PreventivePatch) []assignment {
	var out []assignment
	if p.RoomNumber != nil {
		out = append(out, assignment{"room_number", *p.RoomNumber})
	}
	if p.Category != nil {
		out = append(out, assignment{"category", string(*p.Category)})
	}
	if p.Title != nil {
		out = append(out, assignment{"title", *p.Title})
	}
	if p.Description != nil {
		out = append(out, assignment{"description", *p.Description})
	}
	if p.Frequency != nil {
		out = append(out, assignment{"frequency", string(*p.Frequency)})
	}
	if p.NextDueDate != nil {
		out = append(out, assignment{"next_due_date", *p.NextDueDate})
	}
	if p.LastCompletedDate != nil {
		out = append(out, assignment{"last_completed_date", *p.LastCompletedDate})
	}
	if p.AssignedTo != nil {
		out = append(out, assignment{"assigned_to", *p.AssignedTo})
	}
	if p.Status != nil {
		out = append(out, assignment{"status", string(*p.Status)})
	}
	return out
}
