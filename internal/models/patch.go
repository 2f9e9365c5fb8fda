package models

import "time"

// Patch types carry partial updates. A nil field means "leave unchanged":
// the remote row mapper only emits SET clauses for non-nil fields, so a
// partial update never overwrites unrelated columns.

// HotelPatch is a partial hotel update.
type HotelPatch struct {
	Name       *string `json:"name,omitempty"`
	Address    *string `json:"address,omitempty"`
	TotalRooms *int    `json:"totalRooms,omitempty"`
	Color      *string `json:"color,omitempty"`
	Image      *string `json:"image,omitempty"`
}

// UserPatch is a partial user update.
type UserPatch struct {
	Name         *string   `json:"name,omitempty"`
	Role         *UserRole `json:"role,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash *string   `json:"-"`
	Color        *string   `json:"color,omitempty"`
	Avatar       *Avatar   `json:"avatar,omitempty"`
	CanDelete    *bool     `json:"canDelete,omitempty"`
}

// RoomPatch is a partial room update; in practice only Status changes.
type RoomPatch struct {
	Floor  *int        `json:"floor,omitempty"`
	Type   *string     `json:"type,omitempty"`
	Status *RoomStatus `json:"status,omitempty"`
}

// DamagePatch is a partial damage update.
type DamagePatch struct {
	RoomNumber    *string         `json:"roomNumber,omitempty"`
	Category      *DamageCategory `json:"category,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Status        *DamageStatus   `json:"status,omitempty"`
	Priority      *DamagePriority `json:"priority,omitempty"`
	ReportedDate  *time.Time      `json:"reportedDate,omitempty"`
	CompletedDate *time.Time      `json:"completedDate,omitempty"`
	Cost          *float64        `json:"cost,omitempty"`
	HoursSpent    *float64        `json:"hoursSpent,omitempty"`
	Materials     *[]string       `json:"materials,omitempty"`
	ItemsUsed     *[]ItemUsed     `json:"itemsUsed,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	AssignedTo    *string         `json:"assignedTo,omitempty"`
	Images        *RepairImages   `json:"images,omitempty"`
	LastEditedAt  *time.Time      `json:"lastEditedAt,omitempty"`
}

// PreventivePatch is a partial preventive-task update.
type PreventivePatch struct {
	RoomNumber        *string              `json:"roomNumber,omitempty"`
	Category          *DamageCategory      `json:"category,omitempty"`
	Title             *string              `json:"title,omitempty"`
	Description       *string              `json:"description,omitempty"`
	Frequency         *PreventiveFrequency `json:"frequency,omitempty"`
	NextDueDate       *time.Time           `json:"nextDueDate,omitempty"`
	LastCompletedDate *time.Time           `json:"lastCompletedDate,omitempty"`
	AssignedTo        *string              `json:"assignedTo,omitempty"`
	Status            *PreventiveStatus    `json:"status,omitempty"`
}

// Apply merges the patch into a copy of h.
func (p HotelPatch) Apply(h Hotel) Hotel {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.TotalRooms != nil {
		h.TotalRooms = *p.TotalRooms
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Image != nil {
		h.Image = *p.Image
	}
	return h
}

// Apply merges the patch into a copy of u.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Color != nil {
		u.Color = *p.Color
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.CanDelete != nil {
		u.CanDelete = *p.CanDelete
	}
	return u
}

// Apply merges the patch into a copy of r.
func (p RoomPatch) Apply(r Room) Room {
	if p.Floor != nil {
		r.Floor = *p.Floor
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}

// Apply merges the patch into a copy of d.
func (p DamagePatch) Apply(d Damage) Damage {
	if p.RoomNumber != nil {
		d.RoomNumber = *p.RoomNumber
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.ReportedDate != nil {
		d.ReportedDate = *p.ReportedDate
	}
	if p.CompletedDate != nil {
		t := *p.CompletedDate
		d.CompletedDate = &t
	}
	if p.Cost != nil {
		d.Cost = *p.Cost
	}
	if p.HoursSpent != nil {
		d.HoursSpent = *p.HoursSpent
	}
	if p.Materials != nil {
		d.Materials = *p.Materials
	}
	if p.ItemsUsed != nil {
		d.ItemsUsed = *p.ItemsUsed
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.AssignedTo != nil {
		d.AssignedTo = *p.AssignedTo
	}
	if p.Images != nil {
		d.Images = *p.Images
	}
	if p.LastEditedAt != nil {
		t := *p.LastEditedAt
		d.LastEditedAt = &t
	}
	return d
}

// Apply merges the patch into a copy of m.
func (p PreventivePatch) Apply(m PreventiveMaintenance) PreventiveMaintenance {
	if p.RoomNumber != nil {
		m.RoomNumber = *p.RoomNumber
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Frequency != nil {
		m.Frequency = *p.Frequency
	}
	if p.NextDueDate != nil {
		m.NextDueDate = *p.NextDueDate
	}
	if p.LastCompletedDate != nil {
		t := *p.LastCompletedDate
		m.LastCompletedDate = &t
	}
	if p.AssignedTo != nil {
		m.AssignedTo = *p.AssignedTo
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	return m
}
