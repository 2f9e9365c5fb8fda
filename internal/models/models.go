package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DamageStatus represents the lifecycle state of a repair ticket
type DamageStatus string

const (
	DamagePending    DamageStatus = "pending"
	DamageInProgress DamageStatus = "in-progress"
	DamageCompleted  DamageStatus = "completed"
	DamageCancelled  DamageStatus = "cancelled"
)

// DamagePriority represents the urgency of a repair ticket
type DamagePriority string

const (
	PriorityLow    DamagePriority = "low"
	PriorityMedium DamagePriority = "medium"
	PriorityHigh   DamagePriority = "high"
	PriorityUrgent DamagePriority = "urgent"
)

// DamageCategory is the closed set of repair categories
type DamageCategory string

const (
	CategoryPlumbing   DamageCategory = "plumbing"
	CategoryElectrical DamageCategory = "electrical"
	CategoryFurniture  DamageCategory = "furniture"
	CategoryAppliances DamageCategory = "appliances"
	CategoryStructural DamageCategory = "structural"
	CategoryHVAC       DamageCategory = "hvac"
	CategoryPainting   DamageCategory = "painting"
	CategoryCleaning   DamageCategory = "cleaning"
	CategoryOther      DamageCategory = "other"
)

// UserRole is an ordered privilege tier: superadmin > admin > handyman
type UserRole string

const (
	RoleSuperadmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
	RoleHandyman   UserRole = "handyman"
)

// RoomStatus represents the occupancy state of a room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomOutOfOrder  RoomStatus = "out-of-order"
)

// PreventiveFrequency is the recurrence interval of a preventive task
type PreventiveFrequency string

const (
	FrequencyDaily     PreventiveFrequency = "daily"
	FrequencyWeekly    PreventiveFrequency = "weekly"
	FrequencyMonthly   PreventiveFrequency = "monthly"
	FrequencyQuarterly PreventiveFrequency = "quarterly"
	FrequencyYearly    PreventiveFrequency = "yearly"
)

// PreventiveStatus is the stored state of a preventive task. The effective
// status returned by reads is recomputed against the due date.
type PreventiveStatus string

const (
	PreventivePending    PreventiveStatus = "pending"
	PreventiveInProgress PreventiveStatus = "in-progress"
	PreventiveCompleted  PreventiveStatus = "completed"
	PreventiveOverdue    PreventiveStatus = "overdue"
)

// DefaultColor is applied when a hotel or user row carries no brand color.
const DefaultColor = "#3b82f6"

// Hotel is the root aggregate; rooms, damages and preventive tasks all
// reference a hotel by id.
type Hotel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalRooms int    `json:"totalRooms"`
	Color      string `json:"color"`
	Image      string `json:"image,omitempty"`
}

// AvatarKind distinguishes an uploaded image from textual initials.
type AvatarKind string

const (
	AvatarInitials AvatarKind = "initials"
	AvatarImage    AvatarKind = "image"
)

// Avatar is the tagged form of the user avatar. Raw strings are classified
// once at the boundary (ClassifyAvatar) instead of re-sniffing prefixes at
// every display site.
type Avatar struct {
	Kind  AvatarKind `json:"kind"`
	Value string     `json:"value"`
}

// ClassifyAvatar turns a raw avatar string into its tagged form. Data URLs
// and http(s) URLs are images, everything else is initials.
func ClassifyAvatar(raw string) Avatar {
	if raw == "" {
		return Avatar{}
	}
	if strings.HasPrefix(raw, "data:") || strings.HasPrefix(raw, "http") {
		return Avatar{Kind: AvatarImage, Value: raw}
	}
	return Avatar{Kind: AvatarInitials, Value: raw}
}

// IsZero reports whether no avatar is set.
func (a Avatar) IsZero() bool {
	return a.Kind == "" && a.Value == ""
}

// User is a staff member. PasswordHash is only meaningful under local auth
// and is never serialized.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email,omitempty"`
	PasswordHash string   `json:"-"`
	Color        string   `json:"color"`
	Avatar       Avatar   `json:"avatar,omitempty"`
	CanDelete    bool     `json:"canDelete"`
}

// Room is composite-keyed by (hotel id, room number); rooms are fixed
// inventory mutated only through status transitions.
type Room struct {
	HotelID string     `json:"hotelId"`
	Number  string     `json:"number"`
	Floor   int        `json:"floor"`
	Type    string     `json:"type"`
	Status  RoomStatus `json:"status"`
}

// RepairImage is a before/after photo attached to a damage.
type RepairImage struct {
	Type       string `json:"type"` // "before" or "after"
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// RepairImages accepts both the legacy plain-URL list and the structured
// form when decoding.
type RepairImages []RepairImage

// UnmarshalJSON decodes either ["url", ...] or [{"type":...,"url":...}, ...].
func (ri *RepairImages) UnmarshalJSON(data []byte) error {
	var structured []RepairImage
	if err := json.Unmarshal(data, &structured); err == nil {
		*ri = structured
		return nil
	}
	var plain []string
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	out := make(RepairImages, 0, len(plain))
	for _, url := range plain {
		out = append(out, RepairImage{Type: "before", URL: url})
	}
	*ri = out
	return nil
}

// ItemUsed is a structured material line on a damage.
type ItemUsed struct {
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// Damage is a logged repair ticket tied to a room. Cost and Materials are
// always present (zero/empty) even before completion; CompletedDate is set
// exactly when the status transitions to completed.
type Damage struct {
	ID            string         `json:"id"`
	HotelID       string         `json:"hotelId"`
	RoomNumber    string         `json:"roomNumber"`
	Category      DamageCategory `json:"category"`
	Description   string         `json:"description"`
	Status        DamageStatus   `json:"status"`
	Priority      DamagePriority `json:"priority"`
	ReportedDate  time.Time      `json:"reportedDate"`
	CompletedDate *time.Time     `json:"completedDate,omitempty"`
	Cost          float64        `json:"cost"`
	HoursSpent    float64        `json:"hoursSpent,omitempty"`
	Materials     []string       `json:"materials"`
	ItemsUsed     []ItemUsed     `json:"itemsUsed,omitempty"`
	Notes         string         `json:"notes"`
	ReportedBy    string         `json:"reportedBy"`
	AssignedTo    string         `json:"assignedTo,omitempty"`
	Images        RepairImages   `json:"images"`
	LastEditedAt  *time.Time     `json:"lastEditedAt,omitempty"`
}

// PreventiveMaintenance is a recurring maintenance task. An empty RoomNumber
// means the task is hotel-wide.
type PreventiveMaintenance struct {
	ID                string              `json:"id"`
	HotelID           string              `json:"hotelId"`
	RoomNumber        string              `json:"roomNumber,omitempty"`
	Category          DamageCategory      `json:"category"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Frequency         PreventiveFrequency `json:"frequency"`
	NextDueDate       time.Time           `json:"nextDueDate"`
	LastCompletedDate *time.Time          `json:"lastCompletedDate,omitempty"`
	AssignedTo        string              `json:"assignedTo,omitempty"`
	Status            PreventiveStatus    `json:"status"`
}

// AuthUser is a remote identity-provider credential row, linked 1:1 to a
// profile by id.
type AuthUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

// DateRange is an inclusive calendar range compared on reported dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, endpoints included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MaintenanceStats are the headline numbers for a hotel.
type MaintenanceStats struct {
	TotalRepairs       int     `json:"totalRepairs"`
	PendingRepairs     int     `json:"pendingRepairs"`
	CompletedThisMonth int     `json:"completedThisMonth"`
	TotalExpenses      float64 `json:"totalExpenses"`
	AverageRepairCost  float64 `json:"averageRepairCost"`
}

// CategoryStats aggregates repairs per category. TotalCost only counts
// completed repairs.
type CategoryStats struct {
	Category  DamageCategory `json:"category"`
	Count     int            `json:"count"`
	TotalCost float64        `json:"totalCost"`
}

// MonthlyStats is one month bucket of completed repairs and expenses.
type MonthlyStats struct {
	Month    string  `json:"month"`
	Repairs  int     `json:"repairs"`
	Expenses float64 `json:"expenses"`
}
