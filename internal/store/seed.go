package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hotelmaintpro/maintenance-backend/internal/models"
)

// Seed data written into a fresh local store so the application is usable
// before anyone configures a remote backend. The first user carries a
// default password for the initial login; it should be changed in Admin.

const seedSuperadminPassword = "admin123"

func seedHotels() []models.Hotel {
	return []models.Hotel{
		{ID: "skye", Name: "Skye", Address: "123 Skyline Drive", TotalRooms: 120, Color: "#3b82f6"},
		{ID: "one-global", Name: "One Global", Address: "456 Global Avenue", TotalRooms: 200, Color: "#10b981"},
		{ID: "clarence", Name: "The Clarence Hotel", Address: "789 Clarence Street", TotalRooms: 85, Color: "#8b5cf6"},
		{ID: "woolstore", Name: "Hotel Woolstore 1888", Address: "321 Woolstore Road", TotalRooms: 150, Color: "#f59e0b"},
	}
}

func seedUsers() []models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedSuperadminPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an invalid cost, which DefaultCost is not
		panic(err)
	}
	return []models.User{
		{
			ID: "user1", Name: "Alejandro Saldarriaga", Role: models.RoleSuperadmin,
			Phone: "555-0101", Email: "alejandro@hotel.com", Color: "#dc2626",
			Avatar: models.ClassifyAvatar("AS"), CanDelete: true,
			PasswordHash: string(hash),
		},
		{
			ID: "user2", Name: "Steven Ramirez", Role: models.RoleAdmin,
			Phone: "555-0102", Email: "steven@hotel.com", Color: "#3b82f6",
			Avatar: models.ClassifyAvatar("SR"), CanDelete: false,
		},
		{
			ID: "user3", Name: "Camilo Velasquez", Role: models.RoleAdmin,
			Phone: "555-0103", Email: "camilo@hotel.com", Color: "#10b981",
			Avatar: models.ClassifyAvatar("CV"), CanDelete: false,
		},
		{
			ID: "user4", Name: "Juan Saldarriaga", Role: models.RoleAdmin,
			Phone: "555-0104", Email: "juan@hotel.com", Color: "#f59e0b",
			Avatar: models.ClassifyAvatar("JS"), CanDelete: false,
		},
	}
}

func seedRooms() []models.Room {
	room := func(hotelID, number string, floor int, roomType string, status models.RoomStatus) models.Room {
		return models.Room{HotelID: hotelID, Number: number, Floor: floor, Type: roomType, Status: status}
	}
	return []models.Room{
		room("skye", "101", 1, "Standard", models.RoomAvailable),
		room("skye", "102", 1, "Standard", models.RoomOccupied),
		room("skye", "105", 1, "Deluxe", models.RoomAvailable),
		room("skye", "108", 1, "Standard", models.RoomMaintenance),
		room("skye", "115", 1, "Suite", models.RoomMaintenance),
		room("skye", "205", 2, "Standard", models.RoomOccupied),
		room("skye", "220", 2, "Deluxe", models.RoomAvailable),
		room("skye", "305", 3, "Suite", models.RoomOccupied),
		room("skye", "310", 3, "Suite", models.RoomMaintenance),
		room("skye", "402", 4, "Deluxe", models.RoomOccupied),
		room("skye", "508", 5, "Deluxe", models.RoomMaintenance),
		room("skye", "612", 6, "Suite", models.RoomMaintenance),
		room("one-global", "1001", 10, "Standard", models.RoomOccupied),
		room("one-global", "1010", 10, "Deluxe", models.RoomAvailable),
		room("one-global", "1105", 11, "Suite", models.RoomMaintenance),
		room("one-global", "1212", 12, "Standard", models.RoomOccupied),
		room("one-global", "1302", 13, "Suite", models.RoomAvailable),
		room("one-global", "1904", 19, "Deluxe", models.RoomAvailable),
		room("clarence", "3", 1, "Standard", models.RoomAvailable),
		room("clarence", "5", 1, "Deluxe", models.RoomAvailable),
		room("clarence", "8", 1, "Suite", models.RoomMaintenance),
		room("clarence", "22", 2, "Deluxe", models.RoomOccupied),
		room("clarence", "30", 2, "Deluxe", models.RoomMaintenance),
		room("clarence", "50", 2, "Standard", models.RoomAvailable),
		room("woolstore", "101", 1, "Standard", models.RoomOccupied),
		room("woolstore", "115", 1, "Deluxe", models.RoomAvailable),
		room("woolstore", "240", 2, "Standard", models.RoomMaintenance),
		room("woolstore", "310", 3, "Suite", models.RoomOccupied),
		room("woolstore", "415", 4, "Deluxe", models.RoomAvailable),
		room("woolstore", "505", 5, "Suite", models.RoomMaintenance),
	}
}

func seedDamages(now time.Time) []models.Damage {
	daysAgo := func(n int) time.Time {
		return now.AddDate(0, 0, -n).Truncate(24 * time.Hour)
	}
	completed := func(n int) *time.Time {
		t := daysAgo(n)
		return &t
	}
	return []models.Damage{
		{
			ID: "s1", HotelID: "skye", RoomNumber: "101", Category: models.CategoryPlumbing,
			Description: "Leaking faucet in bathroom sink", Status: models.DamageCompleted,
			Priority: models.PriorityMedium, ReportedDate: daysAgo(45), CompletedDate: completed(44),
			Cost: 45.50, Materials: []string{"Faucet washer", "Plumber tape", "Silicone sealant"},
			Notes: "Replaced washer and sealed connections", ReportedBy: "Alejandro Saldarriaga",
			AssignedTo: "Alejandro Saldarriaga", Images: models.RepairImages{},
		},
		{
			ID: "s2", HotelID: "skye", RoomNumber: "205", Category: models.CategoryElectrical,
			Description: "Light fixture not working in bedroom", Status: models.DamageCompleted,
			Priority: models.PriorityLow, ReportedDate: daysAgo(38), CompletedDate: completed(37),
			Cost: 25.00, Materials: []string{"LED bulb", "Wire connectors"},
			Notes: "Replaced bulb and loose wiring", ReportedBy: "Steven Ramirez",
			AssignedTo: "Steven Ramirez", Images: models.RepairImages{},
		},
		{
			ID: "s3", HotelID: "skye", RoomNumber: "310", Category: models.CategoryFurniture,
			Description: "Broken chair leg in dining area", Status: models.DamageCompleted,
			Priority: models.PriorityMedium, ReportedDate: daysAgo(30), CompletedDate: completed(28),
			Cost: 80.00, Materials: []string{"Wood glue", "Screws", "Wood filler"},
			Notes: "Repaired and reinforced chair leg", ReportedBy: "Camilo Velasquez",
			AssignedTo: "Alejandro Saldarriaga", Images: models.RepairImages{},
		},
		{
			ID: "s5", HotelID: "skye", RoomNumber: "402", Category: models.CategoryPlumbing,
			Description: "Clogged shower drain", Status: models.DamageCompleted,
			Priority: models.PriorityMedium, ReportedDate: daysAgo(20), CompletedDate: completed(20),
			Cost: 65.00, Materials: []string{"Drain cleaner", "Drain snake"},
			Notes: "Cleared blockage with snake", ReportedBy: "Alejandro Saldarriaga",
			AssignedTo: "Camilo Velasquez", Images: models.RepairImages{},
		},
		{
			ID: "s6", HotelID: "skye", RoomNumber: "508", Category: models.CategoryElectrical,
			Description: "Power outlet sparking near desk", Status: models.DamageCompleted,
			Priority: models.PriorityUrgent, ReportedDate: daysAgo(18), CompletedDate: completed(18),
			Cost: 85.00, Materials: []string{"Outlet receptacle", "Wire nuts", "Electrical tape"},
			Notes: "Replaced faulty outlet immediately", ReportedBy: "Steven Ramirez",
			AssignedTo: "Alejandro Saldarriaga", Images: models.RepairImages{},
		},
		{
			ID: "s7", HotelID: "skye", RoomNumber: "612", Category: models.CategoryHVAC,
			Description: "Thermostat not responding", Status: models.DamageInProgress,
			Priority: models.PriorityHigh, ReportedDate: daysAgo(10),
			Materials: []string{}, Notes: "Replacement thermostat ordered",
			ReportedBy: "Camilo Velasquez", AssignedTo: "Steven Ramirez", Images: models.RepairImages{},
		},
		{
			ID: "s8", HotelID: "skye", RoomNumber: "220", Category: models.CategoryPainting,
			Description: "Wall stain needs repainting", Status: models.DamagePending,
			Priority: models.PriorityLow, ReportedDate: daysAgo(5),
			Materials: []string{}, ReportedBy: "Juan Saldarriaga", Images: models.RepairImages{},
		},
		{
			ID: "g1", HotelID: "one-global", RoomNumber: "1105", Category: models.CategoryPlumbing,
			Description: "Bathtub drain leaking into room below", Status: models.DamageInProgress,
			Priority: models.PriorityUrgent, ReportedDate: daysAgo(3),
			Materials: []string{}, Notes: "Waiting on replacement trap",
			ReportedBy: "Steven Ramirez", AssignedTo: "Camilo Velasquez", Images: models.RepairImages{},
		},
		{
			ID: "c1", HotelID: "clarence", RoomNumber: "8", Category: models.CategoryStructural,
			Description: "Loose floorboard near window", Status: models.DamageCompleted,
			Priority: models.PriorityMedium, ReportedDate: daysAgo(15), CompletedDate: completed(14),
			Cost: 55.00, Materials: []string{"Screws", "Wood glue"},
			Notes: "Secured floorboard", ReportedBy: "Juan Saldarriaga",
			AssignedTo: "Juan Saldarriaga", Images: models.RepairImages{},
		},
		{
			ID: "w1", HotelID: "woolstore", RoomNumber: "240", Category: models.CategoryAppliances,
			Description: "Mini fridge not cooling", Status: models.DamagePending,
			Priority: models.PriorityMedium, ReportedDate: daysAgo(2),
			Materials: []string{}, ReportedBy: "Alejandro Saldarriaga", Images: models.RepairImages{},
		},
	}
}

func seedPreventive() []models.PreventiveMaintenance {
	return []models.PreventiveMaintenance{}
}
