package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moffatbay/internal/config"
	"moffatbay/internal/database"
	"moffatbay/internal/domain"
	"moffatbay/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== ROOM TYPES ==================
	log.Println("Seeding room types...")

	roomTypes := []domain.RoomType{
		{Name: "Double Full Beds", PricePerNight: decimal.RequireFromString("126.00"), Beds: 2, MaxGuests: 4,
			Description: "Two full beds with a view of the marina."},
		{Name: "Queen Bed", PricePerNight: decimal.RequireFromString("141.75"), Beds: 1, MaxGuests: 2,
			Description: "One queen bed, cozy corner room."},
		{Name: "Double Queen Beds", PricePerNight: decimal.RequireFromString("157.50"), Beds: 2, MaxGuests: 4,
			Description: "Two queen beds, our most popular family option."},
		{Name: "King Bed", PricePerNight: decimal.RequireFromString("168.00"), Beds: 1, MaxGuests: 2,
			Description: "One king bed with a private balcony."},
	}
	for i := range roomTypes {
		tx := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"price_per_night", "beds", "max_guests", "description"}),
		}).Create(&roomTypes[i])
		if tx.Error != nil {
			log.Fatal("room type seed failed:", tx.Error)
		}
	}

	typeID := func(name string) int64 {
		var rt domain.RoomType
		if err := db.Where("name = ?", name).First(&rt).Error; err != nil {
			log.Fatal("room type lookup failed:", err)
		}
		return rt.ID
	}

	// ================== ROOMS ==================
	log.Println("Seeding rooms...")

	maintenanceUntil := time.Date(2025, time.November, 25, 0, 0, 0, 0, time.UTC)
	rooms := []domain.Room{
		{RoomNumber: "101", RoomTypeID: typeID("King Bed"), Status: domain.RoomAvailable},
		{RoomNumber: "102", RoomTypeID: typeID("King Bed"), Status: domain.RoomCleaning},
		{RoomNumber: "201", RoomTypeID: typeID("Double Queen Beds"), Status: domain.RoomAvailable},
		{RoomNumber: "202", RoomTypeID: typeID("Double Queen Beds"), Status: domain.RoomOccupied},
		{RoomNumber: "301", RoomTypeID: typeID("Double Full Beds"), Status: domain.RoomAvailable},
		{RoomNumber: "302", RoomTypeID: typeID("Double Full Beds"), Status: domain.RoomMaintenance,
			MaintenanceUntil: &maintenanceUntil},
		{RoomNumber: "401", RoomTypeID: typeID("Queen Bed"), Status: domain.RoomAvailable},
		{RoomNumber: "402", RoomTypeID: typeID("Queen Bed"), Status: domain.RoomOccupied},
	}
	for i := range rooms {
		tx := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"room_type_id", "status", "maintenance_until"}),
		}).Create(&rooms[i])
		if tx.Error != nil {
			log.Fatal("room seed failed:", tx.Error)
		}
	}

	// ================== DEMO ACCOUNTS ==================
	log.Println("Seeding demo accounts...")

	seedUser(db, "frontdesk@moffatbaylodge.com", "staff123", "Front", "Desk", domain.RoleStaff)
	customerUser := seedUser(db, "guest@example.com", "guest123", "Pat", "Harbor", domain.RoleCustomer)

	var customer domain.Customer
	err = db.Where("user_id = ?", customerUser.ID).First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		customer = domain.Customer{
			UserID:         customerUser.ID,
			PhoneNumber:    "360-555-0117",
			AddressStreet:  "18 Ferry Landing Rd",
			AddressCity:    "Moffat Bay",
			AddressState:   "WA",
			AddressZipcode: "98250",
			AddressCountry: "USA",
		}
		if err := db.Create(&customer).Error; err != nil {
			log.Fatal("customer seed failed:", err)
		}
	} else if err != nil {
		log.Fatal("customer lookup failed:", err)
	}

	log.Println("Seed complete.")
	log.Println("Staff login: frontdesk@moffatbaylodge.com / staff123")
	log.Println("Customer login: guest@example.com / guest123")
}

func seedUser(db *gorm.DB, email, password, first, last string, role domain.UserRole) *domain.User {
	var existing domain.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatal("user lookup failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash failed:", err)
	}
	u := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatal("user seed failed:", err)
	}
	return &u
}
