package main

import (
	"log"
	"os"

	"firecheck-be/internal/model"
	"firecheck-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds one demo station with a crew and a fully stocked engine so the
// inspection flows can be exercised end to end against a fresh database.
func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	stationId := uuid.MustParse("6f1e8b38-0a5d-4a41-9d27-55a3a9a2f001")

	color.Cyan("Seeding demo station %s...", stationId)

	seedUsers(db, stationId)
	unitId := seedUnit(db, stationId)
	seedManifest(db, unitId)

	color.Green("✅ Seeding completed!")
}

func seedUsers(db *gorm.DB, stationId uuid.UUID) {
	users := []struct {
		Name  string
		Email string
		Role  string
	}{
		{Name: "Dana Whitfield", Email: "officer@station12.demo", Role: "officer"},
		{Name: "Marcus Reyes", Email: "firefighter@station12.demo", Role: "firefighter"},
		{Name: "Priya Anand", Email: "quartermaster@station12.demo", Role: "quartermaster"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash demo password: %v", err)
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Email)
			continue
		}

		user := model.User{
			StationId:    stationId,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
		}
		if err := db.Create(&user).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Email, err)
		} else {
			color.Green("Created user: %s (%s)", u.Name, u.Role)
		}
	}
}

func seedUnit(db *gorm.DB, stationId uuid.UUID) uuid.UUID {
	var existing model.Unit
	if err := db.Where("station_id = ? AND call_sign = ?", stationId, "E12").First(&existing).Error; err == nil {
		color.Yellow("Unit 'E12' already exists, skipping...")
		return existing.Id
	}

	unit := model.Unit{
		StationId: stationId,
		Name:      "Engine 12",
		CallSign:  "E12",
		UnitType:  "engine",
		InService: true,
	}
	if err := db.Create(&unit).Error; err != nil {
		log.Fatalf("Error creating unit: %v", err)
	}
	color.Green("Created unit: %s", unit.Name)
	return unit.Id
}

func seedManifest(db *gorm.DB, unitId uuid.UUID) {
	compartments := []struct {
		Name        string
		Position    int
		Equipment   []model.EquipmentItem
		Consumables []model.ConsumableStock
	}{
		{
			Name:     "Driver Side Compartment 1",
			Position: 1,
			Equipment: []model.EquipmentItem{
				{Name: "Halligan Bar", SerialNumber: "HB-4410", Category: "forcible_entry"},
				{Name: "Flat-Head Axe", SerialNumber: "AX-2207", Category: "forcible_entry"},
			},
		},
		{
			Name:     "Officer Side Compartment 1",
			Position: 2,
			Equipment: []model.EquipmentItem{
				{Name: "Thermal Imaging Camera", SerialNumber: "TIC-0091", Category: "electronics"},
				{Name: "Gas Detector", SerialNumber: "GD-1175", Category: "electronics"},
			},
			Consumables: []model.ConsumableStock{
				{Name: "Nitrile Gloves", ExpectedQty: 40, MinimumQty: 10, Uom: "pair"},
			},
		},
		{
			Name:     "Rear Compartment",
			Position: 3,
			Equipment: []model.EquipmentItem{
				{Name: "Attack Line 45mm", SerialNumber: "AL-3302", Category: "hose"},
			},
			Consumables: []model.ConsumableStock{
				{Name: "Class A Foam", ExpectedQty: 6, MinimumQty: 2, Uom: "can"},
				{Name: "Trauma Dressing", ExpectedQty: 12, MinimumQty: 4, Uom: "pack"},
			},
		},
	}

	for _, c := range compartments {
		var existing model.SubLocation
		if err := db.Where("unit_id = ? AND name = ?", unitId, c.Name).First(&existing).Error; err == nil {
			color.Yellow("Compartment '%s' already exists, skipping...", c.Name)
			continue
		}

		sub := model.SubLocation{
			UnitId:   unitId,
			Name:     c.Name,
			Position: c.Position,
		}
		if err := db.Create(&sub).Error; err != nil {
			color.Red("Error creating compartment '%s': %v", c.Name, err)
			continue
		}

		for _, eq := range c.Equipment {
			eq.SubLocationId = sub.Id
			if err := db.Create(&eq).Error; err != nil {
				color.Red("Error creating equipment '%s': %v", eq.Name, err)
			}
		}
		for _, cs := range c.Consumables {
			cs.SubLocationId = sub.Id
			if err := db.Create(&cs).Error; err != nil {
				color.Red("Error creating consumable '%s': %v", cs.Name, err)
			}
		}
		color.Green("Created compartment: %s (%d equipment, %d consumables)", c.Name, len(c.Equipment), len(c.Consumables))
	}
}
