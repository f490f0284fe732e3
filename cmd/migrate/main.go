package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/claimdesk/backend/internal/infrastructure/config"
	"github.com/claimdesk/backend/internal/infrastructure/logger"
	"github.com/claimdesk/backend/internal/infrastructure/persistence"
	"github.com/claimdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultCategories = []string{
	"Electronics",
	"Furniture",
	"Appliances",
	"Clothing",
	"Jewelry",
	"Documents",
	"Tools",
	"Other",
}

var defaultRooms = []string{
	"Living Room",
	"Kitchen",
	"Bedroom",
	"Bathroom",
	"Garage",
	"Basement",
	"Attic",
	"Office",
}

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date", zap.String("driver", cfg.Database.Driver))

	case "seed":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		created, err := seedLookups(db.DB)
		if err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Lookup tables seeded", zap.Int("created", created))

	case "status":
		if err := db.Ping(); err != nil {
			log.Fatal("Database is unreachable", zap.Error(err))
		}
		var categories, rooms, items, submissions int64
		db.DB.Model(&models.CategoryModel{}).Count(&categories)
		db.DB.Model(&models.RoomModel{}).Count(&rooms)
		db.DB.Model(&models.InventoryItemModel{}).Count(&items)
		db.DB.Model(&models.ClaimSubmissionModel{}).Count(&submissions)
		log.Info("Database status",
			zap.String("driver", cfg.Database.Driver),
			zap.Int64("categories", categories),
			zap.Int64("rooms", rooms),
			zap.Int64("inventory_items", items),
			zap.Int64("claim_submissions", submissions),
		)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// seedLookups inserts the default category and room names, skipping any
// that already exist. Returns the number of rows created.
func seedLookups(db *gorm.DB) (int, error) {
	created := 0
	for _, name := range defaultCategories {
		var model models.CategoryModel
		result := db.Where("name = ?", name).
			Attrs(models.CategoryModel{
				BaseModel: models.BaseModel{ID: uuid.New()},
				Name:      name,
			}).
			FirstOrCreate(&model)
		if result.Error != nil {
			return created, fmt.Errorf("seed category %q: %w", name, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	for _, name := range defaultRooms {
		var model models.RoomModel
		result := db.Where("name = ?", name).
			Attrs(models.RoomModel{
				BaseModel: models.BaseModel{ID: uuid.New()},
				Name:      name,
			}).
			FirstOrCreate(&model)
		if result.Error != nil {
			return created, fmt.Errorf("seed room %q: %w", name, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}

func printUsage() {
	fmt.Println(`Database migration tool

Usage:
  migrate [flags] <command>

Commands:
  up       Apply the current schema to the database
  seed     Apply the schema and insert default categories and rooms
  status   Show connectivity and table row counts

Flags:
  -log-level string   Log level (debug, info, warn, error) (default "info")`)
}
