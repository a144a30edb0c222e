package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"agrisahayak/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.Exec(`PRAGMA foreign_keys=ON`).Error; err != nil {
		log.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Land{},
		&entities.CropCycle{},
		&entities.ActivityLog{},
		&entities.DiseaseEvent{},
		&entities.MarketPrice{},
		&entities.AdvisoryDoc{},
		&entities.AdvisoryChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
