package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kajalsharma987/my-leave-app/config"
)

// Snapshot is one persisted collection: the full JSON serialization of
// the users list, the leave ledger, or the current session, keyed the
// same way the browser build keyed its localStorage entries.
type Snapshot struct {
	Key   string `gorm:"primaryKey;size:32"`
	Value string `gorm:"type:text;not null"`
}

// Connect opens PostgreSQL and migrates the snapshots table. The
// program fails fast if the database is not reachable.
func Connect(cfg *config.Config) *Store {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
	return &Store{kv: &gormKV{db: db}}
}
