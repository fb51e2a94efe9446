package database

import (
	"log"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/models"
)

var (
	poolsMu sync.Mutex
	pools   = make(map[string]*gorm.DB)
)

// Connect returns the shared database handle for the given connection
// string, opening it on first use. Identical connection strings reuse the
// same handle for the lifetime of the process; the handle does its own
// connection pooling and is safe for concurrent use.
func Connect(dsn string) (*gorm.DB, error) {
	return connect(dsn, postgres.Open(dsn))
}

func connect(dsn string, dialector gorm.Dialector) (*gorm.DB, error) {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	if db, ok := pools[dsn]; ok {
		return db, nil
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database tables
	if err := db.AutoMigrate(&models.Location{}, &models.Schedule{}); err != nil {
		return nil, err
	}

	pools[dsn] = db
	log.Println("Database successfully connected!")
	return db, nil
}
