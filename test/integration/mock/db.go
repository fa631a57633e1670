//go:build integration

package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/infra/db"
)

var once sync.Once
var database *Db

// Db is an in-memory sqlite database shared by every scenario.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database on first use and migrates the application schema.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		database = open(models)
	})

	return database
}

func open(models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    "file::memory:?cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.Migrate(); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: conn.DB(),
		models: models,
	}

	for _, model := range models {
		if !newDbMock.DbConn.Migrator().HasTable(model) {
			panic(fmt.Sprintf("table for model %T was not created", model))
		}
	}

	return newDbMock
}

// ClearDB removes every row, soft-deleted ones included.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
