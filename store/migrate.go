package store

import (
	"fmt"

	"github.com/xy-planning-network/weblog"
	"gorm.io/gorm"
)

// Migration is used to hold the key and function for changing the schema.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

var (
	dropEntries = Migration{
		Key: "drop_entries",
		Executor: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&entryRow{})
		},
	}

	createEntries = Migration{
		Key: "create_entries",
		Executor: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&entryRow{})
		},
	}
)

func (m Migration) execute(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := m.Executor(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

// migrateUp runs migrations in order, stopping at the first failure.
func migrateUp(db *gorm.DB, migrations []Migration) error {
	for _, m := range migrations {
		if err := m.execute(db); err != nil {
			return fmt.Errorf("%w: migration %s: %s", weblog.ErrUnexpected, m.Key, err)
		}
	}

	return nil
}
