package store

import (
	"fmt"

	"github.com/xy-planning-network/weblog"
	"gorm.io/gorm"
)

// entryRow is the entries table.
type entryRow struct {
	ID    uint   `db:"id" gorm:"primaryKey;autoIncrement"`
	Title string `db:"title" gorm:"type:text;not null"`
	Text  string `db:"text" gorm:"type:text;not null"`
}

func (entryRow) TableName() string { return "entries" }

// DB reads and writes entries over a single *gorm.DB.
type DB struct {
	// db carries the context and, inside a Scope, the connection.
	// Every call starts from it without chaining onto it.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// ListEntries returns every entry, newest first.
func (db *DB) ListEntries() ([]weblog.Entry, error) {
	var rows []entryRow
	err := db.db.Order("id DESC").Find(&rows).Error

	return weblog.CastAll[weblog.Entry](rows, err)
}

// AddEntry stores a new entry and returns the ID assigned to it.
//
// Neither title nor text is checked; empty values are stored as they are.
func (db *DB) AddEntry(title, text string) (uint, error) {
	row := entryRow{Title: title, Text: text}
	if err := db.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
	}

	return row.ID, nil
}

// CountEntries returns the number of stored entries.
func (db *DB) CountEntries() (int64, error) {
	var count int64
	if err := db.db.Model(&entryRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", weblog.ErrUnexpected, err)
	}

	return count, nil
}
