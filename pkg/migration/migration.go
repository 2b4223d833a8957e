// Package migration runs registered schema migrations in order and
// tracks them in a warungsaji_migrations table, batch by batch.
//
// Each file under database/migrations registers itself:
//
//	func init() {
//	    migration.Register("20260301000001_create_menu_items_table", &CreateMenuItemsTable{})
//	}
//
// The CLI drives the runner:
//
//	warungsaji migrate             run all pending
//	warungsaji migrate:rollback    undo the last batch
//	warungsaji migrate:status      show what ran and when
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/putrawardana/warungsaji/pkg/logger"
	"gorm.io/gorm"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record tracks an applied migration. Name carries the timestamp
// prefix, so lexicographic order is chronological order.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "warungsaji_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration under a timestamp-prefixed name. Call it
// from an init() so registration happens before the CLI runs.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner applies and reverses registered migrations against one DB.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner { return &Runner{db: db} }

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) pending() ([]entry, error) {
	var applied []record
	if err := r.db.Find(&applied).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(applied))
	for _, rec := range applied {
		seen[rec.Name] = true
	}

	var todo []entry
	for _, e := range registry {
		if !seen[e.name] {
			todo = append(todo, e)
		}
	}
	sort.Slice(todo, func(i, j int) bool { return todo[i].name < todo[j].name })
	return todo, nil
}

func (r *Runner) lastBatch() int {
	var row struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&row)
	return row.Max
}

// Run applies every pending migration as one new batch.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	todo, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(todo) == 0 {
		logger.Info("migration: nothing to migrate")
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.lastBatch() + 1
	for _, e := range todo {
		logger.Info("migration: running", "name", e.name)
		fmt.Printf("  Migrating: %s\n", e.name)

		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}

		fmt.Printf("  Migrated:  %s\n", e.name)
	}

	logger.Info("migration: done", "ran", len(todo), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var records []record
	if err := r.db.Where("batch = ?", batch).
		Order("id desc").
		Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		fmt.Printf("  Rolling back: %s\n", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}

		fmt.Printf("  Rolled back:  %s\n", rec.Name)
	}
	return nil
}

// Status prints every registered migration with its applied batch.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	var applied []record
	if err := r.db.Find(&applied).Error; err != nil {
		return err
	}

	byName := make(map[string]record, len(applied))
	for _, rec := range applied {
		byName[rec.Name] = rec
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range registry {
		if rec, ok := byName[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "Ran", rec.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "Pending")
		}
	}
	return nil
}
