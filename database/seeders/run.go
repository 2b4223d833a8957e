// Package seeders fills a fresh database with the demo warung: an
// admin user and a starter menu. Seed functions self-register from
// init() and `warungsaji seed` runs them in order.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc inserts one slice of seed data.
type SeederFunc func(db *gorm.DB) error

type seeder struct {
	name string
	fn   SeederFunc
}

var (
	mu       sync.Mutex
	registry []seeder
)

// Register adds a named seeder. Call it from init() so ordering
// follows file registration order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, seeder{name: name, fn: fn})
}

// RunAll executes every registered seeder, stopping at the first
// failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	todo := make([]seeder, len(registry))
	copy(todo, registry)
	mu.Unlock()

	if len(todo) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, s := range todo {
		fmt.Printf("  Seeding %s... ", s.name)
		if err := s.fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
