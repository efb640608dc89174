// Package catalog implements the food catalog repository.
//
// The in-memory slice is the single source of truth; every successful
// mutation is fully re-serialized to the backing store before the call
// returns, so readers only ever observe pre- or post-mutation state.
package catalog

import (
	"fmt"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/storage"
)

// Catalog holds the food definitions in insertion order.
type Catalog struct {
	store *storage.FoodStore
	foods []models.Food
	index map[string]int // name → position in foods
}

// New loads (or seeds) the catalog from the store.
func New(store *storage.FoodStore) (*Catalog, error) {
	c := &Catalog{store: store}
	if err := c.Reload(); err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	return c, nil
}

// Reload re-reads the backing store, replacing the in-memory state.
// Used at startup and when the data file changes on disk.
func (c *Catalog) Reload() error {
	foods, err := c.store.Load()
	if err != nil {
		return err
	}
	c.replace(foods)
	return nil
}

func (c *Catalog) replace(foods []models.Food) {
	c.foods = foods
	c.index = make(map[string]int, len(foods))
	for i, f := range foods {
		// Last occurrence wins for files that carry duplicates; Add refuses
		// to create new ones.
		c.index[f.Name] = i
	}
}

// Add appends a new food definition and flushes the catalog.
// A name that is already present fails with ErrDuplicateName.
func (c *Catalog) Add(f models.Food) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if _, ok := c.index[f.Name]; ok {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicateName, f.Name)
	}
	next := append(append([]models.Food(nil), c.foods...), f)
	if err := c.store.Save(next); err != nil {
		return err
	}
	c.foods = next
	c.index[f.Name] = len(next) - 1
	return nil
}

// Lookup resolves a food by name.
func (c *Catalog) Lookup(name string) (models.Food, error) {
	i, ok := c.index[name]
	if !ok {
		return models.Food{}, fmt.Errorf("%w: food %q", apperr.ErrNotFound, name)
	}
	return c.foods[i], nil
}

// List returns all definitions in insertion order.
func (c *Catalog) List() []models.Food {
	return append([]models.Food(nil), c.foods...)
}

// ReplaceAll atomically swaps in a new catalog. Any invalid definition
// rejects the whole import and leaves the prior state untouched.
func (c *Catalog) ReplaceAll(foods []models.Food) error {
	for _, f := range foods {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
		}
	}
	if err := c.store.Save(foods); err != nil {
		return err
	}
	c.replace(foods)
	return nil
}

// Export returns the exact on-disk CSV serialization of the catalog.
func (c *Catalog) Export() []byte {
	return storage.EncodeFoods(c.foods)
}
