package storage

import (
	"encoding/json"
	"fmt"

	"github.com/nvoss/macrolog/internal/models"
)

// Seed data used when a store file does not exist yet.
var (
	seedFoods = []models.Food{
		{Name: "Chicken breast (raw)", BaseAmount: 100, Unit: models.UnitGram,
			Nutrients: models.Nutrients{Calories: 165, ProteinG: 31.0, FatG: 3.6, SatFatG: 1.0}},
		{Name: "Rolled oats (dry)", BaseAmount: 100, Unit: models.UnitGram,
			Nutrients: models.Nutrients{Calories: 379, ProteinG: 13.0, FatG: 7.0, SatFatG: 1.2}},
	}
	seedGoals = models.Goals{Calories: 1800, ProteinG: 120, SatFatG: 20}
)

// FoodStore persists the food catalog as foods.csv.
type FoodStore struct {
	fs Provider
}

// NewFoodStore creates a store over the given provider.
func NewFoodStore(fs Provider) *FoodStore {
	return &FoodStore{fs: fs}
}

// Load reads the catalog, seeding the file with minimal defaults if absent.
func (s *FoodStore) Load() ([]models.Food, error) {
	if !s.fs.Exists(FoodsFile) {
		if err := s.Save(seedFoods); err != nil {
			return nil, fmt.Errorf("seed %s: %w", FoodsFile, err)
		}
	}
	data, err := s.fs.Read(FoodsFile)
	if err != nil {
		return nil, err
	}
	return DecodeFoods(data)
}

// Save fully re-serializes the catalog.
func (s *FoodStore) Save(foods []models.Food) error {
	return s.fs.Write(FoodsFile, EncodeFoods(foods))
}

// EntryStore persists the consumption log as log.csv.
type EntryStore struct {
	fs Provider
}

// NewEntryStore creates a store over the given provider.
func NewEntryStore(fs Provider) *EntryStore {
	return &EntryStore{fs: fs}
}

// Load reads the log, creating an empty (header-only) file if absent.
func (s *EntryStore) Load() ([]models.LogEntry, error) {
	if !s.fs.Exists(LogFile) {
		if err := s.Save(nil); err != nil {
			return nil, fmt.Errorf("seed %s: %w", LogFile, err)
		}
	}
	data, err := s.fs.Read(LogFile)
	if err != nil {
		return nil, err
	}
	return DecodeEntries(data)
}

// Save fully re-serializes the log.
func (s *EntryStore) Save(entries []models.LogEntry) error {
	return s.fs.Write(LogFile, EncodeEntries(entries))
}

// GoalStore persists the goals singleton as goals.json.
type GoalStore struct {
	fs Provider
}

// NewGoalStore creates a store over the given provider.
func NewGoalStore(fs Provider) *GoalStore {
	return &GoalStore{fs: fs}
}

// Load reads the goals, seeding the file with defaults if absent.
func (s *GoalStore) Load() (models.Goals, error) {
	if !s.fs.Exists(GoalsFile) {
		if err := s.Save(seedGoals); err != nil {
			return models.Goals{}, fmt.Errorf("seed %s: %w", GoalsFile, err)
		}
		return seedGoals, nil
	}
	data, err := s.fs.Read(GoalsFile)
	if err != nil {
		return models.Goals{}, err
	}
	var g models.Goals
	if err := json.Unmarshal(data, &g); err != nil {
		return models.Goals{}, fmt.Errorf("parse %s: %w", GoalsFile, err)
	}
	return g, nil
}

// Save writes the goals record.
func (s *GoalStore) Save(g models.Goals) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	return s.fs.Write(GoalsFile, append(data, '\n'))
}
