package database

import (
	"fmt"

	"gorm.io/gorm/clause"

	"spendbook/internal/models"
)

// seedCategories is the fixed taxonomy installed on first start.
var seedCategories = []string{
	"Food", "Groceries", "Dining Out", "Travel", "Transport",
	"Fuel", "Accommodation", "Utilities", "Electricity", "Water",
	"Internet", "Mobile", "Health", "Medical", "Pharmacy",
	"Insurance", "Entertainment", "Movies", "Games", "Streaming",
	"Shopping", "Clothing", "Electronics", "Education", "Books",
	"Courses", "Fitness", "Gym", "Hobbies", "Gifts",
	"Charity", "Miscellaneous",
}

// SeedCategories inserts the default category names, skipping any that
// already exist. Safe to run on every startup.
func (m *Manager) SeedCategories() error {
	categories := make([]models.Category, 0, len(seedCategories))
	for _, name := range seedCategories {
		categories = append(categories, models.Category{Name: name})
	}

	err := m.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&categories).Error
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
