package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the fixed calendar-date format used everywhere an expense
// date crosses a boundary (forms, exports, storage).
const DateLayout = "2006-01-02"

// Expense represents a single expense record owned by one user. The category
// link is weak: deleting a category clears category_ids on referencing rows
// instead of deleting them.
type Expense struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	SpentOn    time.Time       `gorm:"column:spent_on;type:date;not null" json:"spent_on"`
	Note       *string         `gorm:"size:255" json:"note,omitempty"`
	CategoryID *uint           `gorm:"column:category_ids" json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
}

// TableName keeps the table name pinned to the shared schema.
func (Expense) TableName() string { return "expenses" }

// CategoryName returns the joined category name, or "Uncategorized" for
// expenses whose weak reference is unset or was detached.
func (e *Expense) CategoryName() string {
	if e.Category == nil {
		return "Uncategorized"
	}
	return e.Category.Name
}
