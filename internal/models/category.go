package models

// Category is a flat taxonomy entry shared by all users. Column names follow
// the shared schema (category_id, category_name) rather than GORM defaults.
type Category struct {
	ID   uint   `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name string `gorm:"column:category_name;size:50;uniqueIndex;not null" json:"category_name"`
}

// TableName keeps the table name pinned to the shared schema.
func (Category) TableName() string { return "categories" }
