package models

// Role classifies what a user account is allowed to do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a row in the users table. The password column holds a
// bcrypt digest, never plaintext.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Fullname string `gorm:"size:50;not null" json:"fullname"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:10;not null;default:user" json:"role"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}

// TableName keeps the table name pinned to the shared schema.
func (User) TableName() string { return "users" }
