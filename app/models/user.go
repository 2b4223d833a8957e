package models

// User is an admin panel account.
type User struct {
	Base
	Name     string `gorm:"size:255;not null"             json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:admin"         json:"role"`
}
