package domain

import "time"

// User represents an identity record. Rows are created on first login and
// updated on every subsequent login (upsert keyed by ID). Username and
// PasswordHash are only populated in local-credential auth mode.
type User struct {
	ID              string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	FirstName       string    `gorm:"type:varchar(255)" json:"firstName"`
	LastName        string    `gorm:"type:varchar(255)" json:"lastName"`
	ProfileImageURL string    `gorm:"type:varchar(255)" json:"profileImageUrl"`
	Username        *string   `gorm:"type:varchar(255);uniqueIndex" json:"username,omitempty"`
	PasswordHash    *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
