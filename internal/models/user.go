package models

import "time"

// User is a portal account (landlord, caretaker or admin).
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	FullName     string `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'landlord'" json:"role"`

	// Theme is empty until the user picks one; the settings endpoint
	// reports that as "system".
	Theme string `gorm:"type:varchar(10)" json:"theme,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLandlord  Role = "landlord"
	RoleCaretaker Role = "caretaker"
)

func (User) TableName() string {
	return "users"
}
