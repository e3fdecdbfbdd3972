package database

import (
	"github.com/google/uuid"

	"rentflow-portal/internal/models"
)

// GetUserByEmail looks up a portal account by email.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID looks up a portal account by id.
func (d *DB) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a portal account, assigning an ID when absent.
func (d *DB) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleLandlord
	}
	return d.db.Create(u).Error
}

// UpdateUserTheme persists the user's theme preference (light or dark).
func (d *DB) UpdateUserTheme(userID, theme string) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("theme", theme).Error
}
