package db

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/auth"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// SeedAdmin creates the admin account when a password is configured and the
// username is not taken yet.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if password == "" {
		return nil
	}

	var existing models.Admin
	res := db.Where("username = ?", username).Limit(1).Find(&existing)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := db.Create(&models.Admin{Username: username, PasswordHash: hash}).Error; err != nil {
		return err
	}
	slog.Info("admin account created", "username", username)
	return nil
}
