package database

import (
	"errors"
	"fmt"

	"order-tracker/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Order{},
		&models.User{},
		&models.ImportBatch{},
		&models.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// Account is one of the fixed logins seeded at startup.
type Account struct {
	Username string
	Password string
	Role     models.Role
}

// SeedUsers makes sure every account exists with its configured password and role.
func SeedUsers(db *gorm.DB, accounts []Account) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, acc := range accounts {
			var user models.User
			err := tx.Where("username = ?", acc.Username).First(&user).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup user %s: %w", acc.Username, err)
			}

			user.Username = acc.Username
			user.Role = acc.Role
			if err := user.SetPassword(acc.Password); err != nil {
				return fmt.Errorf("hash password for %s: %w", acc.Username, err)
			}

			if user.Id == "" {
				err = tx.Create(&user).Error
			} else {
				err = tx.Save(&user).Error
			}
			if err != nil {
				return fmt.Errorf("seed user %s: %w", acc.Username, err)
			}
		}
		return nil
	})
}
