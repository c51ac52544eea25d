package migration

import (
	"context"
	"errors"
	"fmt"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/pkg/user"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		return fmt.Errorf("migrating ingredient table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("migrating recipe table: %w", err)
	}
	return nil
}

// SeedAdmin creates an admin account with the given credentials unless the
// username already exists. Empty credentials skip seeding.
func SeedAdmin(ctx context.Context, db *gorm.DB, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	repo := user.NewUserRepository(db)
	if _, err := repo.GetUserByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hashed, err := user.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &entities.User{
		Username: username,
		Password: hashed,
		Role:     domain.RoleAdmin,
	}
	if err := repo.RegisterUser(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
