package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/worksys/workforce-api/internal/config"
	"github.com/worksys/workforce-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedManager creates the initial manager account when no manager exists yet.
// Skipped unless SEED_MANAGER_PASSWORD is configured.
func SeedManager(cfg *config.Config) error {
	if cfg.SeedManagerUsername == "" || cfg.SeedManagerPassword == "" {
		return nil
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleManager).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count managers: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedManagerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed manager password: %w", err)
	}

	manager := &models.User{
		Username:     cfg.SeedManagerUsername,
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	}
	if err := DB.Create(manager).Error; err != nil {
		return fmt.Errorf("failed to create seed manager: %w", err)
	}

	log.Infof("created initial manager account %q", manager.Username)
	return nil
}
