package database

import (
	"context"
	"fmt"

	"clinic-management-api/config"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the bootstrap administrator account on first run so the
// system is never left without a caller able to create employees. Does
// nothing when the login already exists or no seed credentials are set.
func SeedAdmin(ctx context.Context, employeeRepo repository.EmployeeRepository, cfg config.SeedConfig) error {
	if cfg.AdminLogin == "" || cfg.AdminPassword == "" {
		logrus.Warn("No default admin configured, skipping seed")
		return nil
	}

	existing, err := employeeRepo.FindByLogin(ctx, cfg.AdminLogin)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entity.Employee{
		Name:         cfg.AdminName,
		Login:        cfg.AdminLogin,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashedPassword),
		Role:         entity.RoleAdministrator,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	if err := employeeRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logrus.WithField("login", cfg.AdminLogin).Info("Default administrator created")
	return nil
}
