package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Calabangata/Graduation-System/internal/config"
	"github.com/Calabangata/Graduation-System/internal/pkg/auth"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// CreateDefaultData seeds the admin account when seeding is enabled. The
// admin manages departments and defences but takes no part in the thesis
// workflow itself.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	if !cfg.Seed.Enabled {
		logger.Debug().Msg("Seeding disabled, skipping default data")
		return nil
	}
	if cfg.Seed.AdminPassword == "" {
		return fmt.Errorf("seed enabled but admin password is empty")
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, cfg.Seed.AdminEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		logger.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Admin account already present")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role_type)
		VALUES ($1, $2, 'System', 'Administrator', 'ADMIN')`,
		cfg.Seed.AdminEmail, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info().Str("email", cfg.Seed.AdminEmail).Msg("Admin account seeded")
	return nil
}
