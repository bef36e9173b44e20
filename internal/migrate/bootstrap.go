package migrate

import (
	"context"
	"fmt"
)

// Bootstrap administrator. Created when no admin row exists, on every
// startup, independent of the migration records. The hash is bcrypt cost
// 10 of BootstrapAdminPassword; operators are expected to change it after
// first login.
const (
	BootstrapAdminEmail    = "admin@amistapp.com"
	BootstrapAdminName     = "Administrador"
	BootstrapAdminPassword = "amistapp-admin"

	bootstrapAdminHash = "$2b$10$DLnVnyI7BGOYRWv9N3gsxu1CLY1/fXlYF1AQ63tg9W7dkZ5fF7O.W"
)

func (r *Runner) ensureAdmin(ctx context.Context) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin');`,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("migrate: check admin: %w", err)
	}
	if exists {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO users (email, password_hash, name, role, status)
VALUES ($1, $2, $3, 'admin', 'active');`,
		BootstrapAdminEmail, bootstrapAdminHash, BootstrapAdminName,
	)
	if err != nil {
		return fmt.Errorf("migrate: bootstrap admin: %w", err)
	}

	r.log.Info().Str("email", BootstrapAdminEmail).Msg("bootstrap admin created")
	return nil
}
