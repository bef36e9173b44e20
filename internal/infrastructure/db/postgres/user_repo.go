package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

const userColumns = `id, email, password_hash, name, role, status, created_at, updated_at`

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Name,
		&ur.Role,
		&ur.Status,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Name:         ur.Name,
		Role:         domain.Role(ur.Role),
		Status:       domain.Status(ur.Status),
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUser(r.store.QueryRow(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUser(r.store.QueryRow(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// Create inserts the user row and its role extension row in one
// transaction: either both exist afterwards or neither does. A unique
// violation on email surfaces as the conflict error, never a generic one.
func (r *UserRepo) Create(ctx context.Context, u domain.User, ext domain.ExtensionFields) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if !domain.IsValidRole(string(u.Role)) {
		return domain.User{}, domain.ErrInvalidRole(string(u.Role))
	}
	if u.Status == "" {
		u.Status = domain.StatusActive
	}

	const insertUser = `
INSERT INTO users (email, password_hash, name, role, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns + `;
`

	var ur userRow
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, insertUser,
			u.Email, u.PasswordHash, u.Name, string(u.Role), string(u.Status),
		)
		var err error
		if ur, err = scanUser(row); err != nil {
			return err
		}

		switch u.Role {
		case domain.RoleTeacher:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO teachers (user_id, school, subjects) VALUES ($1, $2, $3);`,
				ur.ID, ext.School, ext.Subjects)
		case domain.RoleTutor:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO tutors (user_id, relationship, phone) VALUES ($1, $2, $3);`,
				ur.ID, ext.Relationship, ext.Phone)
		case domain.RoleStudent:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO students (user_id, school, grade) VALUES ($1, $2, $3);`,
				ur.ID, ext.School, ext.Grade)
		case domain.RoleAdmin:
			// no extension table
		}
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailAlreadyRegistered()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.store.Exec(ctx, q, userID, newHash)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// UpdateProfile updates the display name together with the role extension
// fields in one transaction. The extension write is an upsert so that a
// user whose extension row went missing is healed rather than left
// half-updated.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID int64, role domain.Role, name string, ext domain.ExtensionFields) error {
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE users
SET name = $2,
    updated_at = NOW()
WHERE id = $1;
`, userID, name)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrUserNotFound()
		}

		switch role {
		case domain.RoleTeacher:
			_, err = tx.ExecContext(ctx, `
INSERT INTO teachers (user_id, school, subjects) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET school = EXCLUDED.school, subjects = EXCLUDED.subjects;
`, userID, ext.School, ext.Subjects)
		case domain.RoleTutor:
			_, err = tx.ExecContext(ctx, `
INSERT INTO tutors (user_id, relationship, phone) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET relationship = EXCLUDED.relationship, phone = EXCLUDED.phone;
`, userID, ext.Relationship, ext.Phone)
		case domain.RoleStudent:
			_, err = tx.ExecContext(ctx, `
INSERT INTO students (user_id, school, grade) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET school = EXCLUDED.school, grade = EXCLUDED.grade;
`, userID, ext.School, ext.Grade)
		case domain.RoleAdmin:
			// nothing role-specific to update
		}
		return err
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return err
		}
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY id;
`
	rows, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID, &ur.Email, &ur.PasswordHash, &ur.Name,
			&ur.Role, &ur.Status, &ur.CreatedAt, &ur.UpdatedAt,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		users = append(users, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}
