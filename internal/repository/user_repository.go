package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	models "github.com/tripwell/tripwell/internal"
)

type UserRepository struct {
	db DBConn
}

func NewUserRepository(db DBConn) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, password_hash, date_of_birth, is_student, is_admin, created_at"

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, name, email, password_hash, date_of_birth, is_student, is_admin, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.DateOfBirth, user.IsStudent, user.IsAdmin, user.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrDuplicateEmail
	}
	return err
}

// GetUserByEmail matches case-insensitively; the unique index on
// lower(email) keeps registration consistent with this lookup.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE lower(email) = lower($1)", userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
			&u.DateOfBirth, &u.IsStudent, &u.IsAdmin, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUserRoles(ctx context.Context, id uuid.UUID, roles *models.UserRolesRequest) error {
	var sets []string
	var args []interface{}

	if roles.IsStudent != nil {
		args = append(args, *roles.IsStudent)
		sets = append(sets, fmt.Sprintf("is_student = $%d", len(args)))
	}
	if roles.IsAdmin != nil {
		args = append(args, *roles.IsAdmin)
		sets = append(sets, fmt.Sprintf("is_admin = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteUser removes the user row; bookings, reviews and favorites go with
// it through the schema's ON DELETE CASCADE.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.DateOfBirth, &u.IsStudent, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
