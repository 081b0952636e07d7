package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "travelportal/internal/db"
	"travelportal/internal/domain"
	"travelportal/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, COALESCE(phone, ''), role, COALESCE(avatar_url, ''), created_at`

func scanUser(row interface{ Scan(...any) error }, extra ...any) (models.User, error) {
	var u models.User
	dest := append([]any{&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.AvatarURL, &u.CreatedAt}, extra...)
	err := row.Scan(dest...)
	return u, err
}

// Create inserts a user. A duplicate email or phone is reported as ConflictError.
func (r UserRepository) Create(ctx context.Context, u models.User, passwordHash string) (models.User, error) {
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	res, err := dbOr(r.DB).ExecContext(ctx,
		`INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)`,
		u.Name, strings.ToLower(strings.TrimSpace(u.Email)), intdb.NullIfEmpty(strings.TrimSpace(u.Phone)), passwordHash, u.Role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "An account with this email or phone already exists", Err: err}
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("insert user id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(dbOr(r.DB).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
	return u, notFound("user", err)
}

// FindByEmail returns the user together with the stored password hash.
func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, string, error) {
	var hash string
	u, err := scanUser(dbOr(r.DB).QueryRowContext(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))), &hash)
	return u, hash, notFound("user", err)
}

func (r UserRepository) FindByPhone(ctx context.Context, phone string) (models.User, string, error) {
	var hash string
	u, err := scanUser(dbOr(r.DB).QueryRowContext(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE phone=? LIMIT 1`,
		strings.TrimSpace(phone)), &hash)
	return u, hash, notFound("user", err)
}

func (r UserRepository) UpdateAvatar(ctx context.Context, id int64, url string) error {
	if _, err := dbOr(r.DB).ExecContext(ctx, `UPDATE users SET avatar_url=? WHERE id=?`, url, id); err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := dbOr(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}
