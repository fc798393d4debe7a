package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB { return dbOr(r.DB) }

const userColumns = `id, username, password_hash, role, active, created_at`

func scanUser(sc interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := sc.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	return u, err
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=? LIMIT 1`, strings.TrimSpace(username)))
	if err != nil {
		return models.User{}, intdb.TranslateError("user", err)
	}
	return u, nil
}

func (r UserRepository) Get(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id))
	if err != nil {
		return models.User{}, intdb.TranslateError("user", err)
	}
	return u, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, active) VALUES (?,?,?,?)`,
		strings.TrimSpace(u.Username), u.PasswordHash, u.Role, u.Active)
	if err != nil {
		return 0, intdb.TranslateError("user", err)
	}
	return res.LastInsertId()
}

func (r UserRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	db := r.db()
	res, err := db.ExecContext(ctx, `UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	if err != nil {
		return intdb.TranslateError("user", err)
	}
	return checkUpdated(ctx, db, res, "users", "user", id)
}

func (r UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	db := r.db()
	res, err := db.ExecContext(ctx, `UPDATE users SET active=? WHERE id=?`, active, id)
	if err != nil {
		return intdb.TranslateError("user", err)
	}
	return checkUpdated(ctx, db, res, "users", "user", id)
}
