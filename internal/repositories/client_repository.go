package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain/models"
)

type ClientRepository struct {
	DB *sql.DB
}

func (r ClientRepository) db() *sql.DB { return dbOr(r.DB) }

const clientColumns = `id, name, COALESCE(tax_id,''), COALESCE(contact,''), created_at`

func scanClient(sc interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := sc.Scan(&c.ID, &c.Name, &c.TaxID, &c.Contact, &c.CreatedAt)
	return c, err
}

func (r ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ClientRepository) Get(ctx context.Context, id int64) (models.Client, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=?`, id)
	c, err := scanClient(row)
	if err != nil {
		return models.Client{}, intdb.TranslateError("client", err)
	}
	return c, nil
}

func (r ClientRepository) Create(ctx context.Context, c models.Client) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO clients (name, tax_id, contact) VALUES (?,?,?)`,
		strings.TrimSpace(c.Name), intdb.NullIfEmpty(c.TaxID), intdb.NullIfEmpty(c.Contact))
	if err != nil {
		return 0, intdb.TranslateError("client", err)
	}
	return res.LastInsertId()
}

func (r ClientRepository) Update(ctx context.Context, c models.Client) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE clients SET name=?, tax_id=?, contact=? WHERE id=?`,
		strings.TrimSpace(c.Name), intdb.NullIfEmpty(c.TaxID), intdb.NullIfEmpty(c.Contact), c.ID)
	if err != nil {
		return intdb.TranslateError("client", err)
	}
	return checkUpdated(ctx, db, res, "clients", "client", c.ID)
}

func (r ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM clients WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("client", err)
	}
	return checkDeleted(res, "client")
}
