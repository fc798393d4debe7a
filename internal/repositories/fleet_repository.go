package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB { return dbOr(r.DB) }

const driverColumns = `id, name, COALESCE(tax_id,''), COALESCE(license_class,''), active, created_at`

func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.TaxID, &d.LicenseClass, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO drivers (name, tax_id, license_class, active) VALUES (?,?,?,?)`,
		strings.TrimSpace(d.Name), intdb.NullIfEmpty(d.TaxID), intdb.NullIfEmpty(strings.ToUpper(d.LicenseClass)), d.Active)
	if err != nil {
		return 0, intdb.TranslateError("driver", err)
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE drivers SET name=?, tax_id=?, license_class=?, active=? WHERE id=?`,
		strings.TrimSpace(d.Name), intdb.NullIfEmpty(d.TaxID), intdb.NullIfEmpty(strings.ToUpper(d.LicenseClass)), d.Active, d.ID)
	if err != nil {
		return intdb.TranslateError("driver", err)
	}
	return checkUpdated(ctx, db, res, "drivers", "driver", d.ID)
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("driver", err)
	}
	return checkDeleted(res, "driver")
}

type TruckRepository struct {
	DB *sql.DB
}

func (r TruckRepository) db() *sql.DB { return dbOr(r.DB) }

const truckColumns = `id, plate, COALESCE(make,''), COALESCE(model,''), year, expected_km_per_liter, created_at`

func (r TruckRepository) List(ctx context.Context) ([]models.Truck, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+truckColumns+` FROM trucks ORDER BY plate ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Truck{}
	for rows.Next() {
		var t models.Truck
		if err := rows.Scan(&t.ID, &t.Plate, &t.Make, &t.Model, &t.Year, &t.ExpectedKmPerLiter, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TruckRepository) Create(ctx context.Context, t models.Truck) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO trucks (plate, make, model, year, expected_km_per_liter) VALUES (?,?,?,?,?)`,
		normalizePlate(t.Plate), intdb.NullIfEmpty(t.Make), intdb.NullIfEmpty(t.Model), t.Year, t.ExpectedKmPerLiter)
	if err != nil {
		return 0, intdb.TranslateError("truck", err)
	}
	return res.LastInsertId()
}

func (r TruckRepository) Update(ctx context.Context, t models.Truck) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE trucks SET plate=?, make=?, model=?, year=?, expected_km_per_liter=? WHERE id=?`,
		normalizePlate(t.Plate), intdb.NullIfEmpty(t.Make), intdb.NullIfEmpty(t.Model), t.Year, t.ExpectedKmPerLiter, t.ID)
	if err != nil {
		return intdb.TranslateError("truck", err)
	}
	return checkUpdated(ctx, db, res, "trucks", "truck", t.ID)
}

func (r TruckRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM trucks WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("truck", err)
	}
	return checkDeleted(res, "truck")
}

func normalizePlate(p string) string {
	return strings.ToUpper(strings.Join(strings.Fields(p), ""))
}
