package repositories

import (
	"context"
	"database/sql"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/utils"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB { return dbOr(r.DB) }

const routeColumns = `id, origin, destination, distance_km, suggested_price, created_at`

func scanRoute(sc interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := sc.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKm, &rt.SuggestedPrice, &rt.CreatedAt)
	return rt, err
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY origin ASC, destination ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) Get(ctx context.Context, id int64) (models.Route, error) {
	rt, err := scanRoute(r.db().QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id=?`, id))
	if err != nil {
		return models.Route{}, intdb.TranslateError("route", err)
	}
	return rt, nil
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO routes (origin, destination, distance_km, suggested_price) VALUES (?,?,?,?)`,
		utils.NormalizePlace(rt.Origin), utils.NormalizePlace(rt.Destination), rt.DistanceKm, rt.SuggestedPrice)
	if err != nil {
		return 0, intdb.TranslateError("route", err)
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE routes SET origin=?, destination=?, distance_km=?, suggested_price=? WHERE id=?`,
		utils.NormalizePlace(rt.Origin), utils.NormalizePlace(rt.Destination), rt.DistanceKm, rt.SuggestedPrice, rt.ID)
	if err != nil {
		return intdb.TranslateError("route", err)
	}
	return checkUpdated(ctx, db, res, "routes", "route", rt.ID)
}

func (r RouteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("route", err)
	}
	return checkDeleted(res, "route")
}

// Upsert inserts (origin, destination) with zero distance and price unless the
// pair already exists, in one statement. The unique key serializes concurrent
// callers so every caller gets the same id. created is true only for the
// caller whose insert won.
func (r RouteRepository) Upsert(ctx context.Context, origin, destination string) (id int64, created bool, err error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO routes (origin, destination, distance_km, suggested_price) VALUES (?,?,0,0)
		 ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id)`,
		utils.NormalizePlace(origin), utils.NormalizePlace(destination))
	if err != nil {
		return 0, false, intdb.TranslateError("route", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	return id, n == 1, nil
}
