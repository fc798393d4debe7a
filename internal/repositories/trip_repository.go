package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB { return dbOr(r.DB) }

// BeginTx opens a transaction on the repository connection.
func (r TripRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db().BeginTx(ctx, nil)
}

type TripFilter struct {
	From     time.Time // inclusive, zero = unbounded
	To       time.Time // exclusive, zero = unbounded
	ClientID int64
	Limit    int
}

const tripViewSelect = `
	SELECT t.id, t.trip_date, t.client_id, t.route_id, t.driver_id, t.truck_id,
	       t.status, t.net_amount, COALESCE(t.notes,''), t.created_at,
	       c.name, r.origin, r.destination,
	       COALESCE(d.name,''), COALESCE(k.plate,'')
	FROM trips t
	JOIN clients c ON c.id = t.client_id
	JOIN routes r ON r.id = t.route_id
	LEFT JOIN drivers d ON d.id = t.driver_id
	LEFT JOIN trucks k ON k.id = t.truck_id`

func scanTripView(sc interface{ Scan(...any) error }) (models.TripView, error) {
	var (
		v      models.TripView
		driver sql.NullInt64
		truck  sql.NullInt64
		status string
	)
	err := sc.Scan(&v.ID, &v.TripDate, &v.ClientID, &v.RouteID, &driver, &truck,
		&status, &v.NetAmount, &v.Notes, &v.CreatedAt,
		&v.ClientName, &v.Origin, &v.Destination, &v.DriverName, &v.TruckPlate)
	if err != nil {
		return v, err
	}
	v.Status = models.TripStatus(status)
	if driver.Valid {
		id := driver.Int64
		v.DriverID = &id
	}
	if truck.Valid {
		id := truck.Int64
		v.TruckID = &id
	}
	return v, nil
}

// List returns trips newest first.
func (r TripRepository) List(ctx context.Context, f TripFilter) ([]models.TripView, error) {
	where := []string{"1=1"}
	args := []any{}
	if !f.From.IsZero() {
		where = append(where, "t.trip_date>=?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "t.trip_date<?")
		args = append(args, f.To)
	}
	if f.ClientID > 0 {
		where = append(where, "t.client_id=?")
		args = append(args, f.ClientID)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY t.trip_date DESC, t.id DESC", tripViewSelect, strings.Join(where, " AND "))
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripView{}
	for rows.Next() {
		v, err := scanTripView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r TripRepository) Get(ctx context.Context, id int64) (models.TripView, error) {
	v, err := scanTripView(r.db().QueryRowContext(ctx, tripViewSelect+` WHERE t.id=?`, id))
	if err != nil {
		return models.TripView{}, intdb.TranslateError("trip", err)
	}
	return v, nil
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (int64, error) {
	return r.InsertWith(ctx, r.db(), t)
}

// InsertWith inserts t using q, which may be a transaction.
func (r TripRepository) InsertWith(ctx context.Context, q Execer, t models.Trip) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO trips (trip_date, client_id, route_id, driver_id, truck_id, status, net_amount, notes)
		 VALUES (?,?,?,?,?,?,?,?)`,
		t.TripDate, t.ClientID, t.RouteID, intdb.NullableID(t.DriverID), intdb.NullableID(t.TruckID),
		string(t.Status), t.NetAmount, intdb.NullIfEmpty(t.Notes))
	if err != nil {
		return 0, intdb.TranslateError("trip", err)
	}
	return res.LastInsertId()
}

// HasDuplicateWith reports whether a trip with the same date, client and
// route already mentions needle in its notes.
func (r TripRepository) HasDuplicateWith(ctx context.Context, q Execer, date time.Time, clientID, routeID int64, needle string) (bool, error) {
	if strings.TrimSpace(needle) == "" {
		return false, nil
	}
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips
		 WHERE trip_date=? AND client_id=? AND route_id=? AND LOCATE(?, COALESCE(notes,'')) > 0`,
		date, clientID, routeID, needle).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	db := r.db()
	res, err := db.ExecContext(ctx,
		`UPDATE trips SET trip_date=?, client_id=?, route_id=?, driver_id=?, truck_id=?, status=?, net_amount=?, notes=?
		 WHERE id=?`,
		t.TripDate, t.ClientID, t.RouteID, intdb.NullableID(t.DriverID), intdb.NullableID(t.TruckID),
		string(t.Status), t.NetAmount, intdb.NullIfEmpty(t.Notes), t.ID)
	if err != nil {
		return intdb.TranslateError("trip", err)
	}
	return checkUpdated(ctx, db, res, "trips", "trip", t.ID)
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return intdb.TranslateError("trip", err)
	}
	return checkDeleted(res, "trip")
}

// DeleteMany removes the given ids and returns how many rows existed.
func (r TripRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.db().ExecContext(ctx, `DELETE FROM trips WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, intdb.TranslateError("trip", err)
	}
	return res.RowsAffected()
}

// RevenueLines loads date and amount of every trip inside the period.
func (r TripRepository) RevenueLines(ctx context.Context, p domain.Period) ([]domain.RevenueLine, error) {
	query := `SELECT trip_date, net_amount FROM trips`
	args := []any{}
	if from, to, ok := p.Bounds(); ok {
		query += ` WHERE trip_date>=? AND trip_date<?`
		args = append(args, from, to)
	}

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RevenueLine{}
	for rows.Next() {
		var l domain.RevenueLine
		if err := rows.Scan(&l.Date, &l.Amount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Years lists every year that has a trip or an expense.
func (r TripRepository) Years(ctx context.Context) ([]int, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT YEAR(trip_date) FROM trips
		UNION
		SELECT YEAR(expense_date) FROM expenses`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var y sql.NullInt64
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		if y.Valid {
			out = append(out, int(y.Int64))
		}
	}
	return out, rows.Err()
}
