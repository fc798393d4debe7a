package repositories

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	intdb "logisticshub/internal/db"
	"logisticshub/internal/domain/models"
)

type TariffRepository struct {
	DB *sql.DB
}

func (r TariffRepository) db() *sql.DB { return dbOr(r.DB) }

func (r TariffRepository) List(ctx context.Context) ([]models.TariffView, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT t.client_id, t.route_id, t.agreed_price, t.updated_at,
		       c.name, r.origin, r.destination
		FROM tariffs t
		JOIN clients c ON c.id = t.client_id
		JOIN routes r ON r.id = t.route_id
		ORDER BY c.name ASC, r.origin ASC, r.destination ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TariffView{}
	for rows.Next() {
		var v models.TariffView
		if err := rows.Scan(&v.ClientID, &v.RouteID, &v.AgreedPrice, &v.UpdatedAt,
			&v.ClientName, &v.Origin, &v.Destination); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Upsert sets the agreed price for (clientID, routeID), replacing any previous one.
func (r TariffRepository) Upsert(ctx context.Context, clientID, routeID int64, price decimal.Decimal) error {
	_, err := r.db().ExecContext(ctx,
		`INSERT INTO tariffs (client_id, route_id, agreed_price) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE agreed_price=VALUES(agreed_price)`,
		clientID, routeID, price)
	return intdb.TranslateError("tariff", err)
}

func (r TariffRepository) Delete(ctx context.Context, clientID, routeID int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM tariffs WHERE client_id=? AND route_id=?`, clientID, routeID)
	if err != nil {
		return intdb.TranslateError("tariff", err)
	}
	return checkDeleted(res, "tariff")
}
