package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationNoTxContext(upTripsExpenses, downTripsExpenses)
}

func upTripsExpenses(ctx context.Context, db *sql.DB) error {
	return execAll(ctx, db, []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_date DATE NOT NULL,
			client_id BIGINT NOT NULL,
			route_id BIGINT NOT NULL,
			driver_id BIGINT NULL,
			truck_id BIGINT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'Completed',
			net_amount DECIMAL(14,2) NOT NULL DEFAULT 0,
			notes TEXT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_trips_dedup (trip_date, client_id, route_id),
			CONSTRAINT fk_trips_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE RESTRICT,
			CONSTRAINT fk_trips_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE RESTRICT,
			CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE RESTRICT,
			CONSTRAINT fk_trips_truck FOREIGN KEY (truck_id) REFERENCES trucks(id) ON DELETE RESTRICT
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			expense_date DATE NOT NULL,
			category VARCHAR(60) NOT NULL,
			description VARCHAR(255) NOT NULL,
			amount DECIMAL(14,2) NOT NULL,
			supplier VARCHAR(160) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_expenses_date (expense_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	})
}

func downTripsExpenses(ctx context.Context, db *sql.DB) error {
	return execAll(ctx, db, []string{
		`DROP TABLE IF EXISTS expenses`,
		`DROP TABLE IF EXISTS trips`,
	})
}
