package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationNoTxContext(upInitMasterData, downInitMasterData)
}

func upInitMasterData(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(160) NOT NULL,
			tax_id VARCHAR(32) NULL,
			contact VARCHAR(160) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		// origin/destination are stored uppercased, the unique key makes
		// route resolution a single upsert.
		`CREATE TABLE IF NOT EXISTS routes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			origin VARCHAR(120) NOT NULL,
			destination VARCHAR(120) NOT NULL,
			distance_km INT NOT NULL DEFAULT 0,
			suggested_price DECIMAL(14,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_routes_origin_destination (origin, destination)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS drivers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(160) NOT NULL,
			tax_id VARCHAR(32) NULL,
			license_class VARCHAR(16) NULL,
			active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS trucks (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			plate VARCHAR(16) NOT NULL,
			make VARCHAR(60) NULL,
			model VARCHAR(60) NULL,
			year INT NOT NULL DEFAULT 0,
			expected_km_per_liter DECIMAL(6,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_trucks_plate (plate)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS tariffs (
			client_id BIGINT NOT NULL,
			route_id BIGINT NOT NULL,
			agreed_price DECIMAL(14,2) NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (client_id, route_id),
			CONSTRAINT fk_tariffs_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE RESTRICT,
			CONSTRAINT fk_tariffs_route FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE RESTRICT
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	return execAll(ctx, db, stmts)
}

func downInitMasterData(ctx context.Context, db *sql.DB) error {
	return execAll(ctx, db, []string{
		`DROP TABLE IF EXISTS tariffs`,
		`DROP TABLE IF EXISTS trucks`,
		`DROP TABLE IF EXISTS drivers`,
		`DROP TABLE IF EXISTS routes`,
		`DROP TABLE IF EXISTS clients`,
	})
}

func execAll(ctx context.Context, db *sql.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
