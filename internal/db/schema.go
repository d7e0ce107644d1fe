package db

import "database/sql"

// EnsureSchema creates the tables this service needs when they do not
// exist yet. The unique indexes are load-bearing: overlapping concurrent
// bookings are serialized by the database, not by application locks.
func EnsureSchema(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(191) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'admin',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS clients (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			full_name VARCHAR(191) NOT NULL,
			email VARCHAR(191) NULL,
			phone_number VARCHAR(64) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_clients_email (email),
			UNIQUE KEY uq_clients_phone (phone_number)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			reservation_number VARCHAR(191) NOT NULL,
			client_id BIGINT NOT NULL,
			date_aller DATETIME NOT NULL,
			flight_number_aller VARCHAR(32) NOT NULL,
			date_retour DATETIME NOT NULL,
			flight_number_retour VARCHAR(32) NOT NULL,
			parking_type VARCHAR(16) NOT NULL,
			cleaning_type VARCHAR(16) NOT NULL,
			with_fuel TINYINT(1) NOT NULL DEFAULT 0,
			is_oversized TINYINT(1) NOT NULL DEFAULT 0,
			car_immatriculation VARCHAR(32) NOT NULL,
			total_price BIGINT NOT NULL,
			status VARCHAR(64) NOT NULL DEFAULT 'pending',
			bon_path VARCHAR(255) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_reservations_number (reservation_number),
			KEY idx_reservations_client (client_id),
			CONSTRAINT fk_reservations_client FOREIGN KEY (client_id) REFERENCES clients(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS email_outbox (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			recipient VARCHAR(191) NOT NULL,
			subject VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			attachment VARCHAR(255) NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			attempts INT NOT NULL DEFAULT 0,
			last_error TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			sent_at DATETIME NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
