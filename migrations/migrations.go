package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, retries int, query string) error {
	_, err := db.Exec(query)
	if err != nil {
		// Retry creating the table
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// AutoMigrateAvailability creates the product_availability table if it does
// not exist.
func AutoMigrateAvailability(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS product_availability (
			product_id VARCHAR(64) PRIMARY KEY,
			is_available BOOLEAN NOT NULL DEFAULT TRUE
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigratePromoCodes creates the promo_codes table if it does not exist.
func AutoMigratePromoCodes(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS promo_codes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(64) UNIQUE NOT NULL,
			discount_percentage DECIMAL(5,2) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			expires_at DATETIME NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateShopSettings creates the shop_settings table and seeds the
// single row.
func AutoMigrateShopSettings(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS shop_settings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			is_open BOOLEAN NOT NULL DEFAULT TRUE
		);
	`
	if err := execWithRetry(db, retries, query); err != nil {
		return err
	}

	seed := `INSERT INTO shop_settings (id, is_open) VALUES (1, TRUE) ON DUPLICATE KEY UPDATE id = id;`
	return execWithRetry(db, retries, seed)
}

// AutoMigrateWorkingHours creates the working_hours table and seeds the
// seven weekday rows, open 09:00–21:00.
func AutoMigrateWorkingHours(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS working_hours (
			id INT AUTO_INCREMENT PRIMARY KEY,
			day_of_week INT NOT NULL UNIQUE,
			is_closed BOOLEAN NOT NULL DEFAULT FALSE,
			opening_time VARCHAR(5) NOT NULL DEFAULT '09:00',
			closing_time VARCHAR(5) NOT NULL DEFAULT '21:00'
		);
	`
	if err := execWithRetry(db, retries, query); err != nil {
		return err
	}

	seed := `
		INSERT INTO working_hours (day_of_week) VALUES (0), (1), (2), (3), (4), (5), (6)
		ON DUPLICATE KEY UPDATE day_of_week = day_of_week;
	`
	return execWithRetry(db, retries, seed)
}

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL,
			fulfillment VARCHAR(16) NOT NULL,
			notes TEXT,
			promo_code VARCHAR(64),
			subtotal DECIMAL(10,2) NOT NULL,
			discount_amount DECIMAL(10,2) NOT NULL,
			final_total DECIMAL(10,2) NOT NULL,
			summary TEXT NOT NULL,
			status VARCHAR(20) NOT NULL,
			idempotency_key VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateOrderLines creates the order_lines table if it does not exist.
func AutoMigrateOrderLines(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_lines (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			kind VARCHAR(16) NOT NULL,
			label VARCHAR(255) NOT NULL,
			total DECIMAL(10,2) NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, retries, query)
}
