package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "travelportal/internal/config"
)

func dbOr(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// Schema dibuat berurutan oleh perintah migrate. Semua statement idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		email VARCHAR(190) NOT NULL UNIQUE,
		phone VARCHAR(32) NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		avatar_url VARCHAR(500) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS packages (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'regular',
		duration_days INT NOT NULL DEFAULT 9,
		departure_date DATE NULL,
		departure_city VARCHAR(100) NULL,
		airline VARCHAR(100) NULL,
		makkah_hotel VARCHAR(150) NULL,
		madinah_hotel VARCHAR(150) NULL,
		price BIGINT NOT NULL DEFAULT 0,
		seats INT NOT NULL DEFAULT 0,
		description TEXT NULL,
		image_url VARCHAR(500) NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		city VARCHAR(100) NOT NULL,
		stars INT NOT NULL DEFAULT 3,
		price_per_night BIGINT NOT NULL DEFAULT 0,
		address VARCHAR(300) NULL,
		distance_to_haram VARCHAR(50) NULL,
		description TEXT NULL,
		image_url VARCHAR(500) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS additional_services (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		name VARCHAR(150) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		description TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS form_options (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		category VARCHAR(50) NOT NULL,
		value VARCHAR(100) NOT NULL,
		label VARCHAR(150) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_form_option (category, value)
	)`,
	`CREATE TABLE IF NOT EXISTS package_bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(32) NOT NULL UNIQUE,
		user_id BIGINT NULL,
		package_id BIGINT NOT NULL,
		package_name VARCHAR(200) NOT NULL,
		contact_name VARCHAR(150) NOT NULL,
		email VARCHAR(190) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		adults INT NOT NULL,
		children INT NOT NULL DEFAULT 0,
		infants INT NOT NULL DEFAULT 0,
		rooms INT NOT NULL DEFAULT 1,
		traveler_details JSON NOT NULL,
		payment_method VARCHAR(50) NOT NULL,
		services JSON NOT NULL,
		notes TEXT NULL,
		total_amount BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_package_booking_dup (package_id, email)
	)`,
	`CREATE TABLE IF NOT EXISTS hotel_bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(32) NOT NULL UNIQUE,
		user_id BIGINT NULL,
		hotel_id BIGINT NOT NULL,
		hotel_name VARCHAR(200) NOT NULL,
		contact_name VARCHAR(150) NOT NULL,
		email VARCHAR(190) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		check_in DATE NOT NULL,
		check_out DATE NOT NULL,
		rooms INT NOT NULL DEFAULT 1,
		adults INT NOT NULL,
		children INT NOT NULL DEFAULT 0,
		infants INT NOT NULL DEFAULT 0,
		traveler_details JSON NOT NULL,
		payment_method VARCHAR(50) NOT NULL,
		services JSON NOT NULL,
		special_requests TEXT NULL,
		total_amount BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_hotel_booking_dup (hotel_id, email, check_in)
	)`,
	`CREATE TABLE IF NOT EXISTS custom_umrah_requests (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(32) NOT NULL UNIQUE,
		user_id BIGINT NULL,
		contact_name VARCHAR(150) NOT NULL,
		email VARCHAR(190) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		departure_city VARCHAR(100) NOT NULL,
		departure_date DATE NOT NULL,
		return_date DATE NOT NULL,
		hotels JSON NOT NULL,
		adults INT NOT NULL,
		children INT NOT NULL DEFAULT 0,
		infants INT NOT NULL DEFAULT 0,
		traveler_details JSON NOT NULL,
		services JSON NOT NULL,
		budget BIGINT NOT NULL DEFAULT 0,
		notes TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payment_validations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_kind VARCHAR(20) NOT NULL,
		booking_id BIGINT NOT NULL,
		payment_method VARCHAR(50) NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		proof_url VARCHAR(500) NULL,
		notes TEXT NULL,
		validated_by BIGINT NOT NULL,
		validated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_payment_booking (booking_kind, booking_id)
	)`,
}

// Seed mengisi opsi form dasar supaya wizard bisa dipakai sebelum admin mengisi katalog.
var Seed = []string{
	`INSERT IGNORE INTO form_options (category, value, label, sort_order) VALUES
		('payment_method', 'bank_transfer', 'Bank Transfer', 1),
		('payment_method', 'credit_card', 'Credit Card', 2),
		('payment_method', 'installment', 'Installment', 3),
		('gender', 'male', 'Male', 1),
		('gender', 'female', 'Female', 2),
		('nationality', 'ID', 'Indonesia', 1),
		('nationality', 'MY', 'Malaysia', 2),
		('nationality', 'SG', 'Singapore', 3),
		('departure_city', 'CGK', 'Jakarta', 1),
		('departure_city', 'SUB', 'Surabaya', 2),
		('departure_city', 'KNO', 'Medan', 3)`,
	`INSERT IGNORE INTO additional_services (code, name, price, description) VALUES
		('visa', 'Visa Handling', 2500000, 'Umrah visa processing'),
		('transfer', 'Airport Transfer', 750000, 'Jeddah or Madinah airport pickup'),
		('ziarah', 'Ziarah Tour', 1200000, 'Guided Makkah and Madinah ziarah'),
		('insurance', 'Travel Insurance', 450000, 'Medical and trip cover')`,
}

// Migrate menjalankan Schema lalu Seed.
func Migrate(ctx context.Context, db *sql.DB) error {
	db = dbOr(db)
	if db == nil {
		return fmt.Errorf("db belum terhubung")
	}
	for i, stmt := range append(append([]string{}, Schema...), Seed...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
