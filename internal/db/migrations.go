package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(255),
		phone VARCHAR(15) NOT NULL UNIQUE,
		role VARCHAR(16) NOT NULL DEFAULT 'CLIENT',
		first_name VARCHAR(150),
		last_name VARCHAR(150),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);`,
	`CREATE TABLE IF NOT EXISTS payment_methods (
		code VARCHAR(50) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`INSERT INTO payment_methods (code, name) VALUES
		('CASH', 'Cash'),
		('CARD', 'Bank card'),
		('TRANSFER', 'Bank transfer')
	ON CONFLICT (code) DO NOTHING;`,
	`CREATE TABLE IF NOT EXISTS payment_statuses (
		code VARCHAR(50) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`INSERT INTO payment_statuses (code, name) VALUES
		('PENDING', 'Pending'),
		('PROCESSING', 'Processing'),
		('COMPLETED', 'Completed'),
		('FAILED', 'Failed'),
		('REFUNDED', 'Refunded')
	ON CONFLICT (code) DO NOTHING;`,
	`CREATE TABLE IF NOT EXISTS notification_types (
		code VARCHAR(50) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`INSERT INTO notification_types (code, name) VALUES
		('ORDER_CREATED', 'Order created'),
		('ORDER_CONFIRMED', 'Order confirmed'),
		('ORDER_ASSIGNED', 'Truck assigned'),
		('ORDER_IN_PROGRESS', 'Order in progress'),
		('ORDER_COMPLETED', 'Order completed'),
		('ORDER_CANCELLED', 'Order cancelled'),
		('PAYMENT', 'Payment'),
		('SUPPORT', 'Support'),
		('SYSTEM', 'System')
	ON CONFLICT (code) DO NOTHING;`,
	`CREATE TABLE IF NOT EXISTS vehicle_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT,
		max_weight DOUBLE PRECISION NOT NULL,
		base_price DECIMAL(10,2) NOT NULL,
		per_km_rate DECIMAL(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS client_vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		year INT NOT NULL,
		color VARCHAR(50),
		license_plate VARCHAR(20) NOT NULL UNIQUE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_client_vehicles_owner_id ON client_vehicles (owner_id);`,
	`CREATE TABLE IF NOT EXISTS tow_trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		license_plate VARCHAR(20) NOT NULL UNIQUE,
		model VARCHAR(100) NOT NULL,
		capacity DOUBLE PRECISION NOT NULL,
		driver_id UUID REFERENCES users(id) ON DELETE SET NULL,
		status VARCHAR(15) NOT NULL DEFAULT 'AVAILABLE',
		current_lat DOUBLE PRECISION,
		current_lon DOUBLE PRECISION,
		location_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_tow_trucks_status ON tow_trucks (status);`,
	`CREATE INDEX IF NOT EXISTS idx_tow_trucks_driver_id ON tow_trucks (driver_id);`,
	`CREATE TABLE IF NOT EXISTS tow_truck_vehicle_types (
		tow_truck_id UUID NOT NULL REFERENCES tow_trucks(id) ON DELETE CASCADE,
		vehicle_type_id UUID NOT NULL REFERENCES vehicle_types(id) ON DELETE CASCADE,
		PRIMARY KEY (tow_truck_id, vehicle_type_id)
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vehicle_id UUID REFERENCES client_vehicles(id) ON DELETE SET NULL,
		vehicle_type_id UUID NOT NULL REFERENCES vehicle_types(id) ON DELETE RESTRICT,
		tow_truck_id UUID REFERENCES tow_trucks(id) ON DELETE SET NULL,
		pickup_address TEXT NOT NULL,
		pickup_latitude DOUBLE PRECISION NOT NULL,
		pickup_longitude DOUBLE PRECISION NOT NULL,
		delivery_address TEXT NOT NULL,
		delivery_latitude DOUBLE PRECISION NOT NULL,
		delivery_longitude DOUBLE PRECISION NOT NULL,
		description TEXT,
		priority VARCHAR(10) NOT NULL DEFAULT 'NORMAL',
		status VARCHAR(15) NOT NULL DEFAULT 'PENDING',
		estimated_price DECIMAL(10,2),
		final_price DECIMAL(10,2),
		scheduled_time TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_tow_truck_id ON orders (tow_truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at);`,
	`CREATE TABLE IF NOT EXISTS order_status_history (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		old_status VARCHAR(15) NOT NULL,
		new_status VARCHAR(15) NOT NULL,
		changed_by UUID REFERENCES users(id) ON DELETE SET NULL,
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_status_history_order_id ON order_status_history (order_id);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		amount DECIMAL(10,2) NOT NULL,
		method VARCHAR(50) NOT NULL REFERENCES payment_methods(code),
		status VARCHAR(50) NOT NULL REFERENCES payment_statuses(code),
		transaction_id VARCHAR(100),
		paid_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments (order_id);`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		driver_rating INT NOT NULL,
		service_rating INT NOT NULL,
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_ratings_order_id ON ratings (order_id);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(50) NOT NULL REFERENCES notification_types(code),
		title VARCHAR(200) NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		related_order_id UUID REFERENCES orders(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications (user_id, is_read);`,
	`CREATE TABLE IF NOT EXISTS support_tickets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(15) NOT NULL DEFAULT 'OPEN',
		priority VARCHAR(10) NOT NULL DEFAULT 'NORMAL',
		related_order_id UUID REFERENCES orders(id) ON DELETE SET NULL,
		assigned_to_id UUID REFERENCES users(id) ON DELETE SET NULL,
		closed_at TIMESTAMPTZ,
		last_message_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_support_tickets_author_id ON support_tickets (author_id);`,
	`CREATE INDEX IF NOT EXISTS idx_support_tickets_status ON support_tickets (status);`,
	`CREATE TABLE IF NOT EXISTS support_messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		ticket_id UUID NOT NULL REFERENCES support_tickets(id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		body TEXT NOT NULL,
		is_internal BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_support_messages_ticket_id ON support_messages (ticket_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_orders_updated_at') THEN
			CREATE TRIGGER trg_orders_updated_at
				BEFORE UPDATE ON orders
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_tow_trucks_updated_at') THEN
			CREATE TRIGGER trg_tow_trucks_updated_at
				BEFORE UPDATE ON tow_trucks
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_support_tickets_updated_at') THEN
			CREATE TRIGGER trg_support_tickets_updated_at
				BEFORE UPDATE ON support_tickets
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
