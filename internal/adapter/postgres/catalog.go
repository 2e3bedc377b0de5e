package postgres

import "strings"

// ObjectKind classifies a structural object in a tenant schema.
type ObjectKind string

// Catalog object kinds, in the order they may legally appear.
const (
	KindType     ObjectKind = "type"
	KindTable    ObjectKind = "table"
	KindIndex    ObjectKind = "index"
	KindFunction ObjectKind = "function"
	KindTrigger  ObjectKind = "trigger"
	KindSeed     ObjectKind = "seed"
	KindGrant    ObjectKind = "grant"
)

// Object is one structural object of a tenant schema. SQL may reference the
// placeholders {schema} and {role}; Render substitutes them. Every statement
// is written to be safe to re-issue, so a retried provisioning run after a
// partial failure never errors on objects that already exist.
type Object struct {
	Kind ObjectKind
	Name string
	SQL  string
}

// Render substitutes the schema and grant role into the object's SQL. Both
// values are validated identifiers ([a-z0-9_]) before they get here.
func (o Object) Render(schema, role string) string {
	s := strings.ReplaceAll(o.SQL, "{schema}", schema)
	return strings.ReplaceAll(s, "{role}", role)
}

// Catalog returns the ordered list of structural objects making up one
// tenant schema. The order is the dependency order: enumerated types first,
// then tables with no foreign keys, then tables referencing them, then
// detail/join tables, then indexes, trigger plumbing, seed rows, and grants.
// The Provisioner walks this list front to back inside one transaction.
func Catalog() []Object {
	return catalog
}

var catalog = []Object{
	// --- Enumerated types ---
	{KindType, "user_role_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.user_role_enum AS ENUM ('ADMIN', 'INQUILINO');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "contract_status_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.contract_status_enum AS ENUM (
				'BORRADOR', 'PENDIENTE', 'FIRMADO', 'ACTIVO',
				'POR_VENCER', 'VENCIDO', 'RENOVADO', 'FINALIZADO',
				'CANCELADO', 'SUSPENDIDO'
			);
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "maintenance_request_type_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.maintenance_request_type_enum AS ENUM ('MAINTENANCE', 'GENERAL');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "maintenance_category_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.maintenance_category_enum AS ENUM (
				'GENERAL', 'ACCESORIOS', 'ELECTRICO', 'CLIMATIZACION',
				'LLAVE_CERRADURA', 'ILUMINACION', 'AFUERA', 'PLOMERIA'
			);
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "permission_to_enter_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.permission_to_enter_enum AS ENUM ('YES', 'NO', 'NOT_APPLICABLE');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "maintenance_status_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.maintenance_status_enum AS ENUM ('NEW', 'IN_PROGRESS', 'COMPLETED', 'DEFERRED', 'CLOSED');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "maintenance_priority_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.maintenance_priority_enum AS ENUM ('LOW', 'NORMAL', 'HIGH');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},
	{KindType, "notification_event_type_enum", `
		DO $$ BEGIN
			CREATE TYPE {schema}.notification_event_type_enum AS ENUM (
				'maintenance.request.created',
				'maintenance.status.changed',
				'maintenance.message.received',
				'maintenance.assigned',
				'maintenance.completed',
				'property.status.changed',
				'property.available',
				'user.registered',
				'user.password.changed'
			);
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$`},

	// --- Tables without foreign keys ---
	{KindTable, "users", `
		CREATE TABLE IF NOT EXISTS {schema}.users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			role {schema}.user_role_enum NOT NULL DEFAULT 'INQUILINO',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{KindTable, "property_types", `
		CREATE TABLE IF NOT EXISTS {schema}.property_types (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{KindTable, "rental_owners", `
		CREATE TABLE IF NOT EXISTS {schema}.rental_owners (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			company_name TEXT,
			is_company BOOLEAN,
			primary_email TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			secondary_email TEXT,
			secondary_phone TEXT,
			notes TEXT DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},

	// --- Tables referencing the above ---
	{KindTable, "property_subtypes", `
		CREATE TABLE IF NOT EXISTS {schema}.property_subtypes (
			id BIGSERIAL PRIMARY KEY,
			property_type_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_property_subtypes_type FOREIGN KEY (property_type_id)
				REFERENCES {schema}.property_types(id)
		)`},
	{KindTable, "properties", `
		CREATE TABLE IF NOT EXISTS {schema}.properties (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			property_type_id BIGINT NOT NULL,
			property_subtype_id BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DISPONIBLE',
			latitude NUMERIC(10,8),
			longitude NUMERIC(11,8),
			images TEXT[] DEFAULT '{}',
			security_deposit_amount NUMERIC(10,2),
			amenities JSONB DEFAULT '[]',
			included_items JSONB DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_properties_type FOREIGN KEY (property_type_id)
				REFERENCES {schema}.property_types(id),
			CONSTRAINT fk_properties_subtype FOREIGN KEY (property_subtype_id)
				REFERENCES {schema}.property_subtypes(id),
			CONSTRAINT chk_properties_status
				CHECK (status IN ('DISPONIBLE', 'OCUPADO', 'MANTENIMIENTO', 'RESERVADO', 'INACTIVO'))
		)`},
	{KindTable, "contracts", `
		CREATE TABLE IF NOT EXISTS {schema}.contracts (
			id BIGSERIAL PRIMARY KEY,
			contract_number TEXT NOT NULL UNIQUE,
			resident_id UUID NOT NULL,
			property_id BIGINT NOT NULL,
			status {schema}.contract_status_enum NOT NULL DEFAULT 'BORRADOR',
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			monthly_rent NUMERIC(10,2) NOT NULL,
			currency TEXT DEFAULT 'BOB',
			payment_day INTEGER DEFAULT 5,
			deposit_amount NUMERIC(10,2) DEFAULT 0,
			late_fee_percentage NUMERIC(10,2) DEFAULT 0,
			grace_days INTEGER DEFAULT 0,
			included_services JSONB DEFAULT '[]',
			special_clauses JSONB DEFAULT '[]',
			auto_renew BOOLEAN DEFAULT false,
			is_signed BOOLEAN DEFAULT false,
			pdf_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_contracts_resident FOREIGN KEY (resident_id)
				REFERENCES {schema}.users(id),
			CONSTRAINT fk_contracts_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id)
		)`},

	// --- Join and detail tables ---
	{KindTable, "property_addresses", `
		CREATE TABLE IF NOT EXISTS {schema}.property_addresses (
			id BIGSERIAL PRIMARY KEY,
			property_id BIGINT NOT NULL,
			address_type TEXT NOT NULL,
			street_address TEXT NOT NULL,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			country TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_property_addresses_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id) ON DELETE CASCADE,
			CONSTRAINT chk_property_addresses_type
				CHECK (address_type IN ('address_1', 'address_2', 'address_3'))
		)`},
	{KindTable, "property_owners", `
		CREATE TABLE IF NOT EXISTS {schema}.property_owners (
			id BIGSERIAL PRIMARY KEY,
			property_id BIGINT NOT NULL,
			rental_owner_id BIGINT NOT NULL,
			ownership_percentage INTEGER NOT NULL DEFAULT 0,
			is_primary BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_property_owners_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id) ON DELETE CASCADE,
			CONSTRAINT fk_property_owners_owner FOREIGN KEY (rental_owner_id)
				REFERENCES {schema}.rental_owners(id),
			CONSTRAINT chk_ownership_percentage
				CHECK (ownership_percentage >= 0 AND ownership_percentage <= 100)
		)`},
	{KindTable, "contract_history", `
		CREATE TABLE IF NOT EXISTS {schema}.contract_history (
			id BIGSERIAL PRIMARY KEY,
			contract_id BIGINT NOT NULL,
			field_modified TEXT NOT NULL,
			old_value TEXT,
			new_value TEXT,
			modified_by UUID NOT NULL,
			reason TEXT,
			change_date TIMESTAMPTZ DEFAULT now(),
			CONSTRAINT fk_history_contract FOREIGN KEY (contract_id)
				REFERENCES {schema}.contracts(id) ON DELETE CASCADE
		)`},
	{KindTable, "maintenance_requests", `
		CREATE TABLE IF NOT EXISTS {schema}.maintenance_requests (
			id BIGSERIAL PRIMARY KEY,
			ticket_number TEXT NOT NULL UNIQUE,
			request_type {schema}.maintenance_request_type_enum NOT NULL DEFAULT 'MAINTENANCE',
			category {schema}.maintenance_category_enum,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			permission_to_enter {schema}.permission_to_enter_enum NOT NULL DEFAULT 'NOT_APPLICABLE',
			has_pets BOOLEAN NOT NULL DEFAULT false,
			entry_notes TEXT,
			status {schema}.maintenance_status_enum NOT NULL DEFAULT 'NEW',
			priority {schema}.maintenance_priority_enum NOT NULL DEFAULT 'NORMAL',
			due_date DATE,
			assigned_to UUID,
			resident_id UUID NOT NULL,
			contract_id BIGINT NOT NULL,
			property_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_maintenance_requests_contract FOREIGN KEY (contract_id)
				REFERENCES {schema}.contracts(id),
			CONSTRAINT fk_maintenance_requests_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id)
		)`},
	{KindTable, "maintenance_messages", `
		CREATE TABLE IF NOT EXISTS {schema}.maintenance_messages (
			id BIGSERIAL PRIMARY KEY,
			maintenance_request_id BIGINT NOT NULL,
			user_id UUID NOT NULL,
			message TEXT NOT NULL,
			send_to_resident BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_maintenance_messages_request FOREIGN KEY (maintenance_request_id)
				REFERENCES {schema}.maintenance_requests(id) ON DELETE CASCADE
		)`},
	{KindTable, "maintenance_attachments", `
		CREATE TABLE IF NOT EXISTS {schema}.maintenance_attachments (
			id BIGSERIAL PRIMARY KEY,
			maintenance_request_id BIGINT,
			message_id BIGINT,
			file_url TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_type TEXT NOT NULL,
			file_size BIGINT NOT NULL,
			uploaded_by UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_maintenance_attachments_request FOREIGN KEY (maintenance_request_id)
				REFERENCES {schema}.maintenance_requests(id) ON DELETE CASCADE,
			CONSTRAINT fk_maintenance_attachments_message FOREIGN KEY (message_id)
				REFERENCES {schema}.maintenance_messages(id) ON DELETE CASCADE
		)`},
	{KindTable, "notifications", `
		CREATE TABLE IF NOT EXISTS {schema}.notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			event_type {schema}.notification_event_type_enum NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			metadata JSONB DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT true,
			is_read BOOLEAN NOT NULL DEFAULT false,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{KindTable, "notification_templates", `
		CREATE TABLE IF NOT EXISTS {schema}.notification_templates (
			id BIGSERIAL PRIMARY KEY,
			event_type {schema}.notification_event_type_enum NOT NULL UNIQUE,
			title_template TEXT NOT NULL,
			message_template TEXT NOT NULL,
			variables TEXT[] DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{KindTable, "payments", `
		CREATE TABLE IF NOT EXISTS {schema}.payments (
			id BIGSERIAL PRIMARY KEY,
			resident_id UUID NOT NULL,
			contract_id BIGINT NOT NULL,
			property_id BIGINT NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			currency TEXT NOT NULL DEFAULT 'BOB',
			payment_type TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			payment_date DATE NOT NULL,
			due_date DATE,
			processed_date TIMESTAMPTZ,
			reference_number TEXT,
			notes TEXT,
			is_partial_payment BOOLEAN DEFAULT false,
			parent_payment_id BIGINT REFERENCES {schema}.payments(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_payments_contract FOREIGN KEY (contract_id)
				REFERENCES {schema}.contracts(id),
			CONSTRAINT fk_payments_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id)
		)`},
	{KindTable, "payment_schedules", `
		CREATE TABLE IF NOT EXISTS {schema}.payment_schedules (
			id BIGSERIAL PRIMARY KEY,
			resident_id UUID NOT NULL,
			contract_id BIGINT NOT NULL,
			property_id BIGINT NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			currency TEXT NOT NULL DEFAULT 'BOB',
			payment_type TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			frequency TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			day_of_month INTEGER CHECK (day_of_month >= 1 AND day_of_month <= 31),
			is_active BOOLEAN DEFAULT true,
			next_payment_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT fk_payment_schedules_contract FOREIGN KEY (contract_id)
				REFERENCES {schema}.contracts(id),
			CONSTRAINT fk_payment_schedules_property FOREIGN KEY (property_id)
				REFERENCES {schema}.properties(id)
		)`},
	{KindTable, "payment_refunds", `
		CREATE TABLE IF NOT EXISTS {schema}.payment_refunds (
			id BIGSERIAL PRIMARY KEY,
			payment_id BIGINT NOT NULL REFERENCES {schema}.payments(id) ON DELETE CASCADE,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			reason TEXT,
			refund_method TEXT,
			refund_date DATE NOT NULL,
			processed_by UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},

	// --- Indexes ---
	{KindIndex, "idx_users_email", `CREATE INDEX IF NOT EXISTS idx_users_email ON {schema}.users (email)`},
	{KindIndex, "idx_properties_type", `CREATE INDEX IF NOT EXISTS idx_properties_type ON {schema}.properties (property_type_id)`},
	{KindIndex, "idx_properties_subtype", `CREATE INDEX IF NOT EXISTS idx_properties_subtype ON {schema}.properties (property_subtype_id)`},
	{KindIndex, "idx_properties_status", `CREATE INDEX IF NOT EXISTS idx_properties_status ON {schema}.properties (status)`},
	{KindIndex, "idx_property_addresses_property", `CREATE INDEX IF NOT EXISTS idx_property_addresses_property ON {schema}.property_addresses (property_id)`},
	{KindIndex, "idx_property_owners_property", `CREATE INDEX IF NOT EXISTS idx_property_owners_property ON {schema}.property_owners (property_id)`},
	{KindIndex, "idx_property_owners_owner", `CREATE INDEX IF NOT EXISTS idx_property_owners_owner ON {schema}.property_owners (rental_owner_id)`},
	{KindIndex, "idx_contracts_resident", `CREATE INDEX IF NOT EXISTS idx_contracts_resident ON {schema}.contracts (resident_id)`},
	{KindIndex, "idx_contracts_property", `CREATE INDEX IF NOT EXISTS idx_contracts_property ON {schema}.contracts (property_id)`},
	{KindIndex, "idx_contracts_status", `CREATE INDEX IF NOT EXISTS idx_contracts_status ON {schema}.contracts (status)`},
	{KindIndex, "idx_history_contract", `CREATE INDEX IF NOT EXISTS idx_history_contract ON {schema}.contract_history (contract_id)`},
	{KindIndex, "idx_maintenance_requests_resident", `CREATE INDEX IF NOT EXISTS idx_maintenance_requests_resident ON {schema}.maintenance_requests (resident_id)`},
	{KindIndex, "idx_maintenance_requests_status", `CREATE INDEX IF NOT EXISTS idx_maintenance_requests_status ON {schema}.maintenance_requests (status)`},
	{KindIndex, "idx_maintenance_requests_priority", `CREATE INDEX IF NOT EXISTS idx_maintenance_requests_priority ON {schema}.maintenance_requests (priority)`},
	{KindIndex, "idx_maintenance_messages_request", `CREATE INDEX IF NOT EXISTS idx_maintenance_messages_request ON {schema}.maintenance_messages (maintenance_request_id)`},
	{KindIndex, "idx_notifications_user", `CREATE INDEX IF NOT EXISTS idx_notifications_user ON {schema}.notifications (user_id)`},
	{KindIndex, "idx_notifications_is_read", `CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON {schema}.notifications (is_read)`},
	{KindIndex, "idx_payments_resident", `CREATE INDEX IF NOT EXISTS idx_payments_resident ON {schema}.payments (resident_id)`},
	{KindIndex, "idx_payments_contract", `CREATE INDEX IF NOT EXISTS idx_payments_contract ON {schema}.payments (contract_id)`},
	{KindIndex, "idx_payments_status", `CREATE INDEX IF NOT EXISTS idx_payments_status ON {schema}.payments (status)`},
	{KindIndex, "idx_payments_date", `CREATE INDEX IF NOT EXISTS idx_payments_date ON {schema}.payments (payment_date)`},
	{KindIndex, "idx_payment_schedules_active", `CREATE INDEX IF NOT EXISTS idx_payment_schedules_active ON {schema}.payment_schedules (is_active)`},
	{KindIndex, "idx_payment_refunds_payment", `CREATE INDEX IF NOT EXISTS idx_payment_refunds_payment ON {schema}.payment_refunds (payment_id)`},

	// --- updated_at trigger plumbing ---
	{KindFunction, "set_updated_at", `
		CREATE OR REPLACE FUNCTION {schema}.set_updated_at()
		RETURNS TRIGGER AS $$
		BEGIN
			NEW.updated_at = now();
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`},
	{KindTrigger, "trg_users_updated_at", `
		CREATE OR REPLACE TRIGGER trg_users_updated_at
			BEFORE UPDATE ON {schema}.users
			FOR EACH ROW EXECUTE FUNCTION {schema}.set_updated_at()`},
	{KindTrigger, "trg_contracts_updated_at", `
		CREATE OR REPLACE TRIGGER trg_contracts_updated_at
			BEFORE UPDATE ON {schema}.contracts
			FOR EACH ROW EXECUTE FUNCTION {schema}.set_updated_at()`},
	{KindTrigger, "trg_payments_updated_at", `
		CREATE OR REPLACE TRIGGER trg_payments_updated_at
			BEFORE UPDATE ON {schema}.payments
			FOR EACH ROW EXECUTE FUNCTION {schema}.set_updated_at()`},
	{KindTrigger, "trg_payment_schedules_updated_at", `
		CREATE OR REPLACE TRIGGER trg_payment_schedules_updated_at
			BEFORE UPDATE ON {schema}.payment_schedules
			FOR EACH ROW EXECUTE FUNCTION {schema}.set_updated_at()`},

	// --- Seed rows, keyed by natural code so re-runs are no-ops ---
	{KindSeed, "seed_property_types", `
		INSERT INTO {schema}.property_types (name, code)
		VALUES
			('Residencial', 'RESIDENTIAL'),
			('Comercial', 'COMMERCIAL')
		ON CONFLICT (code) DO NOTHING`},
	{KindSeed, "seed_property_subtypes_residential", `
		INSERT INTO {schema}.property_subtypes (property_type_id, name, code)
		SELECT pt.id, v.name, v.code
		FROM (VALUES
			('Condominio/Townhouse', 'CONDO_TOWNHOME'),
			('Multifamiliar', 'MULTI_FAMILY'),
			('Unifamiliar', 'SINGLE_FAMILY')
		) AS v(name, code)
		JOIN {schema}.property_types pt ON pt.code = 'RESIDENTIAL'
		ON CONFLICT (code) DO NOTHING`},
	{KindSeed, "seed_property_subtypes_commercial", `
		INSERT INTO {schema}.property_subtypes (property_type_id, name, code)
		SELECT pt.id, v.name, v.code
		FROM (VALUES
			('Industrial', 'INDUSTRIAL'),
			('Oficina', 'OFFICE'),
			('Alquiler', 'RENTAL'),
			('Centro Comercial', 'SHOPPING_CENTER'),
			('Bodega/Deposito', 'STORAGE'),
			('Estacionamiento', 'PARKING_SPACE')
		) AS v(name, code)
		JOIN {schema}.property_types pt ON pt.code = 'COMMERCIAL'
		ON CONFLICT (code) DO NOTHING`},

	// --- Grants for the service's runtime role ---
	{KindGrant, "grant_usage", `GRANT USAGE ON SCHEMA {schema} TO {role}`},
	{KindGrant, "grant_tables", `GRANT ALL PRIVILEGES ON ALL TABLES IN SCHEMA {schema} TO {role}`},
	{KindGrant, "grant_sequences", `GRANT ALL PRIVILEGES ON ALL SEQUENCES IN SCHEMA {schema} TO {role}`},
	{KindGrant, "grant_default_tables", `ALTER DEFAULT PRIVILEGES IN SCHEMA {schema} GRANT ALL ON TABLES TO {role}`},
	{KindGrant, "grant_default_sequences", `ALTER DEFAULT PRIVILEGES IN SCHEMA {schema} GRANT ALL ON SEQUENCES TO {role}`},
}
