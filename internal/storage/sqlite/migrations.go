package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Orders and extras carry
// ON DELETE CASCADE so deleting a receipt removes its children.
const schema = `
CREATE TABLE IF NOT EXISTS receipts (
    id TEXT PRIMARY KEY,
    folder_id TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    translated_name TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    total REAL NOT NULL DEFAULT 0,
    tax REAL NOT NULL DEFAULT 0,
    discount REAL NOT NULL DEFAULT 0,
    tip REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    receipt_id TEXT NOT NULL,
    name TEXT NOT NULL,
    translated_name TEXT NOT NULL DEFAULT '',
    quantity INTEGER NOT NULL,
    price REAL NOT NULL,
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS extra_charges (
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (receipt_id, position),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_orders_receipt_id ON orders(receipt_id);
CREATE INDEX IF NOT EXISTS idx_receipts_folder_id ON receipts(folder_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
