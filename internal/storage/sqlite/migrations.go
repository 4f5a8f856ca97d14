package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// position columns preserve insertion order of people, items and assignments.
const schema = `
CREATE TABLE IF NOT EXISTS receipts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    tax REAL NOT NULL,
    tip REAL NOT NULL,
    split_mode TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    seq INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS people (
    id TEXT NOT NULL,
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    paid INTEGER NOT NULL,
    PRIMARY KEY (receipt_id, id),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT NOT NULL,
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    PRIMARY KEY (receipt_id, id),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_responsible (
    receipt_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (receipt_id, item_id, person_id),
    FOREIGN KEY (receipt_id, item_id) REFERENCES items(receipt_id, id) ON DELETE CASCADE,
    FOREIGN KEY (receipt_id, person_id) REFERENCES people(receipt_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_people_receipt_id ON people(receipt_id);
CREATE INDEX IF NOT EXISTS idx_items_receipt_id ON items(receipt_id);
CREATE INDEX IF NOT EXISTS idx_item_responsible_item ON item_responsible(receipt_id, item_id);
CREATE INDEX IF NOT EXISTS idx_receipts_seq ON receipts(seq);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
