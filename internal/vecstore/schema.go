package vecstore

import "fmt"

// IndexVersion tags stored rows with the indexing logic that produced them.
// Bump it to force a full reindex on the next indexing pass.
const IndexVersion = 1

const (
	vectorTable = "note_vectors"
	vecTable    = "vec_notes"
)

// schemaSQL renders the table DDL for the given embedding dimensionality.
// The vec0 virtual table holds one embedding per note_vectors row id.
func schemaSQL(dims int) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	note_id       TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	folder        TEXT NOT NULL DEFAULT '',
	content       TEXT NOT NULL DEFAULT '',
	created_ts    REAL NOT NULL DEFAULT 0,
	modified_ts   REAL NOT NULL DEFAULT 0,
	indexed_at    REAL NOT NULL DEFAULT 0,
	index_version INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_folder ON %[1]s(folder);

CREATE VIRTUAL TABLE IF NOT EXISTS %[2]s USING vec0(
	note_rowid INTEGER PRIMARY KEY,
	embedding  FLOAT[%[3]d]
);
`, vectorTable, vecTable, dims)
}
