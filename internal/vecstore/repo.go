package vecstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

// NoteRow is the input for a point upsert: a fully resolved note as
// reported by the external source.
type NoteRow struct {
	NoteID     string
	Name       string
	Folder     string
	Body       string
	CreatedTS  float64
	ModifiedTS float64
}

// IndexEntry records when a note was last indexed and with which logic
// version. The zero value means "never indexed".
type IndexEntry struct {
	IndexedAt float64
	Version   int
}

// SearchResult is one similarity hit. Distance is the store's native
// metric; lower is closer.
type SearchResult struct {
	Name     string
	Folder   string
	NoteID   string
	Distance float64
}

// IndexMap returns note_id → IndexEntry for every stored row, restricted to
// one folder when folder is non-empty. Missing or malformed stored values
// default to the zero entry rather than failing the whole map.
func (s *Store) IndexMap(folder string) (map[string]IndexEntry, error) {
	query := `SELECT note_id, indexed_at, index_version FROM ` + vectorTable
	if folder != "" {
		query += ` WHERE ` + folderFilter(folder)
	}

	rows, err := s.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("vecstore: index map: %w", err)
	}
	defer rows.Close()

	out := make(map[string]IndexEntry)
	for rows.Next() {
		var noteID string
		var indexedAt, version any
		if err := rows.Scan(&noteID, &indexedAt, &version); err != nil {
			return nil, err
		}
		if noteID == "" {
			continue
		}
		out[noteID] = IndexEntry{
			IndexedAt: coerceFloat(indexedAt),
			Version:   coerceInt(version),
		}
	}
	return out, rows.Err()
}

// Upsert embeds the note content and replaces any stored row for the same
// note_id within one transaction. Deleting a row that never existed is not
// an error; after a successful upsert exactly one row carries the note_id.
func (s *Store) Upsert(ctx context.Context, n NoteRow) error {
	content := strings.TrimSpace(n.Name + "\n\n" + n.Body)

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("vecstore: embed note %s: %w", n.NoteID, err)
	}
	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return fmt.Errorf("vecstore: serialize embedding: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vecstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	// Delete-then-insert; absence of a prior row is fine.
	_, _ = tx.Exec(`DELETE FROM `+vecTable+` WHERE note_rowid IN (SELECT id FROM `+vectorTable+` WHERE note_id = ?)`, n.NoteID)
	_, _ = tx.Exec(`DELETE FROM `+vectorTable+` WHERE note_id = ?`, n.NoteID)

	res, err := tx.Exec(`
		INSERT INTO `+vectorTable+` (note_id, name, folder, content, created_ts, modified_ts, indexed_at, index_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.NoteID, n.Name, n.Folder, content, n.CreatedTS, n.ModifiedTS, nowUnix(), IndexVersion)
	if err != nil {
		return fmt.Errorf("vecstore: insert note row: %w", err)
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("vecstore: row id: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO `+vecTable+` (note_rowid, embedding) VALUES (?, ?)`, rowID, blob); err != nil {
		return fmt.Errorf("vecstore: insert embedding: %w", err)
	}

	return tx.Commit()
}

// Search embeds the query and returns the nearest stored notes in the
// store's own ranking order. A non-empty folder restricts hits to rows
// whose folder matches exactly.
func (s *Store) Search(ctx context.Context, query string, limit int, folder string) ([]SearchResult, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vecstore: embed query: %w", err)
	}
	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, fmt.Errorf("vecstore: serialize query: %w", err)
	}

	// vec0 needs the k constraint inside its own query; folder filtering
	// happens afterwards over the KNN candidates.
	q := `
		SELECT n.name, n.folder, n.note_id, v.distance
		FROM (
			SELECT note_rowid, distance
			FROM ` + vecTable + `
			WHERE embedding MATCH ? AND k = ?
		) v
		JOIN ` + vectorTable + ` n ON n.id = v.note_rowid`
	if folder != "" {
		q += ` WHERE n.` + folderFilter(folder)
	}
	q += ` ORDER BY v.distance ASC LIMIT ?`

	rows, err := s.conn.QueryContext(ctx, q, blob, limit, limit)
	if err != nil {
		return nil, fmt.Errorf("vecstore: search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var distance sql.NullFloat64
		if err := rows.Scan(&r.Name, &r.Folder, &r.NoteID, &distance); err != nil {
			return nil, err
		}
		if distance.Valid {
			r.Distance = distance.Float64
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// folderFilter renders an exact-match filter clause on the folder column.
// Values are inlined into the expression, so embedded single quotes are
// doubled per the store's filter syntax.
func folderFilter(folder string) string {
	return "folder = '" + escapeFilterValue(folder) + "'"
}

func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// coerceFloat and coerceInt decode loosely typed column values, defaulting
// to zero for NULL or malformed data.
func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case float64:
		return int(x)
	case []byte:
		n, err := strconv.Atoi(string(x))
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
