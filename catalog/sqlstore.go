package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLStore is the SQLite backend for catalogs that outgrow a JSON snapshot.
// It exposes exactly the same operation semantics as FileStore, including
// the max+1 id rule.
type SQLStore struct {
	db     *sql.DB
	logger *zap.Logger

	addRecordStmt *sql.Stmt
}

// NewSQLStore opens (or creates) the SQLite database at dbPath, applies
// schema migrations, and prepares common statements.
func NewSQLStore(dbPath string, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLStore{db: db, logger: logger}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases prepared statements and closes the DB.
func (s *SQLStore) Close() error {
	if s.addRecordStmt != nil {
		s.addRecordStmt.Close()
	}
	return s.db.Close()
}

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		// Id is assigned by the application (max+1), never AUTOINCREMENT,
		// so both backends hand out identical ids.
		`CREATE TABLE IF NOT EXISTS records (
            id INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            year INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'available'
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLStore) prepareStatements() error {
	var err error
	if s.addRecordStmt, err = s.db.Prepare(`INSERT INTO records(id,title,author,year,status) VALUES(?,?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// Add computes the next id and inserts in one transaction.
func (s *SQLStore) Add(title, author string, year int) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(id),0)+1 FROM records`).Scan(&id); err != nil {
		return 0, err
	}
	if _, err := tx.Stmt(s.addRecordStmt).Exec(id, title, author, year, string(StatusAvailable)); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLStore) Remove(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM records WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Search scans all rows and applies recordMatches in Go, so both backends
// share the exact same matching rule. The catalog is linear-scan scale.
func (s *SQLStore) Search(query string) ([]Record, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	results := []Record{}
	for _, r := range all {
		if recordMatches(r, query) {
			results = append(results, r)
		}
	}
	return results, nil
}

// All returns every record ordered by id, which equals insertion order
// given the id rule.
func (s *SQLStore) All() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id,title,author,year,status FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Author, &r.Year, &r.Status); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// restore replaces the full contents with the given snapshot in one
// transaction, keeping the original ids. Used for backend migration.
func (s *SQLStore) restore(records []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	stmt := tx.Stmt(s.addRecordStmt)
	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.Title, r.Author, r.Year, string(r.Status)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) SetStatus(id int64, status string) (bool, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return false, nil
	}
	res, err := s.db.Exec(`UPDATE records SET status=? WHERE id=?`, string(parsed), id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
