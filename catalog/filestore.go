package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore keeps the whole record set in memory and mirrors it to a single
// JSON snapshot file after every mutation. It is the default backend and is
// strictly single-user: no locking, no atomic rename, one full rewrite per
// mutation.
type FileStore struct {
	path    string
	records []Record
	logger  *zap.Logger
}

// NewFileStore loads the snapshot at path if it exists. A missing file
// starts an empty catalog; so does a malformed one — the file is user data
// from a previous run and unreadable content is recovered silently, not
// surfaced as an error.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Ensure directory exists so first-run saves succeed.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}

	fs := &FileStore{path: path, logger: logger}
	fs.load()
	return fs, nil
}

// load populates the in-memory set from the snapshot. Every failure mode
// (absent file, bad JSON, records violating the id/status invariants)
// leaves the store empty.
func (fs *FileStore) load() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.logger.Warn("catalog file unreadable, starting empty",
				zap.String("path", fs.path), zap.Error(err))
		}
		return
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		fs.logger.Warn("catalog file malformed, starting empty",
			zap.String("path", fs.path), zap.Error(err))
		return
	}

	seen := make(map[int64]bool, len(records))
	for i, r := range records {
		status, err := ParseStatus(string(r.Status))
		if err != nil || r.ID <= 0 || seen[r.ID] {
			fs.logger.Warn("catalog file violates record invariants, starting empty",
				zap.String("path", fs.path), zap.Int64("id", r.ID))
			return
		}
		seen[r.ID] = true
		records[i].Status = status
	}
	fs.records = records
}

// save rewrites the whole snapshot. Write failures are the one error class
// this backend propagates.
func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func (fs *FileStore) Add(title, author string, year int) (int64, error) {
	r := Record{
		ID:     nextID(fs.records),
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}
	fs.records = append(fs.records, r)
	if err := fs.save(); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (fs *FileStore) Remove(id int64) (bool, error) {
	kept := fs.records[:0:0]
	for _, r := range fs.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(fs.records) {
		return false, nil
	}
	fs.records = kept
	if err := fs.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (fs *FileStore) Search(query string) ([]Record, error) {
	results := []Record{}
	for _, r := range fs.records {
		if recordMatches(r, query) {
			results = append(results, r)
		}
	}
	return results, nil
}

func (fs *FileStore) All() ([]Record, error) {
	out := make([]Record, len(fs.records))
	copy(out, fs.records)
	return out, nil
}

func (fs *FileStore) SetStatus(id int64, status string) (bool, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return false, nil
	}
	for i := range fs.records {
		if fs.records[i].ID == id {
			fs.records[i].Status = parsed
			if err := fs.save(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// restore replaces the full contents with the given snapshot and persists
// once. Used for backend migration.
func (fs *FileStore) restore(records []Record) error {
	fs.records = append([]Record(nil), records...)
	return fs.save()
}

// Close is a no-op: the file is opened and closed within each save.
func (fs *FileStore) Close() error { return nil }
