package catalog

import (
	"fmt"

	"go.uber.org/zap"
)

// Manager is a thin façade over a Store, keeping CLI code simple. It logs
// mutations; read paths stay quiet.
type Manager struct {
	store  Store
	logger *zap.Logger
}

// NewManager wraps an already-constructed store.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Close closes the underlying store.
func (m *Manager) Close() error { return m.store.Close() }

// ------------------ Record operations ------------------

func (m *Manager) Add(title, author string, year int) (int64, error) {
	id, err := m.store.Add(title, author, year)
	if err != nil {
		return 0, err
	}
	m.logger.Info("record added", zap.Int64("id", id), zap.String("title", title))
	return id, nil
}

func (m *Manager) Remove(id int64) (bool, error) {
	removed, err := m.store.Remove(id)
	if err != nil {
		return false, err
	}
	if removed {
		m.logger.Info("record removed", zap.Int64("id", id))
	}
	return removed, nil
}

func (m *Manager) Search(query string) ([]Record, error) { return m.store.Search(query) }
func (m *Manager) All() ([]Record, error)                { return m.store.All() }

func (m *Manager) SetStatus(id int64, status string) (bool, error) {
	changed, err := m.store.SetStatus(id, status)
	if err != nil {
		return false, err
	}
	if changed {
		m.logger.Info("record status changed", zap.Int64("id", id), zap.String("status", status))
	}
	return changed, nil
}

// ------------------ Bulk helpers ------------------

// SeedRecord is the caller-supplied part of a record for bulk imports; ids
// and statuses are assigned by the store.
type SeedRecord struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// ImportRecords adds each seed in order and reports how many were added
// before the first failure.
func (m *Manager) ImportRecords(seeds []SeedRecord) (int, error) {
	for i, seed := range seeds {
		if _, err := m.Add(seed.Title, seed.Author, seed.Year); err != nil {
			return i, fmt.Errorf("import %q: %w", seed.Title, err)
		}
	}
	return len(seeds), nil
}

// restorer is satisfied by both backends; it lets a migration keep the
// original ids instead of reassigning them through Add.
type restorer interface {
	restore([]Record) error
}

// CopyTo replaces dst's contents with a snapshot of this catalog,
// preserving ids, statuses, and order. Returns the number of records
// copied.
func (m *Manager) CopyTo(dst Store) (int, error) {
	records, err := m.store.All()
	if err != nil {
		return 0, err
	}
	r, ok := dst.(restorer)
	if !ok {
		return 0, fmt.Errorf("destination store %T does not support migration", dst)
	}
	if err := r.restore(records); err != nil {
		return 0, err
	}
	m.logger.Info("catalog migrated", zap.Int("records", len(records)))
	return len(records), nil
}

// ------------------ Utilities ------------------

// FormatRecord formats a record for list output.
func FormatRecord(r Record) string {
	return fmt.Sprintf("%-5d %-35s %-25s %-6d %-12s", r.ID, r.Title, r.Author, r.Year, r.Status)
}
