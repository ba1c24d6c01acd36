package catalog

import (
	"strconv"
	"strings"
)

// Store is the durable, queryable set of Records. Lookups never fail with
// an error: "not found" and "invalid status" are reported through the bool
// result, and an empty search yields an empty slice. Errors are reserved
// for storage-level failures (writing the snapshot, SQL errors).
type Store interface {
	// Add appends a new record with the next free id and default status,
	// persists, and returns the assigned id.
	Add(title, author string, year int) (int64, error)

	// Remove deletes the record with the given id. It persists only when a
	// record was actually removed.
	Remove(id int64) (bool, error)

	// Search returns, in insertion order, every record whose title or
	// author contains the query (case-insensitive), or whose year equals
	// the query textually.
	Search(query string) ([]Record, error)

	// All returns every record in insertion order.
	All() ([]Record, error)

	// SetStatus updates a record's status. It returns false, without
	// persisting, when the id is unknown or the status does not parse.
	SetStatus(id int64, status string) (bool, error)

	// Close releases the backing resource.
	Close() error
}

// recordMatches implements the search rule shared by both backends: a
// case-insensitive substring match on title or author, or an exact textual
// match on the year. "2020" matches year 2020 but never 2021.
func recordMatches(r Record, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Author), q) ||
		query == strconv.Itoa(r.Year)
}

// nextID yields max(id)+1, or 1 for an empty set. Ids therefore grow
// strictly, so insertion order and id order are the same thing.
func nextID(records []Record) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}
