package catalog

import "fmt"

// Status is the availability flag of a record. Only the two canonical
// values below are ever persisted or displayed.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Legacy catalogs written by the previous tool used localized labels.
// ParseStatus still accepts them so old files keep loading.
const (
	legacyAvailable  = "в наличии"
	legacyCheckedOut = "выдана"
)

// ParseStatus normalizes a user- or file-supplied status string to one of
// the canonical values. It returns an error for anything else.
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusAvailable), legacyAvailable:
		return StatusAvailable, nil
	case string(StatusCheckedOut), legacyCheckedOut:
		return StatusCheckedOut, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the two canonical values.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusCheckedOut
}

// Record represents one catalog entry. The id is assigned by the store and
// never changes afterwards; there is no edit operation.
type Record struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}
