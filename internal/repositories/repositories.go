package repositories

import "errors"

// ErrNotFound is returned when a well-formed identifier matches no
// stored document. Infrastructure failures are returned as distinct,
// wrapped errors; callers separate the two with errors.Is.
var ErrNotFound = errors.New("not found")

// ListOptions controls list queries. A Limit of 0 means unbounded.
// Sort applies to the insertion-order identifier: "desc" for descending,
// anything else for ascending.
type ListOptions struct {
	Limit int64
	Sort  string
}

func (o ListOptions) sortDirection() int {
	if o.Sort == "desc" {
		return -1
	}
	return 1
}
