// Package memory is an in-process ListingWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	ports "vertragsassistent/internal/sheets"
)

type Store struct {
	mu            sync.Mutex
	rows          []ports.ListingRow
	totalPerMonth string
	totalPerYear  string
	writes        int
}

var _ ports.ListingWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) ReplaceListing(_ context.Context, rows []ports.ListingRow, totalPerMonth, totalPerYear string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]ports.ListingRow(nil), rows...)
	s.totalPerMonth = totalPerMonth
	s.totalPerYear = totalPerYear
	s.writes++
	return nil
}

// Listing returns the last written listing.
func (s *Store) Listing() ([]ports.ListingRow, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.ListingRow(nil), s.rows...), s.totalPerMonth, s.totalPerYear
}

// Writes returns how many times the listing was replaced.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
