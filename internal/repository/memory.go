package repository

import (
	"strings"

	"food-facility-api/internal/models"
)

// Predicate reports whether a facility should be kept by a filter.
type Predicate func(*models.Facility) bool

// ApplicantIs keeps facilities whose applicant matches exactly, byte for byte.
func ApplicantIs(applicant string) Predicate {
	return func(f *models.Facility) bool { return f.Applicant == applicant }
}

// StatusIs keeps facilities with exactly the given permit status.
func StatusIs(status string) Predicate {
	return func(f *models.Facility) bool { return f.Status == status }
}

// AddressContains keeps facilities whose address contains street.
// Matching is case-sensitive.
func AddressContains(street string) Predicate {
	return func(f *models.Facility) bool { return strings.Contains(f.Address, street) }
}

// GeohashHasPrefix keeps facilities inside the geohash cell named by prefix.
func GeohashHasPrefix(prefix string) Predicate {
	return func(f *models.Facility) bool { return f.Geohash(len(prefix)) == prefix }
}

// MemoryStore holds the full facility dataset in load order. It is built once
// and never modified, so it is safe for concurrent readers without locking.
type MemoryStore struct {
	facilities []*models.Facility
}

// NewMemoryStore creates a store over a copy of facilities.
func NewMemoryStore(facilities []*models.Facility) *MemoryStore {
	owned := make([]*models.Facility, len(facilities))
	copy(owned, facilities)
	return &MemoryStore{facilities: owned}
}

// Len returns the number of facilities in the store.
func (s *MemoryStore) Len() int {
	return len(s.facilities)
}

// All returns every facility in load order.
func (s *MemoryStore) All() []*models.Facility {
	all := make([]*models.Facility, len(s.facilities))
	copy(all, s.facilities)
	return all
}

// Filter returns the facilities matching every predicate, in load order.
// The result is never nil.
func (s *MemoryStore) Filter(preds ...Predicate) []*models.Facility {
	matched := make([]*models.Facility, 0)
	for _, f := range s.facilities {
		if matchesAll(f, preds) {
			matched = append(matched, f)
		}
	}
	return matched
}

func matchesAll(f *models.Facility, preds []Predicate) bool {
	for _, p := range preds {
		if !p(f) {
			return false
		}
	}
	return true
}
