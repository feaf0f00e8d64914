package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-facility-api/internal/geo"
	"food-facility-api/internal/models"
	"food-facility-api/internal/repository"

	"github.com/rs/zerolog"
)

// ErrInvalidQuery is returned for queries that are missing or malformed.
var ErrInvalidQuery = errors.New("invalid query")

const (
	geohashAlphabet     = "0123456789bcdefghjkmnpqrstuvwxyz"
	maxGeohashPrecision = 12
)

// FacilityStore interface for dependency injection
type FacilityStore interface {
	All() []*models.Facility
	Filter(preds ...repository.Predicate) []*models.Facility
}

// NearbyQuery describes a nearest-neighbor search. An empty Status searches
// facilities of every status.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	Count     int
	Status    string
}

// FacilityService answers read-only queries over the facility dataset
type FacilityService struct {
	store FacilityStore
}

// NewFacilityService creates a new facility service
func NewFacilityService(store FacilityStore) *FacilityService {
	return &FacilityService{store: store}
}

// ListFacilities returns the whole dataset in load order
func (s *FacilityService) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	facilities := s.store.All()
	zerolog.Ctx(ctx).Debug().Int("results", len(facilities)).Msg("listed facilities")
	return facilities, nil
}

// SearchByApplicant returns facilities whose applicant matches exactly,
// optionally narrowed to one permit status
func (s *FacilityService) SearchByApplicant(ctx context.Context, applicant, status string) ([]*models.Facility, error) {
	preds := []repository.Predicate{repository.ApplicantIs(applicant)}
	if status != "" {
		preds = append(preds, repository.StatusIs(status))
	}

	facilities := s.store.Filter(preds...)
	zerolog.Ctx(ctx).Debug().
		Str("applicant", applicant).
		Str("status", status).
		Int("results", len(facilities)).
		Msg("searched by applicant")
	return facilities, nil
}

// SearchByStreet returns facilities whose address contains street. Matching
// is case-sensitive and an empty street matches every facility.
func (s *FacilityService) SearchByStreet(ctx context.Context, street string) ([]*models.Facility, error) {
	facilities := s.store.Filter(repository.AddressContains(street))
	zerolog.Ctx(ctx).Debug().Str("street", street).Int("results", len(facilities)).Msg("searched by street")
	return facilities, nil
}

// SearchByGeohash returns facilities located inside the geohash cell prefix
func (s *FacilityService) SearchByGeohash(ctx context.Context, prefix string) ([]*models.Facility, error) {
	if prefix == "" || len(prefix) > maxGeohashPrecision {
		return nil, fmt.Errorf("service: %w: geohash prefix must be 1 to %d characters", ErrInvalidQuery, maxGeohashPrecision)
	}
	if i := strings.IndexFunc(prefix, func(r rune) bool { return !strings.ContainsRune(geohashAlphabet, r) }); i >= 0 {
		return nil, fmt.Errorf("service: %w: invalid geohash character %q", ErrInvalidQuery, prefix[i])
	}

	facilities := s.store.Filter(repository.GeohashHasPrefix(prefix))
	zerolog.Ctx(ctx).Debug().Str("geohash", prefix).Int("results", len(facilities)).Msg("searched by geohash")
	return facilities, nil
}

// SearchNearby returns the query.Count facilities closest to the query point,
// nearest first
func (s *FacilityService) SearchNearby(ctx context.Context, query NearbyQuery) ([]*models.Facility, error) {
	origin, err := geo.NewCoordinate(query.Latitude, query.Longitude)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	var candidates []*models.Facility
	if query.Status != "" {
		candidates = s.store.Filter(repository.StatusIs(query.Status))
	} else {
		candidates = s.store.All()
	}

	nearest, err := geo.Nearest(origin, candidates, query.Count)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearby facilities: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Float64("latitude", origin.Latitude).
		Float64("longitude", origin.Longitude).
		Str("status", query.Status).
		Int("candidates", len(candidates)).
		Int("results", len(nearest)).
		Msg("searched nearby")
	return nearest, nil
}
