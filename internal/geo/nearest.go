package geo

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidArgument is the class of errors returned when a query asks for
// something the candidate pool cannot satisfy.
var ErrInvalidArgument = errors.New("invalid argument")

// NeighborCountError reports a request for more neighbors than there are
// candidates. It matches ErrInvalidArgument with errors.Is.
type NeighborCountError struct {
	Requested int
	Available int
}

func (e *NeighborCountError) Error() string {
	return fmt.Sprintf("requested more neighbors than available candidates: cannot find %d neighbors among %d candidates",
		e.Requested, e.Available)
}

func (e *NeighborCountError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Located is anything with a position on the globe.
type Located interface {
	Point() Coordinate
}

type candidate[T any] struct {
	item T
	dist float64
}

// Nearest returns the k candidates closest to origin, nearest first.
//
// Candidates at equal distance keep their input order. The returned elements
// are the candidate values themselves, so pointer candidates are returned by
// reference. Asking for more than len(candidates) fails with a
// *NeighborCountError.
func Nearest[T Located](origin Coordinate, candidates []T, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: neighbor count must not be negative, got %d", ErrInvalidArgument, k)
	}
	if k > len(candidates) {
		return nil, &NeighborCountError{Requested: k, Available: len(candidates)}
	}
	if k == 0 {
		return []T{}, nil
	}

	ranked := make([]candidate[T], len(candidates))
	for i, c := range candidates {
		ranked[i] = candidate[T]{item: c, dist: DistanceMiles(origin, c.Point())}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].dist < ranked[j].dist
	})

	nearest := make([]T, k)
	for i := range nearest {
		nearest[i] = ranked[i].item
	}
	return nearest, nil
}
