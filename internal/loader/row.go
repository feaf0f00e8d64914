package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"food-facility-api/internal/geo"
	"food-facility-api/internal/models"
)

// ErrLoadFailure marks every error produced while building the dataset.
// Callers treat it as fatal at startup.
var ErrLoadFailure = errors.New("load failure")

// headerRenames maps the human-readable district headers of the published
// dataset onto the column names the row mapper expects.
var headerRenames = map[string]string{
	"Fire Prevention Districts": "FirePreventionDistricts",
	"Police Districts":          "PoliceDistricts",
	"Supervisor Districts":      "SupervisorDistricts",
	"Zip Codes":                 "ZipCodes",
	"Neighborhoods (old)":       "NeighborhoodsOld",
}

// Columns lists every column a dataset row must carry, after renaming.
var Columns = []string{
	"locationid", "Applicant", "FacilityType", "cnn", "LocationDescription",
	"Address", "blocklot", "block", "lot", "permit", "Status", "FoodItems",
	"X", "Y", "Latitude", "Longitude", "Schedule", "dayshours", "NOISent",
	"Approved", "Received", "PriorPermit", "ExpirationDate", "Location",
	"FirePreventionDistricts", "PoliceDistricts", "SupervisorDistricts",
	"ZipCodes", "NeighborhoodsOld",
}

// NormalizeHeader returns the internal column name for a dataset header.
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	if renamed, ok := headerRenames[name]; ok {
		return renamed
	}
	return name
}

// rowReader pulls typed values out of a row, remembering the first failure so
// the mapper can read every column before checking.
type rowReader struct {
	row map[string]string
	err error
}

func (r *rowReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *rowReader) str(col string) string {
	v, ok := r.row[col]
	if !ok {
		r.fail(fmt.Errorf("missing column %q", col))
	}
	return v
}

func (r *rowReader) integer(col string) int {
	raw := strings.TrimSpace(r.str(col))
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(fmt.Errorf("column %q: invalid integer %q", col, raw))
	}
	return n
}

func (r *rowReader) float(col string) float64 {
	raw := strings.TrimSpace(r.str(col))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(fmt.Errorf("column %q: invalid number %q", col, raw))
	}
	return f
}

// optionalInt treats an empty cell as absent rather than zero.
func (r *rowReader) optionalInt(col string) *int {
	raw := strings.TrimSpace(r.str(col))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(fmt.Errorf("column %q: invalid integer %q", col, raw))
		return nil
	}
	return &n
}

// FacilityFromRow maps one dataset row, keyed by normalized header, onto a
// Facility.
func FacilityFromRow(row map[string]string) (*models.Facility, error) {
	r := &rowReader{row: row}

	f := &models.Facility{
		LocationID:          r.integer("locationid"),
		Applicant:           r.str("Applicant"),
		FacilityType:        r.str("FacilityType"),
		CNN:                 r.integer("cnn"),
		LocationDescription: r.str("LocationDescription"),
		Address:             r.str("Address"),
		BlockLot:            r.str("blocklot"),
		Block:               r.str("block"),
		Lot:                 r.str("lot"),
		Permit:              r.str("permit"),
		Status:              r.str("Status"),
		FoodItems:           r.str("FoodItems"),
		X:                   r.str("X"),
		Y:                   r.str("Y"),
		Schedule:            r.str("Schedule"),
		DaysHours:           r.str("dayshours"),
		NOISent:             r.str("NOISent"),
		Approved:            r.str("Approved"),
		Received:            r.str("Received"),
		PriorPermit:         r.integer("PriorPermit"),
		ExpirationDate:      r.str("ExpirationDate"),
		Location:            r.str("Location"),

		FirePreventionDistricts: r.optionalInt("FirePreventionDistricts"),
		PoliceDistricts:         r.optionalInt("PoliceDistricts"),
		SupervisorDistricts:     r.optionalInt("SupervisorDistricts"),
		ZipCodes:                r.optionalInt("ZipCodes"),
		NeighborhoodsOld:        r.optionalInt("NeighborhoodsOld"),
	}

	lat := r.float("Latitude")
	lon := r.float("Longitude")
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailure, r.err)
	}

	coord, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}
	f.Coordinate = coord

	return f, nil
}

// facilitiesFromRows maps a header row and its data rows. The header must
// name every column in Columns, even when there are no data rows. Row numbers
// in errors are 1-based and count the header.
func facilitiesFromRows(header []string, rows [][]string) ([]*models.Facility, error) {
	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		columns[i] = NormalizeHeader(h)
		present[columns[i]] = true
	}
	for _, col := range Columns {
		if !present[col] {
			return nil, fmt.Errorf("%w: header: missing column %q", ErrLoadFailure, col)
		}
	}

	facilities := make([]*models.Facility, 0, len(rows))
	for i, cells := range rows {
		if len(cells) > len(columns) {
			return nil, fmt.Errorf("%w: row %d: %d cells for %d columns", ErrLoadFailure, i+2, len(cells), len(columns))
		}

		row := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(cells) {
				row[col] = cells[j]
			} else {
				row[col] = ""
			}
		}

		f, err := FacilityFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		facilities = append(facilities, f)
	}

	return facilities, nil
}
