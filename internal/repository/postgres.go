package repository

import (
	"context"
	"fmt"

	"food-facility-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by the repository. Both *pgx.Conn and
// *pgxpool.Pool satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

const schema = `
	CREATE TABLE IF NOT EXISTS facilities (
		position BIGINT PRIMARY KEY,
		location_id BIGINT NOT NULL,
		applicant TEXT NOT NULL,
		facility_type TEXT NOT NULL,
		cnn BIGINT NOT NULL,
		location_description TEXT NOT NULL,
		address TEXT NOT NULL,
		block_lot TEXT NOT NULL,
		block TEXT NOT NULL,
		lot TEXT NOT NULL,
		permit TEXT NOT NULL,
		status TEXT NOT NULL,
		food_items TEXT NOT NULL,
		x TEXT NOT NULL,
		y TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		schedule TEXT NOT NULL,
		days_hours TEXT NOT NULL,
		noi_sent TEXT NOT NULL,
		approved TEXT NOT NULL,
		received TEXT NOT NULL,
		prior_permit BIGINT NOT NULL,
		expiration_date TEXT NOT NULL,
		location TEXT NOT NULL,
		fire_prevention_districts INTEGER,
		police_districts INTEGER,
		supervisor_districts INTEGER,
		zip_codes INTEGER,
		neighborhoods_old INTEGER
	);
`

var facilityColumns = []string{
	"position", "location_id", "applicant", "facility_type", "cnn", "location_description",
	"address", "block_lot", "block", "lot", "permit", "status", "food_items", "x", "y",
	"latitude", "longitude", "schedule", "days_hours", "noi_sent", "approved", "received",
	"prior_permit", "expiration_date", "location", "fire_prevention_districts",
	"police_districts", "supervisor_districts", "zip_codes", "neighborhoods_old",
}

// Repository reads and writes the facilities table in PostgreSQL.
type Repository struct {
	db DBTX
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// CreateSchema creates the facilities table and its spatial index if missing.
func (r *Repository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// Truncate removes every facility row.
func (r *Repository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "TRUNCATE facilities"); err != nil {
		return fmt.Errorf("repository: failed to truncate facilities: %w", err)
	}
	return nil
}

// ImportFacilities bulk inserts facilities, recording their slice index as
// position so that ListFacilities returns them in the same order.
func (r *Repository) ImportFacilities(ctx context.Context, facilities []*models.Facility) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"facilities"},
		facilityColumns,
		pgx.CopyFromSlice(len(facilities), func(i int) ([]any, error) {
			f := facilities[i]
			return []any{
				int64(i), f.LocationID, f.Applicant, f.FacilityType, f.CNN, f.LocationDescription,
				f.Address, f.BlockLot, f.Block, f.Lot, f.Permit, f.Status, f.FoodItems, f.X, f.Y,
				f.Latitude, f.Longitude, f.Schedule, f.DaysHours, f.NOISent, f.Approved, f.Received,
				f.PriorPermit, f.ExpirationDate, f.Location, f.FirePreventionDistricts,
				f.PoliceDistricts, f.SupervisorDistricts, f.ZipCodes, f.NeighborhoodsOld,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy facilities: %w", err)
	}
	return n, nil
}

// CountFacilities returns the number of stored facilities.
func (r *Repository) CountFacilities(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM facilities").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count facilities: %w", err)
	}
	return count, nil
}

// ListFacilities returns every facility in import order.
func (r *Repository) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	sql := `
		SELECT
			location_id, applicant, facility_type, cnn, location_description,
			address, block_lot, block, lot, permit, status, food_items, x, y,
			latitude, longitude, schedule, days_hours, noi_sent, approved, received,
			prior_permit, expiration_date, location, fire_prevention_districts,
			police_districts, supervisor_districts, zip_codes, neighborhoods_old
		FROM facilities
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	facilities := make([]*models.Facility, 0)
	for rows.Next() {
		var f models.Facility
		err := rows.Scan(
			&f.LocationID, &f.Applicant, &f.FacilityType, &f.CNN, &f.LocationDescription,
			&f.Address, &f.BlockLot, &f.Block, &f.Lot, &f.Permit, &f.Status, &f.FoodItems, &f.X, &f.Y,
			&f.Latitude, &f.Longitude, &f.Schedule, &f.DaysHours, &f.NOISent, &f.Approved, &f.Received,
			&f.PriorPermit, &f.ExpirationDate, &f.Location, &f.FirePreventionDistricts,
			&f.PoliceDistricts, &f.SupervisorDistricts, &f.ZipCodes, &f.NeighborhoodsOld,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan facility: %w", err)
		}
		facilities = append(facilities, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return facilities, nil
}
