package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"food-facility-api/internal/models"

	"github.com/xuri/excelize/v2"
)

// LoadFile reads the dataset at path. Files ending in .xlsx are read as
// spreadsheets (sheet "" means the first sheet); anything else is read as CSV.
func LoadFile(path, sheet string) ([]*models.Facility, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w: open %q: %v", ErrLoadFailure, path, err)
	}
	defer file.Close()

	var facilities []*models.Facility
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		facilities, err = ParseXLSX(file, sheet)
	} else {
		facilities, err = ParseCSV(file)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return facilities, nil
}

// ParseCSV reads a header row followed by one facility per row.
func ParseCSV(r io.Reader) ([]*models.Facility, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file, expected a header row", ErrLoadFailure)
		}
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrLoadFailure, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read record: %v", ErrLoadFailure, err)
		}
		rows = append(rows, record)
	}

	return facilitiesFromRows(header, rows)
}

// ParseXLSX reads the named sheet of a workbook laid out like the CSV export.
func ParseXLSX(r io.Reader, sheet string) ([]*models.Facility, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrLoadFailure, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrLoadFailure, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty, expected a header row", ErrLoadFailure, sheet)
	}

	return facilitiesFromRows(rows[0], rows[1:])
}
