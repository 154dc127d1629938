package tables

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names shared by the Centres and Commods tables
const (
	ColumnHSCode  = "HS Code"
	ColumnCenters = "Centers"
	ColumnName    = "Name"
)

var (
	// ErrColumnMissing is returned when a table lacks a required header
	ErrColumnMissing = errors.New("column not found")
	// ErrCommodNotFound is returned when no commod matches a lookup
	ErrCommodNotFound = errors.New("commod not found")
)

// Table is a header row plus data rows, as read from a worksheet or file
type Table struct {
	Header []string
	Rows   [][]string
}

// Source provides the Centres and Commods tables
type Source interface {
	Tables(ctx context.Context) (centres, commods *Table, err error)
}

// NewTable splits raw values into a header and data rows. Short rows are padded
// to the header width and blank rows are dropped.
func NewTable(values [][]string) (*Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	t := &Table{Header: make([]string, len(values[0]))}
	for i, h := range values[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	for _, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		padded := make([]string, len(t.Header))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t, nil
}

// Column returns the index of the named header, ignoring case and surrounding space
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if strings.EqualFold(h, strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %v)", ErrColumnMissing, name, t.Header)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseHSCode parses an HS code cell. Integral decimals such as "1006.0" are accepted.
func ParseHSCode(cell string) (int64, error) {
	s := strings.TrimSpace(cell)
	if code, err := strconv.ParseInt(s, 10, 64); err == nil {
		return code, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid HS code %q", cell)
	}
	return int64(f), nil
}

// Commod maps a commod name to its HS code
type Commod struct {
	Name   string
	HSCode int64
}

// Centre is a production center for an HS code
type Centre struct {
	HSCode int64
	Center string
}

// ParseCommods reads the Name and HS Code columns
func ParseCommods(t *Table) ([]Commod, error) {
	nameCol, err := t.Column(ColumnName)
	if err != nil {
		return nil, fmt.Errorf("commods table: %w", err)
	}
	codeCol, err := t.Column(ColumnHSCode)
	if err != nil {
		return nil, fmt.Errorf("commods table: %w", err)
	}

	commods := make([]Commod, 0, len(t.Rows))
	for i, row := range t.Rows {
		code, err := ParseHSCode(row[codeCol])
		if err != nil {
			return nil, fmt.Errorf("commods table row %d: %w", i+2, err)
		}
		commods = append(commods, Commod{Name: strings.TrimSpace(row[nameCol]), HSCode: code})
	}
	return commods, nil
}

// ParseCentres reads the HS Code and Centers columns
func ParseCentres(t *Table) ([]Centre, error) {
	codeCol, err := t.Column(ColumnHSCode)
	if err != nil {
		return nil, fmt.Errorf("centres table: %w", err)
	}
	centerCol, err := t.Column(ColumnCenters)
	if err != nil {
		return nil, fmt.Errorf("centres table: %w", err)
	}

	centres := make([]Centre, 0, len(t.Rows))
	for i, row := range t.Rows {
		code, err := ParseHSCode(row[codeCol])
		if err != nil {
			return nil, fmt.Errorf("centres table row %d: %w", i+2, err)
		}
		centres = append(centres, Centre{HSCode: code, Center: strings.TrimSpace(row[centerCol])})
	}
	return centres, nil
}
