package tables

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Index answers commod and centre lookups over the two tables
type Index struct {
	commods []Commod
	centres map[int64][]string
}

// NewIndex builds an index from parsed rows
func NewIndex(centres []Centre, commods []Commod) *Index {
	idx := &Index{
		commods: commods,
		centres: make(map[int64][]string),
	}
	for _, c := range centres {
		idx.centres[c.HSCode] = append(idx.centres[c.HSCode], c.Center)
	}
	return idx
}

// Load reads both tables from src and indexes them
func Load(ctx context.Context, src Source) (*Index, error) {
	centresTable, commodsTable, err := src.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	centres, err := ParseCentres(centresTable)
	if err != nil {
		return nil, err
	}
	commods, err := ParseCommods(commodsTable)
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded tables", "centres", len(centres), "commods", len(commods))
	return NewIndex(centres, commods), nil
}

// Lookup finds a commod by name, ignoring case and surrounding space. The first match wins.
func (idx *Index) Lookup(name string) (Commod, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	for _, c := range idx.commods {
		if strings.ToLower(c.Name) == query {
			return c, nil
		}
	}
	return Commod{}, fmt.Errorf("%w: %q", ErrCommodNotFound, query)
}

// Centres returns the centers producing an HS code, in table order
func (idx *Index) Centres(code int64) []string {
	return idx.centres[code]
}
