package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

var (
	ErrNoRecords     = errors.New("record set is empty")
	ErrInvalidRecord = errors.New("invalid record")
	ErrNotLoaded     = errors.New("records not loaded yet")
)

// Source fetches the raw record set.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]quiz.Record, error)
}

// Decode reads a JSON array of {"street": ..., "districts": [...]} objects.
func Decode(r io.Reader) ([]quiz.Record, error) {
	var records []quiz.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// Normalize validates records and returns copies with trimmed streets and
// sorted, de-duplicated districts. Streets must be unique and districts must
// fit the int4 column used by the Postgres source.
func Normalize(records []quiz.Record) ([]quiz.Record, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	out := make([]quiz.Record, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		rec.Street = strings.TrimSpace(rec.Street)
		if rec.Street == "" {
			return nil, fmt.Errorf("%w: record %d has no street", ErrInvalidRecord, i)
		}
		if first, dup := seen[rec.Street]; dup {
			return nil, fmt.Errorf("%w: %q appears in records %d and %d", ErrInvalidRecord, rec.Street, first, i)
		}
		seen[rec.Street] = i
		if len(rec.Districts) == 0 {
			return nil, fmt.Errorf("%w: %q has no districts", ErrInvalidRecord, rec.Street)
		}
		for _, d := range rec.Districts {
			if d < math.MinInt32 || d > math.MaxInt32 {
				return nil, fmt.Errorf("%w: %q has out-of-range district %d", ErrInvalidRecord, rec.Street, d)
			}
		}
		out[i] = rec.Normalized()
	}
	return out, nil
}
