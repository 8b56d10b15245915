package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
)

var ErrDistrictOutOfRange = errors.New("district does not fit int4")

type recordStore interface {
	ListStreetRecords(ctx context.Context) ([]sqlcgen.StreetRecord, error)
	CountStreetRecords(ctx context.Context) (int64, error)
	InsertStreetRecord(ctx context.Context, arg sqlcgen.InsertStreetRecordParams) (sqlcgen.StreetRecord, error)
}

// RecordRepository wraps sqlc queries for the street_records table.
type RecordRepository struct {
	store recordStore
}

func NewRecordRepository(store recordStore) *RecordRepository {
	return &RecordRepository{store: store}
}

// List returns every street record in insertion order.
func (r *RecordRepository) List(ctx context.Context) ([]sqlcgen.StreetRecord, error) {
	return r.store.ListStreetRecords(ctx)
}

// Count returns the number of stored records.
func (r *RecordRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountStreetRecords(ctx)
}

// Upsert inserts a record or replaces the districts of an existing street.
func (r *RecordRepository) Upsert(ctx context.Context, street string, districts []int) (sqlcgen.StreetRecord, error) {
	params := sqlcgen.InsertStreetRecordParams{
		Street:    street,
		Districts: make([]int32, len(districts)),
	}
	for i, d := range districts {
		if d < math.MinInt32 || d > math.MaxInt32 {
			return sqlcgen.StreetRecord{}, fmt.Errorf("%w: %s district %d", ErrDistrictOutOfRange, street, d)
		}
		params.Districts[i] = int32(d)
	}
	return r.store.InsertStreetRecord(ctx, params)
}
