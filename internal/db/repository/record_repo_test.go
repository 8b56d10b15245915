package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
)

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) ListStreetRecords(ctx context.Context) ([]sqlcgen.StreetRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sqlcgen.StreetRecord), args.Error(1)
}

func (m *mockRecordStore) CountStreetRecords(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRecordStore) InsertStreetRecord(ctx context.Context, arg sqlcgen.InsertStreetRecordParams) (sqlcgen.StreetRecord, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlcgen.StreetRecord), args.Error(1)
}

func TestRecordRepository_List(t *testing.T) {
	store := new(mockRecordStore)
	repo := NewRecordRepository(store)

	expect := []sqlcgen.StreetRecord{
		{RecordID: 1, Street: "Elm", Districts: []int32{1, 3}},
		{RecordID: 2, Street: "Oak", Districts: []int32{2}},
	}
	store.On("ListStreetRecords", mock.Anything).Return(expect, nil)

	got, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestRecordRepository_ListError(t *testing.T) {
	store := new(mockRecordStore)
	repo := NewRecordRepository(store)

	store.On("ListStreetRecords", mock.Anything).Return([]sqlcgen.StreetRecord(nil), errors.New("db down"))

	_, err := repo.List(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestRecordRepository_Upsert(t *testing.T) {
	store := new(mockRecordStore)
	repo := NewRecordRepository(store)

	params := sqlcgen.InsertStreetRecordParams{Street: "Elm", Districts: []int32{1, 3}}
	expect := sqlcgen.StreetRecord{RecordID: 7, Street: "Elm", Districts: []int32{1, 3}}
	store.On("InsertStreetRecord", mock.Anything, params).Return(expect, nil)

	got, err := repo.Upsert(context.Background(), "Elm", []int{1, 3})
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestRecordRepository_UpsertRejectsOutOfRange(t *testing.T) {
	store := new(mockRecordStore)
	repo := NewRecordRepository(store)

	_, err := repo.Upsert(context.Background(), "Elm", []int{1, math.MaxInt32 + 1})
	assert.ErrorIs(t, err, ErrDistrictOutOfRange)
	store.AssertNotCalled(t, "InsertStreetRecord", mock.Anything, mock.Anything)
}

func TestRecordRepository_Count(t *testing.T) {
	store := new(mockRecordStore)
	repo := NewRecordRepository(store)

	store.On("CountStreetRecords", mock.Anything).Return(int64(12), nil)

	n, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
