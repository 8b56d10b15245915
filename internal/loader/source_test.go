package loader

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

const sampleJSON = `[
  {"street": "Elm", "districts": [3, 1]},
  {"street": "Oak", "districts": [2]}
]`

func TestDecode(t *testing.T) {
	records, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, []quiz.Record{
		{Street: "Elm", Districts: []int{3, 1}},
		{Street: "Oak", Districts: []int{2}},
	}, records)

	_, err = Decode(strings.NewReader(`{"street":"Elm"}`))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	records, err := Normalize([]quiz.Record{
		{Street: " Elm ", Districts: []int{3, 1, 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, []quiz.Record{{Street: "Elm", Districts: []int{1, 3}}}, records)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Normalize([]quiz.Record{{Street: "", Districts: []int{1}}})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Normalize([]quiz.Record{{Street: "Elm"}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestNormalizeRejectsDuplicateStreets(t *testing.T) {
	_, err := Normalize([]quiz.Record{
		{Street: "Elm", Districts: []int{1}},
		{Street: " Elm", Districts: []int{2}},
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorContains(t, err, `"Elm" appears in records 0 and 1`)
}

func TestNormalizeRejectsOutOfRangeDistricts(t *testing.T) {
	_, err := Normalize([]quiz.Record{{Street: "Elm", Districts: []int{1, math.MaxInt32 + 1}}})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	records, err := Normalize([]quiz.Record{{Street: "Elm", Districts: []int{math.MaxInt32}}})
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt32}, records[0].Districts)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz_data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	records, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	records, err := NewHTTPSource(srv.URL, srv.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHTTPSourceNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil).Load(context.Background())
	assert.EqualError(t, err, "records non-200: 404")
}

type stubLister struct {
	rows []sqlcgen.StreetRecord
	err  error
}

func (s *stubLister) List(context.Context) ([]sqlcgen.StreetRecord, error) {
	return s.rows, s.err
}

func TestPostgresSource(t *testing.T) {
	src := NewPostgresSource(&stubLister{rows: []sqlcgen.StreetRecord{
		{RecordID: 1, Street: "Elm", Districts: []int32{1, 3}},
	}})

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []quiz.Record{{Street: "Elm", Districts: []int{1, 3}}}, records)

	_, err = NewPostgresSource(&stubLister{err: errors.New("db down")}).Load(context.Background())
	assert.EqualError(t, err, "db down")
}
