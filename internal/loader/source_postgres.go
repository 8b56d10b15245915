package loader

import (
	"context"

	sqlcgen "github.com/gokatarajesh/district-quiz/internal/db/sqlc"
	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

type recordLister interface {
	List(ctx context.Context) ([]sqlcgen.StreetRecord, error)
}

// PostgresSource reads the street_records table through the record repository.
type PostgresSource struct {
	repo recordLister
}

func NewPostgresSource(repo recordLister) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]quiz.Record, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]quiz.Record, len(rows))
	for i, row := range rows {
		records[i] = toDomain(row)
	}
	return records, nil
}

func toDomain(row sqlcgen.StreetRecord) quiz.Record {
	districts := make([]int, len(row.Districts))
	for i, d := range row.Districts {
		districts[i] = int(d)
	}
	return quiz.Record{Street: row.Street, Districts: districts}
}
