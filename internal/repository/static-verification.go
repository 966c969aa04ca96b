package repository

import (
	"context"

	"github.com/muaishaq001/nacos-hub/internal/domain"
)

// StaticVerificationStore is an in-memory, read-only table. It stands in for
// the registry service until one exists.
type StaticVerificationStore struct {
	records map[string]domain.VerificationRecord
}

func NewStaticVerificationStore(records []domain.VerificationRecord) *StaticVerificationStore {
	m := make(map[string]domain.VerificationRecord, len(records))
	for _, r := range records {
		m[r.MatricNumber] = r
	}
	return &StaticVerificationStore{records: m}
}

func (s *StaticVerificationStore) FindByMatric(ctx context.Context, matric string) (*domain.VerificationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := s.records[matric]
	if !ok {
		return nil, ErrNotFound
	}
	// copy so callers cannot mutate the table
	out := rec
	return &out, nil
}

func (s *StaticVerificationStore) Len() int {
	return len(s.records)
}
