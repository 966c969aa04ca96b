package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/muaishaq001/nacos-hub/internal/domain"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// VerificationStore resolves a normalised matric number to its record.
// Implementations return ErrNotFound for unknown keys.
type VerificationStore interface {
	FindByMatric(ctx context.Context, matric string) (*domain.VerificationRecord, error)
}

type VerificationRepository interface {
	VerificationStore
	List(ctx context.Context, limit, offset int) ([]domain.VerificationRecord, error)
	Seed(ctx context.Context, records []domain.VerificationRecord) (int, error)
}

type verificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewVerificationRepository(db *gorm.DB, logger *zap.Logger) VerificationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &verificationRepository{db: db, logger: logger}
}

func (r *verificationRepository) FindByMatric(ctx context.Context, matric string) (*domain.VerificationRecord, error) {
	var rec domain.VerificationRecord
	err := r.db.WithContext(ctx).First(&rec, "matric_number = ?", matric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("find verification record", zap.String("matric", matric), zap.Error(err))
		return nil, fmt.Errorf("find verification record: %w", err)
	}
	return &rec, nil
}

func (r *verificationRepository) List(ctx context.Context, limit, offset int) ([]domain.VerificationRecord, error) {
	var records []domain.VerificationRecord
	err := r.db.WithContext(ctx).
		Order("matric_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Seed inserts records that are not present yet and reports how many were
// created. Rows inserted concurrently by another instance are skipped.
func (r *verificationRepository) Seed(ctx context.Context, records []domain.VerificationRecord) (int, error) {
	created := 0
	for i := range records {
		rec := records[i]

		var existing domain.VerificationRecord
		err := r.db.WithContext(ctx).First(&existing, "matric_number = ?", rec.MatricNumber).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", rec.MatricNumber, err)
		}
		created++
	}
	return created, nil
}
