package flow

import (
	"context"
	"errors"

	"github.com/muaishaq001/nacos-hub/internal/domain"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/internal/repository"
	"github.com/muaishaq001/nacos-hub/pkg/utils"
)

type Outcome string

const (
	OutcomeActive   Outcome = "active"
	OutcomeInactive Outcome = "inactive"
	OutcomeNotFound Outcome = "not_found"
)

type VerificationResult struct {
	MatricNumber string                     `json:"matricNumber"`
	Outcome      Outcome                    `json:"outcome"`
	Record       *domain.VerificationRecord `json:"record,omitempty"`
}

// Verifier looks matric numbers up exactly, after upper-casing.
type Verifier struct {
	store repository.VerificationStore
}

func NewVerifier(store repository.VerificationStore) *Verifier {
	return &Verifier{store: store}
}

// Lookup never reports an unknown number as an error; it is the not_found
// outcome. Errors are either validation of an empty input or a store fault.
func (v *Verifier) Lookup(ctx context.Context, matric string) (VerificationResult, error) {
	key := utils.NormalizeMatric(matric)
	if key == "" {
		return VerificationResult{}, helper.ValidationErrors{"matricNumber": "Matric number is required"}
	}

	res := VerificationResult{MatricNumber: key}
	rec, err := v.store.FindByMatric(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		res.Outcome = OutcomeNotFound
		return res, nil
	case err != nil:
		return VerificationResult{}, err
	}

	res.Record = rec
	if rec.IsActive() {
		res.Outcome = OutcomeActive
	} else {
		res.Outcome = OutcomeInactive
	}
	return res, nil
}
