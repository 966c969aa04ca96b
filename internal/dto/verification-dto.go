package dto

type VerificationRequest struct {
	MatricNumber string `json:"matricNumber" validate:"required"`
}
