package dto

type ContactMessage struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
}

type TrackApplication struct {
	TrackID      string `json:"trackId" validate:"required,oneof=software-engineering cybersecurity data-science product-design"`
	FullName     string `json:"fullName" validate:"required,min=2,max=100"`
	MatricNumber string `json:"matricNumber" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Level        string `json:"level" validate:"required,oneof=100 200 300 400 500"`
}
