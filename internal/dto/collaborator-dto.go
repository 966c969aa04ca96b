package dto

const (
	CollaborationTech         = "Tech"
	CollaborationSports       = "Sports"
	CollaborationEvents       = "Events"
	CollaborationCompetitions = "Competitions"
)

var CollaborationTypes = []string{
	CollaborationTech,
	CollaborationSports,
	CollaborationEvents,
	CollaborationCompetitions,
}

type CollaboratorApplication struct {
	CompanyName       string `json:"companyName" validate:"required,min=2,max=150"`
	ContactPerson     string `json:"contactPerson" validate:"required,min=2,max=100"`
	Email             string `json:"email" validate:"required,email"`
	CollaborationType string `json:"collaborationType" validate:"required,oneof=Tech Sports Events Competitions"`
}

type CollaboratorRecord struct {
	ID            string `json:"id"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	SubmittedAt   string `json:"submittedAt"`
}
