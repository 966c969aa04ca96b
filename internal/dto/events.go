package dto

// Event keys on the kafka topic. The mailer dispatches on them.
const (
	EventContactMessage     = "contact.message_received"
	EventTrackJoined        = "techguild.track_joined"
	EventCollaboratorSubmit = "collaborator.application_submitted"
)

type ContactMessageEvent struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	SentAt    string `json:"sent_at"`
}

type TrackJoinedEvent struct {
	TrackID      string `json:"track_id"`
	TrackTitle   string `json:"track_title"`
	FullName     string `json:"full_name"`
	MatricNumber string `json:"matric_number"`
	Email        string `json:"email"`
	Level        string `json:"level"`
	JoinedAt     string `json:"joined_at"`
}

type CollaboratorSubmittedEvent struct {
	ApplicationID     string `json:"application_id,omitempty"`
	CompanyName       string `json:"company_name"`
	ContactPerson     string `json:"contact_person"`
	Email             string `json:"email"`
	CollaborationType string `json:"collaboration_type"`
	SubmittedAt       string `json:"submitted_at"`
}
