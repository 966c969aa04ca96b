package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/muaishaq001/nacos-hub/internal/content"
	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/flow"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/internal/interfaces"
	"github.com/muaishaq001/nacos-hub/pkg/utils"
	"go.uber.org/zap"
)

type HubService interface {
	// Registration
	SubmitRegistration(ctx context.Context, s *Session, input dto.StudentRegistration) error
	VerifyOtp(ctx context.Context, s *Session, otp string) (*dto.VerifiedStudent, error)
	ResendOtp(ctx context.Context, s *Session) error
	BackToDetails(s *Session) error

	// Forms
	SubmitCollaboration(ctx context.Context, s *Session, input dto.CollaboratorApplication) (*dto.CollaboratorRecord, error)
	SendContactMessage(ctx context.Context, s *Session, input dto.ContactMessage) error
	JoinTrack(ctx context.Context, s *Session, input dto.TrackApplication) error

	// Lookup
	VerifyMembership(ctx context.Context, matric string) (flow.VerificationResult, error)
	Content() *content.Catalog
}

type hubService struct {
	verifier *flow.Verifier
	catalog  *content.Catalog
	validate *helper.Validator
	producer interfaces.ProducerHandler
	logger   *zap.Logger
	now      func() time.Time
}

func NewHubService(
	verifier *flow.Verifier,
	catalog *content.Catalog,
	v *helper.Validator,
	producer interfaces.ProducerHandler,
	logger *zap.Logger,
) HubService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if v == nil {
		v = helper.NewValidator()
	}
	return &hubService{
		verifier: verifier,
		catalog:  catalog,
		validate: v,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

var contactMessages = helper.Messages{
	"firstName.required": "First name is required",
	"lastName.required":  "Last name is required",
	"email.required":     "Please enter a valid email address",
	"email.email":        "Please enter a valid email address",
	"subject.required":   "Subject is required",
	"message.required":   "Message is required",
}

var trackMessages = helper.Messages{
	"trackId.required":      "Please select a track",
	"trackId.oneof":         "Please select a track",
	"fullName.required":     "Full name is required",
	"fullName.min":          "Full name must be at least 2 characters",
	"matricNumber.required": "Matric number is required",
	"email.required":        "Please enter a valid email address",
	"email.email":           "Please enter a valid email address",
	"level.required":        "Please select your level",
	"level.oneof":           "Please select your level",
}

func (h *hubService) SubmitRegistration(ctx context.Context, s *Session, input dto.StudentRegistration) error {
	return s.Registration.SubmitDetails(ctx, input)
}

func (h *hubService) VerifyOtp(ctx context.Context, s *Session, otp string) (*dto.VerifiedStudent, error) {
	student, err := s.Registration.VerifyOtp(ctx, otp)
	if err != nil {
		return nil, err
	}
	if student != nil {
		h.logger.Info("student verified", zap.String("email", student.Email), zap.String("session", s.ID))
	}
	return student, nil
}

func (h *hubService) ResendOtp(ctx context.Context, s *Session) error {
	return s.Registration.ResendOtp(ctx)
}

func (h *hubService) BackToDetails(s *Session) error {
	return s.Registration.Back()
}

func (h *hubService) SubmitCollaboration(ctx context.Context, s *Session, input dto.CollaboratorApplication) (*dto.CollaboratorRecord, error) {
	rec, err := s.Collaboration.Submit(ctx, input)
	if err != nil || rec == nil {
		return rec, err
	}

	h.publish(dto.EventCollaboratorSubmit, dto.CollaboratorSubmittedEvent{
		ApplicationID:     rec.ID,
		CompanyName:       utils.CollapseSpaces(input.CompanyName),
		ContactPerson:     utils.CollapseSpaces(input.ContactPerson),
		Email:             utils.NormalizeEmail(input.Email),
		CollaborationType: strings.TrimSpace(input.CollaborationType),
		SubmittedAt:       h.now().UTC().Format(time.RFC3339),
	})
	return rec, nil
}

func (h *hubService) SendContactMessage(ctx context.Context, s *Session, input dto.ContactMessage) error {
	input = dto.ContactMessage{
		FirstName: utils.CollapseSpaces(input.FirstName),
		LastName:  utils.CollapseSpaces(input.LastName),
		Email:     utils.NormalizeEmail(input.Email),
		Subject:   utils.CollapseSpaces(input.Subject),
		Message:   input.Message,
	}
	if err := h.validate.Struct(input, contactMessages); err != nil {
		return err
	}

	h.publish(dto.EventContactMessage, dto.ContactMessageEvent{
		Name:      input.FirstName + " " + input.LastName,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		SessionID: s.ID,
		SentAt:    h.now().UTC().Format(time.RFC3339),
	})
	s.Notices.Notify(flow.Notice{
		Level:       flow.LevelSuccess,
		Title:       "Message sent!",
		Description: "We'll get back to you as soon as possible.",
	})
	return nil
}

func (h *hubService) JoinTrack(ctx context.Context, s *Session, input dto.TrackApplication) error {
	input = dto.TrackApplication{
		TrackID:      strings.TrimSpace(input.TrackID),
		FullName:     utils.CollapseSpaces(input.FullName),
		MatricNumber: utils.NormalizeMatric(input.MatricNumber),
		Email:        utils.NormalizeEmail(input.Email),
		Level:        strings.TrimSpace(input.Level),
	}
	if err := h.validate.Struct(input, trackMessages); err != nil {
		return err
	}

	title := input.TrackID
	if t, ok := h.catalog.Track(input.TrackID); ok {
		title = t.Title
	}
	h.publish(dto.EventTrackJoined, dto.TrackJoinedEvent{
		TrackID:      input.TrackID,
		TrackTitle:   title,
		FullName:     input.FullName,
		MatricNumber: input.MatricNumber,
		Email:        input.Email,
		Level:        input.Level,
		JoinedAt:     h.now().UTC().Format(time.RFC3339),
	})
	s.Notices.Notify(flow.Notice{
		Level:       flow.LevelSuccess,
		Title:       "Registration Submitted!",
		Description: "Welcome to the Tech Guild. You'll receive an email with next steps.",
	})
	return nil
}

func (h *hubService) VerifyMembership(ctx context.Context, matric string) (flow.VerificationResult, error) {
	return h.verifier.Lookup(ctx, matric)
}

func (h *hubService) Content() *content.Catalog {
	return h.catalog
}

// publish is best effort: failures are logged and never reach the form.
func (h *hubService) publish(key string, event interface{}) {
	if h.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal event", zap.String("key", key), zap.Error(err))
		return
	}
	if err := h.producer.PublishMessage([]byte(key), payload); err != nil {
		h.logger.Warn("publish event", zap.String("key", key), zap.Error(err))
	}
}
