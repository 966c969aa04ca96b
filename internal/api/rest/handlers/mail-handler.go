package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/muaishaq001/nacos-hub/internal/dto"
	"go.uber.org/zap"
)

type Mailer interface {
	SendContactNotice(ev dto.ContactMessageEvent) error
	SendCollaboratorNotice(ev dto.CollaboratorSubmittedEvent) error
	SendTrackWelcome(ev dto.TrackJoinedEvent) error
}

// MailHandler turns hub events from the queue into mail.
type MailHandler struct {
	mail   Mailer
	logger *zap.Logger
}

func NewMailHandler(m Mailer, logger *zap.Logger) *MailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailHandler{mail: m, logger: logger}
}

func (h *MailHandler) HandleMessage(key string, message []byte) error {
	switch key {
	case dto.EventContactMessage:
		var ev dto.ContactMessageEvent
		if err := decodeEvent(message, &ev); err != nil {
			return err
		}
		h.logger.Info("contact message received", zap.String("email", ev.Email))
		return h.mail.SendContactNotice(ev)

	case dto.EventCollaboratorSubmit:
		var ev dto.CollaboratorSubmittedEvent
		if err := decodeEvent(message, &ev); err != nil {
			return err
		}
		h.logger.Info("collaboration application received", zap.String("company", ev.CompanyName))
		return h.mail.SendCollaboratorNotice(ev)

	case dto.EventTrackJoined:
		var ev dto.TrackJoinedEvent
		if err := decodeEvent(message, &ev); err != nil {
			return err
		}
		h.logger.Info("track join received", zap.String("track", ev.TrackID), zap.String("email", ev.Email))
		return h.mail.SendTrackWelcome(ev)
	}

	h.logger.Debug("ignoring event", zap.String("key", key))
	return nil
}

func decodeEvent(message []byte, v interface{}) error {
	if err := json.Unmarshal(message, v); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}
	return nil
}
