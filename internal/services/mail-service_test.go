package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return f.err
}

func TestMailService_ContactGoesToInbox(t *testing.T) {
	sender := &fakeSender{}
	ms, err := NewMailService(sender, "info@nacosfudma.org", nil)
	require.NoError(t, err)

	require.NoError(t, ms.SendContactNotice(dto.ContactMessageEvent{
		Name:    "John Doe",
		Email:   "john@example.com",
		Subject: "Sponsorship",
		Message: "<script>alert(1)</script>",
	}))

	require.Len(t, sender.sent, 1)
	got := sender.sent[0]
	assert.Equal(t, "info@nacosfudma.org", got.to)
	assert.Equal(t, "[Contact] Sponsorship", got.subject)
	assert.Contains(t, got.body, "John Doe")
	assert.NotContains(t, got.body, "<script>", "user text is escaped")
}

func TestMailService_TrackWelcomeGoesToStudent(t *testing.T) {
	sender := &fakeSender{}
	ms, err := NewMailService(sender, "", nil)
	require.NoError(t, err)

	require.NoError(t, ms.SendTrackWelcome(dto.TrackJoinedEvent{
		TrackTitle: "Cybersecurity",
		FullName:   "Ibrahim Musa",
		Email:      "ibrahim@student.fudma.edu.ng",
		Level:      "200",
	}))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ibrahim@student.fudma.edu.ng", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Cybersecurity")
}

func TestMailService_Errors(t *testing.T) {
	ms, err := NewMailService(&fakeSender{}, "", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, ms.SendContactNotice(dto.ContactMessageEvent{}), ErrNoInbox)
	assert.ErrorIs(t, ms.SendCollaboratorNotice(dto.CollaboratorSubmittedEvent{}), ErrNoInbox)

	boom := errors.New("535 auth failed")
	ms, err = NewMailService(&fakeSender{err: boom}, "info@nacosfudma.org", nil)
	require.NoError(t, err)
	err = ms.SendCollaboratorNotice(dto.CollaboratorSubmittedEvent{CompanyName: "Andela", CollaborationType: "Tech"})
	assert.ErrorIs(t, err, boom)
}

func TestBuildMessage_HeadersStayOnOneLine(t *testing.T) {
	msg := string(buildMessage("noreply@nacosfudma.org", "NACOS FUDMA", "a@b.com", "Hi\r\nBcc: victim@x.com", "<p>x</p>"))

	head := strings.SplitN(msg, "\r\n\r\n", 2)[0]
	assert.Contains(t, head, "Subject: Hi  Bcc: victim@x.com")
	assert.NotContains(t, head, "\r\nBcc:")
	assert.Contains(t, head, "From: NACOS FUDMA <noreply@nacosfudma.org>")
	assert.True(t, strings.HasSuffix(msg, "<p>x</p>"))
}
