package services

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/interfaces"
	"github.com/muaishaq001/nacos-hub/internal/templates"
	"go.uber.org/zap"
)

const (
	gmailHost = "smtp.gmail.com"
	gmailAddr = "smtp.gmail.com:587"
)

var ErrNoInbox = errors.New("MAIL_INBOX is not configured")

// SMTPSender delivers html mail through Gmail with STARTTLS.
type SMTPSender struct {
	gmailUser    string
	gmailAppPass string
	mailFrom     string
	mailFromName string
}

func NewSMTPSender(gmailUser, gmailAppPass, mailFrom, mailFromName string) *SMTPSender {
	if mailFrom == "" {
		mailFrom = gmailUser
	}
	return &SMTPSender{
		gmailUser:    gmailUser,
		gmailAppPass: gmailAppPass,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	return s.sendSMTPWithTimeout(to, buildMessage(s.mailFrom, s.mailFromName, to, subject, htmlBody))
}

func buildMessage(from, fromName, to, subject, htmlBody string) []byte {
	fromHeader := fmt.Sprintf("%s <%s>", headerSafe(fromName), from)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", headerSafe(to)),
		fmt.Sprintf("Subject: %s", headerSafe(subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")
	return []byte(msg)
}

// headerSafe keeps user supplied text on one header line.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

func (s *SMTPSender) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", gmailAddr, 8*time.Second)
	if err != nil {
		return err
	}
	// bounds the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, gmailHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: gmailHost}); err != nil {
			return err
		}
	}
	auth := smtp.PlainAuth("", s.gmailUser, s.gmailAppPass, gmailHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// MailService renders the association mails. Contact messages and
// collaboration applications go to the inbox, track welcomes to the student.
type MailService struct {
	sender interfaces.MailSender
	inbox  string
	tmpl   *template.Template
	logger *zap.Logger
}

func NewMailService(sender interfaces.MailSender, inbox string, logger *zap.Logger) (*MailService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &MailService{sender: sender, inbox: inbox, tmpl: tmpl, logger: logger}, nil
}

func (s *MailService) SendContactNotice(ev dto.ContactMessageEvent) error {
	if s.inbox == "" {
		return ErrNoInbox
	}
	return s.send(s.inbox, "[Contact] "+ev.Subject, "contact-message.html", ev)
}

func (s *MailService) SendCollaboratorNotice(ev dto.CollaboratorSubmittedEvent) error {
	if s.inbox == "" {
		return ErrNoInbox
	}
	subject := fmt.Sprintf("[Collaboration] %s (%s)", ev.CompanyName, ev.CollaborationType)
	return s.send(s.inbox, subject, "collaborator-application.html", ev)
}

func (s *MailService) SendTrackWelcome(ev dto.TrackJoinedEvent) error {
	return s.send(ev.Email, "Welcome to the NACOS Tech Guild", "track-welcome.html", ev)
}

func (s *MailService) send(to, subject, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	s.logger.Info("smtp sending", zap.String("to", to), zap.String("template", name))
	if err := s.sender.Send(to, subject, buf.String()); err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	s.logger.Info("mail sent", zap.String("to", to))
	return nil
}
