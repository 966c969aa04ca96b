package interfaces

type MailSender interface {
	Send(to, subject, htmlBody string) error
}
