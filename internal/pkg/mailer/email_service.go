package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, name, notebookName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

// NewEmailService returns a no-op sender when host is empty so local setups
// can register users without an SMTP relay.
func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	if host == "" {
		return &noopEmailService{}
	}

	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendWelcome(toEmail, name, notebookName string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to NoteStack")
	m.SetBody("text/html", welcomeBody(name, notebookName))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome mail to %s: %w", toEmail, err)
	}
	return nil
}

func welcomeBody(name, notebookName string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your account is ready. New notes land in your <b>%s</b> notebook until you file them somewhere else.</p>
			<p>Share a note with a friend by showing them its QR code.</p>
		</div>
	`, name, notebookName)
}

type noopEmailService struct{}

func (*noopEmailService) SendWelcome(string, string, string) error {
	return nil
}
