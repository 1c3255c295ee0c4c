package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendIssueAlert(toEmail, title, category, unitName, targetKey string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

// SendIssueAlert mails a high-severity issue to a station quartermaster.
func (s *emailService) SendIssueAlert(toEmail, title, category, unitName, targetKey string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[FireCheck] High severity issue: %s", title))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>High severity issue raised</h2>
			<p><b>%s</b> (%s)</p>
			<p>Unit: %s</p>
			<p>Item: %s</p>
			<p>Open the FireCheck dashboard to review and resolve this issue.</p>
		</div>
	`, title, category, unitName, targetKey)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send issue alert to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
