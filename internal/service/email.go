package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendContributionSubmitted(ctx context.Context, to, memberName, groupName, amount string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New contribution to review - %s", groupName))

	body := fmt.Sprintf("Hello,\n\n%s has submitted a contribution of %s to %s.\n\nPlease sign in to confirm or reject it.\n\nBest regards,\nThe Harambee Team", memberName, amount, groupName)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send submission email: %w", err)
	}

	return nil
}

func (s *emailService) SendContributionReviewed(ctx context.Context, to, groupName, amount string, confirmed bool, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)

	var body string
	if confirmed {
		m.SetHeader("Subject", fmt.Sprintf("Contribution confirmed - %s", groupName))
		body = fmt.Sprintf("Hello,\n\nYour contribution of %s to %s has been confirmed.", amount, groupName)
	} else {
		m.SetHeader("Subject", fmt.Sprintf("Contribution rejected - %s", groupName))
		body = fmt.Sprintf("Hello,\n\nYour contribution of %s to %s was rejected.", amount, groupName)
		if reason != "" {
			body += fmt.Sprintf("\n\nReason: %s", reason)
		}
	}
	body += "\n\nBest regards,\nThe Harambee Team"

	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send review email: %w", err)
	}

	return nil
}
