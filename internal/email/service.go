package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendApplicationReceipt confirms receipt of a job application to the
// applicant, including the code they need for status checks.
func (s *Service) SendApplicationReceipt(to, name, vacancyTitle, applicationCode string) error {
	subject := fmt.Sprintf("Application received - %s", vacancyTitle)
	body := BuildApplicationReceiptBody(name, vacancyTitle, applicationCode)
	return s.send(to, subject, body)
}

// SendApplicationAlert notifies the careers inbox of a new application.
func (s *Service) SendApplicationAlert(to, applicantName, applicantEmail, vacancyTitle, applicationCode string) error {
	subject := fmt.Sprintf("New application for %s (%s)", vacancyTitle, applicationCode)
	body := BuildApplicationAlertBody(applicantName, applicantEmail, vacancyTitle, applicationCode)
	return s.send(to, subject, body)
}

// SendStatusUpdate tells an applicant their application moved to a new status.
func (s *Service) SendStatusUpdate(to, name, applicationCode, status string) error {
	subject := fmt.Sprintf("Application %s - status update", applicationCode)
	body := BuildStatusUpdateBody(name, applicationCode, status)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
