package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/jfraser77/hrops-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// OverdueEmailData feeds both overdue templates.
type OverdueEmailData struct {
	EmployeeName    string
	TerminationDate string
	DaysSince       int
}

// EmailService defines the interface for sending emails. Sending is
// best-effort: callers log failures and move on.
type EmailService interface {
	// SendOverdueReminder emails the departed employee, with HR CC'd.
	SendOverdueReminder(to string, cc []string, data OverdueEmailData) error
	// SendOverdueAlert emails the HR distribution list.
	SendOverdueAlert(to []string, data OverdueEmailData) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

func (s *emailServiceImpl) SendOverdueReminder(to string, cc []string, data OverdueEmailData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "overdue_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := "Reminder: company equipment return is overdue"
	return s.sendHTML([]string{to}, cc, subject, body.String())
}

func (s *emailServiceImpl) SendOverdueAlert(to []string, data OverdueEmailData) error {
	if len(to) == 0 {
		slog.Warn("No HR notification emails configured, skipping overdue alert",
			"employee", data.EmployeeName)
		return nil
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "hr_overdue_alert.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Equipment return overdue: %s", data.EmployeeName)
	return s.sendHTML(to, nil, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, cc []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(to, ", "))
	if len(cc) > 0 {
		headers += fmt.Sprintf("Cc: %s\r\n", strings.Join(cc, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)
	recipients := append(append([]string{}, to...), cc...)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, recipients, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
