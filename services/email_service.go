package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/Dosada05/sports-day-system/config"
	"github.com/Dosada05/sports-day-system/models"
)

// EmailService sends transactional mail over SMTP. When the configuration has
// no SMTP host the service becomes a no-op, so local setups work without a
// mail server.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) enabled() bool {
	return s.cfg.SMTPHost != ""
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if !s.enabled() {
		return nil
	}
	if len(to) == 0 {
		return nil
	}

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("smtp client creation failed: %w", err)
		}
	} else {
		// STARTTLS (usually port 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp STARTTLS failed: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("smtp RCPT failed for %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err = writer.Write(msg); err != nil {
		return fmt.Errorf("smtp write failed: %w", err)
	}
	return writer.Close()
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to Sports Day, {{.FullName}}!</h2>
<p>Your guardian account has been created. Once participants are linked to
your email you will see their schedules and results on your dashboard.</p>
`))

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	if !s.enabled() {
		return nil
	}
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, user); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}
	return s.SendEmail([]string{user.Email}, "Welcome to Sports Day", body.String())
}

var resultsTemplate = template.Must(template.New("results").Parse(`
<h2>Results recorded: {{.Event.Name}}</h2>
<p>Positions have been recorded for {{.Event.Name}}.</p>
<table border="1" cellpadding="4">
	<tr><th>Position</th><th>Points</th></tr>
	{{range .Results}}<tr><td>{{.Position}}</td><td>{{.PointsAwarded}}</td></tr>
	{{end}}
</table>
`))

// SendResultsRecorded emails guardians of scored participants after an event
// is scored. Recipients are blind-copied individually.
func (s *EmailService) SendResultsRecorded(event *models.Event, results []models.Result, recipients []string) error {
	if !s.enabled() {
		return nil
	}
	var body bytes.Buffer
	data := struct {
		Event   *models.Event
		Results []models.Result
	}{Event: event, Results: results}
	if err := resultsTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render results email: %w", err)
	}

	subject := fmt.Sprintf("Sports Day results: %s", event.Name)
	for _, recipient := range recipients {
		if err := s.SendEmail([]string{recipient}, subject, body.String()); err != nil {
			return err
		}
	}
	return nil
}
