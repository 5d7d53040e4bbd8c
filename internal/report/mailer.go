package report

import (
	"fmt"

	"glowcheck/pkg/logger"
)

// Mailer is a placeholder for a real email sending service.
type Mailer struct {
	log *logger.Logger
}

func NewMailer(log *logger.Logger) *Mailer {
	return &Mailer{log: log}
}

// SendReport simulates delivering the generated report.
func (m *Mailer) SendReport(email, name, title, body string) error {
	m.log.Infow("Sending report email", "to", email, "title", title)
	// In a real deployment this would go through an SMTP client or a
	// transactional email API.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: %s\nHi %s,\n\n%s\n\n", email, title, name, body)
	return nil
}
