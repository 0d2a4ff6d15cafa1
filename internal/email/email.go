package email

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"awardflow/internal/config"
	"awardflow/internal/models"
)

// Service handles email notifications for award pipeline events
type Service struct {
	config *config.EmailConfig
}

// NewService creates a new email service
func NewService(cfg *config.EmailConfig) *Service {
	return &Service{
		config: cfg,
	}
}

// SendStageAdvancedNotification notifies a unit that a role approved its application
func (s *Service) SendStageAdvancedNotification(to string, applicationID uint, appType models.ApplicationType, role models.Role) error {
	subject := fmt.Sprintf("Application #%d Approved at %s Level", applicationID, roleTitle(role))
	applicationURL := fmt.Sprintf("%s/applications/%d", s.config.PortalURL, applicationID)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application Approved</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2e7d32;">Application Approved</h2>
        <p>Your %s application <strong>#%d</strong> has been approved at the <strong>%s</strong> level and forwarded to the next stage.</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #2e7d32; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">View Application</a>
        </div>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, appType, applicationID, roleTitle(role), applicationURL)

	return s.sendEmail(to, subject, body)
}

// SendRejectionNotification notifies a unit that its application was rejected
func (s *Service) SendRejectionNotification(to string, applicationID uint, appType models.ApplicationType, role models.Role) error {
	subject := fmt.Sprintf("Application #%d Rejected", applicationID)
	applicationURL := fmt.Sprintf("%s/applications/%d", s.config.PortalURL, applicationID)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application Rejected</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #c62828;">Application Rejected</h2>
        <p>Your %s application <strong>#%d</strong> was rejected at the <strong>%s</strong> level.</p>
        <p>You can review the application details and any clarification remarks in the portal:</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #c62828; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">View Application</a>
        </div>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, appType, applicationID, roleTitle(role), applicationURL)

	return s.sendEmail(to, subject, body)
}

// SendWithdrawalDecisionNotification notifies the requesting side of a withdrawal decision
func (s *Service) SendWithdrawalDecisionNotification(to string, applicationID uint, status models.WithdrawStatus) error {
	subject := fmt.Sprintf("Withdrawal Request for Application #%d: %s", applicationID, status)
	applicationURL := fmt.Sprintf("%s/applications/%d", s.config.PortalURL, applicationID)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Withdrawal Decision</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4a90e2;">Withdrawal Request Decided</h2>
        <p>The withdrawal request for application <strong>#%d</strong> has been <strong>%s</strong>.</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #4a90e2; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">View Application</a>
        </div>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, applicationID, status, applicationURL)

	return s.sendEmail(to, subject, body)
}

// SendFinalizedNotification notifies a unit that its application completed the pipeline
func (s *Service) SendFinalizedNotification(to string, applicationID uint, appType models.ApplicationType) error {
	subject := fmt.Sprintf("Application #%d Finalized", applicationID)
	applicationURL := fmt.Sprintf("%s/applications/%d", s.config.PortalURL, applicationID)

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Application Finalized</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2e7d32;">Congratulations!</h2>
        <p>Your %s application <strong>#%d</strong> has completed all approval stages and been finalized at CW2 level.</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #2e7d32; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">View Application</a>
        </div>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, appType, applicationID, applicationURL)

	return s.sendEmail(to, subject, body)
}

// SendWithdrawalReminder reminds a reviewer about withdrawal requests awaiting decision
func (s *Service) SendWithdrawalReminder(to string, pendingIDs []uint) error {
	subject := fmt.Sprintf("%d Withdrawal Request(s) Awaiting Decision", len(pendingIDs))

	var items bytes.Buffer
	for _, id := range pendingIDs {
		items.WriteString(fmt.Sprintf(`<li><a href="%s/applications/%d">Application #%d</a></li>`, s.config.PortalURL, id, id))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Pending Withdrawal Requests</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4a90e2;">Pending Withdrawal Requests</h2>
        <p>The following withdrawal requests are awaiting your decision:</p>
        <ul>%s</ul>
        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>
`, items.String())

	return s.sendEmail(to, subject, body)
}

func roleTitle(role models.Role) string {
	switch role {
	case models.RoleBrigade:
		return "Brigade"
	case models.RoleDivision:
		return "Division"
	case models.RoleCorps:
		return "Corps"
	case models.RoleCommand:
		return "Command"
	case models.RoleCW2MO:
		return "Medical Officer"
	case models.RoleCW2OL:
		return "Operational Leader"
	default:
		return string(role)
	}
}

func (s *Service) sendEmail(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.config.SMTPFrom
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var message bytes.Buffer
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := net.JoinHostPort(s.config.SMTPHost, s.config.SMTPPort)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		slog.Error("Failed to connect to SMTP server", "address", addr, "error", err)
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func(conn net.Conn) {
		if err := conn.Close(); err != nil {
			slog.Error("Failed to close SMTP connection", "error", err)
		}
	}(conn)

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func(client *smtp.Client) {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close SMTP client", "error", err)
		}
	}(client)

	// No authentication for local development relays (e.g. Mailpit)
	if s.config.SMTPUsername != "" && s.config.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
		_ = client.Auth(auth)
	}

	if err := client.Mail(s.config.SMTPFrom); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to initiate data transfer: %w", err)
	}
	defer func(wc io.WriteCloser) {
		if err := wc.Close(); err != nil {
			slog.Error("Failed to close message writer", "error", err)
		}
	}(wc)

	if _, err := wc.Write(message.Bytes()); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	slog.Info("Email sent", "to", to, "subject", subject)

	return nil
}
