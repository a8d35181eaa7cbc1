package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
)

// Mailer sends HTML email over SMTP. Delivery failures are returned to the
// caller; nothing is retried here.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	from      string
	supportTo string
}

func NewMailer(host, port, username, password, from, supportTo string) *Mailer {
	return &Mailer{
		host:      strings.TrimSpace(host),
		port:      strings.TrimSpace(port),
		username:  username,
		password:  password,
		from:      strings.TrimSpace(from),
		supportTo: strings.TrimSpace(supportTo),
	}
}

// Send delivers a single HTML message. replyTo may be empty.
func (m *Mailer) Send(ctx context.Context, subject, htmlBody, to, from, replyTo string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	if replyTo != "" {
		message.WriteString(fmt.Sprintf("Reply-To: %s\r\n", replyTo))
	}
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(htmlBody)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, from, []string{to}, []byte(message.String()))
}

// SendPasswordReset mails the reset URL to the account holder. The URL embeds
// the raw secret; this message is its only way out of the system.
func (m *Mailer) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`
    <h2>Hello %s</h2>
    <p>Please use the url below to reset your password</p>
    <p>This reset link is valid for only 30 minutes</p>

    <a href=%q clicktracking=off>%s</a>

    <p>Regards...</p>
    <p>Pinvent Team</p>
    `, html.EscapeString(name), resetURL, html.EscapeString(resetURL))

	return m.Send(ctx, subject, body, email, m.from, "")
}

// SendContactMessage relays a contact-form submission to the support mailbox.
func (m *Mailer) SendContactMessage(ctx context.Context, subject, message, replyTo string) error {
	if m == nil || m.supportTo == "" {
		return errors.New("support mailbox not configured")
	}
	body := fmt.Sprintf("<p>%s</p>", html.EscapeString(message))
	return m.Send(ctx, subject, body, m.supportTo, m.from, replyTo)
}
