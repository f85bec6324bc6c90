package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/logger"
)

// Sender is the surface services depend on to dispatch transactional mail.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Client delivers mail through a configured SMTP relay.
type Client struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
}

// New builds an SMTP mailer from configuration.
func New(cfg config.SMTPConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &Client{cfg: cfg, logg: logg}, nil
}

// Send writes the message to the relay. A cancelled context aborts before dial.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}
	if !ValidAddress(msg.To) {
		return fmt.Errorf("invalid recipient address %q", msg.To)
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}

	payload := buildPayload(c.cfg, msg)

	var auth smtp.Auth
	if c.cfg.Username != "" && c.cfg.Password != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	if c.cfg.DisableTLS {
		if err := smtp.SendMail(c.cfg.Addr(), auth, c.cfg.FromAddress, []string{msg.To}, payload); err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
	} else if err := c.sendWithStartTLS(auth, msg.To, payload); err != nil {
		return err
	}

	if c.logg != nil {
		logCtx := c.logg.WithFields(ctx, map[string]any{
			"recipient": msg.To,
			"subject":   msg.Subject,
		})
		c.logg.Info(logCtx, "email.sent")
	}
	return nil
}

func (c *Client) sendWithStartTLS(auth smtp.Auth, to string, payload []byte) error {
	client, err := smtp.Dial(c.cfg.Addr())
	if err != nil {
		return fmt.Errorf("connect to smtp relay: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: c.cfg.Host}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(c.cfg.FromAddress); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}

	return client.Quit()
}

func buildPayload(cfg config.SMTPConfig, msg Message) []byte {
	var b strings.Builder

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}

	b.WriteString(fmt.Sprintf("From: %s\r\n", headerValue(from)))
	b.WriteString(fmt.Sprintf("To: %s\r\n", headerValue(msg.To)))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", headerValue(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return []byte(b.String())
}

// headerValue strips CR and LF so caller-supplied text cannot smuggle
// extra headers into the payload.
func headerValue(v string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, v)
}

// ValidAddress applies the minimal local@domain.tld shape check used before dialing.
func ValidAddress(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
