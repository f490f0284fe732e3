// Package mail provides the email delivery channel for claim submissions.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"path/filepath"
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	infraconfig "github.com/claimdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ArtifactReader loads artifact bytes by file reference
type ArtifactReader interface {
	Read(ctx context.Context, fileRef string) ([]byte, error)
}

// sendFunc matches smtp.SendMail; swapped in tests
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPChannel sends claim emails with the export artifact attached
type SMTPChannel struct {
	cfg    *infraconfig.MailConfig
	reader ArtifactReader
	send   sendFunc
	logger *zap.Logger
}

// NewSMTPChannel creates the SMTP mail channel
func NewSMTPChannel(cfg *infraconfig.MailConfig, reader ArtifactReader, logger *zap.Logger) *SMTPChannel {
	return &SMTPChannel{
		cfg:    cfg,
		reader: reader,
		send:   smtp.SendMail,
		logger: logger,
	}
}

// CanSend reports whether the channel is configured for delivery
func (c *SMTPChannel) CanSend() bool {
	return c.cfg != nil && c.cfg.Enabled && c.cfg.Host != "" && c.cfg.From != ""
}

// Compose builds a MIME multipart message with the artifact attached and
// sends it
func (c *SMTPChannel) Compose(ctx context.Context, recipient, subject, body, attachmentRef string) error {
	if !c.CanSend() {
		return fmt.Errorf("mail channel is not configured")
	}

	attachment, err := c.reader.Read(ctx, attachmentRef)
	if err != nil {
		return claims.ErrFileNotFound
	}
	attachmentName := filepath.Base(attachmentRef)

	msg := buildMessage(c.cfg.From, recipient, subject, body, attachmentName, attachment)

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	if err := c.send(addr, auth, c.cfg.From, []string{recipient}, msg); err != nil {
		return claims.NewNetworkError(err)
	}

	c.logger.Info("claim email sent",
		zap.String("recipient", recipient),
		zap.String("attachment", attachmentName),
		zap.Int("attachment_bytes", len(attachment)))

	return nil
}

// buildMessage assembles an RFC 2045 multipart message with one base64
// attachment
func buildMessage(from, to, subject, body, attachmentName string, attachment []byte) []byte {
	const boundary = "claimdesk-attachment-boundary"

	contentType := mime.TypeByExtension(filepath.Ext(attachmentName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", attachmentName)

	encoded := base64.StdEncoding.EncodeToString(attachment)
	// Wrap base64 at 76 characters per RFC 2045
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

var _ appclaims.MailChannel = (*SMTPChannel)(nil)
