package mailer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/wneessen/go-mail"
)

// Send composes the plain-text email and delivers it
func (m *implMailer) Send(ctx context.Context, msg Message) error {
	const op = "mailer.Send"

	if !m.cfg.Enabled() {
		return apperrors.DeliveryFailed(op, nil, "email is not configured")
	}

	mm, err := m.build(msg)
	if err != nil {
		return apperrors.DeliveryFailed(op, err, "compose email")
	}

	m.logger.Info(ctx, "Sending summary to %s via %s:%d", m.cfg.To, m.cfg.SMTPServer, m.cfg.SMTPPort)
	if err := m.send(ctx, mm); err != nil {
		return apperrors.DeliveryFailed(op, err, "send email")
	}

	m.logger.Info(ctx, "Summary emailed to %s", m.cfg.To)
	return nil
}

func (m *implMailer) build(msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := mm.To(recipients(m.cfg.To)...); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	mm.Subject(Subject(msg.Summary, msg.ID))
	mm.SetBodyString(mail.TypeTextPlain, FormatBody(msg.Summary, msg.Source))

	if msg.TranscriptPath != "" {
		if info, err := os.Stat(msg.TranscriptPath); err == nil && info.Mode().IsRegular() {
			stem := strings.TrimSuffix(filepath.Base(msg.TranscriptPath), filepath.Ext(msg.TranscriptPath))
			mm.AttachFile(msg.TranscriptPath, mail.WithFileName("transcript_"+stem+".txt"))
		}
	}
	return mm, nil
}

func recipients(to string) []string {
	var out []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
