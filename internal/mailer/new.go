package mailer

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/wneessen/go-mail"
)

type implMailer struct {
	cfg    config.EmailConfig
	logger logger.Logger
	send   func(ctx context.Context, m *mail.Msg) error
}

// New creates a Mailer that delivers over SMTP with STARTTLS
func New(cfg config.EmailConfig, log logger.Logger) Mailer {
	m := &implMailer{cfg: cfg, logger: log}
	m.send = m.dialAndSend
	return m
}

func (m *implMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(m.cfg.SMTPServer,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.From),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
