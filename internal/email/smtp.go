package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds SMTP delivery settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
}

// SMTPSender delivers email over SMTP using go-mail.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	return &SMTPSender{cfg: cfg, logger: logger}, nil
}

// Send renders the body template and delivers the message over SMTP.
func (s *SMTPSender) Send(ctx context.Context, to string, info Info, vars map[string]string) error {
	body, err := renderBody(info, vars)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(info.FromAddress); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(info.Subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Port 465 uses implicit TLS; everything else negotiates STARTTLS.
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.InfoContext(ctx, "email sent",
		slog.String("to", to),
		slog.String("subject", info.Subject),
	)

	return nil
}

// LogSender writes email contents to the log instead of delivering them.
// Used in development and tests.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send renders the body template and logs the message.
func (s *LogSender) Send(ctx context.Context, to string, info Info, vars map[string]string) error {
	body, err := renderBody(info, vars)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "email (log sender)",
		slog.String("to", to),
		slog.String("subject", info.Subject),
		slog.String("body", body),
	)

	return nil
}
