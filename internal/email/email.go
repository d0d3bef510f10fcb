package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
)

// Info describes a notification email: its subject line, the sender address,
// and the body template. Body templates use text/template syntax and receive
// the variable map passed to Send.
type Info struct {
	FromAddress  string
	Subject      string
	BodyTemplate string
}

// Sender delivers a templated email to a single recipient.
type Sender interface {
	// Send renders the body template with vars and delivers the message.
	Send(ctx context.Context, to string, info Info, vars map[string]string) error
}

// renderBody executes the body template against the variable map.
func renderBody(info Info, vars map[string]string) (string, error) {
	tmpl, err := template.New("body").Parse(info.BodyTemplate)
	if err != nil {
		return "", fmt.Errorf("parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}

	return buf.String(), nil
}
