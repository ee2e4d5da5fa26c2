// Package mailer defines the outbound mail seam for account
// notifications. Actual delivery belongs to the embedding service.
package mailer

import (
	"context"

	"github.com/kasuganosora/clientauth/model"
	"go.uber.org/zap"
)

// Message is one outbound mail.
type Message struct {
	To      []string
	From    string
	Subject string
	Body    string
	Headers map[string]string
}

// Transport delivers messages. Implementations are supplied by the
// embedding service (SMTP, provider API, queue).
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// EmailAccount sends a message addressed to the account's email.
// An empty from leaves the sender to the transport's default.
func EmailAccount(ctx context.Context, t Transport, acc *model.Account, subject, body, from string, headers map[string]string) error {
	return t.Send(ctx, Message{
		To:      []string{acc.EmailAddress()},
		From:    from,
		Subject: subject,
		Body:    body,
		Headers: headers,
	})
}

// LogTransport writes messages to the log instead of delivering them.
// Useful in development and tests.
type LogTransport struct {
	Logger *zap.Logger
}

func (l *LogTransport) Send(_ context.Context, msg Message) error {
	l.Logger.Info("mail",
		zap.Strings("to", msg.To),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject),
	)
	return nil
}
