package notification

import "log/slog"

// Sender identifies the mailbox notification mail is sent from.
type Sender struct {
	Address string
	Name    string
}

// Message is an outbound notification mail.
type Message struct {
	From      string
	Recipient string
	Subject   string
	Body      string
}

// Mailer delivers notification mail. Delivery failures are the caller's
// problem to log; they must never propagate into the write path that
// triggered the notification.
type Mailer interface {
	Send(msg Message) error
}

// LogMailer writes mail to the log instead of delivering it. Used in
// development and tests.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(msg Message) error {
	m.logger.Info("mail sent",
		"from", msg.From,
		"recipient", msg.Recipient,
		"subject", msg.Subject,
		"body_length", len(msg.Body))
	return nil
}
