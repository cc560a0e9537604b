package mailer

import (
	"context"

	"github.com/labstack/gommon/log"
)

// Sender delivers one message per call. Implementations make a single
// attempt and report failure synchronously; there is no retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string // plain text
}

// LogSender writes messages to the log instead of sending them. It is
// used when no transport is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	log.Infof("mail transport disabled, would send %q to %s", msg.Subject, msg.To)
	return nil
}
