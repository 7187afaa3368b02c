package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogTransport writes messages to the log instead of sending them.
type LogTransport struct {
	logger *zap.Logger
}

func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Deliver(_ context.Context, msg Message) error {
	t.logger.Info("email",
		zap.String("kind", msg.Kind),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
