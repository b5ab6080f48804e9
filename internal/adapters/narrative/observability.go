package narrative

import (
	"context"

	"github.com/teampulse/pulse/pkg/logger"
)

// CallEvent records metadata about a single narrative invocation.
type CallEvent struct {
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about narrative calls for logging and
// metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes narrative call events to the application log.
type LogObserver struct {
	logger logger.Logger
}

// NewLogObserver creates an Observer backed by the global logger.
func NewLogObserver() *LogObserver {
	return &LogObserver{logger: logger.Get().Named("narrative")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ctx := context.Background()
	if event.Success {
		o.logger.Debug(ctx, "narrative call complete",
			logger.String("model", event.Model),
			logger.Int("latency_ms", int(event.LatencyMs)),
		)
		return
	}
	o.logger.Warn(ctx, "narrative call failed",
		logger.String("model", event.Model),
		logger.Int("latency_ms", int(event.LatencyMs)),
		logger.String("code", event.ErrorCode),
	)
}
