package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/airtrek/concierge/pkg/api"
)

// Logging returns middleware that emits one structured log entry per
// chat request, with the request ID, requested provider, message count,
// duration, and outcome.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ChatStreamer) ChatStreamer {
		return ChatStreamerFunc(func(ctx context.Context, req *api.ChatRequest, w StreamWriter) error {
			start := time.Now()

			err := next.StreamChat(ctx, req, w)

			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("provider", req.Provider),
				slog.Int("messages", len(req.Messages)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "chat request failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "chat request completed", attrs...)
			}

			return err
		})
	}
}
