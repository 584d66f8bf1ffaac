package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/pkg/logger"
)

// loggingTransport logs one line per round trip
type loggingTransport struct {
	next http.RoundTripper
	log  *logger.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.WarnContext(ctx, "request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	t.log.InfoContext(ctx, "request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
