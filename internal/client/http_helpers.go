package client

import (
	"context"
	"fmt"
	"time"

	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// getRequest describes one GET call against an upstream API.
type getRequest struct {
	provider string
	endpoint string // metrics label
	url      string
	query    [][2]string
	headers  map[string]string
}

// newLimiter builds a limiter from requests-per-second and burst; rps <= 0 disables pacing.
func newLimiter(rps, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = rps
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// doGet executes req with the context deadline (or the client default timeout) and returns a copy
// of the body. Non-200 responses are reported as *entity.UpstreamStatusError.
func doGet(ctx context.Context, hc *fasthttp.Client, limiter *rate.Limiter, timeout time.Duration, logger *zap.Logger, gr getRequest) ([]byte, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limiter: %w", gr.provider, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(gr.url)
	args := req.URI().QueryArgs()
	for _, kv := range gr.query {
		args.Add(kv[0], kv[1])
	}
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range gr.headers {
		req.Header.Set(k, v)
	}
	requestURL := req.URI().String()

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	logger.Debug("Sending upstream request", zap.String("provider", gr.provider), zap.String("url", redact(requestURL)))

	started := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = hc.DoDeadline(req, resp, deadline)
	} else {
		err = hc.DoTimeout(req, resp, timeout)
	}
	if err != nil {
		metrics.ObserveUpstream(gr.provider, gr.endpoint, metrics.OutcomeError, started)
		logger.Error("Failed to execute upstream request", zap.String("provider", gr.provider), zap.String("url", redact(requestURL)), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", redact(requestURL), err)
	}

	body := append([]byte(nil), resp.Body()...)
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		metrics.ObserveUpstream(gr.provider, gr.endpoint, metrics.OutcomeStatus, started)
		logger.Warn("Upstream request returned non-OK status",
			zap.String("provider", gr.provider),
			zap.String("url", redact(requestURL)),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", truncate(body, 512)),
		)
		return nil, &entity.UpstreamStatusError{
			Provider:   gr.provider,
			URL:        redact(requestURL),
			StatusCode: status,
			Body:       string(truncate(body, 512)),
		}
	}

	metrics.ObserveUpstream(gr.provider, gr.endpoint, metrics.OutcomeSuccess, started)
	return body, nil
}

// redact drops the query string, which may carry wallet cursors; keys travel in headers only.
func redact(u string) string {
	for i := 0; i < len(u); i++ {
		if u[i] == '?' {
			return u[:i]
		}
	}
	return u
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
