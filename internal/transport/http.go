package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "desearch/1.0"
	tracerName       = "desearch/transport"
)

// HTTPConfig captures the knobs of the HTTP transport
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// HTTP is a resty-backed Transport
type HTTP struct {
	client *resty.Client
	logger *zap.Logger
	tracer trace.Tracer
}

var _ Transport = (*HTTP)(nil)

// NewHTTP creates an HTTP transport. Retries are disabled so that every
// search maps to exactly one request.
func NewHTTP(cfg HTTPConfig) *HTTP {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	userAgent := defaultUserAgent
	if cfg.UserAgent != "" {
		userAgent = cfg.UserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &HTTP{
		client: client,
		logger: logger.Named("transport"),
		tracer: otel.Tracer(tracerName),
	}
}

// Get performs a GET request against url
func (h *HTTP) Get(ctx context.Context, url string) (*Response, error) {
	requestID, ok := RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
	}

	ctx, span := h.tracer.Start(ctx, "desearch.transport.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", url),
			attribute.String("request.id", requestID),
		))
	defer span.End()

	req := h.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := req.Get(url)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Debug("request failed",
			zap.String("url", url),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if resp.StatusCode() >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status())
	}
	h.logger.Debug("request completed",
		zap.String("url", url),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("elapsed", elapsed))

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
