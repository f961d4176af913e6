// internal/dataclient/client.go
package dataclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pixisphere/internal/common/config"
	apperrors "pixisphere/internal/common/errors"
	httpclient "pixisphere/internal/common/http"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/common/metrics"
	"pixisphere/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	endpointCollection = "collection"
	endpointDetail     = "detail"

	userAgent = "pixisphere/1.0"
)

// Fetcher is the read side of the upstream API.
type Fetcher interface {
	ListPhotographers(ctx context.Context) ([]models.Photographer, error)
	GetPhotographer(ctx context.Context, id string) (*models.Photographer, error)
}

// Client issues one GET per call. It never retries or caches.
type Client struct {
	http          *httpclient.Client
	collectionURL string
	detailBaseURL string
	logger        logger.Logger
	tracer        trace.Tracer
}

type Option func(*Client)

// WithTracer sets the tracer used for upstream spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(cfg config.APIConfig, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		http:          httpclient.NewClient(config.GetDuration(cfg.Timeout), userAgent),
		collectionURL: cfg.CollectionURL(),
		detailBaseURL: strings.TrimRight(cfg.DetailBaseURL, "/"),
		logger:        log.WithFields(map[string]interface{}{"component": "dataclient"}),
		tracer:        otel.Tracer("pixisphere/dataclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPhotographers fetches the full collection.
func (c *Client) ListPhotographers(ctx context.Context) ([]models.Photographer, error) {
	body, err := c.get(ctx, endpointCollection, c.collectionURL)
	if err != nil {
		return nil, err
	}

	if res := collectionSchema.Validate(body); !res.Valid {
		c.observe(endpointCollection, metrics.OutcomeFailure)
		return nil, apperrors.NewInvalidPayloadError(c.collectionURL, res.Err())
	}

	var list []models.Photographer
	if err := json.Unmarshal(body, &list); err != nil {
		c.observe(endpointCollection, metrics.OutcomeFailure)
		return nil, apperrors.NewInvalidPayloadError(c.collectionURL, err)
	}

	c.observe(endpointCollection, metrics.OutcomeSuccess)
	c.logger.Debug("collection fetched", map[string]interface{}{
		"count": len(list),
	})
	return list, nil
}

// DetailURL is the detail endpoint for id. The id is path-escaped but
// otherwise forwarded verbatim.
func (c *Client) DetailURL(id string) string {
	return c.detailBaseURL + "/photographers/" + url.PathEscape(id)
}

// GetPhotographer fetches one record. A 404 or an empty object is reported
// as NotFound.
func (c *Client) GetPhotographer(ctx context.Context, id string) (*models.Photographer, error) {
	target := c.DetailURL(id)

	body, err := c.get(ctx, endpointDetail, target)
	if err != nil {
		return nil, err
	}

	if res := detailSchema.Validate(body); !res.Valid {
		c.observe(endpointDetail, metrics.OutcomeFailure)
		return nil, apperrors.NewInvalidPayloadError(target, res.Err())
	}

	var p models.Photographer
	if err := json.Unmarshal(body, &p); err != nil {
		c.observe(endpointDetail, metrics.OutcomeFailure)
		return nil, apperrors.NewInvalidPayloadError(target, err)
	}
	if p.IsEmpty() {
		c.observe(endpointDetail, metrics.OutcomeNotFound)
		return nil, apperrors.NewNotFoundError("photographer", id)
	}

	c.observe(endpointDetail, metrics.OutcomeSuccess)
	return &p, nil
}

// get performs the request inside a span and maps transport and status
// failures. On a nil error the body belongs to a 2xx response.
func (c *Client) get(ctx context.Context, endpoint, target string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "dataclient."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", target)),
	)
	defer span.End()

	start := time.Now()
	status, body, err := c.http.Get(ctx, target)
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.observe(endpoint, metrics.OutcomeFailure)
		return nil, apperrors.NewFetchFailedError(target, err)
	}

	switch {
	case status == http.StatusNotFound && endpoint == endpointDetail:
		span.SetStatus(codes.Error, "not found")
		c.observe(endpoint, metrics.OutcomeNotFound)
		return nil, apperrors.NewNotFoundError("photographer", target).
			WithMetadata("status", status)
	case status < 200 || status > 299:
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		c.observe(endpoint, metrics.OutcomeFailure)
		return nil, apperrors.NewUpstreamStatusError(target, status)
	}
	return body, nil
}

func (c *Client) observe(endpoint, outcome string) {
	metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}
