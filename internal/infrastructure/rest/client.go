// Package rest implements the action functions: one method per backend
// endpoint, each performing exactly one HTTP call and mapping the raw
// response into the domain shape. Network errors and 4xx/5xx responses all
// collapse into domain.ErrRequestFailed; retries are never attempted.
package rest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
	"github.com/teslo-shop/storefront-go/internal/metrics"
)

const requestTimeout = 15 * time.Second

// Client is the single configured HTTP client behind every action. A
// request hook attaches the persisted bearer token to each outgoing call,
// mirroring how the session survives process restarts.
type Client struct {
	http    *resty.Client
	baseURL string
	tokens  ports.TokenStore
	log     zerolog.Logger
}

// NewClient builds a client targeting baseURL (e.g. "http://localhost:3000/api").
func NewClient(baseURL string, tokens ports.TokenStore, log zerolog.Logger) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	httpc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	httpc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		token, err := tokens.Get(req.Context())
		if err != nil {
			if !errors.Is(err, domain.ErrNoToken) {
				log.Warn().Err(err).Msg("token store read failed, sending unauthenticated request")
			}
			return nil
		}
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	})

	return &Client{http: httpc, baseURL: baseURL, tokens: tokens, log: log}
}

// send runs one request, records metrics, and collapses every failure mode
// into domain.ErrRequestFailed with the cause preserved for logging.
func (c *Client) send(action string, req *resty.Request, method, url string) (*resty.Response, error) {
	start := time.Now()
	resp, err := req.Execute(method, url)
	metrics.RequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RequestsTotal.WithLabelValues(action, "error").Inc()
		c.log.Debug().Err(err).Str("action", action).Msg("request failed")
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRequestFailed, action, err)
	}
	if resp.IsError() {
		metrics.RequestsTotal.WithLabelValues(action, "error").Inc()
		c.log.Debug().Int("status", resp.StatusCode()).Str("action", action).Msg("request rejected")
		return resp, fmt.Errorf("%w: %s: status %d", domain.ErrRequestFailed, action, resp.StatusCode())
	}

	metrics.RequestsTotal.WithLabelValues(action, "ok").Inc()
	return resp, nil
}

// absoluteImageURL rewrites a backend image filename into a fully-qualified
// URL under the file-serving path. Already-absolute URLs pass through, so
// the rewrite is idempotent across cache round trips.
func (c *Client) absoluteImageURL(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return c.baseURL + "/files/product/" + image
}

func (c *Client) absoluteImages(images []string) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = c.absoluteImageURL(img)
	}
	return out
}
