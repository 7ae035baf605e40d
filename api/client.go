package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/jrsteele09/go-storefront-client/internal/config"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/session"
)

// Client speaks the storefront REST contract: JSON bodies, bearer
// authorization, and a 401 mapped to the universal invalidation sentinel.
// Requests run through a circuit breaker so a dead server fails fast instead
// of tying up every operation for a full timeout; there are no automatic
// retries.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*response]
	log     zerolog.Logger
}

type response struct {
	status int
	body   []byte
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient initializes a Client for the API at baseURL.
func NewClient(baseURL string, cfg config.HTTPConfig, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.NewClient] baseURL is required")
	}
	if cfg == nil {
		return nil, errors.New("[api.NewClient] cfg is required")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: cfg.GetRequestTimeout()},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}

	client.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "storefront-api",
		MaxRequests: cfg.GetBreakerMaxRequests(),
		Interval:    cfg.GetBreakerInterval(),
		Timeout:     cfg.GetBreakerTimeout(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.GetBreakerConsecutiveFailures()
		},
	})

	return client, nil
}

// do issues one request and reads the whole response. Transport failures,
// including an open breaker, come back wrapped around ErrNetwork; HTTP
// status handling is left to the caller.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.do] Marshal")
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.do] NewRequest")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}
		return &response{status: res.StatusCode, body: data}, nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api: transport failure")
		return nil, errors.Wrapf(interr.ErrNetwork, "[Client.do] %s %s: %v", method, path, err)
	}

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.status).Msg("api: request complete")
	return resp, nil
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// decode unmarshals a success body. A malformed body is reported as a
// server-response error rather than a raw parse failure.
func decode(resp *response, v any) error {
	if err := json.Unmarshal(resp.body, v); err != nil {
		return errors.Wrapf(interr.ErrServerResponse, "[decode] %v", err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response to a typed error: 401 becomes
// the universal invalidation sentinel, everything else a StatusError
// carrying whatever human-readable message the body held.
func errorFromResponse(resp *response) error {
	if resp.status == http.StatusUnauthorized {
		return interr.ErrUnauthorized
	}
	message := serverMessage(resp.body)
	if message == "" {
		message = http.StatusText(resp.status)
	}
	return &interr.StatusError{Status: resp.status, Message: message}
}

// serverMessage pulls the human-readable message out of an error body,
// trying the shapes the server actually uses.
func serverMessage(body []byte) string {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if detail, ok := payload["detail"].(string); ok {
		return detail
	}
	if message, ok := payload["error"].(string); ok {
		return message
	}
	if list, ok := payload["non_field_errors"].([]any); ok {
		if messages := utils.ToStringSlice(list); len(messages) > 0 {
			return messages[0]
		}
	}
	return ""
}

// fieldErrors decodes a validation body of the field-to-messages shape.
// Returns nil when the body holds no usable field errors.
func fieldErrors(body []byte) session.FieldErrors {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return nil
	}

	fields := session.FieldErrors{}
	for field, value := range payload {
		switch v := value.(type) {
		case []any:
			if messages := utils.ToStringSlice(v); len(messages) > 0 {
				fields[field] = messages
			}
		case string:
			fields[field] = []string{v}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
