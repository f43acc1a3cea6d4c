// Package api is the typed REST client of the course community backend.
//
// Every call goes through one cookie-bearing resty client so the backend session
// cookie set by Login is sent with later requests.
package api

import (
	"context"
	"net/http"
	"time"

	"coursehub/internal/errs"
	"coursehub/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	ResourcesAPI string
	Timeout      time.Duration
	Logger       *zap.Logger
	// HTTPClient replaces the default client (and its cookie jar) when set.
	HTTPClient *http.Client
}

// Client talks to the backend REST API.
type Client struct {
	rest         *resty.Client
	baseURL      string
	resourcesAPI string
	log          *zap.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	var rest *resty.Client
	if opts.HTTPClient != nil {
		rest = resty.NewWithClient(opts.HTTPClient)
	} else {
		rest = resty.New()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rest.SetBaseURL(opts.BaseURL).
		SetLogger(log.Sugar()).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rest.SetTimeout(opts.Timeout)
	}
	return &Client{
		rest:         rest,
		baseURL:      opts.BaseURL,
		resourcesAPI: opts.ResourcesAPI,
		log:          log,
	}
}

// request describes one backend call.
type request struct {
	op        string
	method    string
	url       string
	query     map[string]string
	body      interface{}
	multipart map[string]string
	file      *Upload
	out       interface{}
}

func (c *Client) do(ctx context.Context, r request) error {
	apiErr := &models.AuthResponse{}
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetError(apiErr).
		ForceContentType("application/json")
	if r.query != nil {
		req.SetQueryParams(r.query)
	}
	if r.body != nil {
		req.SetBody(r.body)
	}
	if r.multipart != nil {
		req.SetMultipartFormData(r.multipart)
	}
	if r.file != nil {
		req.SetFileReader(r.file.Field(), r.file.Filename, r.file.Reader)
	}
	if r.out != nil {
		req.SetResult(r.out)
	}

	resp, err := req.Execute(r.method, r.url)
	if resp != nil && resp.IsError() {
		c.log.Debug("backend rejected request",
			zap.String("op", r.op), zap.Int("status", resp.StatusCode()), zap.String("message", apiErr.Text()))
		return errs.FromStatus(r.op, resp.StatusCode(), apiErr.Text())
	}
	if err != nil {
		c.log.Debug("backend request failed", zap.String("op", r.op), zap.Error(err))
		return &errs.NetworkError{Op: r.op, Err: err}
	}
	return nil
}
