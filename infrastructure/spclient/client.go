package spclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/api"

	"sppages/logging"
)

// Requester is the subset of the gosip HTTP client used by the REST resources.
// *api.HTTPClient satisfies it; tests substitute a fake.
type Requester interface {
	Get(endpoint string, conf *api.RequestConfig) ([]byte, error)
	Post(endpoint string, body io.Reader, conf *api.RequestConfig) ([]byte, error)
	Update(endpoint string, body io.Reader, conf *api.RequestConfig) ([]byte, error)
	Delete(endpoint string, conf *api.RequestConfig) ([]byte, error)
}

// OData header presets.
var (
	nometadataHeaders = map[string]string{
		"Accept":       "application/json;odata=nometadata",
		"Content-Type": "application/json;odata=nometadata",
	}
	verboseHeaders = map[string]string{
		"Accept":       "application/json;odata=verbose",
		"Content-Type": "application/json;odata=verbose",
	}
)

// Client issues SharePoint REST calls relative to one site.
// Resources returned by its accessors only build URLs; each blocking method
// issues exactly one request. No retries are made.
type Client struct {
	http          Requester
	siteURL       string
	timeout       time.Duration
	defaultConfig *api.RequestConfig
	logger        *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves deadlines to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the site the gosip auth configuration points at.
func NewClient(authClient *gosip.SPClient, opts ...Option) *Client {
	return NewClientWithRequester(authClient.AuthCnfg.GetSiteURL(), api.NewHTTPClient(authClient), opts...)
}

// NewClientWithRequester creates a client issuing requests through requester.
func NewClientWithRequester(siteURL string, requester Requester, opts ...Option) *Client {
	c := &Client{
		http:    requester,
		siteURL: strings.TrimRight(siteURL, "/"),
		defaultConfig: &api.RequestConfig{
			Headers: nometadataHeaders,
		},
		logger: logging.Default().WithComponent("sharepoint_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SiteURL returns the absolute site URL without a trailing slash.
func (c *Client) SiteURL() string {
	return c.siteURL
}

// Web returns the current web of the site.
func (c *Client) Web() *Web {
	return &Web{client: c, url: c.siteURL + "/_api/web"}
}

// Social returns the social following endpoint of the site.
func (c *Client) Social() *Social {
	return &Social{client: c, url: c.siteURL + "/_api/social.following"}
}

// createRequestConfig copies the default configuration for one request.
func (c *Client) createRequestConfig(ctx context.Context, headers map[string]string) *api.RequestConfig {
	config := *c.defaultConfig
	config.Context = ctx
	merged := make(map[string]string, len(config.Headers)+len(headers))
	for k, v := range config.Headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	config.Headers = merged
	return &config
}

type method string

const (
	methodGet    method = "GET"
	methodPost   method = "POST"
	methodMerge  method = "MERGE"
	methodDelete method = "DELETE"
)

// do issues one request and classifies failures into the sharepoint error sentinels.
func (c *Client) do(ctx context.Context, m method, endpoint string, body any, headers map[string]string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	conf := c.createRequestConfig(ctx, headers)
	start := time.Now()

	var data []byte
	var err error
	switch m {
	case methodGet:
		data, err = c.http.Get(endpoint, conf)
	case methodPost:
		if reader == nil {
			reader = bytes.NewBufferString("{}")
		}
		data, err = c.http.Post(endpoint, reader, conf)
	case methodMerge:
		data, err = c.http.Update(endpoint, reader, conf)
	case methodDelete:
		data, err = c.http.Delete(endpoint, conf)
	default:
		return nil, fmt.Errorf("unsupported method %s", m)
	}

	elapsed := time.Since(start)
	if err != nil {
		classified := classifyError(err)
		c.logger.Debug("SharePoint request failed", "method", string(m), "endpoint", endpoint, "duration_ms", elapsed.Milliseconds(), "error", classified.Error())
		return nil, classified
	}
	c.logger.Debug("SharePoint request", "method", string(m), "endpoint", endpoint, "duration_ms", elapsed.Milliseconds(), "bytes", len(data))
	return data, nil
}

// literal escapes s for use inside a single quoted OData literal in a URL path.
func literal(s string) string {
	return url.PathEscape(quoteLiteral(s))
}

// quoteLiteral doubles single quotes for an OData string literal.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// odataQuery encodes an OData query option value. Spaces become %20, not "+".
func odataQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
