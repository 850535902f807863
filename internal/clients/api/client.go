package api

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrMalformedHostname = errors.New("hostname must include port, separated by one colon, like example.com:3500")

// Client is a thin wrapper around the HTTP client shared by every capability
// that talks JSON envelopes to an upstream service.
type Client struct {
	hc      *http.Client
	baseURL *url.URL
	token   string
	logger  zerolog.Logger
}

// NewClient constructs a new client with the provided options (ex WithTimeout).
// `host` is the base host + port used to construct request urls. This value can
// be a URL string, or NewClient will assume an http endpoint if just
// `host:port` is used.
func NewClient(host string, opts ...ClientOpt) (*Client, error) {
	u, err := urlForHost(host)
	if err != nil {
		return nil, err
	}
	c := &Client{
		hc:      &http.Client{Timeout: 30 * time.Second},
		baseURL: u,
		logger:  log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Token returns the bearer token used for authentication.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the base url of the client.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func (c *Client) urlFor(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

func urlForHost(h string) (*url.URL, error) {
	// try to parse as url (being permissive)
	u, err := url.Parse(h)
	if err == nil && u.Host != "" {
		return u, nil
	}
	// try to parse as host:port
	host, port, err := net.SplitHostPort(h)
	if err != nil {
		return nil, ErrMalformedHostname
	}
	return &url.URL{Host: net.JoinHostPort(host, port), Scheme: "http"}, nil
}

// ClientOpt is a functional option for the Client type (http.Client wrapper).
type ClientOpt func(*Client)

// WithTimeout sets the .Timeout attribute of the wrapped http.Client.
func WithTimeout(timeout time.Duration) ClientOpt {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

// WithCustomTransport replaces the underlying http's transport with a custom one.
func WithCustomTransport(t http.RoundTripper) ClientOpt {
	return func(c *Client) {
		c.hc.Transport = t
	}
}

// WithAuthToken sets a bearer token to be attached to every request.
func WithAuthToken(token string) ClientOpt {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger replaces the logger used for per-request events.
func WithLogger(logger zerolog.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}
