package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

const (
	// Version is the SDK version reported in the User-Agent header.
	Version = "1.0.0"

	// AuthHeader carries the signed project token on every request.
	AuthHeader = "X-OPENTOK-AUTH"

	// DefaultServer is the production API endpoint.
	DefaultServer = "https://api.opentok.com"
)

// transportAgent names the net/http stack. net/http's own agent ends in /1.1
// or /2.0 depending on the protocol negotiated per connection, which is not
// known when the header is set, so the Go release is reported instead.
var transportAgent = "Go-http-client (" + runtime.Version() + ")"

// DefaultUserAgent identifies the SDK followed by the transport. It is a
// fixed string; an injected HttpRequestDoer that rewrites User-Agent wins.
var DefaultUserAgent = "OpenTok-Go-SDK/" + Version + " " + transportAgent

// HttpRequestDoer performs HTTP requests.
//
// The standard http.Client implements this interface.
type HttpRequestDoer interface { //nolint:revive // name kept for parity with generated clients
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is the function signature for the RequestEditor callback function
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client sends catalogued requests to the API.
type Client struct {
	// The endpoint of the server conforming to this interface, with scheme,
	// https://api.opentok.com for example. This can contain a path relative
	// to the server, such as https://api.opentok.com/dev-test, and all the
	// operation paths in the OpenAPI document are appended to the server.
	Server string

	// Doer for performing requests, typically a *http.Client with any
	// customized settings, such as certificate chains.
	Client HttpRequestDoer

	// Credentials sign every request. They are only ever read.
	Credentials Credentials

	// Signer mints the X-OPENTOK-AUTH value. It is called once per request
	// with Credentials and never cached.
	Signer SignerFn

	// UserAgent is sent on every request.
	UserAgent string

	// A list of callbacks for modifying requests which are generated before sending over
	// the network.
	RequestEditors []RequestEditorFn
}

// ClientOption allows setting custom parameters during construction
type ClientOption func(*Client) error

// NewClient creates a new Client, with reasonable defaults
func NewClient(server string, creds Credentials, opts ...ClientOption) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	client := Client{
		Server:      server,
		Credentials: creds,
		Signer:      Sign,
		UserAgent:   DefaultUserAgent,
	}
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	if client.Server == "" {
		client.Server = DefaultServer
	}
	// ensure the server URL always has a trailing slash
	if !strings.HasSuffix(client.Server, "/") {
		client.Server += "/"
	}
	// create httpClient, if not already present
	if client.Client == nil {
		client.Client = &http.Client{}
	}
	return &client, nil
}

// WithHTTPClient allows overriding the default Doer, which is
// automatically created using http.Client. This is useful for tests.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request. This can be used to mutate the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.RequestEditors = append(c.RequestEditors, fn)
		return nil
	}
}

// WithBaseURL overrides the baseURL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		c.Server = baseURL
		return nil
	}
}

// WithSigner replaces the token signer.
func WithSigner(fn SignerFn) ClientOption {
	return func(c *Client) error {
		if fn == nil {
			return fmt.Errorf("signer cannot be nil")
		}
		c.Signer = fn
		return nil
	}
}

// WithUserAgent replaces the User-Agent header value.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		c.UserAgent = ua
		return nil
	}
}

// Prepare turns r into a signed *http.Request. A signing failure aborts the
// call before any network I/O.
func (c *Client) Prepare(ctx context.Context, r *Request, reqEditors ...RequestEditorFn) (*http.Request, error) {
	req, err := r.HTTPRequest(ctx, c.Server)
	if err != nil {
		return nil, err
	}

	token, err := c.Signer(c.Credentials)
	if err != nil {
		return nil, fmt.Errorf("sign %s request: %w", r.Operation.ID, err)
	}
	req.Header.Set(AuthHeader, token)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	if err := c.applyEditors(ctx, req, reqEditors); err != nil {
		return nil, err
	}
	return req, nil
}

// Send hands a prepared request to the Doer.
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}

// Do prepares and sends r.
func (c *Client) Do(ctx context.Context, r *Request, reqEditors ...RequestEditorFn) (*http.Response, error) {
	req, err := c.Prepare(ctx, r, reqEditors...)
	if err != nil {
		return nil, err
	}
	return c.Send(req)
}

func (c *Client) applyEditors(ctx context.Context, req *http.Request, additionalEditors []RequestEditorFn) error {
	for _, r := range c.RequestEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	for _, r := range additionalEditors {
		if err := r(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
