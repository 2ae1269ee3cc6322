package client

import (
	"log/slog"
	"time"

	"github.com/opentok/opentok-go/pkg/api"
)

// Options configures the client behavior.
type Options struct {
	timeout        time.Duration
	baseURL        string
	httpClient     api.HttpRequestDoer
	userAgent      string
	logger         *slog.Logger
	requestEditors []api.RequestEditorFn
}

func defaultOptions() *Options {
	return &Options{
		timeout: 30 * time.Second,
		baseURL: api.DefaultServer,
		logger:  slog.New(slog.DiscardHandler),
	}
}

// Option configures the client.
type Option func(*Options)

// WithTimeout sets the HTTP request timeout. It is ignored when a custom
// HTTP client is supplied with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithBaseURL points the client at another API endpoint.
// Default is https://api.opentok.com.
func WithBaseURL(u string) Option {
	return func(o *Options) {
		o.baseURL = u
	}
}

// WithHTTPClient replaces the transport. Connection pooling, TLS and proxy
// settings all belong to it.
func WithHTTPClient(doer api.HttpRequestDoer) Option {
	return func(o *Options) {
		o.httpClient = doer
	}
}

// WithAppendUserAgent appends an application identifier to the SDK's
// User-Agent header.
func WithAppendUserAgent(ua string) Option {
	return func(o *Options) {
		o.userAgent = ua
	}
}

// WithLogger enables debug logging of every request through l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRequestEditor registers a hook that may mutate each signed request
// just before it is sent.
func WithRequestEditor(fn api.RequestEditorFn) Option {
	return func(o *Options) {
		o.requestEditors = append(o.requestEditors, fn)
	}
}
