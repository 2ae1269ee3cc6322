package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/opentok/opentok-go/pkg/api"
)

type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// execute signs and sends r. Any status outside 2xx/3xx, and any failure to
// get a response at all, is returned as *TransportError. A signing failure is
// returned unchanged since nothing was sent.
func (c *Client) execute(ctx context.Context, r *api.Request) (*response, error) {
	req, err := c.raw.Prepare(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.raw.Send(req)
	if err != nil {
		c.logRequest(ctx, r, 0, start, err)
		return nil, &TransportError{Method: r.Method, Path: r.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	c.logRequest(ctx, r, resp.StatusCode, start, readErr)

	success := resp.StatusCode >= 200 && resp.StatusCode < 400
	switch {
	case success && readErr != nil:
		return nil, &TransportError{Method: r.Method, Path: r.Path, Err: readErr}
	case !success:
		return nil, &TransportError{
			Method:     r.Method,
			Path:       r.Path,
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        readErr,
		}
	}

	return &response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// call executes r and decodes its body into out in the operation's format.
// Operations without a declared body format succeed on any 2xx without
// touching the body. A 204 with an empty body returns api.ErrNoContent.
func (c *Client) call(ctx context.Context, r *api.Request, out any) error {
	resp, err := c.execute(ctx, r)
	if err != nil {
		return c.translate(r.Operation, err)
	}
	if out == nil {
		return nil
	}
	err = api.Decode(resp.StatusCode, resp.Body, r.Operation.Format, out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrNoContent):
		return err
	default:
		return parseFailure(r.Operation.Family, resp.StatusCode, err)
	}
}

func (c *Client) translate(op api.Operation, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return mapError(c.apiKey, op.Family, te)
	}
	return err
}

func (c *Client) logRequest(ctx context.Context, r *api.Request, status int, start time.Time, err error) {
	attrs := []any{
		"operation", string(r.Operation.ID),
		"method", r.Method,
		"path", r.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if status != 0 {
		attrs = append(attrs, "status", status)
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
		c.opts.logger.DebugContext(ctx, "opentok request failed", attrs...)
		return
	}
	c.opts.logger.DebugContext(ctx, "opentok request", attrs...)
}

// fetch runs a built request and decodes its body into a new T. A 204 with
// no body is a success with a nil result.
func fetch[T any](ctx context.Context, c *Client, family api.Family, r *api.Request, buildErr error) (*T, error) {
	if buildErr != nil {
		return nil, invalidInput(family, buildErr)
	}
	var out T
	if err := c.call(ctx, r, &out); err != nil {
		if errors.Is(err, api.ErrNoContent) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// send runs a built request whose success carries no body.
func send(ctx context.Context, c *Client, family api.Family, r *api.Request, buildErr error) error {
	if buildErr != nil {
		return invalidInput(family, buildErr)
	}
	return c.call(ctx, r, nil)
}
