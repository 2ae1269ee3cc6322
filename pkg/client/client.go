package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/opentok/opentok-go/pkg/api"
)

// Client wraps the catalogued API operations with typed results and errors.
//
// A Client is safe for concurrent use by multiple goroutines. Its only
// shared state is the immutable credentials and the HTTP client.
//
// Operations that return a result answer (nil, nil) when the API replies
// 204 No Content with an empty body.
type Client struct {
	raw    *api.Client
	opts   *Options
	apiKey string
}

// New creates a client for the project identified by apiKey.
func New(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	creds := api.Credentials{APIKey: apiKey, APISecret: apiSecret}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Validate options
	if options.timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if options.baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	u, err := url.Parse(options.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL must be an absolute URL: %q", options.baseURL)
	}

	doer := options.httpClient
	if doer == nil {
		doer = &http.Client{
			Timeout: options.timeout,
		}
	}

	userAgent := api.DefaultUserAgent
	if options.userAgent != "" {
		userAgent += " " + options.userAgent
	}

	clientOpts := []api.ClientOption{
		api.WithHTTPClient(doer),
		api.WithUserAgent(userAgent),
	}
	for _, fn := range options.requestEditors {
		clientOpts = append(clientOpts, api.WithRequestEditorFn(fn))
	}

	rawClient, err := api.NewClient(options.baseURL, creds, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Client{
		raw:    rawClient,
		opts:   options,
		apiKey: apiKey,
	}, nil
}

// APIKey returns the project key the client signs for.
func (c *Client) APIKey() string {
	return c.apiKey
}

// CreateSession creates a new session. An unset media mode means routed.
func (c *Client) CreateSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	r, err := api.NewCreateSessionRequest(c.apiKey, opts)
	return fetch[Session](ctx, c, api.FamilySession, r, err)
}

// StartArchive starts recording a session.
func (c *Client) StartArchive(ctx context.Context, sessionID string, opts ArchiveOptions) (*Archive, error) {
	r, err := api.NewStartArchiveRequest(c.apiKey, sessionID, opts)
	return fetch[Archive](ctx, c, api.FamilyArchive, r, err)
}

// StopArchive stops a recording in progress.
func (c *Client) StopArchive(ctx context.Context, archiveID string) (*Archive, error) {
	r, err := api.NewStopArchiveRequest(c.apiKey, archiveID)
	return fetch[Archive](ctx, c, api.FamilyArchive, r, err)
}

// GetArchive fetches one archive.
func (c *Client) GetArchive(ctx context.Context, archiveID string) (*Archive, error) {
	r, err := api.NewGetArchiveRequest(c.apiKey, archiveID)
	return fetch[Archive](ctx, c, api.FamilyArchive, r, err)
}

// DeleteArchive deletes an archive. The API answers 204 with no body.
func (c *Client) DeleteArchive(ctx context.Context, archiveID string) error {
	r, err := api.NewDeleteArchiveRequest(c.apiKey, archiveID)
	return send(ctx, c, api.FamilyArchive, r, err)
}

// ListArchives lists archives, newest first.
func (c *Client) ListArchives(ctx context.Context, filter ArchiveFilter) (*ArchiveList, error) {
	r, err := api.NewListArchivesRequest(c.apiKey, filter)
	return fetch[ArchiveList](ctx, c, api.FamilyArchive, r, err)
}

// SetArchiveLayout changes the layout of a composed archive.
func (c *Client) SetArchiveLayout(ctx context.Context, archiveID string, layout Layout) error {
	return c.UpdateLayout(ctx, LayoutResourceArchive, archiveID, layout)
}

// StartBroadcast starts a live broadcast of a session. A nil layout in
// opts means bestFit.
func (c *Client) StartBroadcast(ctx context.Context, sessionID string, opts BroadcastOptions) (*Broadcast, error) {
	r, err := api.NewStartBroadcastRequest(c.apiKey, sessionID, opts)
	return fetch[Broadcast](ctx, c, api.FamilyBroadcast, r, err)
}

// StopBroadcast stops a live broadcast.
func (c *Client) StopBroadcast(ctx context.Context, broadcastID string) (*Broadcast, error) {
	r, err := api.NewStopBroadcastRequest(c.apiKey, broadcastID)
	return fetch[Broadcast](ctx, c, api.FamilyBroadcast, r, err)
}

// GetBroadcast fetches one broadcast.
func (c *Client) GetBroadcast(ctx context.Context, broadcastID string) (*Broadcast, error) {
	r, err := api.NewGetBroadcastRequest(c.apiKey, broadcastID)
	return fetch[Broadcast](ctx, c, api.FamilyBroadcast, r, err)
}

// GetLayout fetches the layout of a broadcast or archive.
func (c *Client) GetLayout(ctx context.Context, resource LayoutResource, resourceID string) (*Layout, error) {
	r, err := api.NewGetLayoutRequest(c.apiKey, resource, resourceID)
	return fetch[Layout](ctx, c, api.FamilyLayout, r, err)
}

// UpdateLayout changes the layout of a broadcast or archive.
func (c *Client) UpdateLayout(ctx context.Context, resource LayoutResource, resourceID string, layout Layout) error {
	r, err := api.NewUpdateLayoutRequest(c.apiKey, resource, resourceID, layout)
	return send(ctx, c, api.FamilyLayout, r, err)
}

// GetStream fetches one stream of a session.
func (c *Client) GetStream(ctx context.Context, sessionID, streamID string) (*Stream, error) {
	r, err := api.NewGetStreamRequest(c.apiKey, sessionID, streamID)
	return fetch[Stream](ctx, c, api.FamilyStream, r, err)
}

// ListStreams lists the streams of a session.
func (c *Client) ListStreams(ctx context.Context, sessionID string) (*StreamList, error) {
	r, err := api.NewListStreamsRequest(c.apiKey, sessionID)
	return fetch[StreamList](ctx, c, api.FamilyStream, r, err)
}

// UpdateStream sets the layout classes of one stream.
func (c *Client) UpdateStream(ctx context.Context, sessionID, streamID string, props StreamProperties) error {
	r, err := api.NewUpdateStreamRequest(c.apiKey, sessionID, streamID, props)
	return send(ctx, c, api.FamilyStream, r, err)
}

// SetStreamClassLists sets the layout classes of several streams at once.
func (c *Client) SetStreamClassLists(ctx context.Context, sessionID string, items []StreamClassList) error {
	r, err := api.NewSetStreamClassListsRequest(c.apiKey, sessionID, items)
	return send(ctx, c, api.FamilyStream, r, err)
}

// Dial connects a SIP endpoint to a session. token must be a valid client
// token for the session.
func (c *Client) Dial(ctx context.Context, sessionID, token, sipURI string, opts DialOptions) (*SipCall, error) {
	r, err := api.NewDialRequest(c.apiKey, sessionID, token, sipURI, opts)
	return fetch[SipCall](ctx, c, api.FamilySip, r, err)
}

// Signal sends payload to every connection of the session, or only to
// connectionID when it is non-empty.
//
// Errors carry FamilySignal: CauseConnection when the connection has left,
// CauseUnexpectedValue for invalid or oversized payloads, and
// CauseNetworkConnection when the host could not be reached.
func (c *Client) Signal(ctx context.Context, sessionID string, payload SignalPayload, connectionID string) error {
	r, err := api.NewSignalRequest(c.apiKey, sessionID, payload, connectionID)
	return send(ctx, c, api.FamilySignal, r, err)
}

// ForceDisconnect terminates one connection to a session.
func (c *Client) ForceDisconnect(ctx context.Context, sessionID, connectionID string) error {
	r, err := api.NewForceDisconnectRequest(c.apiKey, sessionID, connectionID)
	return send(ctx, c, api.FamilyForceDisconnect, r, err)
}
