package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one outgoing call. It is built per call and holds no
// credentials; signing happens in Client.Prepare.
type Request struct {
	Operation   Operation
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string
}

// HTTPRequest resolves the descriptor against server.
func (r *Request) HTTPRequest(ctx context.Context, server string) (*http.Request, error) {
	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	operationPath := r.Path
	if operationPath[0] == '/' {
		operationPath = "." + operationPath
	}

	queryURL, err := serverURL.Parse(operationPath)
	if err != nil {
		return nil, err
	}
	if len(r.Query) > 0 {
		queryURL.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, queryURL.String(), body)
	if err != nil {
		return nil, err
	}

	for k, v := range r.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	return req, nil
}

func newRequest(id OperationID, pathParams map[string]string, body []byte, contentType string) (*Request, error) {
	op := mustLookup(id)
	path, err := expandPath(op.Path, pathParams)
	if err != nil {
		return nil, err
	}
	if contentType == "" && op.Method != http.MethodGet && strings.HasPrefix(op.Path, projectRoot) {
		contentType = contentTypeJSON
	}
	return &Request{
		Operation:   op,
		Method:      op.Method,
		Path:        path,
		Header:      http.Header{},
		Body:        body,
		ContentType: contentType,
	}, nil
}

func newJSONRequest(id OperationID, pathParams map[string]string, body any) (*Request, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", id, err)
	}
	return newRequest(id, pathParams, buf, contentTypeJSON)
}

// NewCreateSessionRequest builds the legacy form-encoded session-create call.
// An unset media mode is sent as "routed" and an empty location is dropped.
func NewCreateSessionRequest(apiKey string, opts SessionOptions) (*Request, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey cannot be empty")
	}

	mediaMode := opts.MediaMode
	if mediaMode == "" {
		mediaMode = MediaModeRouted
	}

	body := CreateSessionFormdataRequestBody{
		APIKey:        apiKey,
		P2pPreference: mediaMode,
		Location:      opts.Location,
		ArchiveMode:   opts.ArchiveMode,
	}
	if opts.E2EE {
		body.E2EE = "true"
	}

	form, err := runtime.MarshalForm(body, nil)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", OpCreateSession, err)
	}

	return newRequest(OpCreateSession, nil, []byte(form.Encode()), contentTypeForm)
}

// NewStartArchiveRequest builds a start-archive call; options sit next to sessionId.
func NewStartArchiveRequest(apiKey, sessionID string, opts ArchiveOptions) (*Request, error) {
	if sessionID == "" {
		return nil, errors.New("sessionId cannot be empty")
	}
	if opts.Layout != nil {
		if err := opts.Layout.Validate(); err != nil {
			return nil, err
		}
	}
	return newJSONRequest(OpStartArchive, map[string]string{"apiKey": apiKey}, StartArchiveJSONRequestBody{
		SessionID:  sessionID,
		Name:       opts.Name,
		HasAudio:   opts.HasAudio,
		HasVideo:   opts.HasVideo,
		OutputMode: opts.OutputMode,
		Resolution: opts.Resolution,
		StreamMode: opts.StreamMode,
		Layout:     opts.Layout,
	})
}

// NewStopArchiveRequest builds a stop-archive call.
func NewStopArchiveRequest(apiKey, archiveID string) (*Request, error) {
	return newRequest(OpStopArchive, map[string]string{"apiKey": apiKey, "archiveId": archiveID}, nil, "")
}

// NewGetArchiveRequest builds a get-archive call.
func NewGetArchiveRequest(apiKey, archiveID string) (*Request, error) {
	return newRequest(OpGetArchive, map[string]string{"apiKey": apiKey, "archiveId": archiveID}, nil, "")
}

// NewDeleteArchiveRequest builds a delete-archive call.
func NewDeleteArchiveRequest(apiKey, archiveID string) (*Request, error) {
	return newRequest(OpDeleteArchive, map[string]string{"apiKey": apiKey, "archiveId": archiveID}, nil, "")
}

// NewListArchivesRequest builds a list-archives call. Only non-default
// filter values become query parameters.
func NewListArchivesRequest(apiKey string, filter ArchiveFilter) (*Request, error) {
	if filter.Offset < 0 {
		return nil, errors.New("offset cannot be negative")
	}
	if filter.Count < 0 {
		return nil, errors.New("count cannot be negative")
	}

	r, err := newRequest(OpListArchives, map[string]string{"apiKey": apiKey}, nil, "")
	if err != nil {
		return nil, err
	}

	queryValues := url.Values{}
	if filter.Offset != 0 {
		if err := addQueryParam(queryValues, "offset", filter.Offset); err != nil {
			return nil, err
		}
	}
	if filter.Count > 0 {
		if err := addQueryParam(queryValues, "count", filter.Count); err != nil {
			return nil, err
		}
	}
	if filter.SessionID != "" {
		if err := addQueryParam(queryValues, "sessionId", filter.SessionID); err != nil {
			return nil, err
		}
	}
	if len(queryValues) > 0 {
		r.Query = queryValues
	}
	return r, nil
}

func addQueryParam(dst url.Values, name string, value any) error {
	queryFrag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return err
	}
	parsed, err := url.ParseQuery(queryFrag)
	if err != nil {
		return err
	}
	for k, v := range parsed {
		for _, v2 := range v {
			dst.Add(k, v2)
		}
	}
	return nil
}

// NewStartBroadcastRequest builds a start-broadcast call. The layout fields
// sit at the top level of the body, never nested under a "layout" key. A nil
// layout means bestFit.
func NewStartBroadcastRequest(apiKey, sessionID string, opts BroadcastOptions) (*Request, error) {
	if sessionID == "" {
		return nil, errors.New("sessionId cannot be empty")
	}

	layout := Layout{Type: LayoutTypeBestFit}
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	return newJSONRequest(OpStartBroadcast, map[string]string{"apiKey": apiKey}, StartBroadcastJSONRequestBody{
		SessionID:       sessionID,
		Type:            layout.Type,
		Stylesheet:      layout.Stylesheet,
		ScreenshareType: layout.ScreenshareType,
		Outputs:         opts.Outputs,
		MaxDuration:     opts.MaxDuration,
		Resolution:      opts.Resolution,
		StreamMode:      opts.StreamMode,
	})
}

// NewStopBroadcastRequest builds a stop-broadcast call.
func NewStopBroadcastRequest(apiKey, broadcastID string) (*Request, error) {
	return newRequest(OpStopBroadcast, map[string]string{"apiKey": apiKey, "broadcastId": broadcastID}, nil, "")
}

// NewGetBroadcastRequest builds a get-broadcast call.
func NewGetBroadcastRequest(apiKey, broadcastID string) (*Request, error) {
	return newRequest(OpGetBroadcast, map[string]string{"apiKey": apiKey, "broadcastId": broadcastID}, nil, "")
}

// LayoutResource is the kind of composition a layout call targets.
type LayoutResource string

const (
	LayoutResourceBroadcast LayoutResource = "broadcast"
	LayoutResourceArchive   LayoutResource = "archive"
)

func layoutOperations(resource LayoutResource) (get, put OperationID, idParam string, err error) {
	switch resource {
	case LayoutResourceBroadcast, "":
		return OpGetBroadcastLayout, OpUpdateBroadcastLayout, "broadcastId", nil
	case LayoutResourceArchive:
		return OpGetArchiveLayout, OpSetArchiveLayout, "archiveId", nil
	default:
		return "", "", "", fmt.Errorf("unsupported layout resource %q", resource)
	}
}

// NewGetLayoutRequest builds a get-layout call for a broadcast or archive.
func NewGetLayoutRequest(apiKey string, resource LayoutResource, resourceID string) (*Request, error) {
	get, _, idParam, err := layoutOperations(resource)
	if err != nil {
		return nil, err
	}
	return newRequest(get, map[string]string{"apiKey": apiKey, idParam: resourceID}, nil, "")
}

// NewUpdateLayoutRequest builds a put-layout call for a broadcast or archive.
func NewUpdateLayoutRequest(apiKey string, resource LayoutResource, resourceID string, layout Layout) (*Request, error) {
	_, put, idParam, err := layoutOperations(resource)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return newJSONRequest(put, map[string]string{"apiKey": apiKey, idParam: resourceID}, layout)
}

// NewGetStreamRequest builds a get-stream call.
func NewGetStreamRequest(apiKey, sessionID, streamID string) (*Request, error) {
	return newRequest(OpGetStream, map[string]string{"apiKey": apiKey, "sessionId": sessionID, "streamId": streamID}, nil, "")
}

// NewListStreamsRequest builds a list-streams call.
func NewListStreamsRequest(apiKey, sessionID string) (*Request, error) {
	return newRequest(OpListStreams, map[string]string{"apiKey": apiKey, "sessionId": sessionID}, nil, "")
}

// NewUpdateStreamRequest builds an update-stream call.
func NewUpdateStreamRequest(apiKey, sessionID, streamID string, props StreamProperties) (*Request, error) {
	if props.LayoutClassList == nil {
		props.LayoutClassList = []string{}
	}
	return newJSONRequest(OpUpdateStream, map[string]string{"apiKey": apiKey, "sessionId": sessionID, "streamId": streamID}, props)
}

// NewSetStreamClassListsRequest builds a bulk class-list update.
func NewSetStreamClassListsRequest(apiKey, sessionID string, items []StreamClassList) (*Request, error) {
	if len(items) == 0 {
		return nil, errors.New("items cannot be empty")
	}
	body := SetStreamClassListsJSONRequestBody{Items: make([]StreamClassList, len(items))}
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("items[%d]: id cannot be empty", i)
		}
		if item.LayoutClassList == nil {
			item.LayoutClassList = []string{}
		}
		body.Items[i] = item
	}
	return newJSONRequest(OpSetStreamClassLists, map[string]string{"apiKey": apiKey, "sessionId": sessionID}, body)
}

// NewForceDisconnectRequest builds a force-disconnect call.
func NewForceDisconnectRequest(apiKey, sessionID, connectionID string) (*Request, error) {
	return newRequest(OpForceDisconnect, map[string]string{"apiKey": apiKey, "sessionId": sessionID, "connectionId": connectionID}, nil, "")
}

// NewSignalRequest signals every connection in the session, or only
// connectionID when it is non-empty. The payload is sent verbatim.
func NewSignalRequest(apiKey, sessionID string, payload SignalPayload, connectionID string) (*Request, error) {
	if payload.Data == "" {
		return nil, errors.New("signal data cannot be empty")
	}
	params := map[string]string{"apiKey": apiKey, "sessionId": sessionID}
	id := OpSignalSession
	if connectionID != "" {
		id = OpSignalConnection
		params["connectionId"] = connectionID
	}
	return newJSONRequest(id, params, payload)
}

// NewDialRequest builds a SIP dial-out. Headers, auth and from are sent
// only when supplied.
func NewDialRequest(apiKey, sessionID, token, sipURI string, opts DialOptions) (*Request, error) {
	switch {
	case sessionID == "":
		return nil, errors.New("sessionId cannot be empty")
	case token == "":
		return nil, errors.New("token cannot be empty")
	case sipURI == "":
		return nil, errors.New("sipUri cannot be empty")
	}

	body := DialJSONRequestBody{
		SessionID: sessionID,
		Token:     token,
		Sip: SipTarget{
			URI:     sipURI,
			Secure:  opts.Secure,
			Headers: opts.Headers,
			Auth:    opts.Auth,
			From:    opts.From,
		},
	}
	return newJSONRequest(OpDial, map[string]string{"apiKey": apiKey}, body)
}
