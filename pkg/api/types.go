package api

import (
	"errors"
	"time"
)

// Validate checks the combinations the API rejects.
func (l Layout) Validate() error {
	if l.Type == "" {
		return errors.New("layout type cannot be empty")
	}
	if l.Type == LayoutTypeCustom && l.Stylesheet == "" {
		return errors.New("custom layout requires a stylesheet")
	}
	if l.Type != LayoutTypeCustom && l.Stylesheet != "" {
		return errors.New("stylesheet is only allowed for custom layouts")
	}
	if l.ScreenshareType != "" && l.Type != LayoutTypeBestFit {
		return errors.New("screenshareType requires the bestFit layout")
	}
	return nil
}

// SessionOptions are the form fields of a session-create call.
type SessionOptions struct {
	MediaMode   MediaMode
	ArchiveMode ArchiveMode
	// Location is an IPv4 hint for media server selection.
	Location string
	E2EE     bool
}

// SessionInfo is one <Session> element of the session-create response.
type SessionInfo struct {
	SessionID      string `xml:"session_id"`
	PartnerID      string `xml:"partner_id"`
	CreateDt       string `xml:"create_dt"`
	MediaServerURL string `xml:"media_server_url"`
}

// ArchiveOptions are merged next to sessionId in the start-archive body.
type ArchiveOptions struct {
	Name       string
	HasAudio   *bool
	HasVideo   *bool
	OutputMode OutputMode
	Resolution string
	StreamMode StreamMode
	Layout     *Layout
}

// ArchiveFilter narrows a list-archives call. Zero values are omitted.
type ArchiveFilter = ListArchivesParams

// Created returns CreatedAt as a time.
func (a *Archive) Created() time.Time {
	return fromUnixMillis(a.CreatedAt)
}

// BroadcastOptions are the start-broadcast fields other than the session id.
// Layout is merged into the top level of the body.
type BroadcastOptions struct {
	Layout      *Layout
	Outputs     BroadcastOutputs
	MaxDuration int
	Resolution  string
	StreamMode  StreamMode
}

// BroadcastOutputs selects the broadcast destinations.
type BroadcastOutputs struct {
	HLS  *HLSOutput   `json:"hls,omitempty"`
	RTMP []RTMPOutput `json:"rtmp,omitempty"`
}

// Created returns CreatedAt as a time.
func (b *Broadcast) Created() time.Time {
	return fromUnixMillis(b.CreatedAt)
}

// Updated returns UpdatedAt as a time.
func (b *Broadcast) Updated() time.Time {
	return fromUnixMillis(b.UpdatedAt)
}

// DialOptions tune a SIP dial-out.
type DialOptions struct {
	Secure bool
	// Headers are custom SIP headers; sent only when non-empty.
	Headers map[string]string
	Auth    *SipAuth
	// From overrides the SIP From address.
	From string
}
