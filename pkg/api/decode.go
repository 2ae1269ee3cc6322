package api

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoContent is returned by Decode for a 204 response with an empty body.
// It marks a successful call with nothing to decode, not a failure.
var ErrNoContent = errors.New("no content")

// ParseError reports a success response whose body did not match the
// operation's declared format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	kind := "JSON"
	if e.Format == FormatXML {
		kind = "XML"
	}
	return fmt.Sprintf("unable to parse response body into %s: %v", kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode decodes a success body in the declared format. FormatXML expects v
// to be a *SessionInfo. FormatNone never reads the body.
func Decode(statusCode int, body []byte, format Format, v any) error {
	if format == FormatNone {
		return nil
	}
	if statusCode == http.StatusNoContent && len(bytes.TrimSpace(body)) == 0 {
		return ErrNoContent
	}
	if format != FormatXML {
		return DecodeJSON(body, v)
	}

	dst, ok := v.(*SessionInfo)
	if !ok {
		return fmt.Errorf("cannot decode XML into %T", v)
	}
	info, err := DecodeSessionXML(body)
	if err != nil {
		return err
	}
	*dst = *info
	return nil
}

// DecodeJSON decodes body into v.
func DecodeJSON(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &ParseError{Format: FormatJSON, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{Format: FormatJSON, Err: err}
	}
	return nil
}

type sessionsDocument struct {
	XMLName  xml.Name      `xml:"sessions"`
	Sessions []SessionInfo `xml:"Session"`
}

// DecodeSessionXML decodes the legacy session-create response. The decoder
// runs in strict mode with only the predefined XML entities, so DTD-declared
// and external entities are never expanded.
func DecodeSessionXML(body []byte) (*SessionInfo, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	d.Strict = true
	d.Entity = nil

	var doc sessionsDocument
	if err := d.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return nil, &ParseError{Format: FormatXML, Err: err}
	}
	if len(doc.Sessions) == 0 || doc.Sessions[0].SessionID == "" {
		return nil, &ParseError{Format: FormatXML, Err: errors.New("no session_id element")}
	}
	return &doc.Sessions[0], nil
}
