package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/opentok/opentok-go/pkg/api"
)

// Family is the error subtree an operation reports into. Operations whose
// resource has no subtree of its own report FamilyGeneric.
type Family int

const (
	FamilyGeneric Family = iota
	FamilyArchive
	FamilyBroadcast
	FamilySignal
	FamilyForceDisconnect
)

func (f Family) String() string {
	switch f {
	case FamilyArchive:
		return "archive"
	case FamilyBroadcast:
		return "broadcast"
	case FamilySignal:
		return "signal"
	case FamilyForceDisconnect:
		return "force disconnect"
	default:
		return "opentok"
	}
}

// Cause is why a call failed.
type Cause int

const (
	// CauseGeneric is an unclassified failure.
	CauseGeneric Cause = iota
	// CauseAuthentication means the API key or secret was rejected (403).
	CauseAuthentication
	// CauseDomain means the request was invalid (4xx).
	CauseDomain
	// CauseUnexpectedValue means the server failed (5xx) or, for signal and
	// force disconnect, a request field was malformed or too large.
	CauseUnexpectedValue
	// CauseConnection means the target connection is not in the session (404).
	CauseConnection
	// CauseNetworkConnection means no HTTP response was received at all.
	CauseNetworkConnection
	// CauseParse means a success response body could not be decoded.
	CauseParse
)

func (c Cause) String() string {
	switch c {
	case CauseAuthentication:
		return "authentication error"
	case CauseDomain:
		return "domain error"
	case CauseUnexpectedValue:
		return "unexpected value"
	case CauseConnection:
		return "connection error"
	case CauseNetworkConnection:
		return "network connection error"
	case CauseParse:
		return "parse error"
	default:
		return "error"
	}
}

// Error is returned by every Client operation that fails after its inputs
// were accepted. Family and Cause together identify exactly one leaf of the
// taxonomy; Err is the underlying failure.
type Error struct {
	Family     Family
	Cause      Cause
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Family, e.Cause, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %s", e.Family, e.Cause, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Family and Cause, so the sentinels
// below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Family == e.Family && t.Cause == e.Cause
}

// Sentinels for errors.Is, one per leaf callers commonly branch on.
//
// A sentinel matches only its own Family. ErrAuthentication, ErrDomain and
// ErrUnexpectedValue therefore match sessions, layouts, streams and SIP
// calls, but not an archive or broadcast failure of the same cause. Use
// IsAuthError, IsValidationError or IsServerError to match a cause in any
// family.
var (
	ErrAuthentication  = &Error{Family: FamilyGeneric, Cause: CauseAuthentication}
	ErrDomain          = &Error{Family: FamilyGeneric, Cause: CauseDomain}
	ErrUnexpectedValue = &Error{Family: FamilyGeneric, Cause: CauseUnexpectedValue}

	ErrArchiveAuthentication  = &Error{Family: FamilyArchive, Cause: CauseAuthentication}
	ErrArchiveDomain          = &Error{Family: FamilyArchive, Cause: CauseDomain}
	ErrArchiveUnexpectedValue = &Error{Family: FamilyArchive, Cause: CauseUnexpectedValue}

	ErrBroadcastAuthentication  = &Error{Family: FamilyBroadcast, Cause: CauseAuthentication}
	ErrBroadcastDomain          = &Error{Family: FamilyBroadcast, Cause: CauseDomain}
	ErrBroadcastUnexpectedValue = &Error{Family: FamilyBroadcast, Cause: CauseUnexpectedValue}

	ErrSignalAuthentication    = &Error{Family: FamilySignal, Cause: CauseAuthentication}
	ErrSignalUnexpectedValue   = &Error{Family: FamilySignal, Cause: CauseUnexpectedValue}
	ErrSignalConnection        = &Error{Family: FamilySignal, Cause: CauseConnection}
	ErrSignalNetworkConnection = &Error{Family: FamilySignal, Cause: CauseNetworkConnection}

	ErrForceDisconnectAuthentication  = &Error{Family: FamilyForceDisconnect, Cause: CauseAuthentication}
	ErrForceDisconnectUnexpectedValue = &Error{Family: FamilyForceDisconnect, Cause: CauseUnexpectedValue}
	ErrForceDisconnectConnection      = &Error{Family: FamilyForceDisconnect, Cause: CauseConnection}
)

// TransportError is a failed round trip: either an HTTP error status or,
// when StatusCode is 0, no response at all.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

const (
	msgUnexpected        = "an unexpected error occurred"
	msgRequestFailed     = "The OpenTok API request failed"
	msgServerFailed      = "The OpenTok API server responded with an error"
	msgNotConnected      = "The client specified by the connectionId property is not connected to the session."
	msgSignalInvalid     = "One of the signal properties (data, type, sessionId or connectionId) is invalid."
	msgSignalTooLarge    = "The type string exceeds the maximum length (128 bytes), or the data string exceeds the maximum size (8 kB)."
	msgSignalUnreachable = "Unable to communicate with host"
	msgDisconnectInvalid = "One of the arguments (sessionId or connectionId) is invalid."
)

// errorFamily picks the subtree for an operation family.
func errorFamily(f api.Family) Family {
	switch f {
	case api.FamilyArchive:
		return FamilyArchive
	case api.FamilyBroadcast:
		return FamilyBroadcast
	case api.FamilySignal:
		return FamilySignal
	case api.FamilyForceDisconnect:
		return FamilyForceDisconnect
	default:
		return FamilyGeneric
	}
}

// mapError is the full classification of a failed round trip: the status
// rules of the operation family first, then the generic classification
// re-homed into the family subtree.
func mapError(apiKey string, family api.Family, te *TransportError) *Error {
	if e, ok := statusRule(apiKey, family, te); ok {
		return e
	}
	return remap(family, classify(apiKey, te))
}

// classify is the family-independent first level.
func classify(apiKey string, te *TransportError) *Error {
	e := &Error{
		Family:     FamilyGeneric,
		StatusCode: te.StatusCode,
		Err:        te,
	}
	switch sc := te.StatusCode; {
	case sc == http.StatusForbidden:
		e.Cause = CauseAuthentication
		e.Message = authMessage(apiKey)
	case sc >= 400 && sc < 500:
		e.Cause = CauseDomain
		e.Message = withServerMessage(msgRequestFailed, te.Body)
	case sc >= 500 && sc < 600:
		e.Cause = CauseUnexpectedValue
		e.Message = withServerMessage(msgServerFailed, te.Body)
	default:
		e.Cause = CauseGeneric
		e.Message = msgUnexpected
	}
	return e
}

// remap moves a first-level error into the operation's subtree. Signal and
// force disconnect only define an authentication leaf besides their
// status-specific ones, so every other cause lands on their generic leaf.
func remap(family api.Family, e *Error) *Error {
	out := *e
	out.Family = errorFamily(family)
	switch out.Family {
	case FamilySignal, FamilyForceDisconnect:
		if out.Cause != CauseAuthentication {
			out.Cause = CauseGeneric
		}
	}
	return &out
}

// statusRule applies the per-status semantics of signal and force disconnect.
func statusRule(apiKey string, family api.Family, te *TransportError) (*Error, bool) {
	newErr := func(f Family, c Cause, msg string) (*Error, bool) {
		return &Error{Family: f, Cause: c, StatusCode: te.StatusCode, Message: msg, Err: te}, true
	}

	switch family {
	case api.FamilySignal:
		switch te.StatusCode {
		case 0:
			if te.Err != nil {
				return newErr(FamilySignal, CauseNetworkConnection, msgSignalUnreachable)
			}
		case http.StatusBadRequest:
			return newErr(FamilySignal, CauseUnexpectedValue, msgSignalInvalid)
		case http.StatusForbidden:
			return newErr(FamilySignal, CauseAuthentication, authMessage(apiKey))
		case http.StatusNotFound:
			return newErr(FamilySignal, CauseConnection, msgNotConnected)
		case http.StatusRequestEntityTooLarge:
			return newErr(FamilySignal, CauseUnexpectedValue, msgSignalTooLarge)
		}
	case api.FamilyForceDisconnect:
		switch te.StatusCode {
		case http.StatusBadRequest:
			return newErr(FamilyForceDisconnect, CauseUnexpectedValue, msgDisconnectInvalid)
		case http.StatusForbidden:
			return newErr(FamilyForceDisconnect, CauseAuthentication, authMessage(apiKey))
		case http.StatusNotFound:
			return newErr(FamilyForceDisconnect, CauseConnection, msgNotConnected)
		}
	}
	return nil, false
}

// parseFailure reports an undecodable success body.
func parseFailure(family api.Family, statusCode int, err error) *Error {
	return &Error{
		Family:     errorFamily(family),
		Cause:      CauseParse,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// invalidInput reports arguments rejected before any request was sent.
// Signal and force disconnect have no domain leaf and use unexpected value.
func invalidInput(family api.Family, err error) *Error {
	e := &Error{
		Family:  errorFamily(family),
		Cause:   CauseDomain,
		Message: err.Error(),
		Err:     err,
	}
	if e.Family == FamilySignal || e.Family == FamilyForceDisconnect {
		e.Cause = CauseUnexpectedValue
	}
	return e
}

func authMessage(apiKey string) string {
	return fmt.Sprintf("The OpenTok API credentials were rejected (apiKey=%s)", apiKey)
}

// withServerMessage appends the "message" field of a JSON error body.
func withServerMessage(prefix string, body []byte) string {
	var eb api.ErrorResponse
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil || eb.Message == "" {
		return prefix
	}
	return prefix + ": " + eb.Message
}

// IsAuthError returns true if the API rejected the credentials.
func IsAuthError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Cause == CauseAuthentication
}

// IsValidationError returns true if the request itself was invalid, either
// locally or as reported by a 4xx response.
func IsValidationError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Cause {
	case CauseDomain:
		return true
	case CauseUnexpectedValue:
		return e.StatusCode < 500
	default:
		return false
	}
}

// IsNotConnected returns true if the target connection was not in the session.
func IsNotConnected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Cause == CauseConnection
}

// IsPayloadTooLarge returns true if a signal exceeded the size limits.
// A 413 from any other operation is an ordinary domain error.
func IsPayloadTooLarge(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Family == FamilySignal && e.StatusCode == http.StatusRequestEntityTooLarge
}

// IsServerError returns true if the server failed with a 5xx status.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode >= 500
}

// IsNetworkError returns true if no HTTP response was received.
func IsNetworkError(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == 0
}

// IsParseError returns true if a response body could not be decoded.
func IsParseError(err error) bool {
	var pe *api.ParseError
	return errors.As(err, &pe)
}
