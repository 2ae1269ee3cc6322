package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Family groups operations by the resource they act on.
type Family int

const (
	FamilySession Family = iota
	FamilyArchive
	FamilyBroadcast
	FamilySignal
	FamilyForceDisconnect
	FamilyStream
	FamilyLayout
	FamilySip
)

var familyNames = [...]string{
	FamilySession:         "session",
	FamilyArchive:         "archive",
	FamilyBroadcast:       "broadcast",
	FamilySignal:          "signal",
	FamilyForceDisconnect: "forceDisconnect",
	FamilyStream:          "stream",
	FamilyLayout:          "layout",
	FamilySip:             "sip",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Format is the body format an operation answers with on success.
type Format int

const (
	// FormatNone means any 2xx is success and the body is ignored.
	FormatNone Format = iota
	FormatJSON
	FormatXML
)

// OperationID names one catalogued API operation. The values match the
// operationId fields of the embedded OpenAPI document.
type OperationID string

const (
	OpCreateSession         OperationID = "createSession"
	OpStartArchive          OperationID = "startArchive"
	OpListArchives          OperationID = "listArchives"
	OpGetArchive            OperationID = "getArchive"
	OpDeleteArchive         OperationID = "deleteArchive"
	OpStopArchive           OperationID = "stopArchive"
	OpGetArchiveLayout      OperationID = "getArchiveLayout"
	OpSetArchiveLayout      OperationID = "setArchiveLayout"
	OpStartBroadcast        OperationID = "startBroadcast"
	OpGetBroadcast          OperationID = "getBroadcast"
	OpStopBroadcast         OperationID = "stopBroadcast"
	OpGetBroadcastLayout    OperationID = "getBroadcastLayout"
	OpUpdateBroadcastLayout OperationID = "updateBroadcastLayout"
	OpListStreams           OperationID = "listStreams"
	OpSetStreamClassLists   OperationID = "setStreamClassLists"
	OpGetStream             OperationID = "getStream"
	OpUpdateStream          OperationID = "updateStream"
	OpForceDisconnect       OperationID = "forceDisconnect"
	OpSignalSession         OperationID = "signalSession"
	OpSignalConnection      OperationID = "signalConnection"
	OpDial                  OperationID = "dial"
)

// Operation is one catalog entry.
type Operation struct {
	ID     OperationID
	Family Family
	Method string
	// Path is an OpenAPI path template, e.g. /v2/project/{apiKey}/archive.
	Path   string
	Format Format
}

const projectRoot = "/v2/project/{apiKey}"

var catalog = map[OperationID]Operation{
	OpCreateSession: {OpCreateSession, FamilySession, http.MethodPost, "/session/create", FormatXML},

	OpStartArchive:     {OpStartArchive, FamilyArchive, http.MethodPost, projectRoot + "/archive", FormatJSON},
	OpListArchives:     {OpListArchives, FamilyArchive, http.MethodGet, projectRoot + "/archive", FormatJSON},
	OpGetArchive:       {OpGetArchive, FamilyArchive, http.MethodGet, projectRoot + "/archive/{archiveId}", FormatJSON},
	OpDeleteArchive:    {OpDeleteArchive, FamilyArchive, http.MethodDelete, projectRoot + "/archive/{archiveId}", FormatNone},
	OpStopArchive:      {OpStopArchive, FamilyArchive, http.MethodPost, projectRoot + "/archive/{archiveId}/stop", FormatJSON},
	OpGetArchiveLayout: {OpGetArchiveLayout, FamilyLayout, http.MethodGet, projectRoot + "/archive/{archiveId}/layout", FormatJSON},
	OpSetArchiveLayout: {OpSetArchiveLayout, FamilyLayout, http.MethodPut, projectRoot + "/archive/{archiveId}/layout", FormatNone},

	OpStartBroadcast:        {OpStartBroadcast, FamilyBroadcast, http.MethodPost, projectRoot + "/broadcast", FormatJSON},
	OpGetBroadcast:          {OpGetBroadcast, FamilyBroadcast, http.MethodGet, projectRoot + "/broadcast/{broadcastId}", FormatJSON},
	OpStopBroadcast:         {OpStopBroadcast, FamilyBroadcast, http.MethodPost, projectRoot + "/broadcast/{broadcastId}/stop", FormatJSON},
	OpGetBroadcastLayout:    {OpGetBroadcastLayout, FamilyLayout, http.MethodGet, projectRoot + "/broadcast/{broadcastId}/layout", FormatJSON},
	OpUpdateBroadcastLayout: {OpUpdateBroadcastLayout, FamilyLayout, http.MethodPut, projectRoot + "/broadcast/{broadcastId}/layout", FormatNone},

	OpListStreams:         {OpListStreams, FamilyStream, http.MethodGet, projectRoot + "/session/{sessionId}/stream/", FormatJSON},
	OpSetStreamClassLists: {OpSetStreamClassLists, FamilyStream, http.MethodPut, projectRoot + "/session/{sessionId}/stream", FormatNone},
	OpGetStream:           {OpGetStream, FamilyStream, http.MethodGet, projectRoot + "/session/{sessionId}/stream/{streamId}", FormatJSON},
	OpUpdateStream:        {OpUpdateStream, FamilyStream, http.MethodPut, projectRoot + "/session/{sessionId}/stream/{streamId}", FormatNone},

	OpForceDisconnect:  {OpForceDisconnect, FamilyForceDisconnect, http.MethodDelete, projectRoot + "/session/{sessionId}/connection/{connectionId}", FormatNone},
	OpSignalSession:    {OpSignalSession, FamilySignal, http.MethodPost, projectRoot + "/session/{sessionId}/signal", FormatNone},
	OpSignalConnection: {OpSignalConnection, FamilySignal, http.MethodPost, projectRoot + "/session/{sessionId}/connection/{connectionId}/signal", FormatNone},

	OpDial: {OpDial, FamilySip, http.MethodPost, projectRoot + "/call", FormatJSON},
}

// Lookup returns the catalog entry for id.
func Lookup(id OperationID) (Operation, bool) {
	op, ok := catalog[id]
	return op, ok
}

// Operations returns every catalogued operation ordered by path then method.
func Operations() []Operation {
	ops := make([]Operation, 0, len(catalog))
	for _, op := range catalog {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

func mustLookup(id OperationID) Operation {
	op, ok := catalog[id]
	if !ok {
		panic("api: unknown operation " + string(id))
	}
	return op
}

// expandPath substitutes every {name} in template with the simple-styled,
// path-escaped value from params. Empty values are rejected.
func expandPath(template string, params map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated parameter in path %q", template)
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%s cannot be empty", name)
		}
		styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
		if err != nil {
			return "", err
		}
		b.WriteString(rest[:open])
		b.WriteString(styled)
		rest = rest[open+end+1:]
	}
}
