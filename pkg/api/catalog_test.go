package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	require.NotNil(t, doc)

	again, err := GetSwagger()
	require.NoError(t, err)
	assert.Same(t, doc, again, "document is loaded once")
	assert.NotEmpty(t, RawSpec())
}

// The catalog and the embedded OpenAPI document describe the same surface.
func TestCatalogMatchesOpenAPI(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	for _, op := range Operations() {
		t.Run(string(op.ID), func(t *testing.T) {
			item := doc.Paths.Value(op.Path)
			require.NotNil(t, item, "path %s missing from document", op.Path)

			docOp := item.GetOperation(op.Method)
			require.NotNil(t, docOp, "%s %s missing from document", op.Method, op.Path)
			assert.Equal(t, string(op.ID), docOp.OperationID)
		})
	}

	var documented int
	for _, item := range doc.Paths.Map() {
		documented += len(item.Operations())
	}
	assert.Equal(t, len(Operations()), documented, "every documented operation is catalogued")
}

func TestLookup(t *testing.T) {
	op, ok := Lookup(OpSignalConnection)
	require.True(t, ok)
	assert.Equal(t, FamilySignal, op.Family)
	assert.Equal(t, http.MethodPost, op.Method)
	assert.Equal(t, FormatNone, op.Format)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestCatalogInvariants(t *testing.T) {
	for _, op := range Operations() {
		if op.ID == OpCreateSession {
			assert.Equal(t, FormatXML, op.Format)
			continue
		}
		assert.True(t, strings.HasPrefix(op.Path, projectRoot), "%s is not under the project root", op.ID)
		if op.Method == http.MethodGet {
			assert.Equal(t, FormatJSON, op.Format, "%s reads must decode JSON", op.ID)
		}
	}
}

func TestOperationsSorted(t *testing.T) {
	ops := Operations()
	for i := 1; i < len(ops); i++ {
		prev, cur := ops[i-1], ops[i]
		assert.True(t, prev.Path < cur.Path || (prev.Path == cur.Path && prev.Method < cur.Method),
			"%s %s before %s %s", prev.Method, prev.Path, cur.Method, cur.Path)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
		wantErr  string
	}{
		{
			name:     "simple",
			template: "/v2/project/{apiKey}/archive/{archiveId}",
			params:   map[string]string{"apiKey": "123", "archiveId": "abc"},
			want:     "/v2/project/123/archive/abc",
		},
		{
			name:     "escaped",
			template: "/v2/project/{apiKey}/session/{sessionId}",
			params:   map[string]string{"apiKey": "123", "sessionId": "a/b c"},
			want:     "/v2/project/123/session/a%2Fb%20c",
		},
		{
			name:     "missing",
			template: "/v2/project/{apiKey}/archive/{archiveId}",
			params:   map[string]string{"apiKey": "123"},
			wantErr:  "archiveId cannot be empty",
		},
		{
			name:     "empty",
			template: "/v2/project/{apiKey}",
			params:   map[string]string{"apiKey": ""},
			wantErr:  "apiKey cannot be empty",
		},
		{
			name:     "unterminated",
			template: "/v2/project/{apiKey",
			params:   map[string]string{"apiKey": "1"},
			wantErr:  "unterminated parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.template, tt.params)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "archive", FamilyArchive.String())
	assert.Equal(t, "forceDisconnect", FamilyForceDisconnect.String())
	assert.Equal(t, "Family(42)", Family(42).String())
}
