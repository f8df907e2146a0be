package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/host"
	"github.com/stretchr/testify/require"
)

func TestParseRequest_ContractMessage(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"execute","params":{"DeleteProject":{"project_id":"p1"}},"id":"a"}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "execute", req.Method)
	require.Equal(t, "a", req.ID)
	require.JSONEq(t, `{"DeleteProject":{"project_id":"p1"}}`, string(req.Params))
}

func TestParseRequest_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"truncated", `{"jsonrpc":"2.0","method":`, errParse},
		{"not an object", `[1,2]`, errParse},
		{"no method", `{"jsonrpc":"2.0","id":1}`, errInvalidRequest},
		{"old version", `{"jsonrpc":"1.0","method":"query","id":1}`, errInvalidRequest},
		{"no version", `{"method":"query","id":1}`, errInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(bytes.NewBufferString(tt.body))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMapError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthorized", project.ErrUnauthorized, ErrUnauthorizedCode, "Unauthorized"},
		{"project missing", fmt.Errorf("loading: %w", project.ErrProjectNotFound), ErrNotFoundCode, "loading: project not found"},
		{"request missing", collaboration.ErrRequestNotFound, ErrNotFoundCode, "collaboration request not found"},
		{"already initialized", host.ErrAlreadyInitialized, ErrConflictCode, "contract already initialized"},
		{"already requested", collaboration.ErrAlreadyRequested, ErrConflictCode, "you have already requested to join this project"},
		{"not initialized", fmt.Errorf("projects: %w", project.ErrNotInitialized), ErrNotInitializedCode, "projects: not initialized"},
		{"unknown method", fmt.Errorf("%w: archive", host.ErrUnknownMethod), ErrMethodNotFound, "unknown method: archive"},
		{"missing field", fmt.Errorf("%w: DeleteProject: missing field %q", contract.ErrInvalidMessage, "project_id"), ErrInvalidParams, `invalid message: DeleteProject: missing field "project_id"`},
		{"owner joins", collaboration.ErrOwnerRequest, ErrInvalidParams, "you are the owner of this project"},
		{"storage", errors.New("disk I/O error"), ErrInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := MapError(tt.err)
			require.Equal(t, tt.code, code)
			require.Equal(t, tt.msg, msg)
		})
	}
}

func TestWriteError_ApplicationCode(t *testing.T) {
	rec := httptest.NewRecorder()
	code, msg := MapError(project.ErrUnauthorized)
	WriteError(rec, 3, code, msg, nil)

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Nil(t, out.Result)
	require.Equal(t, &Error{Code: -32001, Message: "Unauthorized"}, out.Error)
	require.EqualValues(t, 3, out.ID)
}

func TestWriteResult_Attributes(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResult(rec, 9, project.NewResponse("delete_project").Add("project_id", "p1").Add("deleted_by", "admin"))

	var out struct {
		Result struct {
			Attributes []project.Attribute `json:"attributes"`
		} `json:"result"`
		Error *Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Nil(t, out.Error)
	require.Equal(t, []project.Attribute{
		{Key: "method", Value: "delete_project"},
		{Key: "project_id", Value: "p1"},
		{Key: "deleted_by", Value: "admin"},
	}, out.Result.Attributes)
}
