package contract_test

import (
	"testing"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestDecodeExecute(t *testing.T) {
	msg, err := contract.DecodeExecute([]byte(`{"UpdateProjectStatus":{"project_id":"p1","status":"InProgress"}}`))
	require.NoError(t, err)
	require.NotNil(t, msg.UpdateProjectStatus)
	require.Equal(t, project.StatusInProgress, msg.UpdateProjectStatus.Status)

	method, err := msg.Method()
	require.NoError(t, err)
	require.Equal(t, "update_project_status", method)
}

func TestDecodeExecute_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"empty object", `{}`, contract.ErrInvalidMessage},
		{"two variants", `{"DeleteProject":{"project_id":"a"},"GetProject":{"project_id":"a"}}`, contract.ErrInvalidMessage},
		{"both execute variants", `{"DeleteProject":{"project_id":"a"},"RequestCollaboration":{"project_id":"a","collaborator":"b"}}`, contract.ErrInvalidMessage},
		{"unknown variant", `{"ArchiveProject":{}}`, contract.ErrInvalidMessage},
		{"not json", `CreateProject`, contract.ErrInvalidMessage},
		{"bad status", `{"UpdateProjectStatus":{"project_id":"p1","status":"Archived"}}`, project.ErrInvalidStatus},
		{"create without is_paid", `{"CreateProject":{"title":"x","description":"d","skills_required":[]}}`, contract.ErrInvalidMessage},
		{"create with title only", `{"CreateProject":{"title":"x"}}`, contract.ErrInvalidMessage},
		{"create with null skills", `{"CreateProject":{"title":"x","description":"d","skills_required":null,"is_paid":true}}`, contract.ErrInvalidMessage},
		{"delete without project_id", `{"DeleteProject":{}}`, contract.ErrInvalidMessage},
		{"update without status", `{"UpdateProjectStatus":{"project_id":"p1"}}`, contract.ErrInvalidMessage},
		{"collaborate without collaborator", `{"RequestCollaboration":{"project_id":"p1"}}`, contract.ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contract.DecodeExecute([]byte(tt.raw))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeQuery(t *testing.T) {
	msg, err := contract.DecodeQuery([]byte(`{"ListProjects":{}}`))
	require.NoError(t, err)
	method, err := msg.Method()
	require.NoError(t, err)
	require.Equal(t, "list_projects", method)

	msg, err = contract.DecodeQuery([]byte(`{"GetProject":{"project_id":"p1"}}`))
	require.NoError(t, err)
	require.Equal(t, "p1", msg.GetProject.ProjectID)

	_, err = contract.DecodeQuery([]byte(`{"CreateProject":{}}`))
	require.ErrorIs(t, err, contract.ErrInvalidMessage)

	_, err = contract.DecodeQuery([]byte(`{"GetProject":{}}`))
	require.ErrorIs(t, err, contract.ErrInvalidMessage)
}

func TestDecodeExecute_MissingFieldNamed(t *testing.T) {
	_, err := contract.DecodeExecute([]byte(`{"CreateProject":{"title":"x","description":"d","skills_required":["go"]}}`))
	require.ErrorIs(t, err, contract.ErrInvalidMessage)
	require.Contains(t, err.Error(), `"is_paid"`)

	msg, err := contract.DecodeExecute([]byte(`{"CreateProject":{"title":"x","description":"","skills_required":[],"is_paid":false}}`))
	require.NoError(t, err)
	require.False(t, msg.CreateProject.IsPaid)
}

func TestDecodeInstantiate(t *testing.T) {
	msg, err := contract.DecodeInstantiate(nil)
	require.NoError(t, err)
	require.Nil(t, msg.Admin)

	msg, err = contract.DecodeInstantiate([]byte(`{"admin":"carol"}`))
	require.NoError(t, err)
	require.Equal(t, "carol", *msg.Admin)
}
