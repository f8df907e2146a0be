package project_test

import (
	"testing"
	"time"

	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	at := time.Unix(1712345678, 999)

	require.Equal(t, "proj-1-1712345678-wasm1q", project.NewID(1, at, "wasm1qxyzabc"))
	require.Equal(t, "proj-42-1712345678-bob", project.NewID(42, at, "bob"))
	require.Equal(t, "proj-7-1712345678-", project.NewID(7, at, ""))
	// Runes, not bytes.
	require.Equal(t, "proj-3-1712345678-ñandúx", project.NewID(3, at, "ñandúxyz"))
}

func TestNewID_CounterDisambiguates(t *testing.T) {
	at := time.Unix(1712345678, 0)
	require.NotEqual(t, project.NewID(1, at, "alice"), project.NewID(2, at, "alice"))
}
