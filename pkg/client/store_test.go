package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	store := NewFileStore(path)

	st, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Token, "missing file loads as empty state")

	user := DemoUser
	require.NoError(t, store.Save(State{
		Token: "tok",
		User:  &user,
		Mode:  ModeBackend,
		Demo:  map[string]string{DemoKey(EndpointProducts): `[]`},
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	st, err = NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", st.Token)
	assert.Equal(t, ModeBackend, st.Mode)
	require.NotNil(t, st.User)
	assert.Equal(t, DemoUser.Username, st.User.Username)
	assert.Equal(t, "[]", st.Demo["vendaflow.demo./api/produtos"])
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0o600))
	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestStateProviderRejectsInvalidPayload(t *testing.T) {
	p := NewStateProvider(NewMemoryStore(State{Demo: map[string]string{DemoKey(EndpointSales): "{not json"}}))
	_, _, err := p.Handle(context.Background(), EndpointSales, RequestOptions{})
	assert.Error(t, err)

	_, ok, err := p.Handle(context.Background(), EndpointDashboard, RequestOptions{})
	require.NoError(t, err)
	assert.False(t, ok)
}
