package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaflow/backoffice/pkg/client"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func TestProductsInFrontendMode(t *testing.T) {
	t.Setenv("BACKOFFICE_STATE", filepath.Join(t.TempDir(), "state.yaml"))
	t.Setenv("BACKOFFICE_MODE", "frontend")

	out := run(t, "products")
	assert.Contains(t, out, "Arroz Tipo 1 5kg")
	assert.Contains(t, out, "demo data")

	out = run(t, "products", "--low-stock")
	assert.Contains(t, out, "Detergente Neutro 500ml")
	assert.NotContains(t, out, "Arroz Tipo 1 5kg")
}

func TestModeIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	t.Setenv("BACKOFFICE_STATE", path)

	assert.Contains(t, run(t, "mode", "frontend"), "mode set to frontend")

	st, err := client.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, client.ModeFrontend, st.Mode)

	assert.Contains(t, run(t, "mode"), "frontend")
}

func TestDemoLoginThenMe(t *testing.T) {
	t.Setenv("BACKOFFICE_STATE", filepath.Join(t.TempDir(), "state.yaml"))
	t.Setenv("BACKOFFICE_MODE", "frontend")

	assert.Contains(t, run(t, "login", "-u", "demo", "-p", "demo"), "demo session")
	assert.Contains(t, run(t, "me"), client.DemoUser.FullName)
	assert.Contains(t, run(t, "logout"), "signed out")
}
