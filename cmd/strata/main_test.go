package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: dir})
	require.NoError(t, repo.Save(context.Background(), core.Document{
		ID:       "people/a",
		Content:  "body",
		Metadata: core.Metadata{"name": "A", "age": 0, "title": "Person A"},
	}))
	return dir
}

func TestGetSet(t *testing.T) {
	dir := seed(t)

	out, err := run(t, "--dir", dir, "get", "people/a", "name")
	require.NoError(t, err)
	assert.Equal(t, "A\n", out)

	_, err = run(t, "--dir", dir, "set", "people/a", "age", "30")
	require.NoError(t, err)

	out, err = run(t, "--dir", dir, "get", "people/a", "age")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	doc, err := fs.NewRepository(fs.Config{Path: dir}).Get(context.Background(), "people/a")
	require.NoError(t, err)
	assert.Equal(t, 30, doc.Metadata["age"])
	assert.Equal(t, "body", doc.Content, "content survives property writes")
}

func TestSetUnsetAndCreate(t *testing.T) {
	dir := seed(t)

	_, err := run(t, "--dir", dir, "set", "--unset", "people/a", "age")
	require.NoError(t, err)
	_, err = run(t, "--dir", dir, "get", "people/a", "age")
	assert.Error(t, err)

	_, err = run(t, "--dir", dir, "set", "people/b", "tags", "[a, b]")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, "--dir", dir, "set", "--create", "people/b", "tags", "[a, b]")
	require.NoError(t, err)
	out, err := run(t, "--dir", dir, "get", "people/b", "tags")
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b\n", out)
}

func TestList(t *testing.T) {
	dir := seed(t)
	_, err := run(t, "--dir", dir, "set", "--create", "notes/n1", "title", "First")
	require.NoError(t, err)

	out, err := run(t, "--dir", dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "notes/n1 - First\npeople/a - Person A\n", out)

	out, err = run(t, "--dir", dir, "list", "--pattern", "people/*")
	require.NoError(t, err)
	assert.Equal(t, "people/a - Person A\n", out)
}

func TestMissingDirectory(t *testing.T) {
	_, err := run(t, "--dir", t.TempDir()+"/nope", "list")
	assert.Error(t, err)
}
