package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileRepository_RoundTrip(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	var missing payload
	found, err := repo.Load("nope", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	in := payload{Name: "gemchat", Count: 3}
	require.NoError(t, repo.Save(KeyChat, in))

	var out payload
	found, err = repo.Load(KeyChat, &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestFileRepository_SaveOverwritesWholesale(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(KeyAuth, payload{Name: "first", Count: 1}))
	require.NoError(t, repo.Save(KeyAuth, payload{Name: "second"}))

	var out payload
	_, err = repo.Load(KeyAuth, &out)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "second"}, out)
}

func TestFileRepository_Delete(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(KeyOTP, payload{Name: "code"}))
	require.NoError(t, repo.Delete(KeyOTP))
	require.NoError(t, repo.Delete(KeyOTP), "deleting a missing key is fine")

	var out payload
	found, err := repo.Load(KeyOTP, &out)
	require.NoError(t, err)
	assert.False(t, found)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestFileRepository_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFileRepository(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileRepository_CorruptBlob(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyChat+".json"), []byte("{not json"), 0o644))

	var out payload
	_, err = repo.Load(KeyChat, &out)
	assert.Error(t, err)
}
