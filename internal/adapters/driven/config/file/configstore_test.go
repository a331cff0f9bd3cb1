package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "issuesync.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewConfigStore_Success(t *testing.T) {
	path := writeConfig(t, `[notion]
token = "secret_abc"
`)

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, "secret_abc", store.GetString("notion.token"))
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, store.Path())
}

func TestNewConfigStore_MissingFile(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	_, ok := store.Get("notion.token")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `this is not = = toml`)

	_, err := NewConfigStore(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestConfigStore_Getters(t *testing.T) {
	path := writeConfig(t, `
name = "top"

[sync]
concurrency = 5

[notion]
rate = 2.5
whole_rate = 4

[log]
verbose = true

[deep.nested]
value = "x"
`)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "top", store.GetString("name"))
		assert.Equal(t, "", store.GetString("sync.concurrency"))
		assert.Equal(t, "", store.GetString("nonexistent"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 5, store.GetInt("sync.concurrency"))
		assert.Equal(t, 0, store.GetInt("name"))
		assert.Equal(t, 0, store.GetInt("nonexistent"))
	})

	t.Run("float", func(t *testing.T) {
		assert.InDelta(t, 2.5, store.GetFloat("notion.rate"), 1e-9)
		assert.InDelta(t, 4.0, store.GetFloat("notion.whole_rate"), 1e-9)
		assert.Zero(t, store.GetFloat("name"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, store.GetBool("log.verbose"))
		assert.False(t, store.GetBool("name"))
		assert.False(t, store.GetBool("nonexistent"))
	})

	t.Run("nested tables flatten", func(t *testing.T) {
		assert.Equal(t, "x", store.GetString("deep.nested.value"))
	})
}

func TestFlattenMap(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "e"},
		},
		"f": true,
	}

	got := flattenMap(in, "")

	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "e", "f": true}, got)
}
