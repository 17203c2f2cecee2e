// pkg/registry/registry_test.go
package registry

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	entry, err := New().Load(DefaultLibrary)
	require.NoError(t, err)
	assert.Equal(t, "alsa", entry.Name)
	assert.Equal(t, "alsa", entry.PkgConfig)
	assert.Equal(t, []string{"asound"}, entry.Libs)
	assert.Equal(t, []string{"alsa/asoundlib.h"}, entry.Headers)
	assert.Equal(t, "libasound2-dev", entry.Backends["apt"])
}

func TestHint(t *testing.T) {
	entry, err := New().Load(DefaultLibrary)
	require.NoError(t, err)
	assert.Equal(t, "install alsa-lib-devel (dnf)", entry.Hint("dnf"))
	assert.Empty(t, entry.Hint("winget"))
	assert.Empty(t, entry.Hint(""))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"libs/jack.toml":   {Data: []byte("libs = [\"jack\"]\n")},
		"libs/broken.toml": {Data: []byte("libs = [\n")},
		"libs/empty.toml":  {Data: []byte("name = \"empty\"\n")},
	}
	r := NewFS(fsys, "libs")

	entry, err := r.Load("jack")
	require.NoError(t, err)
	assert.Equal(t, "jack", entry.Name)
	assert.Equal(t, "jack", entry.PkgConfig)

	_, err = r.Load("broken")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = r.Load("empty")
	assert.ErrorContains(t, err, "lists no libs")

	_, err = r.Load("pulse")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := r.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "empty", "jack"}, names)
}

func TestEmbeddedNames(t *testing.T) {
	names, err := New().Names()
	require.NoError(t, err)
	assert.Contains(t, names, "alsa")
}
