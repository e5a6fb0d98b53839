package store

import (
	"context"
	"testing"

	"github.com/idilsaglam/gacha/internal/config"
	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Storage.Dir = dir
	return cfg
}

func TestOpenFileBackend(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig("/data")

	s, err := OpenFs(fs, cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.Append(ctx, "hello")
	require.NoError(t, err)

	ok, err := afero.Exists(fs, "/data/topics.json")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = afero.Exists(fs, "/data/export/topics.json")
	require.NoError(t, err)
	assert.True(t, ok)

	// a second store over the same slot sees the write
	other, err := OpenFs(fs, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", other.Load(ctx)[5])
}

func TestOpenExportDisabled(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig("/data")
	cfg.Export.Enabled = false

	s, err := OpenFs(fs, cfg, nil)
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "hello")
	require.NoError(t, err)

	ok, err := afero.DirExists(fs, "/data/export")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.LastExport())
}

func TestOpenSQLiteBackend(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Export.Enabled = false

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	got, err := s.DeleteAt(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	again, err := Open(cfg, nil)
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, got, again.Load(ctx))

	_, err = again.Notify(ctx)
	assert.ErrorIs(t, err, ErrNoNotifier)
}

func TestOpenDefaultsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/promoted.json", []byte("[\n  \"p1\",\n  \"p2\"\n]\n"), 0o644))
	cfg := testConfig("/data")
	cfg.Storage.DefaultsFile = "/promoted.json"

	s, err := OpenFs(fs, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, model.TopicList{"p1", "p2"}, s.Load(context.Background()))

	cfg.Storage.DefaultsFile = "/missing.json"
	_, err = OpenFs(fs, cfg, nil)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
