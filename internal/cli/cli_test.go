package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/idilsaglam/gacha/internal/config"
	"github.com/idilsaglam/gacha/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a config file pointing at a private storage dir.
type testEnv struct {
	dir    string
	config string
}

func newTestEnv(t *testing.T, extra string) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := `storage:
  dir: ` + dir + `
sync:
  poll_interval: 20ms
draw:
  delay: 0s
  celebration: 0s
ui:
  color: never
` + extra
	path := filepath.Join(dir, ".gacha.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return testEnv{dir: dir, config: path}
}

func (te testEnv) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = ExecuteArgs(context.Background(), append([]string{"--config", te.config}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestListShowsDefaultsOnFirstRun(t *testing.T) {
	te := newTestEnv(t, "")

	code, out, _ := te.run(t, "ls")

	require.Equal(t, 0, code)
	for _, topic := range store.DefaultTopics() {
		assert.Contains(t, out, topic)
	}
}

func TestAddEditRemove(t *testing.T) {
	te := newTestEnv(t, "")

	code, out, _ := te.run(t, "add", "first", "topic")
	require.Equal(t, 0, code)
	n := len(store.DefaultTopics()) + 1
	assert.Contains(t, out, "added #")

	code, _, _ = te.run(t, "edit", strconv.Itoa(n), "  renamed  ")
	require.Equal(t, 0, code)

	_, out, _ = te.run(t, "ls")
	assert.Contains(t, out, "renamed")
	assert.NotContains(t, out, "first topic")

	code, out, _ = te.run(t, "rm", "--yes", strconv.Itoa(n))
	require.Equal(t, 0, code)
	assert.Contains(t, out, "removed #")

	_, out, _ = te.run(t, "ls")
	assert.NotContains(t, out, "renamed")
}

func TestAddBlankIsRejected(t *testing.T) {
	te := newTestEnv(t, "")

	code, _, stderr := te.run(t, "add", "   ")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "cannot be empty")
	_, err := os.Stat(filepath.Join(te.dir, "topics.json"))
	assert.True(t, os.IsNotExist(err), "a rejected add must not write the slot")
}

func TestEditOutOfBounds(t *testing.T) {
	te := newTestEnv(t, "")

	code, _, stderr := te.run(t, "edit", "99", "x")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "No topic at position 99")
}

func TestRemoveOutOfBounds(t *testing.T) {
	te := newTestEnv(t, "")

	code, _, stderr := te.run(t, "rm", "--yes", "0")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "No topic at position 0")
}

func TestNotANumber(t *testing.T) {
	te := newTestEnv(t, "")

	code, _, stderr := te.run(t, "rm", "two")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "not a number")
}

func TestUsageErrors(t *testing.T) {
	te := newTestEnv(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"spin"}},
		{"add without text", []string{"add"}},
		{"edit without text", []string{"edit", "1"}},
		{"unknown flag", []string{"ls", "--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := te.run(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestDrawPrintsOneOfTheTopics(t *testing.T) {
	te := newTestEnv(t, "")
	for _, text := range []string{"alpha", "beta", "gamma"} {
		code, _, _ := te.run(t, "add", text)
		require.Equal(t, 0, code)
	}

	code, out, _ := te.run(t, "draw", "--no-wait")

	require.Equal(t, 0, code)
	assert.Contains(t, out, "Result")
	assert.Contains(t, out, "#")
	found := false
	for _, text := range append(store.DefaultTopics(), "alpha", "beta", "gamma") {
		if strings.Contains(out, text) {
			found = true
		}
	}
	assert.True(t, found, "draw output should name a topic: %s", out)
}

func TestDrawEmptyList(t *testing.T) {
	te := newTestEnv(t, "")
	for range store.DefaultTopics() {
		code, _, _ := te.run(t, "rm", "--yes", "1")
		require.Equal(t, 0, code)
	}

	code, out, stderr := te.run(t, "draw")

	assert.Equal(t, 2, code)
	assert.NotContains(t, out, "Result")
	assert.Contains(t, stderr, "No topics to draw from")
}

func TestChangesWriteExport(t *testing.T) {
	te := newTestEnv(t, "")

	code, out, _ := te.run(t, "add", "exported")
	require.Equal(t, 0, code)

	path := filepath.Join(te.dir, "export", "topics.json")
	assert.Contains(t, out, path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "exported", got[len(got)-1])
}

func TestExportDisabled(t *testing.T) {
	te := newTestEnv(t, "export:\n  enabled: false\n")

	code, _, _ := te.run(t, "add", "quiet")
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(te.dir, "export"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportToPath(t *testing.T) {
	te := newTestEnv(t, "")
	target := filepath.Join(t.TempDir(), "out.json")

	code, out, _ := te.run(t, "export", target)

	require.Equal(t, 0, code)
	assert.Contains(t, out, target)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "[\n  \""), "export should be indented: %q", b)
	assert.True(t, strings.HasSuffix(string(b), "]\n"))
}

func TestExportToDirectory(t *testing.T) {
	te := newTestEnv(t, "")
	existing := t.TempDir()
	fresh := filepath.Join(t.TempDir(), "new") + string(filepath.Separator)

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"existing directory", existing, filepath.Join(existing, "topics.json")},
		{"trailing separator", fresh, filepath.Join(fresh, "topics.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := te.run(t, "export", tt.arg)

			require.Equal(t, 0, code, stderr)
			assert.Contains(t, out, tt.want)
			assert.FileExists(t, tt.want)
		})
	}
}

func TestCorruptSlotFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"ls", []string{"ls"}, store.DefaultTopics()[0]},
		{"draw", []string{"draw", "--no-wait"}, "Result"},
		{"export", []string{"export"}, "exported " + strconv.Itoa(len(store.DefaultTopics())) + " topics"},
		{"rm", []string{"rm", "--yes", "1"}, "removed #1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t, "")
			require.NoError(t, os.WriteFile(filepath.Join(te.dir, "topics.json"), []byte("not json"), 0o644))

			code, out, stderr := te.run(t, tt.args...)

			assert.Equal(t, 0, code)
			assert.Empty(t, stderr)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSQLiteBackend(t *testing.T) {
	te := newTestEnv(t, "")
	cfg, err := os.ReadFile(te.config)
	require.NoError(t, err)
	cfg = bytes.Replace(cfg, []byte("storage:\n"), []byte("storage:\n  backend: sqlite\n"), 1)
	require.NoError(t, os.WriteFile(te.config, cfg, 0o644))

	code, _, _ := te.run(t, "add", "from sqlite")
	require.Equal(t, 0, code)

	_, out, _ := te.run(t, "ls")
	assert.Contains(t, out, "from sqlite")
	_, err = os.Stat(filepath.Join(te.dir, "gacha.db"))
	assert.NoError(t, err)
}

func TestBadConfigFails(t *testing.T) {
	te := newTestEnv(t, "")
	require.NoError(t, os.WriteFile(te.config, []byte("storage:\n  backend: redis\n"), 0o644))

	code, _, stderr := te.run(t, "ls")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown storage backend")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gacha.yaml")
	var out, errOut bytes.Buffer

	code := ExecuteArgs(context.Background(), []string{"config", "init", path}, &out, &errOut)
	require.Equal(t, 0, code)
	assert.FileExists(t, path)

	code = ExecuteArgs(context.Background(), []string{"config", "init", path}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "already exists")

	code = ExecuteArgs(context.Background(), []string{"config", "init", "--force", path}, &out, &errOut)
	assert.Equal(t, 0, code)
}

func TestConfigShow(t *testing.T) {
	te := newTestEnv(t, "")

	code, out, _ := te.run(t, "config", "show")

	require.Equal(t, 0, code)
	assert.Contains(t, out, "poll_interval: 20ms")
	assert.Contains(t, out, te.dir)
}

func TestVersion(t *testing.T) {
	orig := [3]string{version, commit, date}
	defer SetVersionInfo(orig[0], orig[1], orig[2])
	SetVersionInfo("1.2.3", "abc1234", "2026-01-01")

	var out, errOut bytes.Buffer
	code := ExecuteArgs(context.Background(), []string{"version"}, &out, &errOut)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "gacha v1.2.3")
	assert.Contains(t, out.String(), "commit: abc1234")

	out.Reset()
	code = ExecuteArgs(context.Background(), []string{"version", "--short"}, &out, &errOut)
	require.Equal(t, 0, code)
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "", formatVersion(""))
	assert.Equal(t, "v1.0.0", formatVersion("1.0.0"))
	assert.Equal(t, "v1.0.0", formatVersion("v1.0.0"))
}

// syncBuffer lets the test read output the watch command is still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchPrintsChanges(t *testing.T) {
	te := newTestEnv(t, "")
	code, _, _ := te.run(t, "add", "before")
	require.Equal(t, 0, code)

	ctx, cancel := context.WithCancel(context.Background())
	var out, errOut syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- ExecuteArgs(ctx, []string{"--config", te.config, "watch"}, &out, &errOut)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "before")
	}, 2*time.Second, 10*time.Millisecond)

	// a second writer, as another process would be
	cfg, err := config.Load(te.config)
	require.NoError(t, err)
	other, err := store.Open(cfg, nil)
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Append(context.Background(), "after")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "list changed") && strings.Contains(out.String(), "after")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
