package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	path := writeFile(t, "live.toml", "particle_count = 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path)
	require.NoError(t, err)

	// broken edits are skipped, the next good one comes through
	require.NoError(t, os.WriteFile(path, []byte("particle_count = -4\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("particle_count = 42\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case conf := <-ch:
			require.NotNil(t, conf)
			assert.NotEqual(t, -4, conf.ParticleCount)
			if conf.ParticleCount == 42 {
				cancel()
				for range ch {
				}
				return
			}
		case <-timeout:
			t.Fatal("no reload seen")
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "live.toml", "particle_count = 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, path)
	require.NoError(t, err)

	other := filepath.Join(filepath.Dir(path), "other.toml")
	require.NoError(t, os.WriteFile(other, []byte("particle_count = 3\n"), 0o644))

	select {
	case conf := <-ch:
		t.Fatalf("unexpected reload %+v", conf)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "x.toml"))
	assert.Error(t, err)
}
