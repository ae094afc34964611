package configwatcher

import (
	"context"
	"elearn_backend/internal/config"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path string, attempts int) {
	t.Helper()
	body := []byte("server:\n  mode: debug\nstorage:\n  type: minio\nquiz:\n  max_attempts: " + strconv.Itoa(attempts) + "\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case got <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before changing the file.
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, path, 5)

	select {
	case cfg := <-got:
		if cfg.Quiz.MaxAttempts != 5 {
			t.Errorf("MaxAttempts = %d, want 5", cfg.Quiz.MaxAttempts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchConfig returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchConfig_MissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), func(*config.Config) {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
