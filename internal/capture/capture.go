// Package capture grabs a screenshot of the primary display by shelling out
// to the platform's capture tool. It is the CLI-side collaborator of the
// pipeline; the HTTP API receives screenshots from clients instead.
package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// Screenshotter captures the primary display as PNG bytes.
type Screenshotter interface {
	Capture(ctx context.Context) ([]byte, error)
}

// New returns the capture backend for the current platform.
func New() Screenshotter {
	return &execScreenshotter{goos: runtime.GOOS}
}

type execScreenshotter struct {
	goos string
}

func (s *execScreenshotter) Capture(ctx context.Context) ([]byte, error) {
	tmp, err := os.CreateTemp("", "screenguide-*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	var candidates [][]string
	switch s.goos {
	case "darwin":
		candidates = [][]string{
			{"screencapture", "-x", "-t", "png", path},
		}
	default:
		candidates = [][]string{
			{"gnome-screenshot", "-f", path},
			{"import", "-window", "root", path},
		}
	}

	var lastErr error
	for _, args := range candidates {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("%s: %w", args[0], err)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read captured screenshot: %w", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no screen capture tool available: %w", lastErr)
}

// SaveToDir persists a captured screenshot under dir with a timestamped
// filename and returns the full path.
func SaveToDir(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshots directory: %w", err)
	}

	filename := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return path, nil
}
