package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir returns the runtime directory used for pixelwin state. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/pixelwin-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/pixelwin-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the control socket path of a running pixelwin.
func SocketPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pixelwin.sock"), nil
}

// SnapshotDir returns dir if set, otherwise the pixelwin-snapshots directory
// under the runtime directory. The directory is created.
func SnapshotDir(dir string) (string, error) {
	if dir == "" {
		runtimeDir, err := Dir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(runtimeDir, "pixelwin-snapshots")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return dir, nil
}

// SnapshotPath returns a PNG path in SnapshotDir(dir) named after at.
func SnapshotPath(dir string, at time.Time) (string, error) {
	dir, err := SnapshotDir(dir)
	if err != nil {
		return "", err
	}
	name := "snapshot-" + at.Format("20060102-150405.000") + ".png"
	return filepath.Join(dir, name), nil
}
