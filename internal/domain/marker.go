package domain

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MarkerFileName is the location marker written next to a project.
const MarkerFileName = ".venvlocation"

// markerFileMode is the permission for the marker file.
const markerFileMode fs.FileMode = 0o644 // User: rw, Group: r, Others: r

// LocationMarker records the absolute path of the environment associated
// with a project directory. There is at most one marker per project
// directory; every successful create overwrites it.
type LocationMarker struct {
	path string
}

// NewLocationMarker returns the marker for the given project directory.
func NewLocationMarker(projectDir string) *LocationMarker {
	return &LocationMarker{path: filepath.Join(projectDir, MarkerFileName)}
}

// Path returns the marker file path.
func (m *LocationMarker) Path() string {
	return m.path
}

// Write records the environment path, replacing any previous marker.
func (m *LocationMarker) Write(envPath string) error {
	data := []byte(envPath + "\n")
	if err := os.WriteFile(m.path, data, markerFileMode); err != nil {
		return fmt.Errorf("failed to write location marker at %s: %w. Check file permissions", m.path, err)
	}
	return nil
}

// Read returns the recorded environment path, or an empty string when the
// marker does not exist.
func (m *LocationMarker) Read() (string, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read location marker at %s: %w", m.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// RemoveIfPointsTo deletes the marker when it records the given environment
// path. It reports whether the marker was removed. A marker pointing at a
// different environment is left untouched.
func (m *LocationMarker) RemoveIfPointsTo(envPath string) (bool, error) {
	recorded, err := m.Read()
	if err != nil {
		return false, err
	}
	if recorded == "" || recorded != envPath {
		return false, nil
	}
	if err := os.Remove(m.path); err != nil {
		return false, fmt.Errorf("failed to remove location marker at %s: %w", m.path, err)
	}
	return true, nil
}
