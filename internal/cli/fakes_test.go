package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spohaver/venvman/internal/adapter"
	"github.com/spohaver/venvman/internal/domain"
)

// writeFile writes content to path, creating parent directories as needed.
func writeFile(t *testing.T, path, content string) error {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// newRealManager builds an EnvManager backed by the real adapters.
func newRealManager() domain.EnvManager {
	return domain.NewEnvManager(adapter.NewVenvAdapter(""), adapter.NewPipAdapter())
}

// fakeEnvManager is a scriptable EnvManager for command tests.
type fakeEnvManager struct {
	createResult *domain.CreateResult
	createErr    error
	createOpts   *domain.CreateOptions

	listInfos []*domain.EnvironmentInfo
	listErr   error

	inspectInfo *domain.EnvironmentInfo
	inspectErr  error

	removeResult *domain.RemoveResult
	removeErr    error
	removeCalled bool
}

func (m *fakeEnvManager) Create(ctx context.Context, opts domain.CreateOptions) (*domain.CreateResult, error) {
	m.createOpts = &opts
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *fakeEnvManager) List(ctx context.Context, baseDir string) ([]*domain.EnvironmentInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listInfos, nil
}

func (m *fakeEnvManager) Inspect(ctx context.Context, name, baseDir string) (*domain.EnvironmentInfo, error) {
	if m.inspectErr != nil {
		return nil, m.inspectErr
	}
	return m.inspectInfo, nil
}

func (m *fakeEnvManager) Remove(ctx context.Context, opts domain.RemoveOptions) (*domain.RemoveResult, error) {
	m.removeCalled = true
	if m.removeErr != nil {
		return nil, m.removeErr
	}
	return m.removeResult, nil
}
