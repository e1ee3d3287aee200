// Package port defines interfaces for external system integrations.
// It provides abstractions for the platform environment-creation tool and
// the package installer.
package port

import "context"

// EnvironmentProvider is the abstraction interface for the platform's
// environment-creation primitive.
type EnvironmentProvider interface {
	// Available checks that the environment tool can be invoked at all.
	Available(ctx context.Context) error

	// Create creates a new environment at the given directory path.
	Create(ctx context.Context, path string) error

	// InterpreterVersion reports the version string of the interpreter
	// installed inside the environment.
	InterpreterVersion(ctx context.Context, envPath string) (string, error)
}

// PackageInstaller is the abstraction interface for the package installer
// associated with an environment.
type PackageInstaller interface {
	// Installed returns the package specifiers currently installed in the
	// environment, one specifier per entry.
	Installed(ctx context.Context, envPath string) ([]string, error)

	// Install installs the full requirements manifest into the environment.
	// It returns the installer's combined output.
	Install(ctx context.Context, envPath, manifestPath string) (string, error)

	// Upgrade upgrades the installer itself inside the environment.
	// It returns the installer's combined output.
	Upgrade(ctx context.Context, envPath string) (string, error)
}
