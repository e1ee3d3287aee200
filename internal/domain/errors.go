package domain

import "errors"

// Sentinel errors for domain-level error identification.
// These errors provide a standard way to identify and report error conditions
// across the application.
var (
	// ErrConfigNotFound indicates that the defaults file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates that a defaults file already exists.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrEnvCreation indicates that the platform environment tool is
	// unavailable or exited with a failure.
	ErrEnvCreation = errors.New("environment creation failed")

	// ErrPackageInstall indicates that the package installer exited non-zero.
	ErrPackageInstall = errors.New("package installation failed")

	// ErrEnvNotFound indicates that the requested environment does not exist.
	ErrEnvNotFound = errors.New("environment not found")

	// ErrRequirementsNotFound indicates that the requirements manifest is missing.
	ErrRequirementsNotFound = errors.New("requirements file not found")
)
