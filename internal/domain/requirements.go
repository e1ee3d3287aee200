package domain

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Requirements is an ordered list of package specifiers read from a
// requirements manifest. A specifier is a package name with an optional
// version constraint, e.g. "requests==2.0". Comparison against the
// installed set is order-insensitive on whole specifiers.
type Requirements struct {
	Path       string   // Manifest path the specifiers were read from
	Specifiers []string // Specifiers in file order, comments and blanks removed
}

// LoadRequirements reads a requirements manifest. It returns
// ErrRequirementsNotFound when the file does not exist. Blank lines and
// lines starting with '#' are ignored.
func LoadRequirements(path string) (*Requirements, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no manifest at %s", ErrRequirementsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read requirements file at %s: %w. Check file permissions", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reqs := &Requirements{Path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		reqs.Specifiers = append(reqs.Specifiers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements file at %s: %w", path, err)
	}

	return reqs, nil
}

// IsEmpty reports whether the manifest declares no packages.
func (r *Requirements) IsEmpty() bool {
	return r == nil || len(r.Specifiers) == 0
}

// Set returns the specifiers as an order-insensitive set.
func (r *Requirements) Set() map[string]struct{} {
	if r == nil {
		return map[string]struct{}{}
	}
	return specifierSet(r.Specifiers)
}

// specifierSet converts a specifier slice into a set.
func specifierSet(specifiers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(specifiers))
	for _, s := range specifiers {
		set[s] = struct{}{}
	}
	return set
}
