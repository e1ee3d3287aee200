package domain

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ReconcilePlan is the computed delta between the packages installed in an
// environment and the specifiers a requirements manifest declares.
type ReconcilePlan struct {
	Missing    []string // Declared in the manifest but not installed
	Extraneous []string // Installed but not declared in the manifest
}

// BuildPlan computes the order-insensitive set difference between the
// installed package specifiers and the required ones. Both result slices
// are sorted for stable display.
func BuildPlan(installed, required []string) *ReconcilePlan {
	installedSet := specifierSet(installed)
	requiredSet := specifierSet(required)

	plan := &ReconcilePlan{}
	for spec := range requiredSet {
		if _, ok := installedSet[spec]; !ok {
			plan.Missing = append(plan.Missing, spec)
		}
	}
	for spec := range installedSet {
		if _, ok := requiredSet[spec]; !ok {
			plan.Extraneous = append(plan.Extraneous, spec)
		}
	}
	sort.Strings(plan.Missing)
	sort.Strings(plan.Extraneous)

	return plan
}

// InSync reports whether the installed set already satisfies the manifest.
func (p *ReconcilePlan) InSync() bool {
	return len(p.Missing) == 0 && len(p.Extraneous) == 0
}

// RenderDiff renders a unified-style line diff between the installed set and
// the required set, both sorted. Lines are prefixed with "+" for specifiers
// the manifest adds, "-" for installed specifiers it does not declare, and
// two spaces for unchanged ones.
func RenderDiff(installed, required []string) string {
	installedText := joinSorted(installed)
	requiredText := joinSorted(required)

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(installedText, requiredText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var sb strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for line := range strings.Lines(diff.Text) {
			line = strings.TrimSuffix(line, "\n")
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line + "\n")
		}
	}

	return sb.String()
}

// joinSorted joins specifiers into newline-terminated text in sorted order.
func joinSorted(specifiers []string) string {
	sorted := make([]string, len(specifiers))
	copy(sorted, specifiers)
	sort.Strings(sorted)
	if len(sorted) == 0 {
		return ""
	}
	return strings.Join(sorted, "\n") + "\n"
}
