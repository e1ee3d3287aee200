package domain

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadRequirements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		content        string
		missing        bool
		wantErr        error
		wantSpecifiers []string
	}{
		{
			name:           "success: plain specifiers",
			content:        "requests==2.0\nflask>=1.0\n",
			wantSpecifiers: []string{"requests==2.0", "flask>=1.0"},
		},
		{
			name:           "success: comments and blank lines are skipped",
			content:        "# web stack\nrequests==2.0\n\n  # pinned\nflask>=1.0\n\n",
			wantSpecifiers: []string{"requests==2.0", "flask>=1.0"},
		},
		{
			name:           "success: surrounding whitespace is trimmed",
			content:        "  requests==2.0  \n",
			wantSpecifiers: []string{"requests==2.0"},
		},
		{
			name:           "success: empty manifest",
			content:        "# nothing yet\n",
			wantSpecifiers: nil,
		},
		{
			name:    "error: missing manifest",
			missing: true,
			wantErr: ErrRequirementsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "requirements.txt")
			if !tt.missing {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("failed to write manifest: %v", err)
				}
			}

			reqs, err := LoadRequirements(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadRequirements() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadRequirements() unexpected error: %v", err)
			}

			if !reflect.DeepEqual(reqs.Specifiers, tt.wantSpecifiers) {
				t.Errorf("Specifiers = %v, want %v", reqs.Specifiers, tt.wantSpecifiers)
			}
			if reqs.Path != path {
				t.Errorf("Path = %q, want %q", reqs.Path, path)
			}
		})
	}
}

func TestRequirements_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilReqs *Requirements
	if !nilReqs.IsEmpty() {
		t.Error("nil requirements should be empty")
	}
	if !(&Requirements{}).IsEmpty() {
		t.Error("requirements without specifiers should be empty")
	}
	if (&Requirements{Specifiers: []string{"requests==2.0"}}).IsEmpty() {
		t.Error("requirements with specifiers should not be empty")
	}
}

func TestRequirements_Set(t *testing.T) {
	t.Parallel()

	reqs := &Requirements{Specifiers: []string{"a==1", "b==2", "a==1"}}
	set := reqs.Set()
	if len(set) != 2 {
		t.Errorf("Set() size = %d, want 2", len(set))
	}
	if _, ok := set["a==1"]; !ok {
		t.Error("Set() should contain 'a==1'")
	}

	var nilReqs *Requirements
	if len(nilReqs.Set()) != 0 {
		t.Error("nil requirements should produce an empty set")
	}
}
