package branch

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"master", TypeMaster},
		{"main", TypeMaster},
		{"develop", TypeDevelop},
		{"feature/accounts", TypeFeature},
		{"feature-accounts", TypeFeature},
		{"feature/nested/name", TypeFeature},
		{"release-0.13", TypeRelease},
		{"release/0.13", TypeRelease},
		{"hotfix-0.13.1", TypeHotfix},
		{"hotfix/0.13.1", TypeHotfix},
		{"refs/heads/develop", TypeDevelop},
	}

	for _, tt := range tests {
		got, err := Classify(tt.name)
		if err != nil {
			t.Errorf("Classify(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, name := range []string{
		"",
		"trunk",
		"bugfix/login",
		"featurex",
		"my-branch",
		"developx",
	} {
		_, err := Classify(name)
		if err == nil {
			t.Errorf("Classify(%q) succeeded, want error", name)
			continue
		}
		if !errors.Is(err, ErrUnknownType) {
			t.Errorf("Classify(%q) error = %v, want ErrUnknownType", name, err)
		}
	}
}

func TestDebianBranch(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"master", "debian"},
		{"main", "debian"},
		{"develop", "debian-develop"},
		{"feature/accounts", "debian-feature-accounts"},
		{"feature-accounts", "debian-feature-accounts"},
		{"release-0.13", "debian-release-0.13"},
		{"hotfix-0.13.1", "debian-hotfix-0.13.1"},
	}

	for _, tt := range tests {
		got, err := DebianBranch(tt.name)
		if err != nil {
			t.Errorf("DebianBranch(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DebianBranch(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDebianBranchUnknown(t *testing.T) {
	if _, err := DebianBranch("trunk"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("DebianBranch(trunk) error = %v, want ErrUnknownType", err)
	}
}

// Every recognized type must produce a debian branch through the fixed
// mapping; a new Type constant without a mapping is a bug.
func TestDebianBranchExhaustive(t *testing.T) {
	samples := map[Type]string{
		TypeFeature: "feature/x",
		TypeDevelop: "develop",
		TypeRelease: "release-1.0",
		TypeHotfix:  "hotfix-1.0.1",
		TypeMaster:  "master",
	}

	for _, typ := range Types() {
		name, ok := samples[typ]
		if !ok {
			t.Fatalf("no sample branch for type %q", typ)
		}
		deb, err := DebianBranch(name)
		if err != nil {
			t.Errorf("DebianBranch(%q) returned error: %v", name, err)
		}
		if deb == "" {
			t.Errorf("DebianBranch(%q) returned empty name", name)
		}
	}
}
