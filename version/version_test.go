package version

import (
	"errors"
	"fmt"
	"testing"
)

type fakeDescriber struct {
	out string
	err error
}

func (f fakeDescriber) Describe(match string) (string, error) {
	return f.out, f.err
}

func TestDerive(t *testing.T) {
	tests := []struct {
		describe string
		want     Source
	}{
		{"1.2.0", Source{Base: "1.2.0"}},
		{"1.2.0\n", Source{Base: "1.2.0"}},
		{"1.2.0-3-gabc1234", Source{Base: "1.2.0", Post: 3, SHA: "abc1234"}},
		{"1.2.0-dirty", Source{Base: "1.2.0", Dirty: true}},
		{"1.2.0-3-gabc1234-dirty", Source{Base: "1.2.0", Post: 3, SHA: "abc1234", Dirty: true}},
		{"0.13rc1", Source{Base: "0.13rc1"}},
		{"0.13rc1-12-gdeadbee", Source{Base: "0.13rc1", Post: 12, SHA: "deadbee"}},
	}

	for _, tt := range tests {
		got, err := Derive(fakeDescriber{out: tt.describe})
		if err != nil {
			t.Errorf("Derive(%q) returned error: %v", tt.describe, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Derive(%q) = %+v, want %+v", tt.describe, got, tt.want)
		}
	}
}

func TestDeriveNoTag(t *testing.T) {
	_, err := Derive(fakeDescriber{err: errors.New("fatal: no names found, cannot describe anything")})
	if !errors.Is(err, ErrNoVersionTag) {
		t.Errorf("Derive error = %v, want ErrNoVersionTag", err)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{Base: "1.2.0"}, "1.2.0"},
		{Source{Base: "1.2.0", Post: 3, SHA: "abc1234"}, "1.2.0.post3.dev0+gabc1234"},
		{Source{Base: "1.2.0", Dirty: true, SHA: "abc1234"}, "1.2.0.dev0+gabc1234.dirty"},
		{Source{Base: "1.2.0", Dirty: true}, "1.2.0.dev0+dirty"},
		{Source{Base: "1.2.0", Post: 1, SHA: "abc1234", Dirty: true}, "1.2.0.post1.dev0+gabc1234.dirty"},
	}

	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestDebian(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1.2.0", "1.2.0"},
		{"1.2.0.post3", "1.2.0.post3"},
		{"1.2.0.post3.dev0+gabc1234", "1.2.0.post3~dev0+gabc1234"},
		{"1.2.0.dev0+gabc1234.dirty", "1.2.0~dev0+gabc1234.dirty"},
		{"0.13rc1", "0.13~rc1"},
		{"0.13a1", "0.13~alpha1"},
		{"0.13b2", "0.13~beta2"},
		{"1.2_0", "1.2.0"},
		{"1.2!0", "1.20"},
	}

	for _, tt := range tests {
		if got := Debian(tt.source); got != tt.want {
			t.Errorf("Debian(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestDebianIdempotent(t *testing.T) {
	for _, source := range []string{
		"1.2.0",
		"0.13rc1",
		"0.13a1",
		"0.13b2",
		"1.2.0.post3.dev0+gabc1234",
		"1.2.0.dev0+g1a2b3c4.dirty",
	} {
		once := Debian(source)
		twice := Debian(once)
		if once != twice {
			t.Errorf("Debian(Debian(%q)) = %q, want %q", source, twice, once)
		}
	}
}

// The transform must preserve ordering: for any two source versions in
// ascending order, the Debian versions compare the same way under dpkg
// ordering.
func TestDebianMonotonic(t *testing.T) {
	ascending := []string{
		"1.1.9",
		"1.2.0a1",
		"1.2.0b1",
		"1.2.0rc1",
		"1.2.0rc2",
		"1.2.0",
		"1.2.0.post1.dev0+gabc1234",
		"1.2.0.post1",
		"1.2.0.post3.dev0+gabc1234",
		"1.2.0.post3",
		"1.2.1",
		"1.10.0",
	}

	for i := 0; i < len(ascending)-1; i++ {
		a := DebianPackage(ascending[i])
		b := DebianPackage(ascending[i+1])
		cmp, err := Compare(a, b)
		if err != nil {
			t.Fatalf("Compare(%q, %q) returned error: %v", a, b, err)
		}
		if cmp >= 0 {
			t.Errorf("Debian ordering violated: %q (from %q) >= %q (from %q)",
				a, ascending[i], b, ascending[i+1])
		}
	}
}

func TestDebianPackage(t *testing.T) {
	if got := DebianPackage("1.2.0"); got != "1.2.0-1" {
		t.Errorf("DebianPackage(1.2.0) = %q, want 1.2.0-1", got)
	}
}

func ExampleSource_String() {
	s := Source{Base: "1.2.0", Post: 3, SHA: "abc1234"}
	fmt.Println(s)
	// Output: 1.2.0.post3.dev0+gabc1234
}
