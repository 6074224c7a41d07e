package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewID32_IsRandomUUID(t *testing.T) {
	got := NewID32()
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	u, err := uuid.Parse(got)
	if err != nil {
		t.Fatalf("uuid.Parse(%q): %v", got, err)
	}
	if u.Version() != 4 {
		t.Fatalf("version = %d, want 4", u.Version())
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	good := []string{
		NewID32(),
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"  3F2504E0-4F89-41D3-9A0C-0305E82C3301 ",
	}
	bad := []string{
		"",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"{3f2504e0-4f89-41d3-9a0c-0305e82c3301}",
		"urn:uuid:3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"3f2504e04f8941d39a0c0305e82c33",
	}
	for _, s := range good {
		if !Valid(s) {
			t.Fatalf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range bad {
		if Valid(s) {
			t.Fatalf("Valid(%q) = true, want false", s)
		}
	}
}
