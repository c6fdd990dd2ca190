package policy

import (
	"testing"

	"jobboard/internal/domain/identity"

	"github.com/google/uuid"
)

func verified() *identity.Identity {
	return &identity.Identity{UserID: uuid.New(), EmailVerified: true}
}

func admin() *identity.Identity {
	return &identity.Identity{UserID: uuid.New(), EmailVerified: true, Admin: true}
}

func TestRequirementsMet(t *testing.T) {
	completed := NewSkillSet([]string{"go", "sql"})

	cases := []struct {
		name     string
		required []string
		want     bool
	}{
		{"empty required", nil, true},
		{"subset", []string{"go"}, true},
		{"equal sets", []string{"go", "sql"}, true},
		{"missing one", []string{"go", "rust"}, false},
		{"all missing", []string{"rust"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RequirementsMet(tc.required, completed); got != tc.want {
				t.Fatalf("RequirementsMet(%v) = %v, want %v", tc.required, got, tc.want)
			}
		})
	}
}

func TestCanViewContact_EmptyRequirements(t *testing.T) {
	viewers := []*identity.Identity{
		nil,
		{UserID: uuid.New(), EmailVerified: false},
		verified(),
		admin(),
	}
	for _, v := range viewers {
		if !CanViewContact(v, nil, nil) {
			t.Fatalf("requirement-free job must disclose contact to %+v", v)
		}
	}
}

func TestCanViewContact_Anonymous(t *testing.T) {
	if CanViewContact(nil, []string{"go"}, NewSkillSet([]string{"go"})) {
		t.Fatal("anonymous caller must not see contact of a requirement-bearing job")
	}
}

func TestCanViewContact_Unverified(t *testing.T) {
	v := &identity.Identity{UserID: uuid.New(), EmailVerified: false}
	if CanViewContact(v, []string{"go"}, NewSkillSet([]string{"go"})) {
		t.Fatal("unverified caller must not see contact of a requirement-bearing job")
	}
}

func TestCanViewContact_Verified(t *testing.T) {
	v := verified()
	completed := NewSkillSet([]string{"go", "sql"})

	if !CanViewContact(v, []string{"go", "sql"}, completed) {
		t.Fatal("equal completed set must satisfy requirements")
	}
	if CanViewContact(v, []string{"go", "rust"}, completed) {
		t.Fatal("unmet requirement must hide contact")
	}
}

func TestCanViewContact_AdminOverride(t *testing.T) {
	if !CanViewContact(admin(), []string{"go", "rust"}, nil) {
		t.Fatal("admin must always see contact")
	}
}
