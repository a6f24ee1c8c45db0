package models

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "user", "viewer"} {
		r, err := ParseRole(s)
		if err != nil || string(r) != s {
			t.Fatalf("ParseRole(%q) = %q, %v", s, r, err)
		}
	}
	for _, s := range []string{"", "Admin", "root"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q) should fail", s)
		}
	}
}

func TestRequestStatus(t *testing.T) {
	tests := []struct {
		s                         RequestStatus
		valid, stamps, isTerminal bool
	}{
		{RequestStatusPending, true, false, false},
		{RequestStatusApproved, true, true, false},
		{RequestStatusDelivered, true, true, true},
		{RequestStatusRejected, true, true, true},
		{"cancelled", false, false, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		if got := tt.s.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v", tt.s, got)
		}
		if got := tt.s.StampsActor(); got != tt.stamps {
			t.Errorf("%q.StampsActor() = %v", tt.s, got)
		}
		if got := tt.s.IsTerminal(); got != tt.isTerminal {
			t.Errorf("%q.IsTerminal() = %v", tt.s, got)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	var nobody *User
	if nobody.IsAdmin() {
		t.Fatal("nil user is not admin")
	}
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Fatal("user is not admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Fatal("admin is admin")
	}
}
