package project

import "testing"

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusActive, StatusArchived, StatusDeleted} {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	for _, s := range []Status{"", "active", "REMOVED"} {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusArchived, true},
		{StatusActive, StatusDeleted, true},
		{StatusArchived, StatusActive, true},
		{StatusArchived, StatusDeleted, true},
		{StatusDeleted, StatusActive, false},
		{StatusDeleted, StatusArchived, false},
		{StatusActive, StatusActive, true},
		{StatusDeleted, StatusDeleted, true},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
