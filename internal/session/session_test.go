package session

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("FromContext(empty) = %+v, want nil", got)
	}

	s := &Session{UserID: 3, Role: RoleStudent}
	ctx := WithSession(context.Background(), s)
	if got := FromContext(ctx); got != s {
		t.Fatalf("FromContext() = %+v, want %+v", got, s)
	}
}

func TestCanActAs(t *testing.T) {
	tests := []struct {
		name string
		s    *Session
		user int64
		want bool
	}{
		{"nil session", nil, 1, false},
		{"same user", &Session{UserID: 1, Role: RoleStudent}, 1, true},
		{"other user", &Session{UserID: 1, Role: RoleStudent}, 2, false},
		{"admin any user", &Session{Role: RoleAdmin}, 2, true},
		{"zero user id", &Session{Role: RoleStudent}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.CanActAs(tt.user); got != tt.want {
				t.Errorf("CanActAs(%d) = %v, want %v", tt.user, got, tt.want)
			}
		})
	}
}

func TestHasUser(t *testing.T) {
	var nilSession *Session
	if nilSession.HasUser() {
		t.Error("nil session should have no user")
	}
	if (&Session{Role: RoleAdmin}).HasUser() {
		t.Error("config admin should have no user")
	}
	if !(&Session{UserID: 9}).HasUser() {
		t.Error("session with id should have user")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleStudent.Valid() {
		t.Error("known roles should be valid")
	}
	if Role("root").Valid() {
		t.Error("unknown role should be invalid")
	}
}
