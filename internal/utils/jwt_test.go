package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New().String()

	token, err := service.GenerateToken(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := service.ExtractUserID(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("user id = %q, want %q", got, userID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-one").GenerateToken(uuid.New().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewJWTService("secret-two").ExtractUserID(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJWTGarbage(t *testing.T) {
	service := NewJWTService("test-secret")
	if _, err := service.ExtractUserID("not-a-token"); err == nil {
		t.Error("garbage token must be rejected")
	}
}
