package security

import (
	"testing"
	"time"
)

func TestKidTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateKidToken(42, secret, 1*time.Hour)
	if err != nil {
		t.Fatalf("GenerateKidToken() error = %v", err)
	}

	kidID, err := ParseKidToken(token, secret)
	if err != nil {
		t.Fatalf("ParseKidToken() error = %v", err)
	}

	if kidID != 42 {
		t.Errorf("ParseKidToken() kidID = %d, want 42", kidID)
	}
}

func TestParseKidTokenRejections(t *testing.T) {
	secret := "test-secret"

	valid, err := GenerateKidToken(7, secret, 1*time.Hour)
	if err != nil {
		t.Fatalf("GenerateKidToken() error = %v", err)
	}

	expired, err := GenerateKidToken(7, secret, -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateKidToken() error = %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{
			name:   "wrong secret",
			token:  valid,
			secret: "other-secret",
		},
		{
			name:   "expired token",
			token:  expired,
			secret: secret,
		},
		{
			name:   "garbage token",
			token:  "not.a.token",
			secret: secret,
		},
		{
			name:   "empty token",
			token:  "",
			secret: secret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseKidToken(tt.token, tt.secret); err == nil {
				t.Error("ParseKidToken() expected error, got nil")
			}
		})
	}
}
