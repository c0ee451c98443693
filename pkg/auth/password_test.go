package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(hash) == "correct horse battery" {
		t.Fatal("hash equals the plain password")
	}
	if cost, err := bcrypt.Cost(hash); err != nil || cost != bcrypt.DefaultCost {
		t.Errorf("cost: got %d (%v), want %d", cost, err, bcrypt.DefaultCost)
	}

	tests := []struct {
		name     string
		hash     []byte
		password string
		wantErr  bool
	}{
		{"matching password", hash, "correct horse battery", false},
		{"wrong password", hash, "correct horse", true},
		{"empty password", hash, "", true},
		{"no stored hash", nil, "correct horse battery", true},
		{"corrupt hash", []byte("not-a-bcrypt-hash"), "correct horse battery", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.hash, tt.password)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if string(a) == string(b) {
		t.Error("two hashes of the same password are identical")
	}
}
