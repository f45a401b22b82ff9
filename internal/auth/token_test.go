package auth

import (
	"testing"
	"time"
)

func TestShareTokenRoundTrip(t *testing.T) {
	mgr := NewShareTokenManager("test-secret-key-32-bytes-long!!!", time.Hour)

	token, err := mgr.Generate("link-1", "receipt-1", "", "one")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := mgr.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.ReceiptID != "receipt-1" || claims.FolderID != "" || claims.Format != "one" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID != "link-1" {
		t.Errorf("claims.ID = %q, want link-1", claims.ID)
	}
}

func TestShareTokenExpired(t *testing.T) {
	mgr := NewShareTokenManager("test-secret-key-32-bytes-long!!!", -time.Minute)

	token, err := mgr.Generate("link-2", "", "folder-1", "folder-long")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := mgr.Validate(token); err == nil {
		t.Error("expired token validated")
	}
}

func TestShareTokenWrongSecret(t *testing.T) {
	mgr := NewShareTokenManager("secret-a", time.Hour)
	other := NewShareTokenManager("secret-b", time.Hour)

	token, err := mgr.Generate("link-3", "receipt-1", "", "all")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := other.Validate(token); err == nil {
		t.Error("token validated under a different secret")
	}
}
