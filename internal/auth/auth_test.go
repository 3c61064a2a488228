package auth

import "testing"

func TestGenerateAndParseAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken(secret, "client-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken() = %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken() = %v", err)
	}
	if claims.ClientID != "client-123" {
		t.Errorf("ClientID = %q, want %q", claims.ClientID, "client-123")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken([]byte("secret-a"), "client-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken() = %v", err)
	}
	if _, err := ParseToken([]byte("secret-b"), token); err == nil {
		t.Fatal("ParseToken() = nil, want error for mismatched secret")
	}
}

func TestHashAndVerifyAPIKey(t *testing.T) {
	hash, err := HashAPIKey("super-secret-key")
	if err != nil {
		t.Fatalf("HashAPIKey() = %v", err)
	}
	if !VerifyAPIKey(hash, "super-secret-key") {
		t.Error("VerifyAPIKey() = false, want true for matching key")
	}
	if VerifyAPIKey(hash, "wrong-key") {
		t.Error("VerifyAPIKey() = true, want false for mismatched key")
	}
}
