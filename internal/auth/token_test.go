package auth

import (
	"testing"
	"time"
)

func TestSignAndParseToken(t *testing.T) {
	LoadCredentials()

	tok, err := SignToken("asha", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "asha" {
		t.Errorf("username = %q, want asha", claims.Username)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	LoadCredentials()
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	LoadCredentials()
	tok, err := SignToken("asha", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(tok); err == nil {
		t.Error("expected an error for an expired token")
	}
}
