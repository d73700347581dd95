package user_service

import (
	"testing"

	"file-vault/conf"
)

func setTestAuthConfig(t *testing.T) {
	t.Helper()
	prev := conf.Cfg
	conf.Cfg = &conf.Config{
		Auth: conf.AuthConfig{
			JwtSecret:     "test-secret",
			TokenTTLHours: 1,
		},
	}
	t.Cleanup(func() { conf.Cfg = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestAuthConfig(t)

	token, err := IssueToken(42, "user-uuid-42")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.UserUuid != "user-uuid-42" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setTestAuthConfig(t)

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setTestAuthConfig(t)

	token, err := IssueToken(1, "u")
	if err != nil {
		t.Fatal(err)
	}

	conf.Cfg.Auth.JwtSecret = "different-secret"
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
