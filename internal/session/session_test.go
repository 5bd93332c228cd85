package session

import (
	"encoding/base64"
	"testing"
	"time"
)

// buildToken assembles an unsigned JWT-shaped token with the given payload.
func buildToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".signature"
}

func TestDecodeClaims(t *testing.T) {
	token := buildToken(`{"sub":"user-42","name":"Nimal","role":"admin","exp":4102444800}`)

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims() error = %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("Subject = %s, want user-42", claims.Subject)
	}
	if claims.Name != "Nimal" {
		t.Errorf("Name = %s, want Nimal", claims.Name)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %s, want admin", claims.Role)
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "just-a-string"},
		{name: "two segments", token: "a.b"},
		{name: "payload not base64", token: "a.!!!.c"},
		{name: "payload not json", token: buildToken("not json")},
		{name: "missing subject", token: buildToken(`{"name":"x"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeClaims(tt.token); err == nil {
				t.Errorf("DecodeClaims(%q) expected error", tt.token)
			}
		})
	}
}

func TestClaimsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	past := &Claims{Subject: "u", ExpiresAt: now.Unix() - 60}
	if !past.Expired(now) {
		t.Error("Expired() = false for a past exp claim")
	}

	future := &Claims{Subject: "u", ExpiresAt: now.Unix() + 60}
	if future.Expired(now) {
		t.Error("Expired() = true for a future exp claim")
	}

	none := &Claims{Subject: "u"}
	if none.Expired(now) {
		t.Error("Expired() = true for a token without exp")
	}
}
