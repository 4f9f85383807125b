package auth

import (
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/constants"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	v := NewTokenVerifier("test-secret", "clubdesk")

	token, err := v.Sign(42, 7, constants.RoleLeader, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := v.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID() != 42 || claims.ClubID != 7 || claims.Role != constants.RoleLeader {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.IsLeader() {
		t.Fatal("leader role should pass the leader check")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, err := NewTokenVerifier("key-one", "clubdesk").Sign(42, 7, constants.RoleMember, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenVerifier("key-two", "clubdesk").Parse(token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	v := NewTokenVerifier("test-secret", "clubdesk")
	token, err := v.Sign(42, 7, constants.RoleMember, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := v.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := NewTokenVerifier("test-secret", "someone-else").Sign(42, 7, constants.RoleMember, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenVerifier("test-secret", "clubdesk").Parse(token); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}

func TestMemberIsNotLeader(t *testing.T) {
	c := &SessionClaims{Role: constants.RoleMember}
	if c.IsLeader() {
		t.Fatal("member must not pass the leader check")
	}
	c.Role = constants.RoleAdmin
	if !c.IsLeader() {
		t.Fatal("admin should pass the leader check")
	}
}
