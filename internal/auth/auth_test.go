package auth

import (
	"testing"
	"time"
)

func newTestManager() *Manager {
	return New("admin", "hunter2", "0123456789abcdef0123456789abcdef", time.Hour)
}

func TestVerify(t *testing.T) {
	m := newTestManager()
	if !m.Verify("admin", "hunter2") {
		t.Fatalf("valid credentials rejected")
	}
	if m.Verify("admin", "wrong") {
		t.Fatalf("wrong password accepted")
	}
	if m.Verify("other", "hunter2") {
		t.Fatalf("wrong username accepted")
	}
}

func TestDisabledGate(t *testing.T) {
	m := New("admin", "", "secret-secret-secret", time.Hour)
	if m.Enabled() {
		t.Fatalf("empty password must disable the gate")
	}
	if m.Verify("admin", "") {
		t.Fatalf("disabled gate must not verify anyone")
	}
	if m.ValidateToken(m.IssueToken(time.Now()), time.Now()) {
		t.Fatalf("disabled gate must not validate tokens")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	now := time.Now()

	token := m.IssueToken(now)
	if !m.ValidateToken(token, now) {
		t.Fatalf("freshly issued token rejected")
	}
	if !m.ValidateToken(token, now.Add(59*time.Minute)) {
		t.Fatalf("token rejected before expiry")
	}
	if m.ValidateToken(token, now.Add(2*time.Hour)) {
		t.Fatalf("expired token accepted")
	}
}

func TestTokenTampering(t *testing.T) {
	m := newTestManager()
	now := time.Now()
	token := m.IssueToken(now)

	if m.ValidateToken(token+"ff", now) {
		t.Fatalf("tampered signature accepted")
	}
	if m.ValidateToken("9999999999."+token[len(token)-64:], now) {
		t.Fatalf("forged expiry accepted")
	}
	if m.ValidateToken("garbage", now) {
		t.Fatalf("malformed token accepted")
	}

	// Token signed with a different secret must fail.
	other := New("admin", "hunter2", "another-secret-another-secret!!", time.Hour)
	if m.ValidateToken(other.IssueToken(now), now) {
		t.Fatalf("token from another secret accepted")
	}
}
