// Package auth gates the dashboard behind a single static credential
// pair. There is no user store: the username and password come from
// configuration, and a successful login issues an HMAC-signed,
// expiring session cookie.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "baile_session"

type Manager struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
}

// New creates a manager. An empty password disables the gate: Enabled
// reports false and every request is allowed through.
func New(username, password, secret string, ttl time.Duration) *Manager {
	return &Manager{
		username: username,
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Enabled reports whether the credential gate is active.
func (m *Manager) Enabled() bool {
	return m.password != ""
}

// Verify checks the submitted credentials in constant time.
func (m *Manager) Verify(username, password string) bool {
	if !m.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	return userOK && passOK
}

// IssueToken returns a session token valid for the configured TTL.
// Format: "<unix expiry>.<hex hmac>".
func (m *Manager) IssueToken(now time.Time) string {
	expiry := now.Add(m.ttl).Unix()
	return fmt.Sprintf("%d.%s", expiry, m.sign(expiry))
}

// ValidateToken checks the signature and expiry of a session token.
func (m *Manager) ValidateToken(token string, now time.Time) bool {
	if !m.Enabled() {
		return false
	}
	dot := strings.IndexByte(token, '.')
	if dot < 0 {
		return false
	}
	expiry, err := strconv.ParseInt(token[:dot], 10, 64)
	if err != nil {
		return false
	}
	if now.Unix() >= expiry {
		return false
	}
	want := m.sign(expiry)
	return hmac.Equal([]byte(token[dot+1:]), []byte(want))
}

// Username returns the configured account name, for display only.
func (m *Manager) Username() string {
	return m.username
}

func (m *Manager) sign(expiry int64) string {
	mac := hmac.New(sha256.New, m.secret)
	fmt.Fprintf(mac, "%s:%d", m.username, expiry)
	return hex.EncodeToString(mac.Sum(nil))
}
