package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"baile/internal/core"
)

func TestParseFilter(t *testing.T) {
	cases := []struct {
		name  string
		query string
		check func(t *testing.T, f core.Filter)
	}{
		{
			name:  "empty query",
			query: "",
			check: func(t *testing.T, f core.Filter) {
				if len(f.Categories) != 0 || f.Party != "" || f.Min != nil || f.Max != nil {
					t.Fatalf("expected zero filter, got %+v", f)
				}
			},
		},
		{
			name:  "categories and party",
			query: "classe=MESA+PAGA&classe=PENDENTE&responsavel=Ana",
			check: func(t *testing.T, f core.Filter) {
				if len(f.Categories) != 2 {
					t.Fatalf("expected 2 categories, got %v", f.Categories)
				}
				if f.Categories[0] != core.CategoryPaidFull || f.Categories[1] != core.CategoryPending {
					t.Fatalf("unexpected categories %v", f.Categories)
				}
				if f.Party != "Ana" {
					t.Fatalf("party = %q", f.Party)
				}
			},
		},
		{
			name:  "unknown category ignored",
			query: "classe=INEXISTENTE",
			check: func(t *testing.T, f core.Filter) {
				if len(f.Categories) != 0 {
					t.Fatalf("unknown category should be dropped, got %v", f.Categories)
				}
			},
		},
		{
			name:  "amount bounds",
			query: "min=300&max=1200,50",
			check: func(t *testing.T, f core.Filter) {
				if f.Min == nil || f.Min.Cents != 30000 {
					t.Fatalf("min = %+v", f.Min)
				}
				if f.Max == nil || f.Max.Cents != 120050 {
					t.Fatalf("max = %+v", f.Max)
				}
			},
		},
		{
			name:  "unparseable bound ignored",
			query: "min=abc",
			check: func(t *testing.T, f core.Filter) {
				if f.Min != nil {
					t.Fatalf("unparseable min should be nil, got %+v", f.Min)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tc.query, nil)
			tc.check(t, parseFilter(r))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Ana\x00\x07 "); got != "Ana" {
		t.Fatalf("sanitizeInput = %q", got)
	}
	if got := sanitizeInput("linha\num\ttab"); got != "linha\num\ttab" {
		t.Fatalf("tab and newline should survive, got %q", got)
	}
}

func TestExtractClientIP(t *testing.T) {
	// Direct connection from an untrusted peer ignores forwarded headers.
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:4312"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := extractClientIP(r); got != "203.0.113.7" {
		t.Fatalf("untrusted peer: got %q", got)
	}

	// A trusted proxy's X-Forwarded-For wins.
	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:9999"
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	if got := extractClientIP(r); got != "198.51.100.1" {
		t.Fatalf("trusted proxy: got %q", got)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := generateRequestID(), generateRequestID()
	if !strings.HasPrefix(a, "req_") || a == b {
		t.Fatalf("request IDs should be unique and prefixed: %q %q", a, b)
	}
}
