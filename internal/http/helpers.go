package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"baile/internal/core"
)

// trustedProxies defines networks that are trusted to set forwarding
// headers. Forwarded IPs from anywhere else are ignored.
var trustedProxies = []*net.IPNet{
	parsecidr("127.0.0.0/8"),
	parsecidr("10.0.0.0/8"),
	parsecidr("172.16.0.0/12"),
	parsecidr("192.168.0.0/16"),
}

func parsecidr(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

func isTrustedProxy(ip net.IP) bool {
	for _, network := range trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// extractClientIP extracts the real client IP, honoring forwarded
// headers only when the direct peer is a trusted proxy.
func extractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil {
		return directIP
	}

	if isTrustedProxy(parsedDirectIP) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return directIP
}

// parseFilter builds a row filter from the dashboard query parameters:
// repeated "classe" values, a "responsavel" name and "min"/"max" amount
// bounds. Unknown or unparseable values are ignored rather than
// rejected, so a hand-edited URL degrades to a wider filter.
func parseFilter(r *http.Request) core.Filter {
	q := r.URL.Query()
	var f core.Filter

	known := make(map[core.Category]bool)
	for _, c := range core.Categories() {
		known[c] = true
	}
	for _, v := range q["classe"] {
		c := core.Category(strings.TrimSpace(v))
		if known[c] {
			f.Categories = append(f.Categories, c)
		}
	}

	f.Party = sanitizeInput(q.Get("responsavel"))

	if v := strings.TrimSpace(q.Get("min")); v != "" {
		if cents, ok := core.ParseAmountCents(v); ok {
			f.Min = &core.Money{Cents: cents}
		}
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		if cents, ok := core.ParseAmountCents(v); ok {
			f.Max = &core.Money{Cents: cents}
		}
	}

	return f
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
