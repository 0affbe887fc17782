package amqp

import (
	"testing"
	"time"
)

func TestRefreshMessageRoundTrip(t *testing.T) {
	msg := NewRefreshMessage("sheet edited")
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp must be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := RefreshMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Reason != "sheet edited" {
		t.Fatalf("reason = %q", decoded.Reason)
	}
	if !decoded.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp mismatch: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestRefreshMessageFromInvalidJSON(t *testing.T) {
	if _, err := RefreshMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
