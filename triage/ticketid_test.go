package triage

import (
	"regexp"
	"testing"
)

func TestTicketID_Format(t *testing.T) {
	re := regexp.MustCompile(`^INC-\d{8}$`)
	for _, text := range []string{"a", "login outage", "完全不同的文本"} {
		id := TicketID(text)
		if !re.MatchString(id) {
			t.Errorf("TicketID(%q) = %q, want INC- plus 8 digits", text, id)
		}
	}
}

func TestTicketID_Deterministic(t *testing.T) {
	if TicketID("same text") != TicketID("same text") {
		t.Error("identical text produced different ids")
	}
	if TicketID("first incident") == TicketID("second incident") {
		t.Error("distinct texts collided, hash is likely ignoring input")
	}
}
