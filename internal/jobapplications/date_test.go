package jobapplications

import (
	"encoding/json"
	"testing"
)

func TestDateRejectsNonCalendarFormats(t *testing.T) {
	for _, raw := range []string{`"15-06-2025"`, `"2025/06/15"`, `"June 15, 2025"`, `"2025-13-40"`} {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestDateAcceptsCalendarDate(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-06-15"`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.String() != "2025-06-15" {
		t.Fatalf("unexpected date: %s", d)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"2025-06-15"` {
		t.Fatalf("unexpected wire form: %s", out)
	}
}
