package instance

import "testing"

func TestGetID(t *testing.T) {
	t.Setenv("PARTSDESK_INSTANCE_ID", "")
	t.Setenv("INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	if got := GetID(); got != "local" {
		t.Fatalf("expected local, got %q", got)
	}

	t.Setenv("DYNO", "web.1")
	if got := GetID(); got != "web.1" {
		t.Fatalf("expected dyno id, got %q", got)
	}

	t.Setenv("PARTSDESK_INSTANCE_ID", "api-7")
	if got := GetID(); got != "api-7" {
		t.Fatalf("expected configured id, got %q", got)
	}
}
