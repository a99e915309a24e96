package txlog

import (
	"strings"
	"testing"
)

func TestDescribeChanges(t *testing.T) {
	before := map[string]any{"firstName": "Ana", "phone": "123", "email": "a@x.com"}
	after := map[string]any{"firstName": "Ana", "phone": "456", "email": "b@x.com"}

	out := DescribeChanges(before, after)
	if strings.Contains(out, "firstName") {
		t.Fatalf("unchanged field rendered: %s", out)
	}
	if !strings.Contains(out, `phone: "123" -> "456"`) {
		t.Fatalf("expected phone change, got %s", out)
	}
	if !strings.Contains(out, `email: "a@x.com" -> "b@x.com"`) {
		t.Fatalf("expected email change, got %s", out)
	}
}

func TestDescribeChangesExcludesSecrets(t *testing.T) {
	before := map[string]any{"password": "old", "phone": "1"}
	after := map[string]any{"password": "new", "phone": "2"}

	out := DescribeChanges(before, after)
	if strings.Contains(out, "password") {
		t.Fatalf("secret field leaked: %s", out)
	}
	if !strings.Contains(out, "phone") {
		t.Fatalf("expected phone change, got %s", out)
	}
}

func TestDescribeChangesRequiresBothSnapshots(t *testing.T) {
	if out := DescribeChanges(nil, map[string]any{"a": 1}); out != "" {
		t.Fatalf("expected empty diff, got %s", out)
	}
	if out := DescribeChanges(map[string]any{"a": 1}, nil); out != "" {
		t.Fatalf("expected empty diff, got %s", out)
	}
}
