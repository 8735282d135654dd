package email

import (
	"context"
	"testing"
)

func TestNewNotifier_DisabledWithoutConfig(t *testing.T) {
	cases := [][2]string{{"", "admin@example.com"}, {"re_key", ""}}
	for _, c := range cases {
		n := NewNotifier(c[0], "blog@example.com", c[1])
		if _, ok := n.(nopNotifier); !ok {
			t.Fatalf("NewNotifier(%q, _, %q) = %T, want nopNotifier", c[0], c[1], n)
		}
		if err := n.CommentAdded(context.Background(), "slug", "hi"); err != nil {
			t.Fatalf("nop notifier returned error: %v", err)
		}
	}
}

func TestNewNotifier_Enabled(t *testing.T) {
	n := NewNotifier("re_key", "blog@example.com", "admin@example.com")
	if _, ok := n.(*resendNotifier); !ok {
		t.Fatalf("expected resendNotifier, got %T", n)
	}
}
