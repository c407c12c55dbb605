package user

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ann.Lee@Example.COM "); got != "ann.lee@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalPart(t *testing.T) {
	cases := map[string]string{
		"ann@example.com": "ann",
		"@example.com":    "@example.com",
		"plain":           "plain",
	}
	for in, want := range cases {
		if got := LocalPart(in); got != want {
			t.Fatalf("LocalPart(%q) = %q, want %q", in, got, want)
		}
	}
}
