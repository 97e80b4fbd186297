package main

import "testing"

func TestPercent(t *testing.T) {
	cases := []struct {
		part, total int
		want        string
	}{
		{0, 0, "100.0%"},
		{0, 10, "0.0%"},
		{5, 10, "50.0%"},
		{10, 10, "100.0%"},
		{1, 3, "33.3%"},
	}
	for _, c := range cases {
		if got := percent(c.part, c.total); got != c.want {
			t.Errorf("percent(%d, %d) = %q, want %q", c.part, c.total, got, c.want)
		}
	}
}

func TestMaskKey(t *testing.T) {
	cases := []struct{ key, want string }{
		{"", "(none)"},
		{"short", "****"},
		{"12345678", "****"},
		{"sk-abcdefghijklmnop", "sk-a...mnop"},
	}
	for _, c := range cases {
		if got := maskKey(c.key); got != c.want {
			t.Errorf("maskKey(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}
