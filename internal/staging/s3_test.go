package staging

import "testing"

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "a.pdf", want: "a.pdf"},
		{name: "simple prefix", prefix: "staging", key: "a.pdf", want: "staging/a.pdf"},
		{name: "leading slash on key", prefix: "staging", key: "/a.pdf", want: "staging/a.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "staging/", want: "staging"},
		{raw: "/staging/", want: "staging"},
		{raw: "  staging  ", want: "staging"},
		{raw: "", want: ""},
	}
	for _, tt := range tests {
		if got := normalizePrefix(tt.raw); got != tt.want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
