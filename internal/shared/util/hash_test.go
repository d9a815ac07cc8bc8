package util

import "testing"

func TestDocumentFingerprint(t *testing.T) {
	data := []byte("%PDF-1.4 sample")
	got := DocumentFingerprint(data)
	if got != DocumentFingerprint(data) {
		t.Fatalf("expected stable fingerprint, got %s", got)
	}
	if len(got) != fingerprintHexLen {
		t.Fatalf("expected %d hex characters, got %d", fingerprintHexLen, len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
	if got == DocumentFingerprint([]byte("other")) {
		t.Fatal("different inputs produced the same fingerprint")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "cv.pdf", want: "cv.pdf"},
		{name: "slashes replaced", in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "traversal rejected", in: "../etc/passwd", wantErr: true},
		{name: "empty rejected", in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
