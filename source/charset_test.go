package source

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		want        string
	}{
		{"ascii", []byte("plain text"), "text/plain", "plain text"},
		{"utf-8", []byte("naïve café"), "text/plain", "naïve café"},
		{"utf-8 bom stripped", []byte("\xef\xbb\xbfhello"), "text/plain", "hello"},
		{"declared latin-1", []byte("caf\xe9"), "text/plain; charset=iso-8859-1", "café"},
		{"undeclared latin-1", []byte("na\xefve"), "text/plain", "naïve"},
		{"declared utf-8", []byte("über"), "text/plain; charset=UTF-8", "über"},
		{"empty", nil, "text/plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.contentType)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
