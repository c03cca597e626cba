package textutil

import "testing"

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "Data Structures", "Data Structures"},
		{"valid utf8 kept", "Álgebra", "Álgebra"},
		// 0xE9 is é in Windows-1252.
		{"windows-1252 decoded", "Caf\xe9", "Café"},
		// 0x93/0x94 are curly quotes in Windows-1252.
		{"smart quotes decoded", "\x93Topics\x94", "“Topics”"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToUTF8(tt.in); got != tt.want {
				t.Errorf("ToUTF8(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToUTF8AppliesNFC(t *testing.T) {
	// e followed by a combining acute accent composes to é.
	if got := ToUTF8("Café"); got != "Café" {
		t.Errorf("ToUTF8 did not compose: %q", got)
	}
}
