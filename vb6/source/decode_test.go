package source

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		want      string
		converted bool
	}{
		{"ascii", []byte("Dim x"), "Dim x", false},
		{"utf8", []byte("' caf\xc3\xa9"), "' café", false},
		{"windows-1252", []byte("' caf\xe9"), "' café", true},
		{"euro sign", []byte{'"', 0x80, '"'}, "\"€\"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, converted, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
			if converted != tt.converted {
				t.Errorf("converted = %v, want %v", converted, tt.converted)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := []byte("MsgBox \"Gr\xfc\xdfe\"")
	text, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	back, err := Encode(text)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(back) != string(raw) {
		t.Errorf("Encode(Decode(x)) = %q, want %q", back, raw)
	}
}
