package errors

import (
	"strings"
	"testing"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		wantCode Code
	}{
		{"valid", "A->B: hi", 0, ""},
		{"valid multi-line", "A->B\nB-->A", 0, ""},
		{"unicode", "Ärger->Bob: grüß dich", 0, ""},

		{"empty", "", 0, ErrCodeInvalidInput},
		{"whitespace only", " \n\t\n", 0, ErrCodeInvalidInput},
		{"too large", strings.Repeat("A->B\n", 10), 16, ErrCodeTooLarge},
		{"invalid utf8", "A->B: \xff", 0, ErrCodeInvalidInput},
		{"null byte", "A->B\x00", 0, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.input, tt.max)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateSource(%q) error = %v, want nil", tt.input, err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateSource(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestValidateSourceDefaultLimit(t *testing.T) {
	big := strings.Repeat("x", DefaultMaxSourceBytes+1)
	if !Is(ValidateSource(big, 0), ErrCodeTooLarge) {
		t.Error("source over the default limit was accepted")
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},

		{"", true},
		{"SVG", true},
		{"html", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateIDPrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty uses default", "", false},
		{"simple", "diagram", false},
		{"with dash and digits", "doc-2_a", false},

		{"leading digit", "1abc", true},
		{"space", "a b", true},
		{"quote", `a"b`, true},
		{"selector chars", "a.b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIDPrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIDPrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
