package security

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"removes null bytes", "hel\x00lo", "hello"},
		{"keeps normal text", "a fair point", "a fair point"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.expected {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeString_LimitsLength(t *testing.T) {
	input := strings.Repeat("a", 1500)
	if got := SanitizeString(input); len(got) != 1000 {
		t.Errorf("expected 1000 chars, got %d", len(got))
	}
}

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips script tags", "<script>alert('x')</script>hi", "hi"},
		{"strips markup", "<b>bold</b> claim", "bold claim"},
		{"plain text untouched", "no markup here", "no markup here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeHTML(tt.input); got != tt.expected {
				t.Errorf("SanitizeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a.b+c@sub.domain.org", true},
		{"missing-at.example.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}
