package errors

import (
	"strings"
	"testing"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"url alphabet", "eyJpbnZlcnNlIjp0cnVlfQ", false},
		{"std alphabet padded", "eyJpbnZlcnNlIjp0cnVlfQ==", false},
		{"with plus and slash", "ab+/cd", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxTokenLength+1), true},
		{"space", "abc def", true},
		{"newline", "abc\ndef", true},
		{"null byte", "abc\x00def", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateToken(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidToken) {
				t.Errorf("ValidateToken(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidToken)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "pattern.svg", false},
		{"nested relative", "out/pattern.png", false},
		{"absolute", "/tmp/pattern.svg", false},
		{"dots in name", "my..pattern.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"traversal", "../pattern.svg", true},
		{"nested traversal", "out/../../pattern.svg", true},
		{"control char", "pat\x01tern.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://circlet.example/?t=abc", false},
		{"http", "http://localhost:8080/", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
