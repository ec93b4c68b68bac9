package errors

import (
	"strings"
	"testing"
)

func TestValidateLayoutName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "MyLayout", "MyLayout", false},
		{"with spaces", "Decks Focused", "Decks Focused", false},
		{"trimmed", "  Collector \t", "Collector", false},
		{"unicode", "Übersicht", "Übersicht", false},

		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"too long", strings.Repeat("a", 200), "", true},
		{"control char", "foo\x01bar", "", true},
		{"newline", "foo\nbar", "", true},
		{"null byte", "foo\x00bar", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateLayoutName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLayoutName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateLayoutName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
			if got != tt.want {
				t.Errorf("ValidateLayoutName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateWidgetKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tips", false},
		{"underscore", "stats_value", false},
		{"digits", "widget2", false},

		{"empty", "", true},
		{"uppercase", "Tips", true},
		{"leading digit", "2tips", true},
		{"dash", "stats-value", true},
		{"space", "stats value", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidgetKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidgetKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"local", "local", false},
		{"provider scoped", "github:12345", false},
		{"uuid", "0b5c7a2e-8d3f-4c1a-9e6b-2f4d8a1c3e5b", false},

		{"empty", "", true},
		{"traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control", "a\x01b", true},
		{"too long", strings.Repeat("u", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
