package errors

import (
	"strings"
	"testing"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "DSO", false},
		{"underscore", "order_to_cash", false},
		{"dashes and dots", "kpi-1.2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control", "a\x00b", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCode(%q) code = %s", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means no root", "", false},
		{"value chain", "value_chain:O2C", false},
		{"metric", "metric:dso", false},

		{"no kind", "O2C", true},
		{"no code", "module:", true},
		{"bad code", "module:../x", true},
		{"kind with digits", "m0dule:x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFocus(t *testing.T) {
	for _, ok := range []string{"", "Account", "order_line2"} {
		if err := ValidateFocus(ok); err != nil {
			t.Errorf("ValidateFocus(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"Account Lead", "a-b", "<script>"} {
		if err := ValidateFocus(bad); err == nil {
			t.Errorf("ValidateFocus(%q) = nil, want error", bad)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("svg", "json", "dot", "svg"); err != nil {
		t.Errorf("ValidateFormat(svg) = %v", err)
	}
	err := ValidateFormat("png", "json", "svg")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(png) = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(UserMessage(err), "json, svg") {
		t.Errorf("message = %q", UserMessage(err))
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
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

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeInvalidSource,
		ErrCodeNotFound,
		ErrCodeNetwork,
		ErrCodeUnavailable,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
