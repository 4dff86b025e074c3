package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "system_architecture", false},
		{"with dash", "arch-v2", false},
		{"with dot", "arch.v2", false},
		{"with space", "System Architecture", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "out/arch", true},
		{"backslash", "out\\arch", true},
		{"parent", "..", true},
		{"current", ".", true},
		{"hidden", ".arch", true},
		{"null byte", "arch\x00", true},
		{"newline", "arch\nname", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
