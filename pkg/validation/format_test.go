package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid json format",
			format:    "json",
			expectErr: false,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestValidateLocale(t *testing.T) {
	tests := []struct {
		locale    string
		expectErr bool
	}{
		{"", false},
		{"fa-IR", false},
		{"en", false},
		{"ar-EG", false},
		{"not a locale!", true},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			err := ValidateLocale(tt.locale)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateLocale(%q) error = %v, expectErr %v", tt.locale, err, tt.expectErr)
			}
		})
	}
}

func TestValidateTool(t *testing.T) {
	for _, tool := range Tools() {
		if err := ValidateTool(tool); err != nil {
			t.Errorf("ValidateTool(%q) unexpected error: %v", tool, err)
		}
	}
	if err := ValidateTool("home-purchase"); err == nil {
		t.Errorf("ValidateTool(home-purchase) expected error but got none")
	}
}
