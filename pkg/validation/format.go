// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/takhmino/takhmino/pkg/constants"
	"golang.org/x/text/language"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateLocale checks that locale is a well-formed BCP 47 tag. An empty
// locale is allowed and selects the default.
func ValidateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return nil
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}

// ValidateTool checks that tool names one of the calculators.
func ValidateTool(tool string) error {
	switch tool {
	case constants.ToolLoan, constants.ToolGold, constants.ToolExpense, constants.ToolPurchasingPower:
		return nil
	}
	return fmt.Errorf("unknown tool %q, expected one of %s", tool, strings.Join(Tools(), ", "))
}

// Tools lists the calculator identifiers.
func Tools() []string {
	return []string{constants.ToolLoan, constants.ToolGold, constants.ToolExpense, constants.ToolPurchasingPower}
}
