package format

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func TestParseLocalizedNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Empty string", "", 0},
		{"Lone decimal point", ".", 0},
		{"Lone Persian decimal separator", "٫", 0},
		{"ASCII integer", "1200", 1200},
		{"ASCII grouped", "1,250,000", 1250000},
		{"Persian digits", "۱۲۵۰", 1250},
		{"Persian grouped with Persian separators", "۱٬۲۵۰٬۰۰۰", 1250000},
		{"Arabic-Indic digits", "٣٤٥", 345},
		{"Arabic comma separator", "۱،۰۰۰", 1000},
		{"Persian decimal separator", "۱۲٫۵", 12.5},
		{"Mixed scripts", "1۲٣", 123},
		{"Extra dots join the fraction", "1.2.3", 1.23},
		{"Leading decimal point", ".5", 0.5},
		{"Trailing decimal point", "7.", 7},
		{"Negative value", "-۲۵", -25},
		{"Surrounding whitespace", "  42 ", 42},
		{"Percent sign ignored", "18%", 18},
		{"Letters are invalid", "12abc", 0},
		{"Minus in the middle is invalid", "1-2", 0},
		{"Lone minus", "-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseLocalizedNumber(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ParseLocalizedNumber(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClampIsOptIn(t *testing.T) {
	if got := ParseLocalizedNumber("-30"); got != -30 {
		t.Errorf("ParseLocalizedNumber(-30) = %v, parsing must not clamp", got)
	}
	if got := Clamp("۱۵۰", 0, 100); got != 100 {
		t.Errorf("Clamp(150) = %v, expected 100", got)
	}
	if got := Clamp("-5", 0, 100); got != 0 {
		t.Errorf("Clamp(-5) = %v, expected 0", got)
	}
}

func TestFormatGroupedNumberIn(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		digits   int
		script   Script
		expected string
	}{
		{"Small integer", 999, 0, ScriptLatin, "999"},
		{"Grouped integer", 1250000, 0, ScriptLatin, "1,250,000"},
		{"Fraction trimmed", 1234.5, 2, ScriptLatin, "1,234.5"},
		{"Fraction rounded", 1234.5678, 2, ScriptLatin, "1,234.57"},
		{"No fraction digits", 1234.5678, 0, ScriptLatin, "1,235"},
		{"Negative digits treated as zero", 10.4, -1, ScriptLatin, "10"},
		{"Negative value", -1500, 0, ScriptLatin, "-1,500"},
		{"Persian digits", 1250000, 0, ScriptPersian, "۱,۲۵۰,۰۰۰"},
		{"Arabic digits", 12.5, 1, ScriptArabic, "١٢.٥"},
		{"NaN renders as zero", math.NaN(), 2, ScriptLatin, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatGroupedNumberIn(tt.value, tt.digits, tt.script)
			if result != tt.expected {
				t.Errorf("FormatGroupedNumberIn(%v, %d) = %q, expected %q", tt.value, tt.digits, result, tt.expected)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{"0", "۱۲۳", "۱٬۲۵۰٬۰۰۰", "٣٤٥٫٢٥", "98,765.4321", "-۲۵٫۵", "1.2.3"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := ParseLocalizedNumber(input)
			again := ParseLocalizedNumber(FormatGroupedNumber(first, 6))
			if math.Abs(first-again) > 1e-6 {
				t.Errorf("round trip of %q: %v != %v", input, first, again)
			}
		})
	}
}

func TestScriptFor(t *testing.T) {
	if ScriptFor(language.MustParse("fa-IR")) != ScriptPersian {
		t.Errorf("expected Persian script for fa-IR")
	}
	if ScriptFor(language.Arabic) != ScriptArabic {
		t.Errorf("expected Arabic script for ar")
	}
	if ScriptFor(language.English) != ScriptLatin {
		t.Errorf("expected Latin script for en")
	}
	if ParseScript("") != ScriptPersian || ParseScript("not a locale!") != ScriptPersian {
		t.Errorf("expected Persian fallback for empty or invalid locale")
	}
	if ParseScript("en-US") != ScriptLatin {
		t.Errorf("expected Latin script for en-US")
	}
}

func TestFormatMonthsResult(t *testing.T) {
	tests := []struct {
		months   int
		expected string
	}{
		{0, "~0 months"},
		{1, "~1 month"},
		{11, "~11 months"},
		{12, "~1 year"},
		{13, "~2 years"},
		{24, "~2 years"},
		{25, "~3 years"},
		{1200, "~100 years"},
		{-3, "~0 months"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatMonthsResult(tt.months)
			if result != tt.expected {
				t.Errorf("FormatMonthsResult(%d) = %q, expected %q", tt.months, result, tt.expected)
			}
		})
	}

	for months := 12; months <= 240; months++ {
		if strings.Contains(FormatMonthsResult(months), "month") {
			t.Fatalf("FormatMonthsResult(%d) mentions months after switching to years", months)
		}
	}
}

func TestFormatMonthsResultFa(t *testing.T) {
	if got := FormatMonthsResultFa(11); got != "حدود ۱۱ ماه" {
		t.Errorf("FormatMonthsResultFa(11) = %q", got)
	}
	if got := FormatMonthsResultFa(13); got != "حدود ۲ سال" {
		t.Errorf("FormatMonthsResultFa(13) = %q", got)
	}
}

func TestNumberUnmarshal(t *testing.T) {
	var payload struct {
		Amount  Number `json:"amount"`
		Rate    Number `json:"rate"`
		Missing Number `json:"missing"`
		Broken  Number `json:"broken"`
	}
	body := `{"amount": "۱٬۲۰۰٬۰۰۰", "rate": 18.5, "missing": null, "broken": true}`
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if payload.Amount.Float64() != 1200000 {
		t.Errorf("amount = %v, expected 1200000", payload.Amount)
	}
	if payload.Rate.Float64() != 18.5 {
		t.Errorf("rate = %v, expected 18.5", payload.Rate)
	}
	if payload.Missing != 0 || payload.Broken != 0 {
		t.Errorf("expected zero for null and non-numeric values, got %v and %v", payload.Missing, payload.Broken)
	}

	var doc struct {
		Price  Number `yaml:"price"`
		Grams  Number `yaml:"grams"`
		Broken Number `yaml:"broken"`
	}
	src := "price: \"۴٬۵۰۰٬۰۰۰\"\ngrams: 2.5\nbroken: [1, 2]\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if doc.Price.Float64() != 4500000 || doc.Grams.Float64() != 2.5 || doc.Broken != 0 {
		t.Errorf("unexpected yaml decode result %+v", doc)
	}
}
