// Package format converts between localized numeric text and numbers.
//
// Parsing never fails: empty or malformed input becomes 0 so that form
// handlers can feed engines on every keystroke. Formatting groups thousands,
// bounds the fraction digits and then remaps ASCII digits to the requested
// digit script.
package format

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/takhmino/takhmino/pkg/mathutil"
	"golang.org/x/text/language"
)

// Script identifies a digit script used for display.
type Script int

const (
	// ScriptLatin renders ASCII digits 0-9.
	ScriptLatin Script = iota
	// ScriptPersian renders extended Arabic-Indic digits ۰-۹.
	ScriptPersian
	// ScriptArabic renders Arabic-Indic digits ٠-٩.
	ScriptArabic
)

const (
	persianZero = '۰'
	persianNine = '۹'
	arabicZero  = '٠'
	arabicNine  = '٩'
)

// ScriptFor returns the digit script conventionally used for a language.
func ScriptFor(tag language.Tag) Script {
	base, _ := tag.Base()
	switch base.String() {
	case "fa":
		return ScriptPersian
	case "ar":
		return ScriptArabic
	default:
		return ScriptLatin
	}
}

// ParseScript resolves a BCP 47 locale string such as "fa-IR" to a digit
// script. Unparseable locales fall back to Persian, the application default.
func ParseScript(locale string) Script {
	if strings.TrimSpace(locale) == "" {
		return ScriptPersian
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ScriptPersian
	}
	return ScriptFor(tag)
}

// ParseLocalizedNumber converts free-form localized numeric text into a
// finite float64. Persian and Arabic-Indic digits are normalized, thousands
// separators (",", "٬", "،") are dropped and the first decimal separator
// ("." or "٫") is kept; later separators are dropped so their digits join the
// fractional part. Anything unparseable yields 0.
func ParseLocalizedNumber(text string) float64 {
	var b strings.Builder
	negative := false
	seenPoint := false

	for _, r := range strings.TrimSpace(text) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= persianZero && r <= persianNine:
			b.WriteRune('0' + (r - persianZero))
		case r >= arabicZero && r <= arabicNine:
			b.WriteRune('0' + (r - arabicZero))
		case r == '.' || r == '٫':
			if !seenPoint {
				b.WriteRune('.')
				seenPoint = true
			}
		case r == ',' || r == '٬' || r == '،':
		case r == '-' || r == '−':
			if b.Len() > 0 || negative {
				return 0
			}
			negative = true
		case r == '+' && b.Len() == 0:
		case r == '%' || r == '\u200c' || unicode.IsSpace(r):
		default:
			return 0
		}
	}

	digits := strings.TrimSuffix(b.String(), ".")
	if digits == "" {
		return 0
	}
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0
	}
	value, _ := d.Float64()
	if negative {
		value = -value
	}
	return mathutil.Finite(value)
}

// Clamp parses text and bounds the result to [min, max]. Parsing itself
// never clamps; callers opt in per field.
func Clamp(text string, min, max float64) float64 {
	return mathutil.Clamp(ParseLocalizedNumber(text), min, max)
}

// FormatGroupedNumber renders value with thousands grouping, at most
// maxFractionDigits fraction digits and Persian digits.
func FormatGroupedNumber(value float64, maxFractionDigits int) string {
	return FormatGroupedNumberIn(value, maxFractionDigits, ScriptPersian)
}

// FormatGroupedNumberIn is FormatGroupedNumber for an explicit digit script.
func FormatGroupedNumberIn(value float64, maxFractionDigits int, script Script) string {
	if maxFractionDigits < 0 {
		maxFractionDigits = 0
	}

	d := decimal.NewFromFloat(mathutil.Finite(value)).Round(int32(maxFractionDigits))
	negative := d.IsNegative()
	plain := d.Abs().String()

	intPart, fracPart, _ := strings.Cut(plain, ".")
	formatted := groupThousands(intPart)
	if fracPart != "" {
		formatted += "." + fracPart
	}
	if negative {
		formatted = "-" + formatted
	}
	return ToScript(formatted, script)
}

// ToScript remaps ASCII digits in s to the given script. Other runes are kept.
func ToScript(s string, script Script) string {
	var zero rune
	switch script {
	case ScriptPersian:
		zero = persianZero
	case ScriptArabic:
		zero = arabicZero
	default:
		return s
	}

	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return zero + (r - '0')
		}
		return r
	}, s)
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
