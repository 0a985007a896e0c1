package format

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/takhmino/takhmino/pkg/mathutil"
	"gopkg.in/yaml.v3"
)

// Number is a float64 that decodes from JSON or YAML numbers as well as from
// localized numeric strings such as "۱۲٬۵۰۰٫۵". Undecodable values become 0.
type Number float64

// Float64 returns the numeric value.
func (n Number) Float64() float64 {
	return float64(n)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*n = 0
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseLocalizedNumber(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(mathutil.Finite(f))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*n = 0
		return nil
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
			*n = Number(mathutil.Finite(f))
			return nil
		}
	}
	*n = Number(ParseLocalizedNumber(node.Value))
	return nil
}
