package server

type parseRequest struct {
	Text   string   `json:"text"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Locale string   `json:"locale"`
	Digits int      `json:"fractionDigits"`
}

type parseResponse struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

type toolResponse struct {
	Result   any      `json:"result"`
	Summary  string   `json:"summary"`
	Warnings []string `json:"warnings,omitempty"`
	RunID    string   `json:"runId,omitempty"`
}
