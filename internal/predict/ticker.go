package predict

import "strings"

// NormalizeTicker trims the raw input and upper-cases it
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return "", &ValidationError{Message: MsgEmptyTicker}
	}
	return ticker, nil
}
