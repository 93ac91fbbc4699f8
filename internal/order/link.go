package order

import (
	"errors"
	"net/url"
	"strings"
)

var (
	errBaseURLRequired   = errors.New("messaging base url is required")
	errRecipientRequired = errors.New("recipient number is required")
)

// Link builds base/number?text=<message>, percent-encoding spaces as %20.
// The number is reduced to its digits.
func Link(base, number, message string) (string, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "", errBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return "", err
	}
	digits := digitsOnly(number)
	if digits == "" {
		return "", errRecipientRequired
	}
	return base + "/" + digits + "?text=" + encodeText(message), nil
}

func encodeText(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
