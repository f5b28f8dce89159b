package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting and returns an E.164 number for North
// American input ("(514) 555-0100" -> "+15145550100"). Other input is returned
// digits-only with a leading "+".
func NormalizePhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	switch {
	case digits == "":
		return ""
	case len(digits) == 10:
		return "+1" + digits
	default:
		return "+" + digits
	}
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// GenerateLabelCode builds the garment tag code printed on the ticket,
// e.g. order 1042, garment 2 -> "HC-1042-02".
func GenerateLabelCode(orderNumber int64, garmentIndex int) string {
	return fmt.Sprintf("HC-%d-%02d", orderNumber, garmentIndex)
}
