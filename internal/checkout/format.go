package checkout

import "strings"

const maxCardDigits = 16

// DigitsOnly strips everything but digits, used before submission.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a US phone for display: "1234567890" becomes
// "(123) 456-7890". Partial input formats progressively.
func FormatPhone(value string) string {
	cleaned := DigitsOnly(value)
	if len(cleaned) > 10 {
		cleaned = cleaned[:10]
	}
	switch {
	case len(cleaned) <= 3:
		return cleaned
	case len(cleaned) <= 6:
		return "(" + cleaned[:3] + ") " + cleaned[3:]
	default:
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	}
}

// FormatCard renders a card number in groups of four digits, capped at 16
// digits: "4111111111111111" becomes "4111 1111 1111 1111".
func FormatCard(value string) string {
	cleaned := DigitsOnly(value)
	if len(cleaned) > maxCardDigits {
		cleaned = cleaned[:maxCardDigits]
	}
	var groups []string
	for i := 0; i < len(cleaned); i += 4 {
		end := i + 4
		if end > len(cleaned) {
			end = len(cleaned)
		}
		groups = append(groups, cleaned[i:end])
	}
	return strings.Join(groups, " ")
}

// StripSpaces removes the display grouping from a formatted card number.
func StripSpaces(value string) string {
	return strings.ReplaceAll(value, " ", "")
}
