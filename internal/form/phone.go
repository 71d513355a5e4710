package form

import "strings"

// maxPhoneDigits is the number of digits the mask accepts.
// Input beyond ten digits is truncated, matching the historical form
// behavior of keeping only the first ten digits typed.
const maxPhoneDigits = 10

// FormatPhone renders raw phone input as a progressive (XXX) XXX-XXXX mask.
// It strips all non-digit characters, truncates to at most ten digits, and
// renders as much of the mask as the digits fill:
//
//	0 digits      -> ""
//	1-3 digits    -> "(D.."
//	4-6 digits    -> "(DDD) D.."
//	7-10 digits   -> "(DDD) DDD-DDDD"
//
// The function is idempotent: formatting already-formatted output returns
// the same value, which is what allows it to run on every keystroke.
func FormatPhone(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > maxPhoneDigits {
		digits = digits[:maxPhoneDigits]
	}

	switch n := len(digits); {
	case n == 0:
		return ""
	case n < 4:
		return "(" + digits
	case n < 7:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// digitsOnly strips every rune outside '0'-'9'.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
