// Package format holds the display formatting helpers shared by handlers
// and reports. All functions are total: malformed input produces a
// best-effort result, never an error.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders an amount as whole Kenyan Shillings with grouping,
// e.g. 1850000 -> "KES 1,850,000".
func Currency(amount float64) string {
	return printer.Sprintf("KES %d", int64(math.Round(amount)))
}

// CompactCurrency abbreviates large amounts with K/M suffixes.
func CompactCurrency(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("KES %.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("KES %.1fK", amount/1_000)
	default:
		return Currency(amount)
	}
}

// Number renders a number with grouping separators.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percentage renders a percentage with the given number of decimals.
func Percentage(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Date styles
const (
	DateShort = "short"
	DateLong  = "long"
	DateFull  = "full"
)

// Date renders a date in one of the short/long/full styles. Unknown styles
// fall back to short.
func Date(t time.Time, style string) string {
	switch style {
	case DateLong:
		return t.Format("2 January 2006")
	case DateFull:
		return t.Format("Monday, 2 January 2006")
	default:
		return t.Format("2 Jan 2006")
	}
}

// RelativeTime buckets a past timestamp into "Just now", "Nm ago",
// "Nh ago", "Nd ago", "Nw ago" or "Nmo ago" relative to now; anything a
// year or more old renders as an absolute short date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)

	seconds := int(d.Seconds())
	minutes := int(d.Minutes())
	hours := int(d.Hours())
	days := hours / 24
	weeks := days / 7
	months := days / 30

	switch {
	case seconds < 60:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case weeks < 4:
		return fmt.Sprintf("%dw ago", weeks)
	case months < 12:
		return fmt.Sprintf("%dmo ago", months)
	default:
		return Date(t, DateShort)
	}
}

// digitsOf strips everything but decimal digits.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone canonicalizes the three Kenyan phone shapes to
// 254XXXXXXXXX. Anything else is returned digit-stripped but otherwise
// unchanged.
func NormalizePhone(phone string) string {
	digits := digitsOf(phone)

	switch {
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
		return digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "254" + digits[1:]
	case strings.HasPrefix(digits, "7") && len(digits) == 9:
		return "254" + digits
	}
	return digits
}

// Phone renders a phone number for display ("+254 712 345 678" or
// "0712 345 678"); unrecognized input is passed through as-is.
func Phone(phone string) string {
	digits := digitsOf(phone)

	if strings.HasPrefix(digits, "254") && len(digits) == 12 {
		return fmt.Sprintf("+%s %s %s %s", digits[:3], digits[3:6], digits[6:9], digits[9:])
	}
	if strings.HasPrefix(digits, "0") && len(digits) == 10 {
		return fmt.Sprintf("%s %s %s", digits[:4], digits[4:7], digits[7:])
	}
	return phone
}

// Initials extracts up to max leading initials from a full name.
func Initials(name string, max int) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		if b.Len() >= max {
			break
		}
		b.WriteRune(unicode.ToUpper([]rune(word)[0]))
	}
	return b.String()
}

// TitleCase capitalizes each word, lowercasing the rest.
func TitleCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// StatusLabel turns a status enum value into a display label,
// e.g. "bank_transfer" -> "Bank Transfer".
func StatusLabel(status string) string {
	return TitleCase(strings.ReplaceAll(status, "_", " "))
}
