package usecase

import (
	"fmt"
	"strings"
)

// Display helpers shared by the server-rendered pages. They accept the
// decimal strings the data model carries.

// FormatPrice renders a price with thousands separators and between two
// and eight fraction digits. Unparseable input renders as zero.
func FormatPrice(price string) string {
	d := parseDecimal(price)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	fixed := d.StringFixed(8)
	dot := strings.IndexByte(fixed, '.')
	intPart, frac := fixed[:dot], fixed[dot+1:]

	frac = strings.TrimRight(frac, "0")
	for len(frac) < 2 {
		frac += "0"
	}

	out := groupThousands(intPart) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatVolume renders a volume as an abbreviated dollar amount ($K, $M,
// $B).
func FormatVolume(volume string) string {
	num := parseDecimal(volume).InexactFloat64()
	switch {
	case num >= 1e9:
		return fmt.Sprintf("$%.2fB", num/1e9)
	case num >= 1e6:
		return fmt.Sprintf("$%.2fM", num/1e6)
	case num >= 1e3:
		return fmt.Sprintf("$%.2fK", num/1e3)
	default:
		return fmt.Sprintf("$%.2f", num)
	}
}

// TruncateName shortens long coin names for narrow table cells.
func TruncateName(name string, maxLength int) string {
	runes := []rune(name)
	if len(runes) <= maxLength {
		return name
	}
	return string(runes[:maxLength]) + "..."
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
