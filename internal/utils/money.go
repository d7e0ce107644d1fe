package utils

import (
	"strconv"
	"strings"
)

// FormatDZD renders an integer amount of Algerian dinars with thousand
// separators, e.g. 6400 -> "6 400 DZD".
func FormatDZD(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount) + " DZD"
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(c)
	}
	return out.String()
}
