package utils

import (
	"strconv"
	"strings"
)

// CreateRankList returns 1-based ranks for an already sorted list of count items.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	neg := strings.HasPrefix(str, "-")
	if neg {
		str = str[1:]
	}
	if len(str) <= 3 {
		if neg {
			return "-" + str
		}
		return str
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// FormatScore prints whole scores without a fraction.
func FormatScore(score float64) string {
	if score == float64(int64(score)) && score < 1e15 && score > -1e15 {
		return FormatWithCommas(int(score))
	}
	return strconv.FormatFloat(score, 'f', 2, 64)
}
