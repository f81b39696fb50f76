package formatter

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	kibibyte = 1 << 10
	mebibyte = 1 << 20
	gibibyte = 1 << 30
)

// ToFileSize formats a byte count with binary thresholds, largest unit
// first: "1.5M", "1.0G", "12KB", "512B". Gigabytes and megabytes keep one
// decimal, kilobytes none. Numbers use English digit grouping ("2,048.0G").
// A nil count is "0B"; a negative count returns ErrNegativeByteCount.
func (f *Formatter) ToFileSize(bytes *int64) (string, error) {
	if bytes == nil {
		return "0B", nil
	}

	n := *bytes
	p := message.NewPrinter(language.English)

	switch {
	case n < 0:
		return "", fmt.Errorf("%w: %d", ErrNegativeByteCount, n)
	case n >= gibibyte:
		return p.Sprintf("%.1f", roundTo(float64(n)/gibibyte, 1)) + "G", nil
	case n >= mebibyte:
		return p.Sprintf("%.1f", roundTo(float64(n)/mebibyte, 1)) + "M", nil
	case n >= kibibyte:
		return p.Sprintf("%d", int64(math.Round(float64(n)/kibibyte))) + "KB", nil
	case n >= 1:
		return strconv.FormatInt(n, 10) + "B", nil
	default:
		return "0B", nil
	}
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
