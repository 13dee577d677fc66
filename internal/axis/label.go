package axis

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatLabel renders a mark position for an axis whose major step is
// major. The number of decimals follows the step's decade, so a zoom
// never shows 0.30000000000000004 or flips between "2" and "1.9999".
func FormatLabel(position, major float64) string {
	if position == 0 || !isFinite(major) || major <= 0 {
		return formatPlain(position)
	}
	if math.Abs(position) >= 1e15 || major < 1e-9 {
		return strconv.FormatFloat(position, 'g', 6, 64)
	}
	digits := 0
	if d := -int(math.Floor(math.Log10(major))); d > 0 {
		digits = d
	}
	scale := math.Pow10(digits)
	rounded := math.Round(position*scale) / scale
	if rounded == 0 {
		return "0"
	}
	// FtoaWithDigits truncates, so round first.
	return humanize.FtoaWithDigits(rounded, digits)
}

func formatPlain(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
