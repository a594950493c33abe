package views

import (
	"math"
	"strconv"
)

const maxDenominator = 16

// formatQuantity prints a quantity as a whole number plus a common fraction,
// so 1.5 becomes "1 1/2". A missing or zero quantity prints nothing.
func formatQuantity(quantity *float64) string {
	if quantity == nil || *quantity == 0 {
		return ""
	}
	q := *quantity
	sign := ""
	if q < 0 {
		sign = "-"
		q = -q
	}
	whole := math.Floor(q)
	frac := q - whole
	if frac < 0.01 {
		return sign + strconv.FormatFloat(whole, 'f', 0, 64)
	}
	if frac > 0.99 {
		return sign + strconv.FormatFloat(whole+1, 'f', 0, 64)
	}
	for den := 2; den <= maxDenominator; den++ {
		num := math.Round(frac * float64(den))
		if num == 0 || math.Abs(frac-num/float64(den)) > 0.01 {
			continue
		}
		fraction := strconv.Itoa(int(num)) + "/" + strconv.Itoa(den)
		if whole == 0 {
			return sign + fraction
		}
		return sign + strconv.FormatFloat(whole, 'f', 0, 64) + " " + fraction
	}
	return sign + strconv.FormatFloat(q, 'f', -1, 64)
}
