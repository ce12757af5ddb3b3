// Package size turns byte counts into display strings and sums directory trees.
package size

import (
	"fmt"
	"math"
	"strconv"
)

// Units are the binary units used by Format, smallest first.
var Units = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

const delimiter = 1024.0

// Format renders a byte count with two decimals in the largest unit that
// keeps the scaled value at or above one. Values past YB stay in YB.
func Format(bytes int64) string {
	return FormatFloat(float64(bytes))
}

// FormatFloat is Format for arbitrary magnitudes, including values beyond
// the int64 range.
func FormatFloat(num float64) string {
	sign := ""
	if math.Signbit(num) {
		sign = "-"
	}
	num = math.Abs(num)

	if num < 1 {
		return fmt.Sprintf("%s%.2f %s", sign, num, Units[0])
	}

	// floor(log1024(num)) without the float error of math.Log at exact powers
	exponent := 0
	for exponent < len(Units)-1 && num >= math.Pow(delimiter, float64(exponent+1)) {
		exponent++
	}

	scaled := num / math.Pow(delimiter, float64(exponent))
	return fmt.Sprintf("%s%.2f %s", sign, scaled, Units[exponent])
}

// Display picks between the raw count and the human readable form.
func Display(bytes int64, byteSize bool) string {
	if byteSize {
		return strconv.FormatInt(bytes, 10)
	}
	return Format(bytes)
}
