package envfile

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Classify infers the type of a raw value. It tries, in order, a signed
// 32-bit integer, a 32-bit float and finally falls back to a string, which
// always succeeds. Wider kinds are never inferred; use Retag for those.
func Classify(raw string) Value {
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return I32(int32(n))
	}
	if f, ok := parseFloat(raw, 32); ok {
		return F32(float32(f))
	}
	return String(raw)
}

// parseFloat accepts decimal floats plus inf, infinity and nan in any case
// with an optional sign. Decimals too large for bitSize become ±Inf. Hex
// floats and digit separators are rejected.
func parseFloat(s string, bitSize int) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "_xX") {
		return 0, false
	}
	// strconv has no signed NaN.
	if unsigned := strings.TrimLeft(s, "+-"); len(s)-len(unsigned) <= 1 && strings.EqualFold(unsigned, "nan") {
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
