package metric

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

var (
	regxNumOnly = regexp.MustCompile(`^-?[0-9]+$`)
)

// A Number represents a JSON number literal.
// Values that cannot be parsed as number or bool, such as "1,245.50", are kept as JSON string.
type Number string

func NewInt(n int) Number {
	return Number(strconv.Itoa(n))
}

func NewInt64(n int64) Number {
	return Number(strconv.FormatInt(n, 10))
}

// NewFloat64 formats n with prec digits after the decimal point.
func NewFloat64(n float64, prec int) Number {
	return Number(strconv.FormatFloat(n, 'f', prec, 64))
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(string(n), ",", ""), 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	var val interface{} = string(n)

	// JSON not support actual type, we detect if it contain dot then try to parse as float
	// if not contain, then it may integer if all is number.
	switch {
	case strings.Contains(string(n), "."):
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			val = f
		}

	case regxNumOnly.MatchString(string(n)):
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			val = i
		}

	default:
		if b, _err := strconv.ParseBool(string(n)); _err == nil {
			val = b
		}

	}

	return json.Marshal(val)
}
