package units

import (
	"strconv"
	"strings"

	"github.com/matzehuels/measure/pkg/errors"
)

var digitSeparators = strings.NewReplacer(" ", "", "\t", "", "_", "", ",", "")

// ParseNumber decodes a bare number such as "1 000.5", "12_500" or "-3e4".
// Digit group separators (space, tab, underscore, comma) are dropped and the
// decimal point is always ".".
func ParseNumber(text string) (float64, error) {
	s := digitSeparators.Replace(strings.TrimSpace(text))
	if s == "" || s == "-" || s == "+" {
		return 0, errors.New(errors.ErrCodeNoNumberFound, "no number in %q", text)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNoNumberFound, err, "no number in %q", text)
	}
	return v, nil
}
