package helpers

import (
	"regexp"
	"strings"

	"github.com/erikmannerfelt/manus/internal/value"
)

// numberRun matches a run of digits with an optional fractional part,
// as they occur embedded in prose.
var numberRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// separateNumber formats a number with the separator token inserted every
// three digits of the integer part, counted leftward from the decimal
// point. The fractional part and any sign are left untouched.
func separateNumber(f float64, separator string) string {
	return separateRuns(value.FormatNumber(f), separator)
}

// separateRuns applies digit grouping to every number embedded in a string,
// leaving the surrounding text as it is.
func separateRuns(s string, separator string) string {
	return numberRun.ReplaceAllStringFunc(s, func(run string) string {
		intPart, rest, hasFrac := strings.Cut(run, ".")
		grouped := groupDigits(intPart, separator)
		if hasFrac {
			return grouped + "." + rest
		}
		return grouped
	})
}

// groupDigits inserts the separator into a plain digit string every three
// digits from the right.
func groupDigits(digits string, separator string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
