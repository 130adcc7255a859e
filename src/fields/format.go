package fields

import (
	"math"
	"strconv"
	"strings"
)

// formatValue is the single formatting path shared by every Field. It is
// locale-free: masks use '.' as the decimal separator and ',' for grouping
// regardless of the host locale.
func formatValue(typ FieldType, format string, v Value) string {
	if v.IsAbsent() {
		return ""
	}

	if format == "" {
		return naturalText(v)
	}

	switch typ {
	case FieldTypeDouble:
		if v.Kind == KindDouble {
			return formatDouble(format, v.Float)
		}
	case FieldTypeDate:
		if v.Kind == KindDate {
			return v.Time.Format(format)
		}
	}

	return naturalText(v)
}

func naturalText(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindDouble:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindDate:
		return v.Time.Format("2006-01-02 15:04:05")
	case KindBool:
		if v.Bool {
			return "Y"
		}
		return "N"
	}

	return ""
}

// formatDouble applies a numeric mask of the form [#,##]0[.0...]. The number
// of digits after '.' fixes the fractional precision; a ',' anywhere in the
// mask turns on thousands grouping.
func formatDouble(mask string, f float64) string {
	decimals := 0
	if dot := strings.IndexByte(mask, '.'); dot >= 0 {
		decimals = len(mask) - dot - 1
	}

	text := strconv.FormatFloat(f, 'f', decimals, 64)

	if strings.ContainsRune(mask, ',') {
		text = groupThousands(text)
	}

	return text
}

func groupThousands(text string) string {
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	intPart := text
	fracPart := ""
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		intPart = text[:dot]
		fracPart = text[dot:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}

	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + fracPart
}

// composePrecision rebuilds a double mask from its base and a fractional
// digit count, e.g. ("#,##0", 5) -> "#,##0.00000".
func composePrecision(base string, digits int) string {
	if base == "" {
		base = "0"
	}

	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		base = base[:dot]
	}

	if digits <= 0 {
		return base
	}

	return base + "." + strings.Repeat("0", digits)
}

// RoundTo rounds f to the given number of fractional digits.
func RoundTo(f float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(f*scale) / scale
}
