package table

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Kind enumerates the scalar kinds a cell can hold.
type Kind uint8

const (
	// KindNull marks an absent value.
	KindNull Kind = iota
	// KindText marks a string value.
	KindText
	// KindNumber marks a numeric value.
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Value is a nullable scalar. It is comparable, so two values are equal
// exactly when == holds: same kind and same payload. Text "5000" and
// number 5000 are different values.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Text returns a text value. The string is kept verbatim.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Equal reports exact equality.
func (v Value) Equal(o Value) bool { return v == o }

// String renders the value for display. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Format renders the value, substituting nullToken for null.
func (v Value) Format(nullToken string) string {
	if v.IsNull() {
		return nullToken
	}
	return v.String()
}

// Interface returns the value as a plain Go value (nil, string or float64).
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// MarshalJSON encodes null as null, numbers as numbers and text as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// NullTokens are the cell contents read as null, matching common spreadsheet readers.
var NullTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNullToken reports whether s is one of NullTokens.
func IsNullToken(s string) bool {
	_, ok := NullTokens[s]
	return ok
}

// Parse converts raw cell text into a value: null tokens become Null,
// plain decimal literals become numbers and everything else stays text.
func Parse(s string) Value {
	if IsNullToken(s) {
		return Null()
	}
	if numericPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Number(f)
		}
	}
	return Text(s)
}

// ParseText is like Parse but never produces a number.
func ParseText(s string) Value {
	if IsNullToken(s) {
		return Null()
	}
	return Text(s)
}
