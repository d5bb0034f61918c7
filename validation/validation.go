// Package validation turns loosely typed form values into typed values,
// collecting one violation code per field instead of failing on the first.
package validation

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Violation codes. They double as i18n message keys.
const (
	CodeRequired         = "required"
	CodeInvalidNumber    = "invalid_number"
	CodeNonNegative      = "must_be_non_negative"
	CodeInvalidInteger   = "invalid_integer"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidID        = "invalid_id"
	CodeValueTooLong     = "too_long"
	DateLayout           = "2006-01-02"
	maxTextFieldLength   = 500
	maxNumberFieldLength = 32
)

// maxMoney bounds money values so that amounts and quantity products stay
// finite once stored in REAL columns.
var maxMoney = decimal.New(1, 15)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violated field names in lexical order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// add keeps the first violation recorded for a field.
func (v Violations) add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.add(field, CodeRequired)
	}
}

func MaxLength(field, value string, v Violations) {
	if len(value) > maxTextFieldLength {
		v.add(field, CodeValueTooLong)
	}
}

func NonNegativeFloat(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v.add(field, CodeNonNegative)
	}
}

// ParseDecimal parses a money value. Blank input yields def without a
// violation; callers combine it with Required when the field is mandatory.
// A comma decimal separator is accepted. Magnitudes of 10^15 and above are
// rejected as invalid numbers.
func ParseDecimal(field, raw string, def decimal.Decimal, v Violations) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	if len(s) > maxNumberFieldLength {
		v.add(field, CodeInvalidNumber)
		return def
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		v.add(field, CodeInvalidNumber)
		return def
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) || math.IsNaN(f) || d.Abs().GreaterThanOrEqual(maxMoney) {
		v.add(field, CodeInvalidNumber)
		return def
	}
	NonNegativeFloat(field, d, v)
	return d
}

// ParseInt parses a non-negative integer, blank meaning 0.
func ParseInt(field, raw string, v Violations) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.add(field, CodeInvalidInteger)
		return 0
	}
	if n < 0 {
		v.add(field, CodeNonNegative)
		return 0
	}
	return n
}

// ParseOptionalID parses a foreign key picked from a dropdown. Blank and
// "0" both mean "none selected".
func ParseOptionalID(field, raw string, v Violations) *uint {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		v.add(field, CodeInvalidID)
		return nil
	}
	id := uint(n)
	return &id
}

// ISODate checks a YYYY-MM-DD date and returns it normalised.
func ISODate(field, raw string, v Violations) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		v.add(field, CodeRequired)
		return ""
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		v.add(field, CodeInvalidDate)
		return ""
	}
	return t.Format(DateLayout)
}
