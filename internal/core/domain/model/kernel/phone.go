package kernel

import (
	"strings"

	"flowlog/internal/pkg/errs"
)

// ErrPhoneIsNotConstructed indicates that a Phone was not created through
// NewPhone. Returned when validating a zero value.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("Phone must be created via NewPhone")

const (
	phoneMinDigits = 8
	phoneMaxDigits = 15
)

// Phone is a value object holding a digits-only normalized phone number.
// Customers are unique per tenant by their normalized phone, so all lookups
// and comparisons go through this type rather than raw user input.
//
// Normalization strips every non-digit character; "+55 (11) 98765-4321"
// and "5511987654321" are the same Phone.
type Phone struct {
	digits string
}

// NewPhone normalizes raw user input into a Phone. Returns a validation
// error when the input contains fewer than 8 or more than 15 digits.
func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone digits", raw, phoneMinDigits, phoneMaxDigits)
	}

	return Phone{digits: digits}, nil
}

// String returns the normalized digits-only representation.
func (p Phone) String() string {
	return p.digits
}

// Masked returns a privacy-safe rendering showing only the last four digits,
// e.g. "***4321". Used in notification logs.
func (p Phone) Masked() string {
	if len(p.digits) < 4 {
		return "***"
	}
	return "***" + p.digits[len(p.digits)-4:]
}

// IsEqual reports whether two phone numbers normalize to the same digits.
func (p Phone) IsEqual(other Phone) bool {
	return p.digits == other.digits
}

// Validate returns ErrPhoneIsNotConstructed for the zero value.
func (p Phone) Validate() error {
	if p.digits == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}
