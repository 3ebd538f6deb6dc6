package kernel

import (
	"fmt"

	"flowlog/internal/pkg/errs"
)

// Money is a value object holding a monetary amount in centavos. Storing
// integer cents avoids floating-point drift in order totals; formatting uses
// the Brazilian convention ("1.234,56") because that is what the notification
// templates render.
//
// The zero value is a legitimate amount of zero, so unlike other kernel types
// Money carries no construction guard; negative amounts are rejected at
// construction.
type Money struct {
	centavos int64
}

// NewMoney creates a Money from an amount in centavos. Negative amounts are
// invalid for order totals.
func NewMoney(centavos int64) (Money, error) {
	if centavos < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d centavos is negative", centavos))
	}
	return Money{centavos: centavos}, nil
}

// Centavos returns the raw amount in centavos.
func (m Money) Centavos() int64 {
	return m.centavos
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.centavos == other.centavos
}

// Format renders the amount in the Brazilian convention without a currency
// symbol: 123456 centavos -> "1.234,56". Notification templates prepend
// "R$ " themselves.
func (m Money) Format() string {
	reais := m.centavos / 100
	cents := m.centavos % 100

	intPart := fmt.Sprintf("%d", reais)
	var grouped []byte
	for i, d := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	return fmt.Sprintf("%s,%02d", grouped, cents)
}
