package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display amounts when none is set.
const DefaultCurrency = "USD"

// FormatAmount formats an amount for display, using the symbol and
// separators of currency. The currency is only a display preference, amounts
// are never converted.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	f := cur.Formatter()
	// amounts are kept in cents, they are never shown with fewer digits.
	if f.Fraction < 2 {
		f.Fraction = 2
	}
	return f.Format(amount.Shift(int32(f.Fraction)).IntPart())
}

