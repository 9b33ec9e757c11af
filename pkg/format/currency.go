package format

import (
	"math"

	"github.com/iwvelando/house-price/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var indian = message.NewPrinter(language.MustParse("en-IN"))

// Rupees returns a price with the rupee sign and Indian digit grouping (e.g., "₹12,34,567.89").
func Rupees(amount float64) string {
	formatted := indian.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-" + constants.CurrencySymbol + formatted
	}
	return constants.CurrencySymbol + formatted
}

// Lakhs returns a price followed by its unit (e.g., "₹45.50 lakhs").
func Lakhs(amount float64) string {
	return Rupees(amount) + " " + constants.PriceUnit
}
