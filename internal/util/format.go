package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	decimalValue  = 100
	thousandValue = 1000
)

// FormatMoney renders an amount in cents with the given separators.
func FormatMoney(value int64, thousand, decimal string) string {
	var result string
	var isNegative bool

	if value < 0 {
		value *= -1
		isNegative = true
	}

	// apply the decimal separator
	result = fmt.Sprintf("%s%02d%s", decimal, value%decimalValue, result)
	value /= decimalValue

	// for each 3 dígits put a separator
	for value >= thousandValue {
		result = fmt.Sprintf("%s%03d%s", thousand, value%thousandValue, result)
		value /= thousandValue
	}

	if isNegative {
		return fmt.Sprintf("-%d%s", value, result)
	}

	return fmt.Sprintf("%d%s", value, result)
}

// FormatCurrency renders a decimal amount as dollars, e.g. $1,234.56.
func FormatCurrency(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	formatted := FormatMoney(cents, ",", ".")
	if cents < 0 {
		return "-$" + formatted[1:]
	}
	return "$" + formatted
}
