// Package currency formats amounts in the shop's single display currency.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the display currency.
const Code = money.INR

// Display formats amount with the currency symbol and two decimals,
// e.g. ₹1,234.50. Sub-paisa precision is rounded half away from zero.
func Display(amount decimal.Decimal) string {
	cur := money.GetCurrency(Code)
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, Code).Display()
}
