package money

import "github.com/shopspring/decimal"

// RoundUSD rounds a dollar amount to cents. Internal math stays full
// precision; rounding happens only at report boundaries.
func RoundUSD(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}
