// Package odds converts American odds into payouts.
package odds

import (
	"github.com/joefazee/betpoints/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Payout returns the total returned to a winner, stake included.
//
//	odds > 0: amount * (odds / 100) + amount
//	odds < 0: amount * (100 / |odds|) + amount
func Payout(amount int64, americanOdds int) (decimal.Decimal, error) {
	if americanOdds == 0 {
		return decimal.Zero, models.ErrInvalidOdds
	}
	if amount <= 0 {
		return decimal.Zero, models.ErrInvalidBetAmount
	}

	stake := decimal.NewFromInt(amount)
	o := decimal.NewFromInt(int64(americanOdds))

	var winnings decimal.Decimal
	if americanOdds > 0 {
		winnings = stake.Mul(o).Div(hundred)
	} else {
		winnings = stake.Mul(hundred).Div(o.Abs())
	}
	return winnings.Add(stake), nil
}

// NetWinnings is the payout minus the stake.
func NetWinnings(amount int64, americanOdds int) (decimal.Decimal, error) {
	p, err := Payout(amount, americanOdds)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Sub(decimal.NewFromInt(amount)), nil
}

// Credit converts an exact payout into whole points, rounding down.
func Credit(payout decimal.Decimal) int64 {
	return payout.Floor().IntPart()
}

// CreditFor is Payout followed by Credit.
func CreditFor(amount int64, americanOdds int) (int64, error) {
	p, err := Payout(amount, americanOdds)
	if err != nil {
		return 0, err
	}
	return Credit(p), nil
}
