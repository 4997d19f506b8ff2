package booking

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Amount is a decimal money value that marshals as a bare JSON number, which
// is what the backend's float fields expect. Decimal arithmetic keeps stay
// totals exact; binary floats drift on per-night sums.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "[AmountFromString] %q", s)
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	d := decimal.Decimal{}
	if err := d.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "[Amount.UnmarshalJSON]")
	}
	a.Decimal = d
	return nil
}

// StayTotal prices a stay: nightly rate x nights x rooms.
func StayTotal(nightlyRate Amount, checkIn, checkOut Date, rooms int) (Amount, error) {
	nights := checkIn.Nights(checkOut)
	if nights <= 0 {
		return Amount{}, errors.Errorf("[StayTotal] check_out %s must be after check_in %s", checkOut, checkIn)
	}
	if rooms <= 0 {
		return Amount{}, errors.New("[StayTotal] rooms must be positive")
	}
	total := nightlyRate.Decimal.
		Mul(decimal.NewFromInt(int64(nights))).
		Mul(decimal.NewFromInt(int64(rooms)))
	return Amount{Decimal: total}, nil
}
