package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeWindow = errors.New("invalid time window")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrIncompleteAddress = errors.New("address, city and postal code are required")
)

// TimeWindow is the scheduled slot of a booking. End must be strictly after
// start; the duration check lives here, not in the request validator.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{start: start.UTC(), end: end.UTC()}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Hours returns the fractional hour count used by the pricing formula.
func (w TimeWindow) Hours() decimal.Decimal {
	return decimal.NewFromFloat(w.Duration().Hours())
}

// Money is a fixed-point EUR magnitude. All arithmetic happens on the
// underlying decimal; binary floats never touch monetary values.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(2)}
}

func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: d.Round(2)}, nil
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the canonical two-decimal wire/storage form, e.g. "46.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Address is the delivery location of a booking within Spain.
type Address struct {
	street     string
	city       string
	postalCode string
}

func NewAddress(street, city, postalCode string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)
	if street == "" || city == "" || postalCode == "" {
		return Address{}, ErrIncompleteAddress
	}
	return Address{street: street, city: city, postalCode: postalCode}, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
