package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidVATRate = errors.New("vat rate must be between 0 and 1")

// Price is a net/gross pair for one catalog item.
type Price struct {
	Net   Money
	Gross Money
}

func (p Price) VAT() Money {
	return Money{cents: p.Gross.cents - p.Net.cents}
}

type Resolver interface {
	Resolve(net Money) Price
	Rate() decimal.Decimal
}

type VATResolver struct {
	rate       decimal.Decimal
	multiplier decimal.Decimal
}

func NewVATResolver(rate decimal.Decimal) (*VATResolver, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, ErrInvalidVATRate
	}
	return &VATResolver{rate: rate, multiplier: decimal.NewFromInt(1).Add(rate)}, nil
}

// NewVATResolverFromString parses rates like "0.19".
func NewVATResolverFromString(rate string) (*VATResolver, error) {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, errors.Join(ErrInvalidVATRate, err)
	}
	return NewVATResolver(d)
}

// Resolve rounds gross half away from zero to two decimals.
func (r *VATResolver) Resolve(net Money) Price {
	gross := net.Decimal().Mul(r.multiplier).Round(2)
	return Price{Net: net, Gross: Money{cents: gross.Shift(2).IntPart()}}
}

func (r *VATResolver) Rate() decimal.Decimal {
	return r.rate
}
