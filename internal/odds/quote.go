package odds

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/fpl-predictor/internal/models"
)

// ParseQuote parses a single bookmaker quote. Both fractional ("5/2") and
// decimal ("3.50") forms appear in scraped data; the result is always the
// decimal odds, so "5/2" parses to 3.5.
func ParseQuote(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, models.ErrMalformedQuote
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := decimal.NewFromString(strings.TrimSpace(num))
		if err != nil {
			return decimal.Zero, models.ErrMalformedQuote
		}
		d, err := decimal.NewFromString(strings.TrimSpace(den))
		if err != nil || d.IsZero() {
			return decimal.Zero, models.ErrMalformedQuote
		}
		dec := n.Div(d).Add(decimal.NewFromInt(1))
		if dec.LessThanOrEqual(decimal.NewFromInt(1)) {
			return decimal.Zero, models.ErrMalformedQuote
		}
		return dec, nil
	}

	dec, err := decimal.NewFromString(s)
	if err != nil || dec.LessThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, models.ErrMalformedQuote
	}
	return dec, nil
}

// Implied converts decimal odds to the bookmaker's implied probability.
// Example: 4.0 → 0.25.
func Implied(dec decimal.Decimal) float64 {
	f, _ := dec.Float64()
	if f <= 0 {
		return 0
	}
	return 1 / f
}

// Consensus averages the implied probabilities of the quotes for one
// outcome. Bookmakers occasionally publish wild prices, so with enough
// quotes the obvious outliers are trimmed before averaging: with more than
// four quotes, drop any deviating from the mean by more than the mean
// itself; with more than seven, tighten the cut to half the mean.
func Consensus(quotes []decimal.Decimal) float64 {
	if len(quotes) == 0 {
		return 0
	}

	probs := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		if p := Implied(q); p > 0 {
			probs = append(probs, p)
		}
	}
	if len(probs) == 0 {
		return 0
	}

	if len(probs) > 4 {
		cut := mean(probs)
		if len(probs) > 7 {
			cut /= 2
		}
		probs = trim(probs, cut)
	}
	return mean(probs)
}

func trim(probs []float64, cut float64) []float64 {
	m := mean(probs)
	kept := probs[:0]
	for _, p := range probs {
		if math.Abs(p-m) <= cut {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return probs
	}
	return kept
}

// SingleSided deflates a lone implied probability by the assumed
// overround. Used for quotes with no complement in the book, such as
// anytime-scorer prices.
func SingleSided(p float64) float64 {
	return p / (1 + DefaultMargin)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
