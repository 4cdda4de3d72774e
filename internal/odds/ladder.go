package odds

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/fpl-predictor/internal/mathx"
	"github.com/yourusername/fpl-predictor/internal/models"
)

// DefaultMargin is the overround assumed for single-sided quotes such as
// anytime-scorer prices, which have no complement to estimate it from.
const DefaultMargin = 0.05

// MaxGoals is the top bucket of a decomposed goals distribution. Anything
// above the highest quoted line is absorbed into it.
const MaxGoals = 8

// Ladder holds consensus probabilities for the rungs of a totals market.
// over[k] is P(Over k.5); under[k] is P(Under k.5).
type Ladder struct {
	over  map[int]float64
	under map[int]float64
}

// BuildLadder extracts Over/Under rungs from a totals market. Outcome
// labels follow the scraped form "Over 2.5" / "Under 2.5"; anything else
// is ignored.
func BuildLadder(m *models.OddsMarket) *Ladder {
	l := &Ladder{over: map[int]float64{}, under: map[int]float64{}}
	if m == nil {
		return l
	}
	for label, quotes := range m.Outcomes {
		side, line, ok := parseRungLabel(label)
		if !ok {
			continue
		}
		p := Consensus(quotes)
		if p <= 0 {
			continue
		}
		if side == "over" {
			l.over[line] = p
		} else {
			l.under[line] = p
		}
	}
	return l
}

func parseRungLabel(label string) (side string, line int, ok bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	if len(fields) != 2 {
		return "", 0, false
	}
	if fields[0] != "over" && fields[0] != "under" {
		return "", 0, false
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, false
	}
	// Lines are always half-integral; the rung index is the floor.
	k := int(v)
	if v-float64(k) < 0.25 || v-float64(k) > 0.75 {
		return "", 0, false
	}
	return fields[0], k, true
}

// Empty reports whether the ladder has no Over rungs at all.
func (l *Ladder) Empty() bool {
	return len(l.over) == 0
}

// Margin estimates the bookmaker's overround from the rungs where both an
// Over and an Under quote exist: each pair should sum to 1 in a fair book,
// so the excess is the margin. Without any complete pair the ladder is
// treated as fair; the final normalisation absorbs whatever residual
// overround an Over-only book carries.
func (l *Ladder) Margin() float64 {
	sum, n := 0.0, 0
	for k, over := range l.over {
		under, ok := l.under[k]
		if !ok {
			continue
		}
		sum += over + under - 1
		n++
	}
	if n == 0 {
		return 0
	}
	m := sum / float64(n)
	if m < 0 {
		return 0
	}
	return m
}

// ExactCounts decomposes the Over ladder into a distribution over exact
// goal counts 0..MaxGoals. Rung probabilities are first deflated by the
// estimated margin, then differenced sequentially: P(k) is P(Over k-0.5)
// minus P(Over k+0.5), clamped at zero. A missing rung borrows the next
// available higher rung's probability, which zeroes the buckets the book
// never priced rather than inventing mass for them. The top bucket absorbs
// everything above the highest line, and the result is normalised so the
// distribution sums to 1.
func (l *Ladder) ExactCounts() []float64 {
	margin := l.Margin()
	overs := l.filledOvers(margin)

	probs := make([]float64, MaxGoals+1)
	prev := 1.0
	for k := 0; k <= MaxGoals; k++ {
		next := 0.0
		if k < MaxGoals {
			next = overs[k]
		}
		p := prev - next
		if p < 0 {
			p = 0
		}
		probs[k] = p
		prev = next
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total > 0 {
		for k := range probs {
			probs[k] /= total
		}
	}
	return probs
}

// filledOvers returns margin-deflated P(Over k.5) for k in [0, MaxGoals),
// substituting each missing rung with the nearest quoted rung above it.
func (l *Ladder) filledOvers(margin float64) []float64 {
	quoted := make([]int, 0, len(l.over))
	for k := range l.over {
		quoted = append(quoted, k)
	}
	sort.Ints(quoted)

	overs := make([]float64, MaxGoals)
	for k := 0; k < MaxGoals; k++ {
		v := 0.0
		for _, q := range quoted {
			if q >= k {
				v = l.over[q] / (1 + margin)
				break
			}
		}
		overs[k] = mathx.Clamp01(v)
	}
	// Enforce monotonicity: P(Over k.5) can never exceed P(Over (k-1).5).
	for k := 1; k < MaxGoals; k++ {
		if overs[k] > overs[k-1] {
			overs[k] = overs[k-1]
		}
	}
	return overs
}

// ExpectedValue returns the mean of a distribution over counts 0..n.
func ExpectedValue(probs []float64) float64 {
	ev := 0.0
	for k, p := range probs {
		ev += float64(k) * p
	}
	return ev
}

// TieredCounts converts the tiered scorer markets (anytime, 2+ goals,
// hat-trick) into exact count probabilities. The tiers are cumulative from
// above, so differencing them yields the exact buckets; a missing middle
// tier borrows the tier above it, and inconsistent quotes are squeezed
// back to monotonic before differencing.
func TieredCounts(anytime, twoPlus, hatTrick float64) (p1, p2, p3 float64) {
	if twoPlus == 0 && hatTrick > 0 {
		twoPlus = hatTrick
	}
	if twoPlus > anytime {
		twoPlus = anytime
	}
	if hatTrick > twoPlus {
		hatTrick = twoPlus
	}
	p1 = anytime - twoPlus
	p2 = twoPlus - hatTrick
	p3 = hatTrick
	return p1, p2, p3
}

// ExpectedGoalsFromTiers returns the expected goal count implied by the
// tiered scorer markets, treating the hat-trick bucket as exactly three.
func ExpectedGoalsFromTiers(anytime, twoPlus, hatTrick float64) float64 {
	p1, p2, p3 := TieredCounts(anytime, twoPlus, hatTrick)
	return p1 + 2*p2 + 3*p3
}

// ThreeWay removes the margin from a 1X2 market by proportional scaling,
// returning win/draw/win probabilities that sum to 1.
func ThreeWay(home, draw, away float64) (h, d, a float64) {
	total := home + draw + away
	if total <= 0 {
		return 0, 0, 0
	}
	return home / total, draw / total, away / total
}
