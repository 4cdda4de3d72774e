package rating

import "github.com/yourusername/fpl-predictor/internal/models"

// CurrentSeasonWeight is how heavily current-season rates count against
// prior-season rates once both exist.
const CurrentSeasonWeight = 3

// leagueAverageFallback is used before any fixture has been folded.
const leagueAverageFallback = 1.35

// venueTotals accumulates raw goals for one venue.
type venueTotals struct {
	Games    int
	Scored   int
	Conceded int
}

// BucketRates holds a team's home and away goal totals against opponents
// of one strength bucket.
type BucketRates struct {
	Home venueTotals
	Away venueTotals
}

// SeasonRecord is one season's totals keyed by opponent strength bucket.
type SeasonRecord map[models.Bucket]*BucketRates

func (r SeasonRecord) add(bucket models.Bucket, home bool, scored, conceded int) {
	br, ok := r[bucket]
	if !ok {
		br = &BucketRates{}
		r[bucket] = br
	}
	v := &br.Away
	if home {
		v = &br.Home
	}
	v.Games++
	v.Scored += scored
	v.Conceded += conceded
}

func (r SeasonRecord) venue(bucket models.Bucket, home bool) venueTotals {
	br, ok := r[bucket]
	if !ok {
		return venueTotals{}
	}
	if home {
		return br.Home
	}
	return br.Away
}

// totals sums a season's venue totals across every bucket.
func (r SeasonRecord) totals(home bool) venueTotals {
	var sum venueTotals
	for _, br := range r {
		v := br.Away
		if home {
			v = br.Home
		}
		sum.Games += v.Games
		sum.Scored += v.Scored
		sum.Conceded += v.Conceded
	}
	return sum
}

// blendRate combines current and prior totals into a per-game rate, with
// the current season weighted CurrentSeasonWeight times the prior. The
// boolean reports whether any games backed the rate at all.
func blendRate(cur, prior venueTotals, conceded bool) (float64, bool) {
	curGoals, priorGoals := cur.Scored, prior.Scored
	if conceded {
		curGoals, priorGoals = cur.Conceded, prior.Conceded
	}
	num := float64(CurrentSeasonWeight*curGoals + priorGoals)
	den := float64(CurrentSeasonWeight*cur.Games + prior.Games)
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
