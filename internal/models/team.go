package models

// Team represents a club in the roster/team metadata snapshot.
type Team struct {
	ID             int    `json:"id" validate:"required,gt=0"`
	Name           string `json:"name" validate:"required"`
	ShortName      string `json:"short_name"`
	LeaguePosition int    `json:"league_position" validate:"gte=0,lte=20"`
	// PriorPosition is the final league position of the previous season.
	// Zero means the team was promoted and has no top-flight prior data.
	PriorPosition int `json:"prior_position" validate:"gte=0,lte=20"`
}

// Bucket is a quintile grouping of league position used to stratify
// historical performance by opponent difficulty.
type Bucket int

// League position quintiles, plus Unknown for positions outside 1-20.
const (
	BucketUnknown Bucket = iota
	Bucket1to4
	Bucket5to8
	Bucket9to12
	Bucket13to16
	Bucket17to20
)

// String returns the position range label for the bucket.
func (b Bucket) String() string {
	switch b {
	case Bucket1to4:
		return "1-4"
	case Bucket5to8:
		return "5-8"
	case Bucket9to12:
		return "9-12"
	case Bucket13to16:
		return "13-16"
	case Bucket17to20:
		return "17-20"
	default:
		return "Unknown"
	}
}

// BucketForPosition maps a league position to its strength bucket.
func BucketForPosition(position int) Bucket {
	switch {
	case position < 1 || position > 20:
		return BucketUnknown
	case position <= 4:
		return Bucket1to4
	case position <= 8:
		return Bucket5to8
	case position <= 12:
		return Bucket9to12
	case position <= 16:
		return Bucket13to16
	default:
		return Bucket17to20
	}
}

// AllBuckets lists every bucket including Unknown, in label order.
func AllBuckets() []Bucket {
	return []Bucket{Bucket1to4, Bucket5to8, Bucket9to12, Bucket13to16, Bucket17to20, BucketUnknown}
}
