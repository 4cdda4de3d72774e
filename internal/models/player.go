package models

// Position is a player's registered position.
type Position string

// Registered positions. Unknown marks placeholder entries created for
// bookmaker-side names that could not be matched to the roster.
const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionManager    Position = "MNG"
	PositionUnknown    Position = "Unknown"
)

// Valid reports whether the position is one of the registered roster positions.
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward, PositionManager:
		return true
	}
	return false
}

// Outfield reports whether the player can score goal/assist points.
func (p Position) Outfield() bool {
	switch p {
	case PositionDefender, PositionMidfielder, PositionForward, PositionUnknown:
		return true
	}
	return false
}

// SeasonTotals holds a player's accumulated statistics for one season.
type SeasonTotals struct {
	Minutes          int     `json:"minutes" validate:"gte=0"`
	Games            int     `json:"games" validate:"gte=0"`
	Goals            int     `json:"goals" validate:"gte=0"`
	Assists          int     `json:"assists" validate:"gte=0"`
	Saves            int     `json:"saves" validate:"gte=0"`
	DefensiveActions int     `json:"defensive_actions" validate:"gte=0"`
	CBI              int     `json:"cbi" validate:"gte=0"`
	Recoveries       int     `json:"recoveries" validate:"gte=0"`
	Tackles          int     `json:"tackles" validate:"gte=0"`
	BPS              int     `json:"bps"`
	Price            float64 `json:"price" validate:"gte=0"`
}

// PerGame returns total/games, or 0 when no games were played.
func (s SeasonTotals) PerGame(total int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(total) / float64(s.Games)
}

// Per90 returns a per-90-minute rate for a total, or 0 without minutes.
func (s SeasonTotals) Per90(total int) float64 {
	if s.Minutes == 0 {
		return 0
	}
	return float64(total) / (float64(s.Minutes) / 90.0)
}

// Player represents a roster entry with identity, position and season stats.
type Player struct {
	ID       int      `json:"id" validate:"required,gt=0"`
	Name     string   `json:"name" validate:"required"`
	Nickname string   `json:"nickname"`
	TeamID   int      `json:"team_id"`
	Position Position `json:"position" validate:"required"`
	Price    float64  `json:"price" validate:"gte=0"`
	// ChanceOfPlaying is the probability of featuring next round, in [0,1].
	ChanceOfPlaying float64      `json:"chance_of_playing" validate:"gte=0,lte=1"`
	Current         SeasonTotals `json:"current"`
	Prior           SeasonTotals `json:"prior"`
}

// Placeholder reports whether this entry was created for an unmatched
// bookmaker-side name rather than loaded from the roster.
func (p *Player) Placeholder() bool {
	return p.Position == PositionUnknown
}

// NewPlaceholder creates a clearly-flagged entry for a bookmaker-side name
// that could not be resolved to any roster player. Availability is unknown,
// so the entry is assumed to play.
func NewPlaceholder(name string) Player {
	return Player{
		Name:            name,
		Position:        PositionUnknown,
		ChanceOfPlaying: 1,
	}
}
