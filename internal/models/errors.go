package models

import "errors"

// Custom errors
var (
	ErrMalformedQuote  = errors.New("malformed odds quote")
	ErrUnknownTeam     = errors.New("team name could not be resolved")
	ErrUnknownPosition = errors.New("invalid player position")
	ErrNoFixtures      = errors.New("no fixtures for requested rounds")
)
