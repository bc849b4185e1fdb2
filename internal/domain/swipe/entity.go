package swipe

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Record is one row of the swipes table. Job fields are denormalized at swipe
// time so the history stays meaningful after the cached listing expires. A
// later swipe on the same job overwrites the direction.
type Record struct {
	UserID      uuid.UUID
	JobID       string
	Direction   Direction
	JobTitle    string
	JobCompany  string
	JobLocation string
	JobTags     []string
	MatchScore  *int
	SwipedAt    time.Time
}
