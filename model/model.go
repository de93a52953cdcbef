package model

import "github.com/google/uuid"

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Offset translates a direction to a one-cell row/col delta.
func (d Direction) Offset() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Position is a cell address, row first.
type Position struct {
	Row, Col int
}

type GhostMode int

const (
	AIControlled GhostMode = iota
	ManuallyControlled
)

type RoundState int

const (
	InProgress RoundState = iota
	GhostWins
	Ended
)

type Ghost struct {
	Pos   Position
	Speed int // cells advanced per pursuit recomputation
	Mode  GhostMode
}

type Survivor struct {
	Id                uuid.UUID
	Pos               Position
	HP                int
	HypnosisRemaining int // ticks left frozen after a hit, 0 = free
	MoveCooldown      int // ticks accumulated since the last walk
}

// RoundConfig is everything a round needs to start.
type RoundConfig struct {
	Rows, Cols        int
	SurvivorCount     int
	GhostSpeed        int
	GhostMode         GhostMode
	SurvivorMoveEvery int // ticks between survivor walks, 0 = default
}

// SurvivorView is the read-only projection of one survivor.
type SurvivorView struct {
	Id         uuid.UUID
	Pos        Position
	HP         int
	Hypnotized bool
}

// RoundSnapshot is what a renderer gets after every tick. It shares no
// storage with the round.
type RoundSnapshot struct {
	Tick      int64
	GhostPos  Position
	Survivors []SurvivorView
	State     RoundState
}
