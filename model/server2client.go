package model

// ServerMessage is one gob frame sent to the renderer. Setup is only
// populated in the first frame of a round.
type ServerMessage struct {
	Setup     []Setup
	Snapshots []RoundSnapshot
}

// Setup carries the immutable part of the round: the carved maze and the
// knobs the renderer needs to size its canvas and HUD.
type Setup struct {
	Rows, Cols int
	Walls      [][]bool // true = wall
	GhostMode  GhostMode
	GhostSpeed int
	TickRate   int
}

// ClientMessage is one gob frame received from the renderer. Move is
// meaningful only when the round runs a manually controlled ghost.
type ClientMessage struct {
	Move Direction
	Quit bool
}
