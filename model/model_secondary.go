package model

import "fmt"

func (s RoundState) Name() string {
	switch s {
	case InProgress:
		return "IN_PROGRESS"
	case GhostWins:
		return "GHOST_WINS"
	case Ended:
		return "ENDED"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

func (m GhostMode) Name() string {
	switch m {
	case AIControlled:
		return "AI"
	case ManuallyControlled:
		return "MANUAL"
	default:
		return fmt.Sprintf("n/a:%d", m)
	}
}

func (d Direction) Name() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}
