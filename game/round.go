package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mvasko/wraith/maze"
	"github.com/mvasko/wraith/model"
)

// Round configuration errors, all surfaced from NewRound.
var (
	ErrNonPositiveDimension  = errors.New("maze dimensions must be positive")
	ErrNegativeSurvivorCount = errors.New("survivor count must not be negative")
	ErrNonPositiveSpeed      = errors.New("ghost speed must be positive")
	ErrCrowdedMaze           = errors.New("not enough distinct open cells for placement")
)

// Gameplay constants.
const (
	SurvivorHP    = 3  // hits a survivor takes before removal
	HypnosisTicks = 60 // ticks a survivor stays frozen after a hit

	defaultMoveEvery  = 15  // ticks between survivor random-walk steps
	placementAttempts = 100 // tries per survivor before giving up
)

// Round owns one chase: the carved grid, the ghost, and the live survivor
// set. It is confined to a single goroutine; Tick, SubmitGhostIntent and
// End must never race each other.
type Round struct {
	Grid      *maze.Grid
	Ghost     *model.Ghost
	Survivors []*model.Survivor
	State     model.RoundState
	TickCount int64

	moveEvery int
	rng       *rand.Rand
}

// NewRound validates the config, carves a maze and places the ghost and up
// to SurvivorCount survivors on distinct open cells. A nil rng gets a
// time-seeded one; pass a fixed seed for a reproducible round.
func NewRound(cfg model.RoundConfig, rng *rand.Rand) (*Round, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, ErrNonPositiveDimension
	}
	if cfg.SurvivorCount < 0 {
		return nil, ErrNegativeSurvivorCount
	}
	if cfg.GhostSpeed <= 0 {
		return nil, ErrNonPositiveSpeed
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := maze.Generate(cfg.Rows, cfg.Cols, rng)
	open := grid.OpenCells()

	ghost := &model.Ghost{
		Pos:   open[rng.Intn(len(open))],
		Speed: cfg.GhostSpeed,
		Mode:  cfg.GhostMode,
	}

	taken := map[model.Position]bool{ghost.Pos: true}
	survivors := make([]*model.Survivor, 0, cfg.SurvivorCount)
	for i := 0; i < cfg.SurvivorCount; i++ {
		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			p := open[rng.Intn(len(open))]
			if taken[p] {
				continue
			}
			taken[p] = true
			survivors = append(survivors, &model.Survivor{
				Id:  uuid.New(),
				Pos: p,
				HP:  SurvivorHP,
			})
			placed = true
			break
		}
		if !placed {
			return nil, ErrCrowdedMaze
		}
	}

	moveEvery := cfg.SurvivorMoveEvery
	if moveEvery <= 0 {
		moveEvery = defaultMoveEvery
	}

	return &Round{
		Grid:      grid,
		Ghost:     ghost,
		Survivors: survivors,
		State:     model.InProgress,
		moveEvery: moveEvery,
		rng:       rng,
	}, nil
}

// Tick advances the round one step: ghost movement, survivor movement,
// collision resolution, termination check, in that order. Terminal rounds
// tick as no-ops and keep returning the final snapshot.
func (r *Round) Tick() model.RoundSnapshot {
	if r.State != model.InProgress {
		return r.Snapshot()
	}
	r.TickCount++

	r.moveGhost()
	r.moveSurvivors()
	r.resolveCollisions()

	if len(r.Survivors) == 0 {
		r.State = model.GhostWins
		log.Infof("round over after %d ticks, ghost wins", r.TickCount)
	}
	return r.Snapshot()
}

// SubmitGhostIntent applies one manual step immediately. Ignored unless the
// round is in progress with a manually controlled ghost; steps into walls
// or out of bounds are dropped without comment.
func (r *Round) SubmitGhostIntent(d model.Direction) {
	if r.State != model.InProgress || r.Ghost.Mode != model.ManuallyControlled {
		return
	}
	dr, dc := d.Offset()
	target := model.Position{Row: r.Ghost.Pos.Row + dr, Col: r.Ghost.Pos.Col + dc}
	if r.Grid.IsOpenPos(target) {
		r.Ghost.Pos = target
	}
}

// End forces the round into Ended. No-op once terminal.
func (r *Round) End(reason string) {
	if r.State != model.InProgress {
		return
	}
	r.State = model.Ended
	log.Infof("round ended: %s", reason)
}

// Snapshot projects the current state for a renderer. The result shares no
// storage with the round.
func (r *Round) Snapshot() model.RoundSnapshot {
	views := make([]model.SurvivorView, 0, len(r.Survivors))
	for _, s := range r.Survivors {
		views = append(views, model.SurvivorView{
			Id:         s.Id,
			Pos:        s.Pos,
			HP:         s.HP,
			Hypnotized: s.HypnosisRemaining > 0,
		})
	}
	return model.RoundSnapshot{
		Tick:      r.TickCount,
		GhostPos:  r.Ghost.Pos,
		Survivors: views,
		State:     r.State,
	}
}

// moveGhost recomputes the pursuit path and advances up to Speed cells
// along it. The target is the survivor closest by straight line, which is
// not always the closest by corridor.
func (r *Round) moveGhost() {
	if r.Ghost.Mode != model.AIControlled {
		return
	}
	target := r.nearestSurvivor()
	if target == nil {
		return
	}
	path := maze.ShortestPath(r.Grid, r.Ghost.Pos, target.Pos)
	if len(path) == 0 {
		if r.Ghost.Pos != target.Pos {
			log.Warnf("ghost at %v has no route to survivor %s at %v", r.Ghost.Pos, target.Id, target.Pos)
		}
		return
	}
	steps := r.Ghost.Speed
	if steps > len(path) {
		steps = len(path)
	}
	r.Ghost.Pos = path[steps-1]
}

func (r *Round) nearestSurvivor() *model.Survivor {
	var nearest *model.Survivor
	best := 0
	for _, s := range r.Survivors {
		dr := s.Pos.Row - r.Ghost.Pos.Row
		dc := s.Pos.Col - r.Ghost.Pos.Col
		d := dr*dr + dc*dc
		if nearest == nil || d < best {
			nearest = s
			best = d
		}
	}
	return nearest
}

// moveSurvivors runs the per-survivor clock: hypnotized survivors thaw,
// cooled-down survivors random-walk into the first open neighbor of a
// shuffled direction order, everyone else just accumulates cooldown.
func (r *Round) moveSurvivors() {
	for _, s := range r.Survivors {
		if s.HypnosisRemaining > 0 {
			s.HypnosisRemaining--
			continue
		}
		if s.MoveCooldown < r.moveEvery {
			s.MoveCooldown++
			continue
		}
		s.MoveCooldown = 0

		dirs := []model.Direction{model.Up, model.Down, model.Left, model.Right}
		r.rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})
		for _, d := range dirs {
			dr, dc := d.Offset()
			target := model.Position{Row: s.Pos.Row + dr, Col: s.Pos.Col + dc}
			if r.Grid.IsOpenPos(target) {
				s.Pos = target
				break
			}
		}
	}
}

// resolveCollisions hits every survivor sharing the ghost's cell: one HP
// down, hypnosis restarted. The hit repeats every tick the overlap lasts;
// hypnosis does not shield. Depleted survivors leave the live set.
func (r *Round) resolveCollisions() {
	live := r.Survivors[:0]
	for _, s := range r.Survivors {
		if s.Pos == r.Ghost.Pos {
			s.HP--
			s.HypnosisRemaining = HypnosisTicks
			if s.HP <= 0 {
				log.Infof("survivor %s eliminated at %v", s.Id, s.Pos)
				continue
			}
		}
		live = append(live, s)
	}
	r.Survivors = live
}
