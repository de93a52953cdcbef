package game

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasko/wraith/maze"
	"github.com/mvasko/wraith/model"
)

func gridFromLines(lines []string) *maze.Grid {
	walls := make([][]bool, len(lines))
	for r, line := range lines {
		walls[r] = make([]bool, len(line))
		for c, ch := range line {
			walls[r][c] = ch == '#'
		}
	}
	return maze.NewGrid(walls)
}

func survivorAt(row, col int) *model.Survivor {
	return &model.Survivor{Id: uuid.New(), Pos: model.Position{Row: row, Col: col}, HP: SurvivorHP}
}

// testRound wires a round around a fixed layout so placement and carving
// randomness stay out of the way.
func testRound(lines []string, ghost *model.Ghost, survivors []*model.Survivor, moveEvery int) *Round {
	return &Round{
		Grid:      gridFromLines(lines),
		Ghost:     ghost,
		Survivors: survivors,
		State:     model.InProgress,
		moveEvery: moveEvery,
		rng:       rand.New(rand.NewSource(1)),
	}
}

var corridor = []string{
	"#######",
	"#.....#",
	"#######",
}

func TestCollisionDamagesAndHypnotizes(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	s := survivorAt(1, 1)
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1000)

	snap := r.Tick()

	assert.Equal(t, SurvivorHP-1, s.HP)
	assert.Equal(t, HypnosisTicks, s.HypnosisRemaining)
	require.Len(t, snap.Survivors, 1)
	assert.True(t, snap.Survivors[0].Hypnotized)
	assert.Equal(t, model.InProgress, snap.State)
}

func TestRepeatedCollisionEliminatesAndEndsRound(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.AIControlled}
	s := survivorAt(1, 1)
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1000)

	// damage lands every co-located tick, hypnosis does not shield
	snap := r.Tick()
	assert.Equal(t, model.InProgress, snap.State)
	snap = r.Tick()
	assert.Equal(t, model.InProgress, snap.State)
	assert.Equal(t, 1, s.HP)

	snap = r.Tick()
	assert.Empty(t, snap.Survivors, "survivor must leave the live set at 0 HP")
	assert.Equal(t, model.GhostWins, snap.State, "win fires the same tick the set empties")

	// terminal states tick as no-ops
	tick := r.TickCount
	snap = r.Tick()
	assert.Equal(t, model.GhostWins, snap.State)
	assert.Equal(t, tick, r.TickCount)
}

func TestGhostPursuesAlongCorridor(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.AIControlled}
	s := survivorAt(1, 5)
	s.HypnosisRemaining = 1000 // pin the survivor for determinism
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1000)

	r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 2}, ghost.Pos, "speed 1 advances one cell per tick")
	r.Tick()
	r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 4}, ghost.Pos)

	r.Tick()
	assert.Equal(t, s.Pos, ghost.Pos, "ghost reaches the survivor's cell")
	assert.Equal(t, SurvivorHP-1, s.HP, "arrival tick already counts as contact")
}

func TestGhostSpeedBatchesSteps(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 3, Mode: model.AIControlled}
	s := survivorAt(1, 5)
	s.HypnosisRemaining = 1000
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1000)

	r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 4}, ghost.Pos)

	// remaining path is shorter than speed, ghost stops on the target
	r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 5}, ghost.Pos)
}

func TestGhostPicksStraightLineNearestSurvivor(t *testing.T) {
	// (3,1) is nearest by straight line even though (1,5) is nearer by
	// corridor; the mismatch is intended behavior
	g := []string{
		"#######",
		"#.....#",
		"#.#####",
		"#.#####",
		"#.#####",
		"#######",
	}
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.AIControlled}
	near := survivorAt(3, 1)
	far := survivorAt(1, 5)
	near.HypnosisRemaining = 1000
	far.HypnosisRemaining = 1000
	r := testRound(g, ghost, []*model.Survivor{near, far}, 1000)

	r.Tick()
	assert.Equal(t, model.Position{Row: 2, Col: 1}, ghost.Pos)
}

func TestGhostIdleWithoutSurvivors(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 3}, Speed: 1, Mode: model.AIControlled}
	r := testRound(corridor, ghost, nil, 1000)

	snap := r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 3}, ghost.Pos)
	assert.Equal(t, model.GhostWins, snap.State, "empty live set is a win even without a hit")
}

func TestManualIntent(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	r := testRound(corridor, ghost, nil, 1000)

	r.SubmitGhostIntent(model.Up)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, ghost.Pos, "wall-directed intent is dropped")

	r.SubmitGhostIntent(model.Left)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, ghost.Pos)

	r.SubmitGhostIntent(model.Right)
	assert.Equal(t, model.Position{Row: 1, Col: 2}, ghost.Pos)
}

func TestManualIntentIgnoredInAIMode(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.AIControlled}
	r := testRound(corridor, ghost, nil, 1000)

	r.SubmitGhostIntent(model.Right)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, ghost.Pos)
}

func TestEndIsTerminal(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	r := testRound(corridor, ghost, []*model.Survivor{survivorAt(1, 5)}, 1000)

	r.End("operator request")
	assert.Equal(t, model.Ended, r.State)

	snap := r.Tick()
	assert.Equal(t, model.Ended, snap.State)
	assert.Zero(t, r.TickCount)

	r.SubmitGhostIntent(model.Right)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, ghost.Pos)

	r.End("again")
	assert.Equal(t, model.Ended, r.State, "Ended never transitions away")
}

func TestSurvivorRandomWalk(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	s := survivorAt(1, 3)
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1)

	r.Tick()
	assert.Equal(t, model.Position{Row: 1, Col: 3}, s.Pos, "cooldown gates the first tick")

	r.Tick()
	dr := s.Pos.Row - 1
	dc := s.Pos.Col - 3
	assert.Equal(t, 1, dr*dr+dc*dc, "walk is a single step")
	assert.True(t, r.Grid.IsOpenPos(s.Pos))
}

func TestHypnosisFreezesMovement(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	s := survivorAt(1, 4)
	s.HypnosisRemaining = 2
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1)

	r.Tick()
	assert.Equal(t, 1, s.HypnosisRemaining)
	assert.Equal(t, model.Position{Row: 1, Col: 4}, s.Pos)

	r.Tick()
	assert.Zero(t, s.HypnosisRemaining)
	assert.Equal(t, model.Position{Row: 1, Col: 4}, s.Pos, "thawing tick still spends no move")
}

func TestNewRoundValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	_, err := NewRound(model.RoundConfig{Rows: 0, Cols: 9, SurvivorCount: 1, GhostSpeed: 1}, rng)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)

	_, err = NewRound(model.RoundConfig{Rows: 9, Cols: -1, SurvivorCount: 1, GhostSpeed: 1}, rng)
	assert.ErrorIs(t, err, ErrNonPositiveDimension)

	_, err = NewRound(model.RoundConfig{Rows: 9, Cols: 9, SurvivorCount: -1, GhostSpeed: 1}, rng)
	assert.ErrorIs(t, err, ErrNegativeSurvivorCount)

	_, err = NewRound(model.RoundConfig{Rows: 9, Cols: 9, SurvivorCount: 1, GhostSpeed: 0}, rng)
	assert.ErrorIs(t, err, ErrNonPositiveSpeed)

	// a 5x5 maze has seven open cells, far fewer than requested
	_, err = NewRound(model.RoundConfig{Rows: 5, Cols: 5, SurvivorCount: 30, GhostSpeed: 1}, rng)
	assert.ErrorIs(t, err, ErrCrowdedMaze)
}

func TestNewRoundPlacement(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	r, err := NewRound(model.RoundConfig{Rows: 21, Cols: 21, SurvivorCount: 5, GhostSpeed: 2}, rng)
	require.NoError(t, err)

	assert.True(t, r.Grid.IsOpenPos(r.Ghost.Pos))
	assert.Equal(t, 2, r.Ghost.Speed)
	assert.Equal(t, model.InProgress, r.State)

	seen := map[model.Position]bool{r.Ghost.Pos: true}
	require.Len(t, r.Survivors, 5)
	for _, s := range r.Survivors {
		assert.True(t, r.Grid.IsOpenPos(s.Pos))
		assert.False(t, seen[s.Pos], "placement cells must be distinct")
		seen[s.Pos] = true
		assert.Equal(t, SurvivorHP, s.HP)
		assert.NotEqual(t, uuid.Nil, s.Id)
	}
}

func TestSnapshotSharesNoStorage(t *testing.T) {
	ghost := &model.Ghost{Pos: model.Position{Row: 1, Col: 1}, Speed: 1, Mode: model.ManuallyControlled}
	s := survivorAt(1, 4)
	r := testRound(corridor, ghost, []*model.Survivor{s}, 1000)

	snap := r.Snapshot()
	snap.Survivors[0].HP = 0
	snap.GhostPos = model.Position{Row: 9, Col: 9}

	assert.Equal(t, SurvivorHP, s.HP)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, r.Ghost.Pos)
}

func TestEntitiesAlwaysOnOpenCells(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	r, err := NewRound(model.RoundConfig{
		Rows: 15, Cols: 15, SurvivorCount: 4, GhostSpeed: 1, SurvivorMoveEvery: 1,
	}, rng)
	require.NoError(t, err)

	for i := 0; i < 500 && r.State == model.InProgress; i++ {
		snap := r.Tick()
		assert.True(t, r.Grid.IsOpenPos(snap.GhostPos))
		for _, sv := range snap.Survivors {
			assert.True(t, r.Grid.IsOpenPos(sv.Pos))
		}
	}
}
