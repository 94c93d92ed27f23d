// Package game holds the client-side reconciliation state for one memory game
// session. Game is a value: every transition returns a new Game, and deferred
// work is returned as a Schedule for the caller to run after its delay.
package game

import (
	"time"

	"github.com/naveenspark/memora/pkg/domain"
)

// Animation delays before a revealed pair settles.
const (
	MatchDelay    = 600 * time.Millisecond
	FlipBackDelay = 1200 * time.Millisecond
)

// Settlement is deferred work tagged with the session epoch and click cycle
// it was scheduled under.
type Settlement struct {
	Epoch    uint64
	Cycle    uint64
	Outcome  domain.Outcome
	Indices  []int
	Complete bool

	finalMoves   *int
	finalSeconds *int
	achievements []domain.Achievement
}

// Schedule asks the caller to deliver Settlement back to Settle after After.
type Schedule struct {
	After      time.Duration
	Settlement Settlement
}

// Result summarizes a completed session.
type Result struct {
	Moves        int
	Seconds      int
	Achievements []domain.Achievement
}

// Game is the in-memory mirror of the server's authoritative session.
type Game struct {
	SessionID  string
	Epoch      uint64
	Difficulty string
	Theme      string
	Daily      bool

	Cards   []Card
	Columns int

	Moves      int
	PairsFound int
	TotalPairs int

	// Locked is the processing lock: true while a flip request is in flight
	// or its settle animation is pending.
	Locked  bool
	Cycle   uint64
	Pending int

	Completed bool
	Result    *Result

	Timer    Timer
	PowerUps map[string]PowerUpState
	peekSeq  uint64
}

// Start builds a fresh session from a new-game response. prevEpoch is the
// epoch of the session being replaced.
func Start(prevEpoch uint64, resp domain.NewGameResponse, difficulty, theme string, daily bool, now time.Time) Game {
	n := resp.CardCount()
	if resp.Difficulty != "" {
		difficulty = resp.Difficulty
	}
	if resp.Theme != "" {
		theme = resp.Theme
	}
	gridCols := 0
	if resp.Grid != nil {
		gridCols = resp.Grid.Cols
	}
	return Game{
		SessionID:  resp.GameID,
		Epoch:      prevEpoch + 1,
		Difficulty: difficulty,
		Theme:      theme,
		Daily:      daily,
		Cards:      newCards(n),
		Columns:    columnsFor(difficulty, gridCols, n),
		TotalPairs: resp.Pairs(),
		Pending:    -1,
		Timer:      NewTimer(now),
		PowerUps:   defaultPowerUps(),
	}
}

// Active reports whether a session is in progress.
func (g Game) Active() bool {
	return g.SessionID != ""
}

// CanClick reports whether a click on index would be accepted.
func (g Game) CanClick(index int) bool {
	if !g.Active() || g.Locked || g.Completed {
		return false
	}
	if index < 0 || index >= len(g.Cards) {
		return false
	}
	return g.Cards[index].State == Hidden
}

// Click takes the processing lock for index. It returns false, and g
// unchanged, when the click must be ignored.
func (g Game) Click(index int) (Game, bool) {
	if !g.CanClick(index) {
		return g, false
	}
	g.Locked = true
	g.Cycle++
	g.Pending = index
	return g, true
}

// Release drops the lock if it is still held for cycle. A second release for
// the same or an older cycle is a no-op.
func (g Game) Release(cycle uint64) Game {
	if !g.Locked || cycle != g.Cycle {
		return g
	}
	g.Locked = false
	g.Pending = -1
	return g
}

// ApplyFlip reconciles a flip response for the given click cycle. The
// clicked card is revealed immediately; any settle animation is returned as a
// Schedule. Responses for a stale cycle are ignored.
func (g Game) ApplyFlip(cycle uint64, index int, resp domain.FlipResponse) (Game, *Schedule) {
	if !g.Locked || cycle != g.Cycle || index != g.Pending {
		return g, nil
	}
	if resp.Error != "" {
		return g.Release(cycle), nil
	}

	g.Cards = cloneCards(g.Cards)
	if c := &g.Cards[index]; c.State == Hidden {
		c.State = Flipped
		c.Glyph = resp.Glyph()
		if c.Glyph == "" {
			c.Glyph = Placeholder
		}
		c.Peeked = false
	}
	g.Moves = resp.Moves
	g.PairsFound = resp.PairsFound
	if resp.TotalPairs > 0 {
		g.TotalPairs = resp.TotalPairs
	}
	if resp.EarnedPowerUp != "" {
		g = g.EarnPowerUp(resp.EarnedPowerUp)
	}

	s := Settlement{
		Epoch:        g.Epoch,
		Cycle:        cycle,
		Outcome:      resp.Outcome(),
		Complete:     resp.Completed(),
		finalMoves:   resp.FinalMoves,
		finalSeconds: resp.CompletionTime,
		achievements: resp.NewAchievements,
	}

	switch s.Outcome {
	case domain.OutcomeMatch:
		s.Indices = resp.MatchedIndices
		if len(s.Indices) == 0 {
			s.Indices = g.revealed()
		}
		return g, &Schedule{After: MatchDelay, Settlement: s}
	case domain.OutcomeMismatch:
		s.Indices = resp.FlipBack
		if len(s.Indices) == 0 {
			s.Indices = g.revealed()
		}
		return g, &Schedule{After: FlipBackDelay, Settlement: s}
	default:
		// A completing response keeps the lock until Settle finishes the game.
		if s.Complete {
			return g, &Schedule{Settlement: s}
		}
		return g.Release(cycle), nil
	}
}

// FlipFailed releases the lock after a transport failure.
func (g Game) FlipFailed(cycle uint64) Game {
	return g.Release(cycle)
}

// Settle applies a scheduled settlement. It returns true when this call
// completed the game. Settlements from a previous session are no-ops.
func (g Game) Settle(s Settlement, now time.Time) (Game, bool) {
	if s.Epoch != g.Epoch || !g.Active() {
		return g, false
	}

	if len(s.Indices) > 0 {
		g.Cards = cloneCards(g.Cards)
	}
	for _, i := range s.Indices {
		if i < 0 || i >= len(g.Cards) {
			continue
		}
		c := &g.Cards[i]
		switch s.Outcome {
		case domain.OutcomeMatch:
			if c.State != Matched {
				c.State = Matched
				c.Peeked = false
			}
		case domain.OutcomeMismatch:
			if c.State == Flipped {
				c.State = Hidden
				c.Glyph = Placeholder
			}
		}
	}
	g = g.Release(s.Cycle)

	if !s.Complete || g.Completed {
		return g, false
	}
	g.Timer = g.Timer.Tick(now)
	res := Result{
		Moves:        g.Moves,
		Seconds:      g.Timer.Seconds(now),
		Achievements: s.achievements,
	}
	if s.finalMoves != nil {
		res.Moves = *s.finalMoves
	}
	if s.finalSeconds != nil {
		res.Seconds = *s.finalSeconds
	}
	g.Timer = g.Timer.Stop()
	g.Completed = true
	g.Result = &res
	return g, true
}

// Resync adopts the server's counters and matched set. A card is never
// un-matched. It reports false, leaving g unchanged, when the state belongs
// to another session or a flip took the lock while it was in flight.
func (g Game) Resync(epoch uint64, state domain.GameState) (Game, bool) {
	if epoch != g.Epoch || !g.Active() || g.Locked || g.Completed {
		return g, false
	}
	g.Moves = state.Moves
	g.PairsFound = state.PairsFound
	if state.TotalPairs > 0 {
		g.TotalPairs = state.TotalPairs
	}
	g.Cards = cloneCards(g.Cards)
	for i, matched := range state.Matched {
		if matched && i < len(g.Cards) {
			g.Cards[i].State = Matched
			g.Cards[i].Peeked = false
		}
	}
	return g, true
}

// GameResult returns the record of a completed game for stats and sharing.
func (g Game) GameResult(finishedAt time.Time) domain.GameResult {
	r := domain.GameResult{
		GameID:     g.SessionID,
		Difficulty: g.Difficulty,
		Theme:      g.Theme,
		Daily:      g.Daily,
		FinishedAt: finishedAt,
	}
	if g.Result != nil {
		r.Moves = g.Result.Moves
		r.Seconds = g.Result.Seconds
	}
	return r
}

// revealed lists face-up cards that are not yet matched.
func (g Game) revealed() []int {
	var out []int
	for _, c := range g.Cards {
		if c.State == Flipped {
			out = append(out, c.Index)
		}
	}
	return out
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
