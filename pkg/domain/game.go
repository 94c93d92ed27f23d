package domain

import (
	"encoding/json"
	"strings"
)

// Difficulty levels accepted by the game server.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties is the cycle order used by the client.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ValidDifficulty returns true if d is a known difficulty.
func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// NewGameRequest is the payload for POST /api/new-game.
type NewGameRequest struct {
	Difficulty string `json:"difficulty"`
	Theme      string `json:"theme,omitempty"`
}

// Grid is an optional server-supplied board layout.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// NewGameResponse is returned by /api/new-game and /api/daily-challenge.
// Older servers send the card count as "cards"; newer ones send "total_cards"
// or "cards_count" and may send "cards" as an array of placeholders.
type NewGameResponse struct {
	GameID      string          `json:"game_id"`
	Cards       json.RawMessage `json:"cards,omitempty"`
	CardsCount  int             `json:"cards_count,omitempty"`
	TotalCards  int             `json:"total_cards,omitempty"`
	PairsToFind int             `json:"pairs_to_find,omitempty"`
	TotalPairs  int             `json:"total_pairs,omitempty"`
	Grid        *Grid           `json:"grid,omitempty"`
	Difficulty  string          `json:"difficulty,omitempty"`
	Theme       string          `json:"theme,omitempty"`
}

// CardCount resolves the board size from whichever field the server sent.
func (r NewGameResponse) CardCount() int {
	if r.TotalCards > 0 {
		return r.TotalCards
	}
	if n := rawCount(r.Cards); n > 0 {
		return n
	}
	if r.CardsCount > 0 {
		return r.CardsCount
	}
	if r.PairsToFind > 0 {
		return r.PairsToFind * 2
	}
	if r.TotalPairs > 0 {
		return r.TotalPairs * 2
	}
	if r.Grid != nil && r.Grid.Rows > 0 && r.Grid.Cols > 0 {
		return r.Grid.Rows * r.Grid.Cols
	}
	return 0
}

// Pairs returns the number of pairs on the board.
func (r NewGameResponse) Pairs() int {
	if r.PairsToFind > 0 {
		return r.PairsToFind
	}
	if r.TotalPairs > 0 {
		return r.TotalPairs
	}
	return r.CardCount() / 2
}

func rawCount(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return len(arr)
	}
	return 0
}

// FlipRequest is the payload for POST /api/flip-card.
type FlipRequest struct {
	GameID    string `json:"game_id"`
	CardIndex int    `json:"card_index"`
}

// FlipResponse is the union of fields observed across server versions.
type FlipResponse struct {
	Symbol          string        `json:"symbol,omitempty"`
	CardValue       string        `json:"card_value,omitempty"`
	Moves           int           `json:"moves"`
	PairsFound      int           `json:"pairs_found"`
	TotalPairs      int           `json:"total_pairs"`
	FlippedCards    *int          `json:"flipped_cards,omitempty"`
	Match           *bool         `json:"match"`
	MatchedIndices  []int         `json:"matched_indices,omitempty"`
	FlipBack        []int         `json:"flip_back,omitempty"`
	GameCompleted   bool          `json:"game_completed,omitempty"`
	GameOver        bool          `json:"game_over,omitempty"`
	FinalMoves      *int          `json:"final_moves,omitempty"`
	CompletionTime  *int          `json:"completion_time,omitempty"`
	NewAchievements []Achievement `json:"new_achievements,omitempty"`
	EarnedPowerUp   string        `json:"earned_powerup,omitempty"`
	Error           string        `json:"error,omitempty"`
}

// Outcome classifies a flip response.
type Outcome int

const (
	// OutcomePending means the first card of a pair was revealed.
	OutcomePending Outcome = iota
	OutcomeMatch
	OutcomeMismatch
)

// Glyph returns the revealed card's symbol.
func (r FlipResponse) Glyph() string {
	if r.Symbol != "" {
		return r.Symbol
	}
	return r.CardValue
}

// Completed reports whether the server declared the game finished.
func (r FlipResponse) Completed() bool {
	return r.GameCompleted || r.GameOver
}

// Outcome resolves the match field. Legacy servers always send a boolean and
// signal the first card of a pair with flipped_cards == 1.
func (r FlipResponse) Outcome() Outcome {
	if r.Match == nil {
		return OutcomePending
	}
	if r.FlippedCards != nil && *r.FlippedCards < 2 {
		return OutcomePending
	}
	if *r.Match {
		return OutcomeMatch
	}
	return OutcomeMismatch
}

// Achievement is an achievement unlocked by the server.
// The server sends either a bare name string or an object.
type Achievement struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// UnmarshalJSON accepts both "name" and {"name": ...} forms.
func (a *Achievement) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Achievement{ID: name, Name: name}
		return nil
	}
	type plain Achievement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Achievement(p)
	if a.Name == "" {
		a.Name = a.ID
	}
	return nil
}

// GameState is returned by GET /api/game-state/{id}.
type GameState struct {
	Moves      int    `json:"moves"`
	PairsFound int    `json:"pairs_found"`
	TotalPairs int    `json:"total_pairs"`
	Difficulty string `json:"difficulty"`
	Matched    []bool `json:"matched"`
}
