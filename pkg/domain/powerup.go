package domain

// Power-up kinds redeemable via /api/use-powerup.
const (
	PowerUpPeek       = "peek"
	PowerUpTimeFreeze = "time_freeze"
)

// PowerUps is the display order of power-up affordances.
var PowerUps = []string{PowerUpPeek, PowerUpTimeFreeze}

// ValidPowerUp returns true if kind is a known power-up.
func ValidPowerUp(kind string) bool {
	return kind == PowerUpPeek || kind == PowerUpTimeFreeze
}

// PowerUpRequest is the payload for POST /api/use-powerup.
type PowerUpRequest struct {
	GameID  string `json:"game_id"`
	PowerUp string `json:"powerup"`
}

// PowerUpResponse is the server's answer to a redemption.
type PowerUpResponse struct {
	Success     bool           `json:"success"`
	PowerUpUsed string         `json:"powerup_used,omitempty"`
	PeekIndices []int          `json:"peek_indices,omitempty"`
	PeekSymbols map[int]string `json:"peek_symbols,omitempty"`
	Error       string         `json:"error,omitempty"`
}
