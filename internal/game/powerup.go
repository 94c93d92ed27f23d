package game

import (
	"time"

	"github.com/naveenspark/memora/pkg/domain"
)

// Power-up effect durations.
const (
	PeekDuration   = 2 * time.Second
	FreezeDuration = 5 * time.Second
)

// PowerUpState tracks one power-up affordance. A used power-up is removed
// from the inventory entirely.
type PowerUpState int

const (
	PowerUpAvailable PowerUpState = iota + 1
	PowerUpPending
)

// PeekEnd is deferred work that hides peeked cards again.
type PeekEnd struct {
	Epoch uint64
	Seq   uint64
}

func defaultPowerUps() map[string]PowerUpState {
	return map[string]PowerUpState{
		domain.PowerUpPeek:       PowerUpAvailable,
		domain.PowerUpTimeFreeze: PowerUpAvailable,
	}
}

// PowerUpAvailable reports whether kind can be used now.
func (g Game) PowerUpAvailable(kind string) bool {
	return g.Active() && !g.Completed && g.PowerUps[kind] == PowerUpAvailable
}

// BeginPowerUp disables the affordance while the redemption is in flight.
func (g Game) BeginPowerUp(kind string) (Game, bool) {
	if !g.PowerUpAvailable(kind) {
		return g, false
	}
	g.PowerUps = clonePowerUps(g.PowerUps)
	g.PowerUps[kind] = PowerUpPending
	return g, true
}

// PowerUpSucceeded removes the power-up and applies its effect. A peek
// returns a PeekEnd to deliver after PeekDuration.
func (g Game) PowerUpSucceeded(epoch uint64, kind string, resp domain.PowerUpResponse, now time.Time) (Game, *PeekEnd) {
	if epoch != g.Epoch || g.PowerUps[kind] != PowerUpPending {
		return g, nil
	}
	g.PowerUps = clonePowerUps(g.PowerUps)
	delete(g.PowerUps, kind)

	switch kind {
	case domain.PowerUpTimeFreeze:
		g.Timer = g.Timer.Freeze(now, FreezeDuration)
		return g, nil
	case domain.PowerUpPeek:
		indices := resp.PeekIndices
		if len(indices) == 0 {
			for _, c := range g.Cards {
				if c.State == Hidden {
					indices = append(indices, c.Index)
				}
			}
		}
		g.Cards = cloneCards(g.Cards)
		for _, i := range indices {
			if i < 0 || i >= len(g.Cards) || g.Cards[i].State != Hidden {
				continue
			}
			g.Cards[i].Peeked = true
			g.Cards[i].PeekGlyph = resp.PeekSymbols[i]
		}
		g.peekSeq++
		return g, &PeekEnd{Epoch: g.Epoch, Seq: g.peekSeq}
	}
	return g, nil
}

// PowerUpFailed re-enables the affordance.
func (g Game) PowerUpFailed(epoch uint64, kind string) Game {
	if epoch != g.Epoch || g.PowerUps[kind] != PowerUpPending {
		return g
	}
	g.PowerUps = clonePowerUps(g.PowerUps)
	g.PowerUps[kind] = PowerUpAvailable
	return g
}

// EndPeek hides cards revealed by the matching peek.
func (g Game) EndPeek(p PeekEnd) Game {
	if p.Epoch != g.Epoch || p.Seq != g.peekSeq {
		return g
	}
	g.Cards = cloneCards(g.Cards)
	for i := range g.Cards {
		g.Cards[i].Peeked = false
		g.Cards[i].PeekGlyph = ""
	}
	return g
}

// Peeking reports whether any card currently shows the peek overlay.
func (g Game) Peeking() bool {
	for _, c := range g.Cards {
		if c.Peeked {
			return true
		}
	}
	return false
}

// EarnPowerUp grants kind. A pending redemption of the same kind is left alone.
func (g Game) EarnPowerUp(kind string) Game {
	if !domain.ValidPowerUp(kind) || g.PowerUps[kind] == PowerUpPending {
		return g
	}
	g.PowerUps = clonePowerUps(g.PowerUps)
	g.PowerUps[kind] = PowerUpAvailable
	return g
}

func clonePowerUps(m map[string]PowerUpState) map[string]PowerUpState {
	out := make(map[string]PowerUpState, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
