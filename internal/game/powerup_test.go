package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/memora/pkg/domain"
)

func TestPeekRevealsThenHides(t *testing.T) {
	g := startEasy(t)
	g, ok := g.BeginPowerUp(domain.PowerUpPeek)
	require.True(t, ok)
	assert.False(t, g.PowerUpAvailable(domain.PowerUpPeek), "affordance disabled while pending")

	g, end := g.PowerUpSucceeded(g.Epoch, domain.PowerUpPeek, domain.PowerUpResponse{
		Success:     true,
		PeekIndices: []int{0, 4},
		PeekSymbols: map[int]string{0: "🐶", 4: "🐱"},
	}, t0)
	require.NotNil(t, end)

	assert.True(t, g.Cards[0].Peeked)
	assert.Equal(t, "🐱", g.Cards[4].PeekGlyph)
	assert.Equal(t, Hidden, g.Cards[0].State, "peek does not change card state")
	assert.True(t, g.Peeking())
	_, present := g.PowerUps[domain.PowerUpPeek]
	assert.False(t, present, "used power-up is removed")

	g = g.EndPeek(*end)
	assert.False(t, g.Peeking())
}

func TestPeekWithoutIndicesCoversHiddenCards(t *testing.T) {
	g := click(t, startEasy(t), 1)
	g, _ = g.ApplyFlip(g.Cycle, 1, domain.FlipResponse{CardValue: "🐶"})
	g, _ = g.BeginPowerUp(domain.PowerUpPeek)
	g, _ = g.PowerUpSucceeded(g.Epoch, domain.PowerUpPeek, domain.PowerUpResponse{Success: true}, t0)

	assert.False(t, g.Cards[1].Peeked, "flipped card is not peeked")
	assert.True(t, g.Cards[0].Peeked)
	assert.True(t, g.Cards[11].Peeked)
}

func TestStalePeekEndIsNoop(t *testing.T) {
	g := startEasy(t)
	g = g.EarnPowerUp(domain.PowerUpPeek)
	g, _ = g.BeginPowerUp(domain.PowerUpPeek)
	g, first := g.PowerUpSucceeded(g.Epoch, domain.PowerUpPeek, domain.PowerUpResponse{Success: true, PeekIndices: []int{0}}, t0)
	g = g.EarnPowerUp(domain.PowerUpPeek)
	g, _ = g.BeginPowerUp(domain.PowerUpPeek)
	g, second := g.PowerUpSucceeded(g.Epoch, domain.PowerUpPeek, domain.PowerUpResponse{Success: true, PeekIndices: []int{2}}, t0)

	g = g.EndPeek(*first)
	assert.True(t, g.Peeking(), "older peek end must not hide a newer peek")
	g = g.EndPeek(*second)
	assert.False(t, g.Peeking())
}

func TestTimeFreezeFreezesTimer(t *testing.T) {
	g := startEasy(t)
	g.Timer = g.Timer.Tick(t0.Add(20 * time.Second))
	g, ok := g.BeginPowerUp(domain.PowerUpTimeFreeze)
	require.True(t, ok)

	now := t0.Add(20 * time.Second)
	g, end := g.PowerUpSucceeded(g.Epoch, domain.PowerUpTimeFreeze, domain.PowerUpResponse{Success: true}, now)
	assert.Nil(t, end)
	assert.True(t, g.Timer.Frozen(now.Add(time.Second)))

	g.Timer = g.Timer.Tick(now.Add(FreezeDuration - time.Second))
	assert.Equal(t, 20, g.Timer.Elapsed)

	g.Timer = g.Timer.Tick(now.Add(FreezeDuration + time.Second))
	assert.Equal(t, 26, g.Timer.Elapsed)
}

func TestPowerUpFailureReenables(t *testing.T) {
	g := startEasy(t)
	g, _ = g.BeginPowerUp(domain.PowerUpTimeFreeze)
	g = g.PowerUpFailed(g.Epoch, domain.PowerUpTimeFreeze)
	assert.True(t, g.PowerUpAvailable(domain.PowerUpTimeFreeze))

	// A failure for a previous session is ignored.
	g, _ = g.BeginPowerUp(domain.PowerUpTimeFreeze)
	g = g.PowerUpFailed(g.Epoch-1, domain.PowerUpTimeFreeze)
	assert.Equal(t, PowerUpPending, g.PowerUps[domain.PowerUpTimeFreeze])
}

func TestPowerUpUnavailableWhenDone(t *testing.T) {
	var none Game
	_, ok := none.BeginPowerUp(domain.PowerUpPeek)
	assert.False(t, ok, "no session")

	g := startEasy(t)
	g.Completed = true
	_, ok = g.BeginPowerUp(domain.PowerUpPeek)
	assert.False(t, ok, "completed game")

	g = startEasy(t)
	_, ok = g.BeginPowerUp("shuffle")
	assert.False(t, ok, "unknown kind")
}

func TestEarnedPowerUpFromFlip(t *testing.T) {
	g := startEasy(t)
	g, _ = g.BeginPowerUp(domain.PowerUpPeek)
	g, _ = g.PowerUpSucceeded(g.Epoch, domain.PowerUpPeek, domain.PowerUpResponse{Success: true}, t0)
	g = g.EndPeek(PeekEnd{Epoch: g.Epoch, Seq: 1})
	require.False(t, g.PowerUpAvailable(domain.PowerUpPeek))

	g = click(t, g, 0)
	g, _ = g.ApplyFlip(g.Cycle, 0, domain.FlipResponse{CardValue: "🐶", EarnedPowerUp: domain.PowerUpPeek})
	assert.True(t, g.PowerUpAvailable(domain.PowerUpPeek))
}
