package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/memora/internal/analytics"
	"github.com/naveenspark/memora/internal/game"
	"github.com/naveenspark/memora/internal/sound"
	"github.com/naveenspark/memora/internal/stats"
	"github.com/naveenspark/memora/pkg/client"
	"github.com/naveenspark/memora/pkg/domain"
)

// toastDuration is how long a transient notice stays on screen.
const toastDuration = 2500 * time.Millisecond

// gameStartedMsg carries the result of a new-game or daily-challenge request.
type gameStartedMsg struct {
	resp       *domain.NewGameResponse
	err        error
	difficulty string
	theme      string
	daily      bool
}

// flipResultMsg carries a flip response tagged with the click that sent it.
type flipResultMsg struct {
	epoch uint64
	cycle uint64
	index int
	resp  *domain.FlipResponse
	err   error
}

type settleMsg struct {
	settlement game.Settlement
}

type timerTickMsg struct {
	epoch uint64
	at    time.Time
}

type peekEndMsg struct {
	end game.PeekEnd
}

type powerUpResultMsg struct {
	epoch uint64
	kind  string
	resp  *domain.PowerUpResponse
	err   error
}

type resyncMsg struct {
	epoch uint64
	state *domain.GameState
	err   error
}

type toastExpireMsg struct {
	id uint64
}

// statsLoadedMsg carries persisted stats and recent games.
type statsLoadedMsg struct {
	stats  domain.Stats
	recent []domain.GameResult
	err    error
}

func startGameCmd(api GameAPI, difficulty, theme string, daily bool) tea.Cmd {
	return func() tea.Msg {
		var (
			resp *domain.NewGameResponse
			err  error
		)
		if daily {
			resp, err = api.DailyChallenge(context.Background())
		} else {
			resp, err = api.NewGame(context.Background(), difficulty, theme)
		}
		return gameStartedMsg{resp: resp, err: err, difficulty: difficulty, theme: theme, daily: daily}
	}
}

func flipCmd(api GameAPI, gameID string, epoch, cycle uint64, index int) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.FlipCard(context.Background(), gameID, index)
		return flipResultMsg{epoch: epoch, cycle: cycle, index: index, resp: resp, err: err}
	}
}

func settleCmd(s game.Schedule) tea.Cmd {
	if s.After <= 0 {
		return func() tea.Msg { return settleMsg{settlement: s.Settlement} }
	}
	return tea.Tick(s.After, func(time.Time) tea.Msg {
		return settleMsg{settlement: s.Settlement}
	})
}

func timerTickCmd(epoch uint64) tea.Cmd {
	return tea.Tick(game.TickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg{epoch: epoch, at: t}
	})
}

func peekEndCmd(end game.PeekEnd) tea.Cmd {
	return tea.Tick(game.PeekDuration, func(time.Time) tea.Msg {
		return peekEndMsg{end: end}
	})
}

func powerUpCmd(api GameAPI, gameID string, epoch uint64, kind string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.UsePowerUp(context.Background(), gameID, kind)
		return powerUpResultMsg{epoch: epoch, kind: kind, resp: resp, err: err}
	}
}

func resyncCmd(api GameAPI, gameID string, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		state, err := api.GetGameState(context.Background(), gameID)
		return resyncMsg{epoch: epoch, state: state, err: err}
	}
}

func toastExpireCmd(id uint64) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

func loadStatsCmd(store stats.Store) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := store.Load(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		recent, err := store.Recent(ctx, recentLimit)
		return statsLoadedMsg{stats: st, recent: recent, err: err}
	}
}

// recordResultCmd persists a finished game and reports the new aggregate.
func recordResultCmd(store stats.Store, result domain.GameResult) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := store.Record(ctx, result)
		if err != nil {
			log.Printf("record stats: %v", err)
			return statsLoadedMsg{err: err}
		}
		recent, err := store.Recent(ctx, recentLimit)
		return statsLoadedMsg{stats: st, recent: recent, err: err}
	}
}

func publishCmd(events analytics.Publisher, e analytics.Event) tea.Cmd {
	return func() tea.Msg {
		if err := events.Publish(e); err != nil {
			log.Printf("publish %s: %v", e.Type, err)
		}
		return nil
	}
}

// handleGameStarted swaps in the new session or raises an alert, leaving the
// previous board untouched on failure.
func (a App) handleGameStarted(msg gameStartedMsg) (App, tea.Cmd) {
	a.starting = false
	if msg.err != nil {
		log.Printf("start game: %v", msg.err)
		a.alert = "Could not start a new game: " + errorText(msg.err)
		return a, nil
	}
	a.game = game.Start(a.game.Epoch, *msg.resp, msg.difficulty, msg.theme, msg.daily, a.now())
	a.cursor = 0
	a.winOpen = false
	a.alert = ""
	a.difficulty = a.game.Difficulty
	a.theme = a.game.Theme
	return a, tea.Batch(
		timerTickCmd(a.game.Epoch),
		publishCmd(a.events, analytics.Event{
			Type:       analytics.EventGameStarted,
			GameID:     a.game.SessionID,
			Difficulty: a.game.Difficulty,
			Theme:      a.game.Theme,
			Daily:      a.game.Daily,
		}),
	)
}

// clickCard takes the processing lock and sends the flip request. Rejected
// clicks have no side effects.
func (a App) clickCard(index int) (App, tea.Cmd) {
	g, ok := a.game.Click(index)
	if !ok {
		return a, nil
	}
	a.game = g
	a.sound.Play(sound.Flip)
	return a, flipCmd(a.api, g.SessionID, g.Epoch, g.Cycle, index)
}

func (a App) handleFlipResult(msg flipResultMsg) (App, tea.Cmd) {
	if msg.epoch != a.game.Epoch {
		return a, nil
	}
	if msg.err != nil || msg.resp == nil {
		log.Printf("flip card %d: %v", msg.index, msg.err)
		a.game = a.game.FlipFailed(msg.cycle)
		return a, nil
	}
	if msg.resp.Error != "" {
		log.Printf("flip card %d: server: %s", msg.index, msg.resp.Error)
	}
	before := a.game.PowerUpAvailable(msg.resp.EarnedPowerUp)
	g, sched := a.game.ApplyFlip(msg.cycle, msg.index, *msg.resp)
	a.game = g

	var cmds []tea.Cmd
	if msg.resp.EarnedPowerUp != "" && !before && g.PowerUpAvailable(msg.resp.EarnedPowerUp) {
		var cmd tea.Cmd
		a, cmd = a.pushToast("Power-up earned: "+powerUpLabel(msg.resp.EarnedPowerUp), false)
		cmds = append(cmds, cmd)
	}
	if sched != nil {
		cmds = append(cmds, settleCmd(*sched))
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleSettle(msg settleMsg) (App, tea.Cmd) {
	s := msg.settlement
	if s.Epoch != a.game.Epoch {
		return a, nil
	}
	g, completed := a.game.Settle(s, a.now())
	a.game = g
	switch s.Outcome {
	case domain.OutcomeMatch:
		a.sound.Play(sound.Match)
	case domain.OutcomeMismatch:
		a.sound.Play(sound.Mismatch)
	}
	if !completed {
		return a, nil
	}
	return a.complete()
}

// complete opens the win modal and records the result.
func (a App) complete() (App, tea.Cmd) {
	a.winOpen = true
	a.sound.Play(sound.Win)
	result := a.game.GameResult(a.now())
	return a, tea.Batch(
		recordResultCmd(a.store, result),
		publishCmd(a.events, analytics.Event{
			Type:       analytics.EventGameCompleted,
			GameID:     result.GameID,
			Difficulty: result.Difficulty,
			Theme:      result.Theme,
			Daily:      result.Daily,
			Moves:      result.Moves,
			Seconds:    result.Seconds,
		}),
	)
}

func (a App) handleTimerTick(msg timerTickMsg) (App, tea.Cmd) {
	if msg.epoch != a.game.Epoch || !a.game.Timer.Running {
		return a, nil
	}
	a.game.Timer = a.game.Timer.Tick(msg.at)
	return a, timerTickCmd(msg.epoch)
}

func (a App) usePowerUp(kind string) (App, tea.Cmd) {
	g, ok := a.game.BeginPowerUp(kind)
	if !ok {
		return a, nil
	}
	a.game = g
	return a, powerUpCmd(a.api, g.SessionID, g.Epoch, kind)
}

func (a App) handlePowerUpResult(msg powerUpResultMsg) (App, tea.Cmd) {
	if msg.epoch != a.game.Epoch {
		return a, nil
	}
	if msg.err != nil || msg.resp == nil || !msg.resp.Success {
		reason := "request failed"
		switch {
		case msg.err != nil:
			log.Printf("use power-up %s: %v", msg.kind, msg.err)
			reason = errorText(msg.err)
		case msg.resp != nil && msg.resp.Error != "":
			reason = msg.resp.Error
		}
		a.game = a.game.PowerUpFailed(msg.epoch, msg.kind)
		return a.pushToast(powerUpLabel(msg.kind)+" failed: "+reason, true)
	}

	g, end := a.game.PowerUpSucceeded(msg.epoch, msg.kind, *msg.resp, a.now())
	a.game = g
	a.sound.Play(sound.PowerUp)
	cmds := []tea.Cmd{publishCmd(a.events, analytics.Event{
		Type:       analytics.EventPowerUpUsed,
		GameID:     g.SessionID,
		Difficulty: g.Difficulty,
		Theme:      g.Theme,
		PowerUp:    msg.kind,
	})}
	if end != nil {
		cmds = append(cmds, peekEndCmd(*end))
	}
	if msg.kind == domain.PowerUpTimeFreeze {
		var cmd tea.Cmd
		a, cmd = a.pushToast("Timer frozen", false)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) resync() (App, tea.Cmd) {
	if !a.game.Active() || a.game.Locked || a.game.Completed {
		return a, nil
	}
	return a, resyncCmd(a.api, a.game.SessionID, a.game.Epoch)
}

func (a App) handleResync(msg resyncMsg) (App, tea.Cmd) {
	if msg.epoch != a.game.Epoch {
		return a, nil
	}
	if msg.err != nil || msg.state == nil {
		log.Printf("resync: %v", msg.err)
		reason := "no state"
		if msg.err != nil {
			reason = errorText(msg.err)
		}
		return a.pushToast("Resync failed: "+reason, true)
	}
	g, ok := a.game.Resync(msg.epoch, *msg.state)
	if !ok {
		return a.pushToast("Resync skipped", false)
	}
	a.game = g
	return a.pushToast("Board synced", false)
}

func (a App) pushToast(text string, isErr bool) (App, tea.Cmd) {
	a.toastSeq++
	a.toasts = append(a.toasts, toast{id: a.toastSeq, text: text, err: isErr})
	if len(a.toasts) > maxToasts {
		a.toasts = a.toasts[len(a.toasts)-maxToasts:]
	}
	return a, toastExpireCmd(a.toastSeq)
}

func (a App) expireToast(id uint64) App {
	kept := a.toasts[:0:0]
	for _, t := range a.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	a.toasts = kept
	return a
}

// errorText prefers the server's own error message.
func errorText(err error) string {
	return client.ServerMessage(err)
}

func powerUpLabel(kind string) string {
	switch kind {
	case domain.PowerUpPeek:
		return "Peek"
	case domain.PowerUpTimeFreeze:
		return "Time freeze"
	default:
		return kind
	}
}
