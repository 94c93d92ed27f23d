package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/memora/internal/analytics"
	"github.com/naveenspark/memora/internal/browser"
	"github.com/naveenspark/memora/internal/game"
	"github.com/naveenspark/memora/internal/sound"
	"github.com/naveenspark/memora/internal/stats"
	"github.com/naveenspark/memora/pkg/domain"
)

// GameAPI is the subset of the game server client the TUI drives.
type GameAPI interface {
	NewGame(ctx context.Context, difficulty, theme string) (*domain.NewGameResponse, error)
	DailyChallenge(ctx context.Context) (*domain.NewGameResponse, error)
	FlipCard(ctx context.Context, gameID string, index int) (*domain.FlipResponse, error)
	UsePowerUp(ctx context.Context, gameID, kind string) (*domain.PowerUpResponse, error)
	GetGameState(ctx context.Context, gameID string) (*domain.GameState, error)
}

// Options wires the App's collaborators. Zero values fall back to in-memory
// stats, no analytics and no sound.
type Options struct {
	Client     GameAPI
	Stats      stats.Store
	Events     analytics.Publisher
	Sound      *sound.Player
	Difficulty string
	Theme      string
	WebURL     string
	Version    string
}

// App is the root Bubbletea model.
type App struct {
	api     GameAPI
	store   stats.Store
	events  analytics.Publisher
	sound   *sound.Player
	webURL  string
	version string

	now       func() time.Time
	copyText  func(string) error
	openURL   func(string) error
	autoStart bool

	game       game.Game
	difficulty string
	theme      string
	cursor     int
	starting   bool

	stats  domain.Stats
	recent []domain.GameResult

	helpOpen  bool
	statsOpen bool
	winOpen   bool
	alert     string

	toasts   []toast
	toastSeq uint64

	latestVersion string
	width         int
	height        int
	frame         int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(opts Options) App {
	a := App{
		api:        opts.Client,
		store:      opts.Stats,
		events:     opts.Events,
		sound:      opts.Sound,
		webURL:     opts.WebURL,
		version:    opts.Version,
		now:        time.Now,
		copyText:   clipboard.WriteAll,
		openURL:    browser.Open,
		autoStart:  opts.Client != nil,
		difficulty: opts.Difficulty,
		theme:      opts.Theme,
	}
	if a.store == nil {
		a.store = stats.NewMemory()
	}
	if a.events == nil {
		a.events = analytics.Nop{}
	}
	if !domain.ValidDifficulty(a.difficulty) {
		a.difficulty = domain.DifficultyEasy
	}
	if !domain.ValidTheme(a.theme) {
		a.theme = domain.ThemeAnimals
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), loadStatsCmd(a.store), checkVersion(a.version)}
	if a.autoStart {
		cmds = append(cmds, startGameCmd(a.api, a.difficulty, a.theme, false))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.latestVersion = msg.latestVersion
		}
		return a, nil

	case gameStartedMsg:
		return a.handleGameStarted(msg)
	case flipResultMsg:
		return a.handleFlipResult(msg)
	case settleMsg:
		return a.handleSettle(msg)
	case timerTickMsg:
		return a.handleTimerTick(msg)
	case powerUpResultMsg:
		return a.handlePowerUpResult(msg)
	case peekEndMsg:
		a.game = a.game.EndPeek(msg.end)
		return a, nil
	case resyncMsg:
		return a.handleResync(msg)
	case toastExpireMsg:
		return a.expireToast(msg.id), nil

	case statsLoadedMsg:
		if msg.err != nil {
			log.Printf("load stats: %v", msg.err)
			return a, nil
		}
		a.stats = msg.stats
		a.recent = msg.recent
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Alert blocks everything until dismissed.
	if a.alert != "" {
		switch key {
		case "enter", "esc", " ":
			a.alert = ""
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.helpOpen || a.statsOpen {
		switch key {
		case "?", "s", "esc":
			a.helpOpen = false
			a.statsOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.winOpen {
		switch key {
		case "c":
			return a.copyResult()
		case "esc":
			a.winOpen = false
			return a, nil
		case "enter":
			return a.newGame(false)
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.helpOpen = true
	case "s":
		a.statsOpen = true
		return a, loadStatsCmd(a.store)
	case "n":
		return a.newGame(false)
	case "d":
		return a.newGame(true)
	case "tab":
		a.difficulty = cycle(domain.Difficulties, a.difficulty)
	case "t":
		a.theme = cycle(domain.Themes, a.theme)
	case "m":
		on := a.sound.Toggle()
		if on {
			return a.pushToast("Sound on", false)
		}
		return a.pushToast("Sound off", false)
	case "o":
		return a.openWeb()
	case "p":
		return a.usePowerUp(domain.PowerUpPeek)
	case "f":
		return a.usePowerUp(domain.PowerUpTimeFreeze)
	case "r":
		return a.resync()
	case "enter", " ":
		if a.winOpen {
			return a, nil
		}
		return a.clickCard(a.cursor)
	case "left", "right", "up", "down", "h", "j", "k", "l", "home", "end":
		if a.winOpen {
			return a, nil
		}
		a.cursor = moveCursor(a.cursor, a.game.Columns, len(a.game.Cards), key)
	}
	return a, nil
}

// newGame requests a fresh session. Repeated presses while a request is in
// flight are ignored.
func (a App) newGame(daily bool) (App, tea.Cmd) {
	if a.starting || a.api == nil {
		return a, nil
	}
	a.starting = true
	return a, startGameCmd(a.api, a.difficulty, a.theme, daily)
}

func (a App) copyResult() (App, tea.Cmd) {
	summary := winSummary(a.game)
	if summary == "" {
		return a, nil
	}
	if err := a.copyText(summary); err != nil {
		log.Printf("copy result: %v", err)
		return a.pushToast("Clipboard unavailable", true)
	}
	return a.pushToast("Result copied", false)
}

func (a App) openWeb() (App, tea.Cmd) {
	if a.webURL == "" {
		return a, nil
	}
	if err := a.openURL(a.webURL); err != nil {
		log.Printf("open browser: %v", err)
		return a.pushToast("Could not open "+a.webURL, true)
	}
	return a, nil
}

func (a App) View() string {
	logo := center(renderShimmerLogo(a.frame, a.theme), a.width)
	header := logo + "\n" + center(a.statusLine(), a.width)

	var body, help string
	switch {
	case a.alert != "":
		body = "\n" + center(alertView(a.alert), a.width)
		help = " " + helpEntry("enter", "dismiss") + "  " + helpEntry("q", "quit")
	case a.helpOpen:
		body = helpView(a.webURL)
		help = " " + helpEntry("esc", "close")
	case a.statsOpen:
		body = statsView(a.stats, a.recent, a.now())
		help = " " + helpEntry("esc", "close")
	case a.winOpen:
		body = "\n" + center(winView(a.game, a.stats), a.width)
		help = " " + helpEntry("n", "new") + "  " + helpEntry("c", "copy") + "  " + helpEntry("esc", "board") + "  " + helpEntry("q", "quit")
	default:
		body = a.boardView()
		help = " " + helpEntry("←↓↑→", "move") + "  " + helpEntry("enter", "flip") + "  " +
			helpEntry("n", "new") + "  " + helpEntry("d", "daily") + "  " +
			helpEntry("p", "peek") + "  " + helpEntry("f", "freeze") + "  " +
			helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	}

	if t := toastsView(a.toasts); t != "" {
		body += "\n\n" + center(t, a.width)
	}

	// Chrome budget: header(2) + settings(1) + help(1)
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, a.settingsLine(), body, help)
}

// statusLine shows counters and the timer for the current session.
func (a App) statusLine() string {
	if !a.game.Active() {
		if a.starting {
			return metaStyle.Render("dealing cards…")
		}
		return metaStyle.Render("press n to start")
	}
	g := a.game
	sep := metaStyle.Render(" · ")
	timer := selectedStyle.Render(g.Timer.Display())
	if g.Timer.Frozen(a.now()) {
		timer = frozenStyle.Render("❄ " + g.Timer.Display())
	}
	parts := []string{
		dimStyle.Render("moves ") + selectedStyle.Render(fmt.Sprintf("%d", g.Moves)),
		dimStyle.Render("pairs ") + selectedStyle.Render(fmt.Sprintf("%d/%d", g.PairsFound, g.TotalPairs)),
		timer,
	}
	if g.Daily {
		parts = append([]string{goldStyle.Render("daily")}, parts...)
	}
	return strings.Join(parts, sep)
}

// settingsLine shows the difficulty and theme the next game will use, the
// power-up inventory and any pending update.
func (a App) settingsLine() string {
	sep := metaStyle.Render("  ")
	var swatches []string
	for _, t := range domain.Themes {
		swatches = append(swatches, themeSwatch(t, t == a.theme))
	}
	parts := []string{
		" " + DifficultyStyle(a.difficulty).Render(a.difficulty),
		strings.Join(swatches, " "),
		a.powerUpLine(),
	}
	if a.latestVersion != "" {
		parts = append(parts, goldStyle.Render(a.latestVersion+" available"))
	}
	return strings.Join(parts, sep)
}

func (a App) powerUpLine() string {
	if !a.game.Active() {
		return ""
	}
	var out []string
	for _, kind := range domain.PowerUps {
		label := powerUpLabel(kind)
		switch a.game.PowerUps[kind] {
		case game.PowerUpAvailable:
			if a.game.Completed {
				out = append(out, metaStyle.Render(label))
			} else {
				out = append(out, accentStyle.Render(label))
			}
		case game.PowerUpPending:
			out = append(out, dimStyle.Render(label+"…"))
		}
	}
	return strings.Join(out, " ")
}

func (a App) boardView() string {
	if !a.game.Active() {
		return ""
	}
	board := renderBoard(a.game, a.cursor)
	if a.game.Peeking() {
		board += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#3ecce4")).Render("peeking…")
	}
	return "\n" + center(board, a.width)
}
