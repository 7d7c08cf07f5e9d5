// termjong is a terminal Mahjong solitaire race against the computer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"termjong/ai"
	"termjong/config"
	"termjong/engine"
	"termjong/engine/local"
	"termjong/logging"
	"termjong/sim"
	"termjong/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagDifficulty = flag.String("difficulty", "", "Layout (easy, medium or hard)")
	flagStrategy   = flag.String("strategy", "", "Computer strategy (random, greedy or adversarial)")
	flagDepth      = flag.Int("depth", -1, "Search depth of the adversarial computer")
	flagFirst      = flag.String("first", "", "Who moves first (random, human or computer)")
	flagSeed       = flag.Int64("seed", 0, "Seed for the deal and the computer (0: random)")
	flagQuickStart = flag.Bool("play", false, "Start a race immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (only your board)")
	flagSimulate   = flag.Int("simulate", 0, "Race two computers this many times and print a report")
	flagChallenger = flag.String("challenger", "greedy", "Strategy playing the human board in -simulate")
	flagWorkers    = flag.Int("workers", 0, "Parallel races in -simulate (0: one per CPU)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.TileBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termjong %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagSimulate > 0 {
		if err := simulate(); err != nil {
			log.Error().Err(err).Msg("simulation failed")
			os.Exit(1)
		}
		return
	}

	closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	baseCfg, err := gameConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Check if quick start requested
	quickStart := *flagQuickStart || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ termjong ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewTileBoard(app, cfg, gameHint)

	// Create game layout with boards and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.HasCursor() {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Click()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case ' ':
				gameBoard.Click()
			case 'n':
				gameBoard.JumpToOpen()
			case '?':
				gameBoard.ShowHint()
			case 'r':
				showError(gameBoard.Restart())
			case 'd':
				showError(gameBoard.CycleDifficulty())
			case 's':
				showError(gameBoard.CycleStrategy())
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(
		baseCfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 64), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(baseCfg)
		// Enter focus mode if requested
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		gameBoard.Close()
		log.Error().Err(err).Msg("ui stopped")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gameBoard.Close()
}

// startGame starts a race with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()

	eng := local.NewLocalEngine(gameCfg, nil)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		showError(fmt.Errorf("failed to start race: %w", err))
		return
	}
	rootPage.SwitchToPage("gameview")
}

// showError shows err in a modal. A nil error does nothing.
func showError(err error) {
	if err == nil {
		return
	}
	log.Error().Err(err).Msg("race error")
	modal := tview.NewModal().
		SetText(err.Error()).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// applyFlags overrides config values with the flags that were given.
func applyFlags(c *config.Config) {
	if *flagDifficulty != "" {
		c.Game.Difficulty = *flagDifficulty
	}
	if *flagStrategy != "" {
		c.AI.Strategy = *flagStrategy
	}
	if *flagDepth >= 0 {
		c.AI.Depth = *flagDepth
	}
	if *flagFirst != "" {
		c.Game.FirstMover = *flagFirst
	}
	if *flagSeed != 0 {
		c.Game.Seed = *flagSeed
	}
}

// gameConfig builds the engine configuration from the loaded config.
func gameConfig() (engine.GameConfig, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return engine.GameConfig{}, err
	}
	return engine.GameConfig{
		Settings: settings,
		AIDelay:  time.Duration(cfg.Game.AIDelayMs) * time.Millisecond,
	}, nil
}

// simulate races the challenger against the configured computer and prints a report.
func simulate() error {
	if err := logging.Console(cfg.Log.Level); err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	challenger, err := ai.ParseKind(*flagChallenger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, sim.Config{
		Races:      *flagSimulate,
		Workers:    *flagWorkers,
		Settings:   settings,
		Challenger: challenger,
	})
	if err != nil {
		return err
	}
	return report.Write(os.Stdout)
}
