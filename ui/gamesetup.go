package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termjong/ai"
	"termjong/engine"
	"termjong/game"
	"termjong/layout"
)

// GameSetupUI provides a form for configuring a new race.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	base engine.GameConfig
}

var (
	difficultyLabels = []string{"Easy (60 tiles)", "Medium (114 tiles)", "Hard (144 tiles)"}
	strategyLabels   = []string{"Random", "Greedy", "Adversarial"}
	firstLabels      = []string{"Random", "Me", "Computer"}
	depthLabels      = []string{"0 (greedy play)", "1", "2", "3", "4"}
)

// NewGameSetup creates a new race setup form, prefilled from base.
func NewGameSetup(base engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		base:     base,
	}
	settings := &setup.base.Settings

	form := tview.NewForm()

	form.AddDropDown("Layout", difficultyLabels, int(settings.Difficulty), func(option string, index int) {
		settings.Difficulty = layout.Difficulties[index]
	})

	form.AddDropDown("Computer", strategyLabels, int(settings.Strategy), func(option string, index int) {
		settings.Strategy = ai.Kinds[index]
	})

	depth := settings.Depth
	if depth >= len(depthLabels) {
		depth = len(depthLabels) - 1
	}
	form.AddDropDown("Search Depth", depthLabels, depth, func(option string, index int) {
		settings.Depth = index
	})

	form.AddDropDown("First Move", firstLabels, int(settings.FirstMover), func(option string, index int) {
		settings.FirstMover = game.FirstMover(index)
	})

	form.AddInputField("Computer Delay (ms)", strconv.Itoa(int(setup.base.AIDelay/time.Millisecond)), 8, func(text string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.base.AIDelay = time.Duration(val) * time.Millisecond
		}
	})

	seed := ""
	if settings.Seed != 0 {
		seed = strconv.FormatInt(settings.Seed, 10)
	}
	form.AddInputField("Seed (empty: random)", seed, 20, func(text string, lastChar rune) bool {
		return (lastChar >= '0' && lastChar <= '9') || (lastChar == '-' && len(text) == 1)
	}, func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			settings.Seed = 0
			return
		}
		if val, err := strconv.ParseInt(text, 10, 64); err == nil {
			settings.Seed = val
		}
	})

	form.AddCheckbox("Stuck race goes to score", settings.StalemateByScore, func(checked bool) {
		settings.StalemateByScore = checked
	})

	form.AddButton("Start Race", func() {
		onStart(setup.Config())
	})

	form.AddButton("Tile Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Race ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	// Create help text
	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	// Create flex layout with form and help text
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Config returns the race configuration chosen in the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.base
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
