// Package tui is the console emulator: a bubbletea program whose
// update loop is the navigation state machine. Exactly one view is
// active at a time; modal sub-scopes (confirm dialogs, the pokédex row
// menu) own input exclusively until they close.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/service"
)

// View is the active screen.
type View int

const (
	ViewWelcome View = iota
	ViewMenu
	ViewBattle
	ViewPokedex
	ViewSettings
	ViewHelp
)

// Tab is the pokédex list source.
type Tab int

const (
	TabOwned Tab = iota
	TabNational
)

var menuOptions = []string{"POKEDEX", "BATTLE", "SETTINGS", "HELP"}
var settingsOptions = []string{"THEME", "RESET"}
var rowMenuOptions = []string{"SET BUDDY", "RELEASE", "CANCEL"}

// animStage tracks the capture animation sequence. While it is not
// animIdle, input is disabled: this is the re-entrancy guard that keeps
// capture attempts from overlapping.
type animStage int

const (
	animIdle animStage = iota
	animThrowing
	animShaking
	animResult
)

type Model struct {
	svc  *service.Service
	keys keyMap

	palettes []Palette
	theme    string
	styles   Styles

	view View

	// menu
	menuIndex int

	// settings + its confirm dialog sub-scope
	settingsIndex int
	confirmOpen   bool
	confirmIndex  int // 0 = NO, 1 = YES

	// pokédex
	tab                Tab
	catalogIndex       []model.IndexEntry
	list               []model.DerivedListItem
	listIndex          int
	genFilter          game.Generation
	sortOrder          game.SortOrder
	page               int
	rowMenuOpen        bool
	rowMenuIndex       int
	releaseConfirmOpen bool
	releaseConfirmIdx  int // 0 = NO, 1 = YES
	dexLoading         bool
	dexMsg             string

	// battle / search
	searchInput   textinput.Model
	searchFocused bool
	active        *model.CatalogEntry
	battleMsg     string
	anim          animStage
	ballTier      model.BallTier

	// domain state snapshot
	caught    model.Collection
	companion *model.CompanionRef
	starter   *model.CaughtEntry

	// transient status line on the menu, tagged like battle messages so
	// a stale clear tick cannot wipe a newer status
	statusMsg string
	statusSeq int

	// busy disables all input while a capture animation or a blocking
	// flow (starter fetch, reset, release-to-empty) is in flight.
	busy bool

	// seq tags outbound requests; responses carrying an older tag are
	// stale and dropped.
	seq int

	width  int
	height int
}

func New(svc *service.Service) Model {
	st := svc.Load()

	palettes := loadPalettes()
	theme := st.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	input := textinput.New()
	input.Placeholder = "enter pokemon name"
	input.CharLimit = 32
	input.Width = 24

	m := Model{
		svc:         svc,
		keys:        defaultKeyMap(),
		palettes:    palettes,
		theme:       theme,
		styles:      newStyles(paletteByID(palettes, theme)),
		view:        ViewMenu,
		tab:         TabNational,
		genFilter:   game.GenAll,
		sortOrder:   game.SortIDAsc,
		page:        1,
		searchInput: input,
		caught:      st.Caught,
		companion:   st.Companion,
		battleMsg:   idlePrompt,
	}
	if len(m.caught) == 0 {
		// Init fires the starter flow; input stays locked until it settles
		m.busy = true
	}
	return m
}

// Init kicks off the first-run starter flow when the collection is
// empty; otherwise the program starts on the menu.
func (m Model) Init() tea.Cmd {
	if len(m.caught) == 0 {
		return assignStarterCmd(m.svc)
	}
	return nil
}

func (m *Model) applyTheme(theme string) {
	m.theme = theme
	m.styles = newStyles(paletteByID(m.palettes, theme))
}

// rebuildList recomputes the derived pokédex list for the active tab,
// preserving filter and sort, and clamps the cursor.
func (m *Model) rebuildList(resetCursor bool) {
	switch m.tab {
	case TabOwned:
		m.list = game.OwnedList(m.caught)
	default:
		m.list = game.DeriveList(m.catalogIndex, m.caught, m.genFilter, m.sortOrder)
	}
	if resetCursor {
		m.listIndex = 0
		m.page = 1
	}
	if m.listIndex >= len(m.list) {
		m.listIndex = len(m.list) - 1
	}
	if m.listIndex < 0 {
		m.listIndex = 0
	}
}

func (m *Model) selectedItem() *model.DerivedListItem {
	if m.listIndex < 0 || m.listIndex >= len(m.list) {
		return nil
	}
	return &m.list[m.listIndex]
}

// closeSubScopes discards any open sub-scope without running its
// commit or cancel effects. Used by the global Menu shortcut.
func (m *Model) closeSubScopes() {
	m.confirmOpen = false
	m.rowMenuOpen = false
	m.releaseConfirmOpen = false
}
