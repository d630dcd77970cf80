package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/pokeapi"
	"github.com/ab1manyu/PokedexChallenge/internal/service"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// The capture animation (and the starter/reset/release flows)
		// own the program: no transition is processed until settled.
		if m.busy {
			return m, nil
		}
		if m.view == ViewBattle && m.searchFocused {
			return m.updateSearchEntry(msg)
		}
		sym := m.keys.symbol(msg)
		if sym == InputNone {
			return m.updateAuxKey(msg)
		}
		return m.dispatch(sym)

	case starterMsg:
		return m.onStarter(msg.starter, msg.err)

	case resetDoneMsg:
		m.caught = make(model.Collection)
		m.companion = nil
		m.closeSubScopes()
		return m.onStarter(msg.starter, msg.err)

	case releaseDoneMsg:
		return m.onReleaseDone(msg)

	case catalogIndexMsg:
		m.dexLoading = false
		if msg.err != nil {
			m.dexMsg = "CATALOG UNAVAILABLE"
			return m, nil
		}
		m.catalogIndex = msg.entries
		if m.view == ViewPokedex && m.tab == TabNational {
			m.rebuildList(true)
		}
		return m, nil

	case searchResultMsg:
		return m.onSearchResult(msg)

	case revertMessageMsg:
		if msg.seq == m.seq && m.view == ViewBattle && m.active == nil && !m.busy {
			m.battleMsg = idlePrompt
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case animStepMsg:
		return m.onAnimStep(msg.stage)

	case captureSettledMsg:
		return m.onCaptureSettled()
	}

	return m, nil
}

// dispatch routes an abstract input symbol to the active view. When a
// modal sub-scope is open it owns the symbol exclusively.
func (m Model) dispatch(sym Input) (tea.Model, tea.Cmd) {
	// Global shortcut: Menu hard-resets to the menu from anywhere but
	// the menu and welcome views. Open sub-scopes are discarded without
	// their commit or cancel effects running.
	if sym == InputMenu {
		if m.view != ViewMenu && m.view != ViewWelcome {
			m.closeSubScopes()
			m.searchFocused = false
			m.searchInput.Blur()
			m.view = ViewMenu
		}
		return m, nil
	}

	switch m.view {
	case ViewWelcome:
		if sym == InputConfirm {
			m.starter = nil
			m.view = ViewMenu
		}
		return m, nil
	case ViewMenu:
		return m.updateMenu(sym)
	case ViewBattle:
		return m.updateBattle(sym)
	case ViewPokedex:
		return m.updatePokedex(sym)
	case ViewSettings:
		return m.updateSettings(sym)
	case ViewHelp:
		if sym == InputCancel {
			m.view = ViewMenu
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateMenu(sym Input) (tea.Model, tea.Cmd) {
	switch sym {
	case InputUp:
		m.menuIndex = (m.menuIndex - 1 + len(menuOptions)) % len(menuOptions)
	case InputDown:
		m.menuIndex = (m.menuIndex + 1) % len(menuOptions)
	case InputConfirm:
		switch menuOptions[m.menuIndex] {
		case "POKEDEX":
			m.view = ViewPokedex
			return m.enterPokedex()
		case "BATTLE":
			m.view = ViewBattle
		case "SETTINGS":
			m.view = ViewSettings
		case "HELP":
			m.view = ViewHelp
		}
	}
	return m, nil
}

func (m Model) enterPokedex() (tea.Model, tea.Cmd) {
	m.dexMsg = ""
	if m.tab == TabNational && len(m.catalogIndex) == 0 {
		m.dexLoading = true
		m.rebuildList(true)
		return m, fetchCatalogIndexCmd(m.svc)
	}
	m.rebuildList(true)
	return m, nil
}

func (m Model) updateSettings(sym Input) (tea.Model, tea.Cmd) {
	if m.confirmOpen {
		switch sym {
		case InputUp, InputDown:
			m.confirmIndex = 1 - m.confirmIndex
		case InputConfirm:
			if m.confirmIndex == 1 { // YES
				m.confirmOpen = false
				m.busy = true
				return m, resetCmd(m.svc)
			}
			m.confirmOpen = false
		case InputCancel:
			m.confirmOpen = false
		}
		return m, nil
	}

	switch sym {
	case InputUp:
		m.settingsIndex = (m.settingsIndex - 1 + len(settingsOptions)) % len(settingsOptions)
	case InputDown:
		m.settingsIndex = (m.settingsIndex + 1) % len(settingsOptions)
	case InputConfirm:
		switch settingsOptions[m.settingsIndex] {
		case "THEME":
			next := NextTheme(m.palettes, m.theme)
			m.applyTheme(next)
			m.svc.SaveTheme(next)
		case "RESET":
			m.confirmOpen = true
			m.confirmIndex = 0 // default NO
		}
	case InputCancel:
		m.view = ViewMenu
	}
	return m, nil
}

func (m Model) updatePokedex(sym Input) (tea.Model, tea.Cmd) {
	if m.releaseConfirmOpen {
		return m.updateReleaseConfirm(sym)
	}
	if m.rowMenuOpen {
		return m.updateRowMenu(sym)
	}

	switch sym {
	case InputUp:
		if m.listIndex > 0 {
			m.listIndex--
		}
		m.followCursor()
	case InputDown:
		if m.listIndex < len(m.list)-1 {
			m.listIndex++
		}
		m.followCursor()
	case InputLeft, InputRight:
		if m.tab == TabOwned {
			m.tab = TabNational
		} else {
			m.tab = TabOwned
		}
		return m.enterPokedex()
	case InputConfirm:
		if item := m.selectedItem(); item != nil && item.Caught {
			m.rowMenuOpen = true
			m.rowMenuIndex = 0
		}
	case InputCancel:
		m.view = ViewMenu
	}
	return m, nil
}

func (m Model) updateRowMenu(sym Input) (tea.Model, tea.Cmd) {
	switch sym {
	case InputUp:
		m.rowMenuIndex = (m.rowMenuIndex - 1 + len(rowMenuOptions)) % len(rowMenuOptions)
	case InputDown:
		m.rowMenuIndex = (m.rowMenuIndex + 1) % len(rowMenuOptions)
	case InputConfirm:
		item := m.selectedItem()
		if item == nil {
			m.rowMenuOpen = false
			return m, nil
		}
		switch rowMenuOptions[m.rowMenuIndex] {
		case "SET BUDDY":
			if ref, err := m.svc.SetCompanion(item.ID); err == nil {
				m.companion = ref
			}
			m.rowMenuOpen = false
		case "RELEASE":
			m.releaseConfirmOpen = true
			m.releaseConfirmIdx = 0 // default NO
		default: // CANCEL
			m.rowMenuOpen = false
		}
	case InputCancel:
		m.rowMenuOpen = false
	}
	return m, nil
}

func (m Model) updateReleaseConfirm(sym Input) (tea.Model, tea.Cmd) {
	switch sym {
	case InputUp, InputDown:
		m.releaseConfirmIdx = 1 - m.releaseConfirmIdx
	case InputConfirm:
		if m.releaseConfirmIdx == 1 { // YES
			if item := m.selectedItem(); item != nil {
				m.busy = true
				return m, releaseCmd(m.svc, item.ID)
			}
		}
		m.releaseConfirmOpen = false
		m.rowMenuOpen = false
	case InputCancel:
		m.releaseConfirmOpen = false
		m.rowMenuOpen = false
	}
	return m, nil
}

func (m Model) updateBattle(sym Input) (tea.Model, tea.Cmd) {
	switch sym {
	case InputConfirm:
		if m.active != nil {
			return m.beginCapture()
		}
		m.searchFocused = true
		return m, m.searchInput.Focus()
	case InputCancel:
		if m.active != nil {
			m.active = nil
			m.battleMsg = idlePrompt
			m.searchFocused = true
			return m, m.searchInput.Focus()
		}
		m.view = ViewMenu
	}
	return m, nil
}

// updateSearchEntry runs while the battle view's text query owns input.
// Enter submits, Esc blurs; everything else is text entry. The global
// Menu shortcut stays reachable through Tab.
func (m Model) updateSearchEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.closeSubScopes()
		m.view = ViewMenu
		return m, nil
	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.seq++
		m.battleMsg = "CONNECTING..."
		return m, searchCmd(m.svc, query, m.seq)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// updateAuxKey handles pokédex keys outside the symbol set: generation
// filter and sort cycling, and page jumps.
func (m Model) updateAuxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewPokedex || m.rowMenuOpen || m.releaseConfirmOpen {
		return m, nil
	}
	switch msg.String() {
	case "g":
		if m.tab == TabNational {
			m.genFilter = nextGeneration(m.genFilter)
			m.rebuildList(true)
		}
	case "s":
		if m.tab == TabNational {
			m.sortOrder = nextSortOrder(m.sortOrder)
			m.rebuildList(true)
		}
	case "pgup":
		m.jumpPage(-1)
	case "pgdown":
		m.jumpPage(1)
	}
	return m, nil
}

var generationCycle = []game.Generation{
	game.GenAll, "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

func nextGeneration(g game.Generation) game.Generation {
	for i, gen := range generationCycle {
		if gen == g {
			return generationCycle[(i+1)%len(generationCycle)]
		}
	}
	return game.GenAll
}

var sortCycle = []game.SortOrder{
	game.SortIDAsc, game.SortIDDesc, game.SortNameAsc, game.SortNameDesc, game.SortCaughtOn,
}

func nextSortOrder(s game.SortOrder) game.SortOrder {
	for i, order := range sortCycle {
		if order == s {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return game.SortIDAsc
}

func (m *Model) jumpPage(delta int) {
	_, page, _ := game.Paginate(m.list, m.page+delta, game.PageSize)
	m.page = page
	m.listIndex = (m.page - 1) * game.PageSize
	if m.listIndex >= len(m.list) {
		m.listIndex = len(m.list) - 1
	}
	if m.listIndex < 0 {
		m.listIndex = 0
	}
}

func (m *Model) followCursor() {
	if game.PageSize > 0 {
		m.page = m.listIndex/game.PageSize + 1
	}
}

func (m Model) beginCapture() (tea.Model, tea.Cmd) {
	if _, ok := m.caught[m.active.ID]; ok {
		m.battleMsg = "You already caught this!"
		return m, nil
	}
	m.busy = true
	m.anim = animThrowing
	m.battleMsg = "Go! Pokéball!"
	return m, animStepCmd(animShaking, throwDuration)
}

func (m Model) onAnimStep(stage animStage) (tea.Model, tea.Cmd) {
	if !m.busy || m.active == nil {
		return m, nil
	}
	switch stage {
	case animShaking:
		m.anim = animShaking
		return m, animStepCmd(animResult, shakeDuration)
	case animResult:
		m.anim = animResult
		return m.resolveCapture()
	}
	return m, nil
}

func (m Model) resolveCapture() (tea.Model, tea.Cmd) {
	outcome, entry, err := m.svc.AttemptCapture(*m.active)
	switch {
	case errors.Is(err, service.ErrAlreadyCaught):
		m.battleMsg = "You already caught this!"
	case err != nil:
		m.battleMsg = "SAVE FAILED. TRY AGAIN."
	case entry != nil:
		m.caught[entry.ID] = *entry
		m.ballTier = outcome.Ball.Tier
		m.battleMsg = fmt.Sprintf("Gotcha! %s was caught!", strings.ToUpper(entry.Name))
	default:
		m.ballTier = outcome.Ball.Tier
		m.battleMsg = fmt.Sprintf("Darn! %s broke free!", strings.ToUpper(m.active.Name))
	}
	return m, captureSettleCmd()
}

func (m Model) onCaptureSettled() (tea.Model, tea.Cmd) {
	m.busy = false
	m.anim = animIdle
	if m.active == nil {
		return m, nil
	}
	if _, ok := m.caught[m.active.ID]; ok {
		// caught: leave the encounter and return to the search prompt
		m.active = nil
		m.battleMsg = idlePrompt
	} else {
		m.battleMsg = fmt.Sprintf("A wild %s appeared!", strings.ToUpper(m.active.Name))
	}
	return m, nil
}

func (m Model) onSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	// Responses for a superseded query, or arriving after the player
	// navigated away, are stale: drop them instead of applying.
	if msg.seq != m.seq || m.view != ViewBattle {
		return m, nil
	}
	if msg.err != nil {
		if errors.Is(msg.err, pokeapi.ErrNotFound) {
			m.battleMsg = "MISSINGNO."
		} else {
			m.battleMsg = "CONNECTION ERROR"
		}
		return m, revertMessageCmd(m.seq)
	}
	entry := msg.entry
	m.active = &entry
	m.battleMsg = fmt.Sprintf("A wild %s appeared!", strings.ToUpper(entry.Name))
	return m, nil
}

func (m Model) onStarter(starter model.CaughtEntry, err error) (tea.Model, tea.Cmd) {
	m.busy = false
	if err != nil {
		m.view = ViewMenu
		m.statusSeq++
		m.statusMsg = "CONNECTION ERROR. NO STARTER ASSIGNED."
		return m, statusClearCmd(m.statusSeq)
	}
	if m.caught == nil {
		m.caught = make(model.Collection)
	}
	m.caught[starter.ID] = starter
	m.companion = &model.CompanionRef{ID: starter.ID, Name: starter.Name}
	m.starter = &starter
	m.view = ViewWelcome
	return m, nil
}

func (m Model) onReleaseDone(msg releaseDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.releaseConfirmOpen = false
	m.rowMenuOpen = false

	// The deletion may have committed even when the flow errored, so the
	// snapshot is always re-read from the store.
	if caught, err := m.svc.Collection(); err == nil {
		m.caught = caught
	}
	if companion, err := m.svc.Companion(); err == nil {
		m.companion = companion
	}

	if msg.err != nil {
		if errors.Is(msg.err, service.ErrStarterAssign) {
			// the release itself succeeded; retry the starter fetch
			m.rebuildList(false)
			m.busy = true
			return m, assignStarterCmd(m.svc)
		}
		m.dexMsg = "RELEASE FAILED"
		m.rebuildList(false)
		return m, nil
	}

	if msg.starter != nil {
		// the collection emptied out: the first-run flow ran again
		m.starter = msg.starter
		m.view = ViewWelcome
		return m, nil
	}
	m.rebuildList(false)
	return m, nil
}
