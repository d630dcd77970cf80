package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ab1manyu/PokedexChallenge/internal/game"
	"github.com/ab1manyu/PokedexChallenge/internal/model"
)

const screenWidth = 64

var statAbbrev = map[string]string{
	"hp":              "HP",
	"attack":          "ATK",
	"defense":         "DEF",
	"special-attack":  "SPA",
	"special-defense": "SPD",
	"speed":           "SPE",
}

func (m Model) View() string {
	var body string
	switch m.view {
	case ViewWelcome:
		body = m.viewWelcome()
	case ViewMenu:
		body = m.viewMenu()
	case ViewBattle:
		body = m.viewBattle()
	case ViewPokedex:
		body = m.viewPokedex()
	case ViewSettings:
		body = m.viewSettings()
	case ViewHelp:
		body = m.viewHelp()
	}

	header := m.styles.Title.Render("SEARCHDEX") +
		m.styles.Faint.Render("  theme:"+m.theme)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footer())
}

func (m Model) footer() string {
	var hint string
	switch m.view {
	case ViewWelcome:
		hint = "enter: start"
	case ViewMenu:
		hint = "↑/↓: move  enter: select  ctrl+c: quit"
	case ViewBattle:
		hint = "enter: search/throw  esc: back  tab: menu"
	case ViewPokedex:
		hint = "↑/↓: move  ←/→: tab  g: gen  s: sort  enter: options  esc: back"
	case ViewSettings:
		hint = "↑/↓: move  enter: select  esc: back"
	case ViewHelp:
		hint = "esc: back"
	}
	return m.styles.Faint.Render(hint)
}

func (m Model) viewWelcome() string {
	if m.starter == nil {
		return m.styles.Panel.Render(m.styles.Text.Render("WELCOME TO SEARCHDEX"))
	}
	lines := []string{
		m.styles.Text.Render("WELCOME TO SEARCHDEX"),
		"",
		m.styles.Text.Render(fmt.Sprintf("You received a %s!", strings.ToUpper(m.starter.Name))),
		m.styles.Faint.Render(m.starter.Sprite),
		"",
		m.styles.Faint.Render("PRESS A TO START"),
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) viewMenu() string {
	var b strings.Builder
	for i, opt := range menuOptions {
		if i == m.menuIndex {
			b.WriteString(m.styles.Selected.Render("► " + opt))
		} else {
			b.WriteString(m.styles.Text.Render("  " + opt))
		}
		b.WriteByte('\n')
	}
	if m.companion != nil {
		b.WriteString(m.styles.Faint.Render(
			fmt.Sprintf("\nbuddy: %s (#%03d)", strings.ToUpper(m.companion.Name), m.companion.ID)))
	}
	if m.statusMsg != "" {
		b.WriteString(m.styles.Alert.Render("\n" + m.statusMsg))
	}
	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewBattle() string {
	var b strings.Builder

	if m.active == nil {
		b.WriteString(m.styles.Text.Render(m.battleMsg))
		b.WriteByte('\n')
		if m.searchFocused {
			b.WriteString(m.searchInput.View())
		} else {
			b.WriteString(m.styles.Faint.Render("press A to enter a name"))
		}
		return m.styles.Panel.Render(b.String())
	}

	b.WriteString(m.styles.Text.Render(fmt.Sprintf("WILD %s", strings.ToUpper(m.active.Name))))
	b.WriteString(m.styles.Faint.Render(fmt.Sprintf("  #%04d", m.active.ID)))
	b.WriteByte('\n')
	b.WriteString(m.renderStats(m.active.Stats))

	if m.active.Description != "" {
		b.WriteByte('\n')
		b.WriteString(m.styles.Faint.Render(wordwrap.String(m.active.Description, screenWidth-4)))
		b.WriteByte('\n')
	}

	switch m.anim {
	case animThrowing:
		b.WriteString(m.styles.Alert.Render("\n  ( )  →"))
	case animShaking:
		b.WriteString(m.styles.Alert.Render("\n ~( )~"))
	case animResult:
		b.WriteString(m.styles.Alert.Render("\n  ( )"))
	}

	player := "PLAYER"
	if m.companion != nil {
		player = strings.ToUpper(m.companion.Name)
	}
	b.WriteString(m.styles.Faint.Render("\nyour side: " + player))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(m.battleMsg))
	b.WriteString(m.styles.Faint.Render("\nA: CATCH | B: RUN"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewPokedex() string {
	var left strings.Builder

	tabOwned := "  OWNED  "
	tabNational := " NATIONAL "
	if m.tab == TabOwned {
		tabOwned = m.styles.Selected.Render(tabOwned)
		tabNational = m.styles.Faint.Render(tabNational)
	} else {
		tabOwned = m.styles.Faint.Render(tabOwned)
		tabNational = m.styles.Selected.Render(tabNational)
	}
	left.WriteString(tabOwned + tabNational + "\n")

	if m.dexLoading {
		left.WriteString(m.styles.Faint.Render("LOADING..."))
		return m.styles.Panel.Render(left.String())
	}
	if m.dexMsg != "" {
		left.WriteString(m.styles.Alert.Render(m.dexMsg) + "\n")
	}
	if len(m.list) == 0 {
		left.WriteString(m.styles.Faint.Render("NO DATA"))
		return m.styles.Panel.Render(left.String())
	}

	pageItems, page, totalPages := game.Paginate(m.list, m.page, game.PageSize)
	offset := (page - 1) * game.PageSize
	for i, item := range pageItems {
		idx := offset + i
		mark := " "
		if item.Caught {
			mark = "★"
		}
		name := strings.ToUpper(item.Name)
		if !item.Caught && m.tab == TabNational {
			name = "??????"
		}
		row := fmt.Sprintf("%s No.%03d %s", mark, item.ID, name)
		if idx == m.listIndex {
			left.WriteString(m.styles.Selected.Render("►" + row))
		} else {
			left.WriteString(m.styles.Text.Render(" " + row))
		}
		left.WriteByte('\n')
	}
	left.WriteString(m.styles.Faint.Render(
		fmt.Sprintf("page %d/%d  gen:%s  sort:%s", page, totalPages, m.genFilter, m.sortOrder)))

	list := m.styles.Panel.Render(strings.TrimRight(left.String(), "\n"))
	detail := m.styles.Panel.Render(m.renderDetail())

	out := lipgloss.JoinHorizontal(lipgloss.Top, detail, list)
	if m.rowMenuOpen {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderRowMenu())
	}
	return out
}

func (m Model) renderDetail() string {
	item := m.selectedItem()
	if item == nil {
		return m.styles.Faint.Render("EMPTY")
	}

	var b strings.Builder
	b.WriteString(m.styles.Text.Render(strings.ToUpper(displayName(*item, m.tab))))
	b.WriteByte('\n')
	if !item.Caught {
		b.WriteString(m.styles.Faint.Render("UNKNOWN DATA"))
		return b.String()
	}

	b.WriteString(m.styles.Faint.Render(item.Sprite) + "\n")
	b.WriteString(m.renderStats(item.Stats))
	if item.Ball != "" {
		b.WriteString(m.styles.Faint.Render("ball: " + string(item.Ball)) + "\n")
	}
	if m.companion != nil && m.companion.ID == item.ID {
		b.WriteString(m.styles.Selected.Render(" ACTIVE BUDDY "))
	} else {
		b.WriteString(m.styles.Faint.Render("PRESS A FOR OPTIONS"))
	}
	return b.String()
}

func displayName(item model.DerivedListItem, tab Tab) string {
	if !item.Caught && tab == TabNational {
		return "??????"
	}
	return item.Name
}

func (m Model) renderStats(stats []model.Stat) string {
	var b strings.Builder
	for _, st := range stats {
		abbrev, ok := statAbbrev[st.Name]
		if !ok {
			continue
		}
		filled := st.Value * 10 / 150
		if filled > 10 {
			filled = 10
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%-3s %s %3d", abbrev, bar, st.Value)))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderRowMenu() string {
	if m.releaseConfirmOpen {
		item := m.selectedItem()
		name := "?"
		if item != nil {
			name = strings.ToUpper(item.Name)
		}
		return m.renderConfirm(fmt.Sprintf("Release %s?", name), m.releaseConfirmIdx)
	}
	var b strings.Builder
	for i, opt := range rowMenuOptions {
		if i == m.rowMenuIndex {
			b.WriteString(m.styles.Selected.Render("►" + opt))
		} else {
			b.WriteString(m.styles.Text.Render(" " + opt))
		}
		b.WriteByte('\n')
	}
	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewSettings() string {
	var b strings.Builder
	for i, opt := range settingsOptions {
		label := opt
		if opt == "THEME" {
			label = fmt.Sprintf("THEME: %s", strings.ToUpper(m.theme))
		}
		if i == m.settingsIndex {
			b.WriteString(m.styles.Selected.Render("► " + label))
		} else {
			b.WriteString(m.styles.Text.Render("  " + label))
		}
		b.WriteByte('\n')
	}
	out := m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
	if m.confirmOpen {
		out = lipgloss.JoinVertical(lipgloss.Left, out,
			m.renderConfirm("Erase all saved data?", m.confirmIndex))
	}
	return out
}

func (m Model) renderConfirm(question string, idx int) string {
	no, yes := "  NO ", "  YES"
	if idx == 0 {
		no = m.styles.Selected.Render("► NO ")
	} else {
		yes = m.styles.Selected.Render("► YES")
	}
	return m.styles.Panel.Render(
		m.styles.Alert.Render(question) + "\n" + no + "\n" + yes)
}

const helpMarkdown = `# HOW TO PLAY

1. **BATTLE**: search for any pokémon by name to start an encounter.
2. **CATCH**: press A to throw a ball. Weakening isn't needed yet!
3. **POKEDEX**: view your collection. Toggle OWNED and NATIONAL with ←/→,
   cycle the generation filter with ` + "`g`" + ` and the sort order with ` + "`s`" + `.
4. **BUDDY**: in the pokédex, press A on a caught pokémon to set it as
   buddy or release it.
5. **SETTINGS**: change the theme or reset your save.

Press B (esc) to go back, and SELECT (tab) to jump to the menu from
anywhere.
`

func (m Model) viewHelp() string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(screenWidth),
	)
	if err != nil {
		return m.styles.Panel.Render(helpMarkdown)
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return m.styles.Panel.Render(helpMarkdown)
	}
	return out
}
