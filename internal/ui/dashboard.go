package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/gemchat/internal/validate"
)

// searchDebounce is how long the search box must quiesce before the filter
// applies.
const searchDebounce = 300 * time.Millisecond

type dashMode int

const (
	modeList dashMode = iota
	modeSearch
	modeCreate
	modeDelete
)

type searchDebounceMsg struct{ seq int }

// dashModel is the chatroom dashboard: filtered list, search, creation and
// deletion.
type dashModel struct {
	deps Deps

	mode   dashMode
	cursor int

	search textinput.Model
	title  textinput.Model
	deb    Debouncer

	errs          map[string]string
	pendingDelete string
	pendingTitle  string
}

func newDashModel(deps Deps) dashModel {
	search := textinput.New()
	search.Placeholder = "Search chatrooms..."
	search.SetValue(deps.Chat.SearchQuery())

	title := textinput.New()
	title.Placeholder = "Chatroom title"
	title.CharLimit = 60

	return dashModel{
		deps:   deps,
		search: search,
		title:  title,
	}
}

func (m dashModel) Update(msg tea.Msg) (dashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		// Stale ticks are superseded keystrokes; only the latest applies.
		if m.deb.Live(msg.seq) {
			m.deps.Chat.SetSearchQuery(m.search.Value())
			m.cursor = m.clampCursor(m.cursor)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeCreate:
			return m.updateCreate(msg)
		case modeDelete:
			return m.updateDelete(msg)
		}
	}
	return m, nil
}

func (m dashModel) updateList(msg tea.KeyPressMsg) (dashModel, tea.Cmd) {
	rooms := m.deps.Chat.FilteredChatrooms()

	switch msg.String() {
	case "up", "k":
		m.cursor = m.clampCursor(m.cursor - 1)
	case "down", "j":
		m.cursor = m.clampCursor(m.cursor + 1)

	case "enter":
		if m.cursor < len(rooms) {
			room := rooms[m.cursor]
			return m, func() tea.Msg { return openChatroomMsg{room: room} }
		}

	case "n":
		m.mode = modeCreate
		m.errs = nil
		m.title.SetValue("")
		m.title.Focus()

	case "/":
		m.mode = modeSearch
		m.search.Focus()

	case "d":
		if m.cursor < len(rooms) {
			m.mode = modeDelete
			m.pendingDelete = rooms[m.cursor].ID
			m.pendingTitle = rooms[m.cursor].Title
		}

	case "t":
		m.deps.Chat.ToggleDarkMode()

	case "ctrl+l":
		return m, func() tea.Msg { return logoutRequestMsg{} }

	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m dashModel) updateSearch(msg tea.KeyPressMsg) (dashModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	seq := m.deb.Touch()
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m dashModel) updateCreate(msg tea.KeyPressMsg) (dashModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.title.Blur()
		m.errs = nil
		return m, nil

	case "enter":
		titleText := strings.TrimSpace(m.title.Value())
		if errs := validate.Check(validate.ChatroomInput{Title: titleText}); len(errs) > 0 {
			m.errs = errs
			return m, nil
		}
		room := m.deps.Chat.CreateChatroom(titleText)
		m.mode = modeList
		m.title.Blur()
		m.errs = nil
		m.cursor = 0
		return m, statusCmd(fmt.Sprintf("Chatroom %q created", room.Title), false)
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m dashModel) updateDelete(msg tea.KeyPressMsg) (dashModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.deps.Chat.DeleteChatroom(m.pendingDelete)
		m.mode = modeList
		m.cursor = m.clampCursor(m.cursor)
		title := m.pendingTitle
		m.pendingDelete = ""
		m.pendingTitle = ""
		return m, statusCmd(fmt.Sprintf("Chatroom %q deleted", title), false)

	case "n", "esc":
		m.mode = modeList
		m.pendingDelete = ""
		m.pendingTitle = ""
	}
	return m, nil
}

func (m dashModel) clampCursor(c int) int {
	last := len(m.deps.Chat.FilteredChatrooms()) - 1
	if c > last {
		c = last
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m dashModel) View(theme Theme, width, height int) string {
	var b strings.Builder

	userName := "User"
	if u := m.deps.Session.User(); u != nil {
		userName = u.Name
	}
	header := theme.titleStyle().Render("Gemini Chat") + "  " +
		theme.hintStyle().Render(fmt.Sprintf("[%s] %s", initials(userName), userName))
	b.WriteString(header + "\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View() + "\n")
	case modeCreate:
		b.WriteString(theme.textStyle().Render("New chatroom title:") + "\n")
		b.WriteString(m.title.View() + "\n")
		if msg, ok := m.errs["Title"]; ok {
			b.WriteString(theme.errorStyle().Render(msg) + "\n")
		}
	case modeDelete:
		prompt := fmt.Sprintf("Delete chatroom %q and all its messages? (y/n)", m.pendingTitle)
		b.WriteString(theme.errorStyle().Render(prompt) + "\n")
	default:
		if q := m.deps.Chat.SearchQuery(); q != "" {
			b.WriteString(theme.hintStyle().Render("filter: "+q) + "\n")
		}
	}
	b.WriteString("\n")

	rooms := m.deps.Chat.FilteredChatrooms()
	if len(rooms) == 0 {
		if m.deps.Chat.SearchQuery() != "" {
			b.WriteString(theme.hintStyle().Render("No chatrooms match your search.") + "\n")
		} else {
			b.WriteString(theme.hintStyle().Render("No chatrooms yet. Press n to create one.") + "\n")
		}
	}

	now := time.Now()
	maxRows := height - 8
	if maxRows < 3 {
		maxRows = 3
	}
	for i, room := range rooms {
		if i >= maxRows {
			b.WriteString(theme.hintStyle().Render(fmt.Sprintf("… %d more", len(rooms)-maxRows)) + "\n")
			break
		}

		titleLine := room.Title
		if i == m.cursor && m.mode != modeCreate {
			titleLine = theme.selectedStyle().Render("> " + titleLine)
		} else {
			titleLine = theme.textStyle().Render("  " + titleLine)
		}

		preview := "No messages yet"
		if room.LastMessage != nil {
			preview = truncate(strings.ReplaceAll(*room.LastMessage, "\n", " "), 48)
		}
		meta := fmt.Sprintf("%d messages · %s", room.MessageCount, formatRelative(room.CreatedAt, now))

		b.WriteString(titleLine + "\n")
		b.WriteString("    " + theme.hintStyle().Render(preview) + "\n")
		b.WriteString("    " + theme.hintStyle().Render(meta) + "\n")
	}

	b.WriteString("\n" + theme.hintStyle().Render(
		"enter open · n new · d delete · / search · t theme · ctrl+l logout · q quit"))
	return b.String()
}
