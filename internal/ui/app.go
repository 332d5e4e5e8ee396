// Package ui renders the store state and dispatches store mutations in
// response to user input. All mutations happen on the bubbletea event loop;
// commands only ferry mock-service results back as messages.
package ui

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/gemchat/internal/ai"
	"github.com/raphaelgruber/gemchat/internal/api"
	"github.com/raphaelgruber/gemchat/internal/config"
	"github.com/raphaelgruber/gemchat/internal/models"
	"github.com/raphaelgruber/gemchat/internal/store"
)

const statusTimeout = 4 * time.Second

type screen int

const (
	screenAuth screen = iota
	screenDashboard
	screenChat
)

// Deps bundles the collaborators the UI needs. The presentation layer never
// owns state; it reads the stores and dispatches mutations into them.
type Deps struct {
	Config    config.Config
	Logger    *slog.Logger
	Session   *store.Session
	Chat      *store.Chat
	API       *api.Service
	Responder *ai.Responder
}

// Messages shared across screens.
type (
	// statusMsg shows a transient notice line (the toast stand-in).
	statusMsg struct {
		text  string
		isErr bool
	}

	statusExpiredMsg struct{ seq int }

	// authenticatedMsg fires after a successful login.
	authenticatedMsg struct{}

	// logoutRequestMsg fires from the dashboard.
	logoutRequestMsg struct{}

	// openChatroomMsg selects a chatroom and enters the chat screen.
	openChatroomMsg struct{ room models.Chatroom }

	// leaveChatroomMsg deselects and returns to the dashboard.
	leaveChatroomMsg struct{}
)

// statusCmd surfaces a transient notice.
func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

// App is the root model routing between the auth, dashboard and chat
// screens.
type App struct {
	deps Deps

	screen screen
	auth   authModel
	dash   dashModel
	room   chatModel

	width  int
	height int

	status    string
	statusErr bool
	statusSeq int
}

// NewApp builds the root model. A persisted session skips the auth screen.
func NewApp(deps Deps) App {
	a := App{
		deps:   deps,
		auth:   newAuthModel(deps),
		dash:   newDashModel(deps),
		width:  80,
		height: 24,
	}
	if deps.Session.IsAuthenticated() {
		a.screen = screenDashboard
	}
	return a
}

// Init starts the country fetch when the auth screen is up.
func (a App) Init() tea.Cmd {
	if a.screen == screenAuth {
		return a.auth.init()
	}
	return nil
}

// Update handles global messages and routes the rest to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isErr
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return statusExpiredMsg{seq: seq}
		})

	case statusExpiredMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil

	case authenticatedMsg:
		a.screen = screenDashboard
		a.dash = newDashModel(a.deps)
		return a, nil

	case logoutRequestMsg:
		a.deps.Session.Logout()
		a.deps.Chat.SetCurrentChatroom("")
		a.screen = screenAuth
		a.auth = newAuthModel(a.deps)
		return a, tea.Batch(a.auth.init(), statusCmd("Logged out successfully", false))

	case openChatroomMsg:
		a.deps.Chat.SetCurrentChatroom(msg.room.ID)
		a.screen = screenChat
		a.room = newChatModel(a.deps, msg.room.ID)
		return a, a.room.enter()

	case leaveChatroomMsg:
		a.deps.Chat.SetCurrentChatroom("")
		a.deps.Chat.SetTyping(false)
		a.deps.Chat.SetLoading(false)
		a.screen = screenDashboard
		return a, nil
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenAuth:
		a.auth, cmd = a.auth.Update(msg)
	case screenDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case screenChat:
		a.room, cmd = a.room.Update(msg)
	}
	return a, cmd
}

// View renders the active screen plus the transient status line.
func (a App) View() tea.View {
	theme := themeFor(a.deps.Chat.DarkMode())

	var body string
	switch a.screen {
	case screenAuth:
		body = a.auth.View(theme, a.width)
	case screenDashboard:
		body = a.dash.View(theme, a.width, a.height)
	case screenChat:
		body = a.room.View(theme, a.width, a.height)
	}

	if a.status != "" {
		line := theme.successStyle().Render(a.status)
		if a.statusErr {
			line = theme.errorStyle().Render(a.status)
		}
		body += "\n" + line
	}

	return tea.NewView(body)
}
